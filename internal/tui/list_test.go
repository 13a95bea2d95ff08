package tui

import (
	"testing"
	"time"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		ts   string
		want string
	}{
		{now.Add(-30 * time.Second).Format(time.RFC3339), "just now"},
		{now.Add(-5 * time.Minute).Format(time.RFC3339), "5m"},
		{now.Add(-3 * time.Hour).Format(time.RFC3339), "3h"},
		{now.Add(-2 * 24 * time.Hour).Format(time.RFC3339), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.ts)
		if got != tt.want {
			t.Errorf("relativeTime(%q) = %q, want %q", tt.ts, got, tt.want)
		}
	}
}

func TestRelativeTimeUnparseable(t *testing.T) {
	got := relativeTime("not-a-timestamp")
	if got != "not-a-timestamp" {
		t.Errorf("relativeTime fallback = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("aa bb cc dd", 5)
	want := "aa bb\ncc dd"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}

	if got := wrapText("", 10); got != "" {
		t.Errorf("wrapText empty = %q", got)
	}
}
