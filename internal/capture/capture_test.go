package capture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchRejectsInternalPages(t *testing.T) {
	for _, url := range []string{"chrome://settings", "edge://flags", "about:blank"} {
		_, err := Fetch(context.Background(), url)
		if !errors.Is(err, ErrInternalPage) {
			t.Errorf("Fetch(%q) err = %v, want ErrInternalPage", url, err)
		}
	}
}

func TestFetchRejectsNonWebSchemes(t *testing.T) {
	for _, url := range []string{"file:///etc/passwd", "ftp://example.com", "javascript:alert(1)"} {
		_, err := Fetch(context.Background(), url)
		if err == nil {
			t.Errorf("Fetch(%q) succeeded, want scheme error", url)
		}
		if errors.Is(err, ErrInternalPage) {
			t.Errorf("Fetch(%q) = ErrInternalPage, want generic scheme error", url)
		}
	}
}

func TestFetchExtractsTitleAndText(t *testing.T) {
	page := `<html><head><title>My Page</title><style>body{}</style></head>
	<body><nav>skip this</nav><p>Hello   world.</p><script>var x=1;</script>
	<div>More text.</div><footer>skip too</footer></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Title != "My Page" {
		t.Errorf("title = %q, want %q", got.Title, "My Page")
	}
	if got.Text != "Hello world. More text." {
		t.Errorf("text = %q", got.Text)
	}
	for _, skipped := range []string{"skip this", "skip too", "var x"} {
		if strings.Contains(got.Text, skipped) {
			t.Errorf("text contains hidden content %q", skipped)
		}
	}
}

func TestFetchFallsBackToTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Only Title</title></head><body></body></html>`))
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Text != "Only Title" {
		t.Errorf("text = %q, want fallback to title", got.Text)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error on 404")
	}
}
