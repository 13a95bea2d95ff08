package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/EricChiu147/link-saver/internal/ai"
	"github.com/EricChiu147/link-saver/internal/router"
	"github.com/EricChiu147/link-saver/internal/store"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Feed</title>
<item><title>Post A</title><link>https://a.example/post</link><description>&lt;p&gt;About  A&lt;/p&gt;</description></item>
<item><title>Post B</title><link>https://b.example/post</link><description>About B</description></item>
</channel>
</rss>`

func testRouter(t *testing.T) *router.Router {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	t.Setenv(router.EnvAPIKey, "")
	return router.New(st, ai.New("", ""))
}

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleFeed)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImport(t *testing.T) {
	r := testRouter(t)
	srv := feedServer(t)

	res, err := Import(context.Background(), r, srv.URL, 0)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.FeedTitle != "Test Feed" {
		t.Errorf("feed title = %q", res.FeedTitle)
	}
	if res.Saved != 2 || res.Skipped != 0 || len(res.Failed) != 0 {
		t.Errorf("result = %+v, want 2 saved", res)
	}

	list := r.Dispatch(context.Background(), router.ListLinks{}).(router.ListResult)
	if len(list.Links) != 2 {
		t.Errorf("expected 2 links, got %d", len(list.Links))
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	r := testRouter(t)
	srv := feedServer(t)

	if _, err := Import(context.Background(), r, srv.URL, 0); err != nil {
		t.Fatalf("first import: %v", err)
	}
	res, err := Import(context.Background(), r, srv.URL, 0)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Saved != 0 || res.Skipped != 2 {
		t.Errorf("result = %+v, want 2 skipped", res)
	}
}

func TestImportLimit(t *testing.T) {
	r := testRouter(t)
	srv := feedServer(t)

	res, err := Import(context.Background(), r, srv.URL, 1)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Saved != 1 {
		t.Errorf("saved = %d, want 1", res.Saved)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"a  \n  b", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.input); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
