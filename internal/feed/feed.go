// Package feed bulk-imports links from an RSS/Atom feed by pushing each
// entry through the normal save flow.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/EricChiu147/link-saver/internal/router"
)

// Result summarizes an import run.
type Result struct {
	FeedTitle string
	Saved     int
	Skipped   int
	Failed    []string
}

// Import parses the feed and saves every entry through the router. Entries
// whose URL is already in the collection count as skipped, not failed.
func Import(ctx context.Context, r *router.Router, feedURL string, limit int) (*Result, error) {
	parser := gofeed.NewParser()
	f, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	res := &Result{FeedTitle: f.Title}
	for i, item := range f.Items {
		if limit > 0 && i >= limit {
			break
		}
		if item.Link == "" {
			continue
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		resp := r.Dispatch(ctx, router.SaveLink{
			URL:     item.Link,
			Title:   item.Title,
			Content: stripHTML(desc),
		})
		saved, ok := resp.(router.SaveResult)
		if !ok {
			res.Failed = append(res.Failed, fmt.Sprintf("%s: unexpected response", item.Link))
			continue
		}
		switch {
		case saved.OK:
			res.Saved++
		case saved.Message == "URL already saved":
			res.Skipped++
		default:
			res.Failed = append(res.Failed, fmt.Sprintf("%s: %s", item.Link, saved.Message))
		}
	}
	return res, nil
}

// stripHTML drops tags and collapses whitespace. Feed descriptions are often
// HTML fragments; the summarizer wants plain text.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
