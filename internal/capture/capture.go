// Package capture fetches a web page and extracts its title and visible
// text, the inputs the save flow feeds to summarization.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Page holds what was captured from a URL.
type Page struct {
	URL   string
	Title string
	Text  string
}

// ErrInternalPage marks browser-internal URL schemes, which cannot be
// captured. Callers surface this as its own user-facing condition.
var ErrInternalPage = errors.New("cannot capture internal browser pages")

const maxBodyBytes = 2 << 20

var internalPrefixes = []string{"chrome://", "edge://", "about:"}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads the page and extracts title and visible text. If no text
// can be extracted, the title stands in as the content.
func Fetch(ctx context.Context, rawURL string) (*Page, error) {
	for _, p := range internalPrefixes {
		if strings.HasPrefix(rawURL, p) {
			return nil, ErrInternalPage
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; link-saver/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	title := strings.TrimSpace(findTitle(doc))
	if title == "" {
		title = rawURL
	}

	var sb strings.Builder
	visibleText(doc, &sb, 0)
	text := strings.Join(strings.Fields(sb.String()), " ")
	if text == "" {
		text = title
	}

	return &Page{URL: rawURL, Title: title, Text: text}, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// visibleText collects text nodes, skipping subtrees a reader never sees.
func visibleText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 50 {
		return
	}

	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg", "head", "nav", "footer", "header":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visibleText(c, sb, depth+1)
	}
}
