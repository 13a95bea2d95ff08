// Package router dispatches the six actions that UI surfaces can request
// against the saved-link collection. Every action returns a structured
// result; errors never cross this boundary as Go errors.
package router

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/EricChiu147/link-saver/internal/ai"
	"github.com/EricChiu147/link-saver/internal/store"
)

// SettingAPIKey is the settings key holding the OpenAI credential.
const SettingAPIKey = "apiKey"

// EnvAPIKey is consulted when no credential is stored.
const EnvAPIKey = "LINKSAVER_API_KEY"

// Request is the closed set of actions a UI surface can send.
type Request interface{ isRequest() }

type SaveLink struct {
	URL     string
	Title   string
	Content string
}

type ListLinks struct{}

type DeleteLink struct {
	ID int64
}

type Search struct {
	Query string
}

type GetAPIKey struct{}

type SetAPIKey struct {
	Key string
}

func (SaveLink) isRequest()   {}
func (ListLinks) isRequest()  {}
func (DeleteLink) isRequest() {}
func (Search) isRequest()     {}
func (GetAPIKey) isRequest()  {}
func (SetAPIKey) isRequest()  {}

// Response is the closed set of results matching the requests above. The
// JSON field names mirror the wire format consumed by UI surfaces.
type Response interface{ isResponse() }

type SaveResult struct {
	OK      bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Summary string `json:"summary,omitempty"`
	Message string `json:"message,omitempty"`
}

type ListResult struct {
	OK    bool         `json:"success"`
	Links []store.Link `json:"links"`
	Error string       `json:"error,omitempty"`
}

type SearchResult struct {
	OK     bool   `json:"success"`
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

type KeyResult struct {
	OK    bool   `json:"success"`
	Key   string `json:"apiKey,omitempty"`
	Error string `json:"error,omitempty"`
}

// StatusResult is the reply for actions with no payload (delete, set key).
type StatusResult struct {
	OK    bool   `json:"success"`
	Error string `json:"error,omitempty"`
}

func (SaveResult) isResponse()   {}
func (ListResult) isResponse()   {}
func (SearchResult) isResponse() {}
func (KeyResult) isResponse()    {}
func (StatusResult) isResponse() {}

// Router owns the store and the AI client. It holds no cache of records;
// every read goes back to the store.
type Router struct {
	store *store.Store
	ai    *ai.Client
}

func New(st *store.Store, client *ai.Client) *Router {
	return &Router{store: st, ai: client}
}

// Dispatch routes a request to its handler. Requests are independent; there
// is no ordering or locking across concurrent calls beyond what the store
// provides.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	switch req := req.(type) {
	case SaveLink:
		return r.saveLink(ctx, req)
	case ListLinks:
		return r.listLinks()
	case DeleteLink:
		return r.deleteLink(req.ID)
	case Search:
		return r.search(ctx, req.Query)
	case GetAPIKey:
		return r.getAPIKey()
	case SetAPIKey:
		return r.setAPIKey(req.Key)
	default:
		return StatusResult{Error: fmt.Sprintf("unknown request type %T", req)}
	}
}

func (r *Router) saveLink(ctx context.Context, req SaveLink) SaveResult {
	existing, err := r.store.FindByURL(req.URL)
	if err != nil {
		return SaveResult{Message: err.Error()}
	}
	if existing != nil {
		return SaveResult{Message: "URL already saved"}
	}

	key, err := r.apiKey()
	if err != nil {
		return SaveResult{Message: err.Error()}
	}

	// Summarization soft-degrades; it never blocks the save.
	summary := r.ai.Summarize(ctx, key, req.URL, req.Title, req.Content)

	// The FindByURL check above is only a fast path. The insert itself is
	// conditional on URL absence, which closes the check-then-insert race.
	id, inserted, err := r.store.AddLinkIfAbsent(store.Link{
		URL:     req.URL,
		Title:   req.Title,
		Summary: summary,
		Tags:    []string{},
	})
	if err != nil {
		return SaveResult{Message: err.Error()}
	}
	if !inserted {
		return SaveResult{Message: "URL already saved"}
	}
	return SaveResult{OK: true, ID: id, Summary: summary}
}

func (r *Router) listLinks() ListResult {
	links, err := r.store.ListLinks()
	if err != nil {
		return ListResult{Error: err.Error()}
	}
	if links == nil {
		links = []store.Link{}
	}
	return ListResult{OK: true, Links: links}
}

func (r *Router) deleteLink(id int64) StatusResult {
	if err := r.store.DeleteLink(id); err != nil {
		return StatusResult{Error: err.Error()}
	}
	return StatusResult{OK: true}
}

func (r *Router) search(ctx context.Context, query string) SearchResult {
	key, err := r.apiKey()
	if err != nil {
		return SearchResult{Error: err.Error()}
	}

	links, err := r.store.ListLinks()
	if err != nil {
		return SearchResult{Error: err.Error()}
	}

	saved := make([]ai.SavedLink, len(links))
	for i, l := range links {
		saved[i] = ai.SavedLink{Title: l.Title, URL: l.URL, Summary: l.Summary}
	}

	answer, err := r.ai.Answer(ctx, key, query, saved)
	if errors.Is(err, ai.ErrNoAPIKey) {
		return SearchResult{Error: ai.ErrNoAPIKey.Error()}
	}
	if err != nil {
		return SearchResult{Error: err.Error()}
	}
	return SearchResult{OK: true, Answer: answer}
}

func (r *Router) getAPIKey() KeyResult {
	value, _, err := r.store.GetSetting(SettingAPIKey)
	if err != nil {
		return KeyResult{Error: err.Error()}
	}
	return KeyResult{OK: true, Key: value}
}

func (r *Router) setAPIKey(key string) StatusResult {
	if key == "" {
		return StatusResult{Error: "API key is empty"}
	}
	if !ai.ValidKeyFormat(key) {
		return StatusResult{Error: `invalid API key format: OpenAI API keys start with "sk-"`}
	}
	if err := r.store.PutSetting(SettingAPIKey, key); err != nil {
		return StatusResult{Error: err.Error()}
	}
	return StatusResult{OK: true}
}

// apiKey reads the credential from the store, falling back to the
// environment. Read before every external call, never cached.
func (r *Router) apiKey() (string, error) {
	value, ok, err := r.store.GetSetting(SettingAPIKey)
	if err != nil {
		return "", err
	}
	if ok && value != "" {
		return value, nil
	}
	return os.Getenv(EnvAPIKey), nil
}
