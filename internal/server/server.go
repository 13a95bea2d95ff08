// Package server exposes the router's actions over a local HTTP endpoint so
// external UI surfaces can drive the collection: one POST channel carrying
// tagged requests, answered by the matching tagged response.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EricChiu147/link-saver/internal/capture"
	"github.com/EricChiu147/link-saver/internal/router"
)

type Server struct {
	router *router.Router
	log    *zap.Logger
}

func New(r *router.Router, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{router: r, log: log}
}

// envelope is the wire form of a request: an action name plus the union of
// all action payload fields.
type envelope struct {
	Action      string `json:"action"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	PageContent string `json:"pageContent,omitempty"`
	ID          int64  `json:"id,omitempty"`
	Query       string `json:"query,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
}

type errorReply struct {
	OK    bool   `json:"success"`
	Error string `json:"error"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /", s.handleAction)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.reply(w, http.StatusBadRequest, errorReply{Error: "invalid request body"})
		return
	}

	req, err := s.toRequest(r, env)
	if err != nil {
		s.reply(w, http.StatusBadRequest, errorReply{Error: err.Error()})
		return
	}

	resp := s.router.Dispatch(r.Context(), req)
	s.reply(w, http.StatusOK, resp)

	s.log.Info("handled action",
		zap.String("action", env.Action),
		zap.Duration("took", time.Since(start)),
	)
}

// toRequest maps an action name to its typed request. For saveLink, a
// request carrying only a URL triggers server-side page capture.
func (s *Server) toRequest(r *http.Request, env envelope) (router.Request, error) {
	switch env.Action {
	case "saveLink":
		if env.URL == "" {
			return nil, errors.New("saveLink requires a url")
		}
		if env.Title == "" && env.PageContent == "" {
			page, err := capture.Fetch(r.Context(), env.URL)
			if err != nil {
				return nil, err
			}
			env.Title = page.Title
			env.PageContent = page.Text
		}
		return router.SaveLink{URL: env.URL, Title: env.Title, Content: env.PageContent}, nil
	case "getAllLinks":
		return router.ListLinks{}, nil
	case "deleteLink":
		return router.DeleteLink{ID: env.ID}, nil
	case "searchWithAI":
		return router.Search{Query: env.Query}, nil
	case "getApiKey":
		return router.GetAPIKey{}, nil
	case "saveApiKey":
		return router.SetAPIKey{Key: env.APIKey}, nil
	default:
		return nil, errors.New("unknown action: " + env.Action)
	}
}

func (s *Server) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encoding response", zap.Error(err))
	}
}

// ListenAndServe blocks serving the action channel on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
