package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"

	// Only this many characters of page content go into the summary prompt.
	// Hard cutoff, not word-boundary aware.
	contentPreviewLimit = 1000

	keyPrefix = "sk-"
)

// PlaceholderSummary is returned when no API key is configured. Saving a
// link must still succeed in that case.
const PlaceholderSummary = "No summary available (API key not configured)"

// ErrNoAPIKey signals that an operation requiring the external service was
// attempted without a configured credential.
var ErrNoAPIKey = errors.New("API key not configured")

// SavedLink holds the fields of a saved link that are serialized into the
// question-answering prompt.
type SavedLink struct {
	Title   string
	URL     string
	Summary string
}

// Client talks to an OpenAI-compatible chat completion endpoint. The API key
// is passed per call rather than held on the client, so every request uses
// the credential as currently stored.
type Client struct {
	model   string
	baseURL string
	client  *http.Client
}

func New(model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidKeyFormat reports whether the key looks like an OpenAI API key.
// Format sanity check only, not validation of the key itself.
func ValidKeyFormat(key string) bool {
	return strings.HasPrefix(key, keyPrefix)
}

const summarizeSystemPrompt = "You are a helpful assistant that creates concise summaries of web pages. Provide a brief summary in 2-3 sentences."

const summarizeUserPrompt = `Please summarize this webpage:
Title: %s
URL: %s
Content preview: %s`

const searchSystemPrompt = "You are a helpful assistant that helps users find relevant links from their saved collection. Based on the user's question, identify and recommend the most relevant links."

const searchUserPrompt = `Here are my saved links:

%s

Question: %s

Please recommend the most relevant links and explain why they are relevant.`

// Summarize produces a short summary of a page. It never returns an error:
// with no key configured it returns PlaceholderSummary, and any API failure
// resolves to an explanatory string, so a save is never blocked on the
// external service.
func (c *Client) Summarize(ctx context.Context, apiKey, url, title, content string) string {
	if apiKey == "" {
		return PlaceholderSummary
	}

	preview := content
	if runes := []rune(content); len(runes) > contentPreviewLimit {
		preview = string(runes[:contentPreviewLimit])
	}

	prompt := fmt.Sprintf(summarizeUserPrompt, title, url, preview)
	text, err := c.chat(ctx, apiKey, summarizeSystemPrompt, prompt, 150)
	if err != nil {
		return "Summary generation failed: " + err.Error()
	}
	return text
}

// Answer forwards the full collection plus the question to the completion
// endpoint and returns its answer. Relevance ranking is entirely delegated
// to the model; the prompt grows linearly with the collection.
func (c *Client) Answer(ctx context.Context, apiKey, question string, links []SavedLink) (string, error) {
	if apiKey == "" {
		return "", ErrNoAPIKey
	}

	blocks := make([]string, len(links))
	for i, l := range links {
		blocks[i] = fmt.Sprintf("Title: %s\nURL: %s\nSummary: %s\n---", l.Title, l.URL, l.Summary)
	}

	prompt := fmt.Sprintf(searchUserPrompt, strings.Join(blocks, "\n"), question)
	text, err := c.chat(ctx, apiKey, searchSystemPrompt, prompt, 500)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	return text, nil
}

// CheckKey verifies the key against the models endpoint. Used by the key
// test command, not by the save/search flows.
func (c *Client) CheckKey(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return ErrNoAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New("invalid API key")
	default:
		return fmt.Errorf("connection failed with status %d", resp.StatusCode)
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) chat(ctx context.Context, apiKey, system, user string, maxTokens int) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("API request failed: %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
