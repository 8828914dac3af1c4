package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ passage.Completer = (*Client)(nil)

// Client implements [passage.Completer] for the Google Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clients    map[clientKey]*genai.Client
}

type clientKey struct {
	baseURL string
	apiKey  string
}

// Option configures a [Client].
type Option func(*Client)

// WithAPIKey sets the default API key. Without it the SDK reads
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL sets the default API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Gemini [Client]. SDK clients are created lazily on the
// first request.
func New(opts ...Option) *Client {
	c := &Client{clients: make(map[clientKey]*genai.Client)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends req.Message as a single user turn and returns the text of
// the first candidate. Per-request BaseURL and Token override the client
// defaults.
func (c *Client) Complete(ctx context.Context, req passage.CompletionRequest) (string, error) {
	gc, err := c.sdkClient(ctx, req)
	if err != nil {
		return "", err
	}
	resp, err := gc.Models.GenerateContent(ctx, req.Model, genai.Text(req.Message), nil)
	if err != nil {
		return "", errors.Wrap(err, "gemini")
	}
	return ExtractText(resp)
}

func (c *Client) sdkClient(ctx context.Context, req passage.CompletionRequest) (*genai.Client, error) {
	key := clientKey{baseURL: c.baseURL, apiKey: c.apiKey}
	if req.BaseURL != "" {
		key.baseURL = req.BaseURL
	}
	if req.Token != "" {
		key.apiKey = req.Token
	}
	if gc, ok := c.clients[key]; ok {
		return gc, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     key.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if key.baseURL != "" {
		cfg.HTTPOptions.BaseURL = key.baseURL
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "gemini"), "set GEMINI_API_KEY or the prompt's apiToken")
	}
	c.clients[key] = gc
	return gc, nil
}

// ExtractText returns the concatenated non-thought text parts of the first
// candidate. Exported for testing.
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.Wrap(passage.ErrMalformedResponse, "gemini: no candidates")
	}
	var b strings.Builder
	found := false
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		if p.Text != "" {
			found = true
		}
		b.WriteString(p.Text)
	}
	if !found {
		return "", errors.Wrap(passage.ErrMalformedResponse, "gemini: no text in first candidate")
	}
	return b.String(), nil
}
