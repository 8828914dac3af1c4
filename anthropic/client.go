package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
)

// Interface compliance check.
var _ passage.Completer = (*Client)(nil)

// Client implements [passage.Completer] for the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	maxTokens int64
}

// Option configures a [Client].
type Option func(*config)

type config struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxTokens  int64
}

// WithAPIKey sets the default API key. Without it the SDK reads
// ANTHROPIC_API_KEY from the environment.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithBaseURL sets the default API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithMaxTokens sets the response token limit. Default is 8192.
func WithMaxTokens(n int64) Option {
	return func(c *config) { c.maxTokens = n }
}

// New creates a new Anthropic [Client]. SDK retries are disabled: a failed
// completion is reported to the caller immediately.
func New(opts ...Option) *Client {
	cfg := config{maxTokens: defaultMaxTokens}
	for _, o := range opts {
		o(&cfg)
	}
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(cfg.apiKey))
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}
	return &Client{
		client:    anthropic.NewClient(reqOpts...),
		maxTokens: cfg.maxTokens,
	}
}

// Complete sends req.Message as a single user message and returns the
// concatenated text blocks of the reply. Per-request BaseURL and Token
// override the client defaults.
func (c *Client) Complete(ctx context.Context, req passage.CompletionRequest) (string, error) {
	var reqOpts []option.RequestOption
	if req.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(req.BaseURL))
	}
	if req.Token != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(req.Token))
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Message)),
		},
	}, reqOpts...)
	if err != nil {
		return "", errors.Wrap(err, "anthropic")
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", errors.Wrap(passage.ErrMalformedResponse, "anthropic: no text content in response")
	}
	return strings.Join(parts, ""), nil
}
