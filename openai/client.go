package openai

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
)

// Interface compliance check.
var _ passage.Completer = (*Client)(nil)

// Client implements [passage.Completer] over HTTP. Requests may carry their
// own base URL and token; empty values fall back to the client's, which
// default to a local server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets the base URL used by requests that carry none.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithToken sets the bearer token used by requests that carry none.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request. Zero keeps the default of waiting until
// the backend answers.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New creates a new [Client].
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    passage.DefaultBaseURL,
		token:      passage.DefaultToken,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends req.Message as a single user message and returns the raw
// content of the first choice.
func (c *Client) Complete(ctx context.Context, req passage.CompletionRequest) (string, error) {
	baseURL, token := cmp.Or(req.BaseURL, c.baseURL), cmp.Or(req.Token, c.token)
	endpoint, err := Endpoint(baseURL)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(apiRequest{
		Model:    req.Model,
		Messages: []apiMessage{{Role: "user", Content: req.Message}},
	})
	if err != nil {
		return "", errors.Wrap(err, "openai: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "openai")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.WithHintf(errors.Wrap(err, "openai: request"),
			"is a completion server listening at %s?", baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", parseHTTPError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "openai: read response")
	}
	return parseResponse(data)
}

// Endpoint builds the chat completions URL for a base URL. The base URL must
// be absolute with an http or https scheme.
func Endpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "openai: %q", baseURL), passage.ErrInvalidBaseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.WithHint(errors.Wrapf(passage.ErrInvalidBaseURL, "openai: %q", baseURL),
			"apiBaseURL must look like http://host:port/v1")
	}
	return strings.TrimSuffix(baseURL, "/") + completionsPath, nil
}

func parseResponse(data []byte) (string, error) {
	var r apiResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return "", errors.Mark(errors.Wrap(err, "openai: decode response"), passage.ErrMalformedResponse)
	}
	if len(r.Choices) == 0 {
		return "", errors.Wrap(passage.ErrMalformedResponse, "openai: no choices")
	}
	content := r.Choices[0].Message.Content
	if content == nil {
		return "", errors.Wrap(passage.ErrMalformedResponse, "openai: first choice has no message content")
	}
	return *content, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Newf("openai: HTTP %d (failed to read body: %v)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return errors.Newf("openai: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return errors.Newf("openai: HTTP %d: %s", resp.StatusCode, apiErr.Error.Message)
}
