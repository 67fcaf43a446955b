package chatapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/pablobispo/scribeai"
)

// Client performs round trips over HTTP against a generation endpoint. A
// non-2xx status or a success body without text is a round-trip failure; the
// client never retries.
type Client struct {
	url        string
	httpClient *http.Client
}

var _ scribeai.Generator = (*Client)(nil)

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:        url,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) Generate(ctx context.Context, req *scribeai.Request) (string, error) {
	payload := ChatRequest{
		Prompt:      req.Prompt,
		Context:     req.Context,
		UserMessage: req.UserMessage,
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("round trip failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if uErr := sonic.Unmarshal(respBody, &errResp); uErr == nil && errResp.Error != "" {
			return "", fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}

	var out ChatResponse
	if err := sonic.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("response missing text")
	}
	return out.Text, nil
}
