// Package trello is the transport layer for the Trello REST API. It builds
// and sends individual requests; admission control and throttle retry are
// delegated to the shared engine executor, so every call made through a
// Client respects both of Trello's rate ceilings.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/core/engine"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/metrics"
)

const defaultBaseURL = "https://api.trello.com/1"

// Client issues authenticated Trello API calls.
type Client struct {
	BaseURL    string
	APIKey     string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration

	executor *engine.Executor
}

// NewClient returns a client with defaults applied. All calls run through
// the supplied executor; pass the process-wide instance so concurrent tools
// share one admission controller.
func NewClient(apiKey, token string, executor *engine.Executor) *Client {
	return &Client{
		BaseURL:  defaultBaseURL,
		APIKey:   strings.TrimSpace(apiKey),
		Token:    strings.TrimSpace(token),
		executor: executor,
	}
}

// do performs one rate-limited API call and decodes the response into out
// (skipped when out is nil). Request parameters travel as query strings,
// which is the native Trello API shape.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	if c == nil {
		return fmt.Errorf("trello client not configured")
	}
	if c.APIKey == "" || c.Token == "" {
		return fmt.Errorf("trello credentials are required")
	}

	body, err := engine.Run(ctx, c.executor, func(ctx context.Context) ([]byte, error) {
		return c.send(ctx, method, path, query)
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send is the unit of work handed to the executor: one request attempt,
// with the outcome classified for the retry loop.
func (c *Client) send(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	params := url.Values{}
	for key, values := range query {
		for _, value := range values {
			params.Add(key, value)
		}
	}
	params.Set("key", c.APIKey)
	params.Set("token", c.Token)

	endpoint := strings.TrimRight(c.BaseURL, "/") + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	metrics.RecordAPIRequest(method, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &engine.ProviderError{
			StatusCode:  resp.StatusCode,
			Message:     apiMessage(respBody),
			RawResponse: respBody,
		}
	}

	return respBody, nil
}

// apiMessage extracts the human-readable error text from a Trello error
// body. Trello answers some failures with JSON ({"message": ...}) and
// others with bare text.
func apiMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return trimmed
}
