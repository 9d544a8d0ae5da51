package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Matches the 50 MB request budget on the serving side; inline base64 images
// make bodies large.
const maxResponseBytes = 50 << 20

type Client struct {
	HTTPClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{HTTPClient: &http.Client{Timeout: timeout}}
}

// Complete posts the translated request body to the endpoint and parses the
// reply. Non-2xx responses are passed to the parser as well, so the
// chat-completions partial-payload recovery can run before an error surfaces.
func (c *Client) Complete(ctx context.Context, baseURL, apiKey string, f Format, reqBody any) (*Reply, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling upstream request: %w", err)
	}

	url := strings.TrimRight(baseURL, "/") + f.Path()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}

	return ParseResponse(f, resp.StatusCode, body)
}

// RawProxy forwards a verbatim client body to {base}/v1/{subPath} and relays
// the upstream status and body untouched.
func (c *Client) RawProxy(ctx context.Context, baseURL, apiKey, subPath string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(baseURL, "/") + "/v1/" + strings.TrimLeft(subPath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// ListModels fetches the endpoint's model catalog and relays it verbatim.
func (c *Client) ListModels(ctx context.Context, baseURL, apiKey string) (int, []byte, error) {
	url := strings.TrimRight(baseURL, "/") + "/v1/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if strings.TrimSpace(apiKey) != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
