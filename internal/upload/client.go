package upload

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends event exports to the liftlog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the liftlog server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendExport POSTs a JSONL event export to the server's import endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendExport(data []byte) error {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost,
			c.serverURL+"/api/v1/events/import", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-ndjson")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)

		// A rejected export will not get better with retries.
		if resp.StatusCode == http.StatusBadRequest {
			break
		}
	}

	return fmt.Errorf("after retries: %w", lastErr)
}
