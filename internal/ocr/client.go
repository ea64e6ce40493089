// Package ocr talks to the receipt-scanning endpoint and validates its
// best-effort output before anything downstream trusts it.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrScanFailed covers transport problems and error statuses from the
	// scan server. Recoverable: the client falls back to manual entry.
	ErrScanFailed = errors.New("receipt scan failed")
	ErrEmptyScan  = errors.New("receipt scan returned no text")
)

type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type scanRequest struct {
	Image string `json:"image"`
}

type scanResponse struct {
	Status  string      `json:"status"`
	Data    *ScanResult `json:"data"`
	Error   string      `json:"error"`
	Details []string    `json:"details"`
}

// ScanResult is what the scan server extracted from the receipt image.
// Every field is untrusted free text until Validate has run.
type ScanResult struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	RawText     string `json:"raw_text"`
}

// Scan submits a base64-encoded receipt image and returns the server's
// parse of it.
func (c *Client) Scan(ctx context.Context, imageBase64 string) (*ScanResult, error) {
	body, err := json.Marshal(scanRequest{Image: imageBase64})
	if err != nil {
		return nil, fmt.Errorf("encoding scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating scan request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrScanFailed, resp.StatusCode)
	}

	var parsed scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrScanFailed, err)
	}

	if parsed.Status != "success" || parsed.Data == nil {
		msg := parsed.Error
		if msg == "" {
			msg = "no data"
		}

		return nil, fmt.Errorf("%w: %s", ErrScanFailed, msg)
	}

	if strings.TrimSpace(parsed.Data.RawText) == "" && strings.TrimSpace(parsed.Data.Description) == "" {
		return nil, ErrEmptyScan
	}

	return parsed.Data, nil
}
