// Package sentiment is the HTTP client for the external text-classification
// model used to derive the confidence signal from transcripts.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/candidlens/interview-screener/internal/resilience"
)

const defaultTimeout = 10 * time.Second

// errRetryableStatus marks responses worth another attempt.
var errRetryableStatus = errors.New("retryable status")

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client calls a sentiment classification endpoint over HTTP. It retries
// transient failures with exponential backoff and gives up on client errors.
type Client struct {
	endpoint string
	http     *http.Client
	retry    resilience.RetryConfig
}

// NewClient builds a client for the given endpoint. A zero timeout uses the
// default of 10s per attempt.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := resilience.DefaultRetryConfig()
	cfg.Retryable = func(err error) bool {
		// Network failures and 5xx/429 responses are transient; anything
		// else (malformed request, bad payload) will not improve on retry.
		var se *statusError
		if errors.As(err, &se) {
			return errors.Is(se.kind, errRetryableStatus)
		}
		return true
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		retry:    cfg,
	}
}

type statusError struct {
	code int
	kind error
}

func (e *statusError) Error() string {
	return fmt.Sprintf("sentiment endpoint returned status %d", e.code)
}

func (e *statusError) Unwrap() error { return e.kind }

// Classify sends text to the model and returns its label and probability.
func (c *Client) Classify(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", 0, fmt.Errorf("encode sentiment request: %w", err)
	}

	var result classifyResponse
	err = resilience.Retry(ctx, c.retry, func() error {
		return c.doClassify(ctx, body, &result)
	})
	if err != nil {
		return "", 0, err
	}
	return result.Label, result.Score, nil
}

func (c *Client) doClassify(ctx context.Context, body []byte, out *classifyResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call sentiment endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		kind := errors.New("permanent status")
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = errRetryableStatus
		}
		return &statusError{code: resp.StatusCode, kind: kind}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sentiment response: %w", err)
	}
	return nil
}
