// Package provider implements the outbound Gemini text-generation client
// with bounded exponential-backoff retry.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/petasbytes/orpheus/internal/config"
	"github.com/petasbytes/orpheus/internal/telemetry"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Sentinel errors carry display-ready text; handlers surface them verbatim.
var (
	ErrMissingAPIKey     = errors.New("GEMINI_API_KEY not found in configuration.")
	ErrServerUnavailable = errors.New("The Gemini server remains unavailable after several attempts.")
	ErrUnexpectedFormat  = errors.New("Unexpected response format from the Gemini API.")
)

// Client sends generateContent requests with retry on transient server
// failures. It is stateless across queries and safe to share.
type Client struct {
	cfg        config.Gemini
	httpClient *http.Client
	logger     *zap.Logger
	sleep      func(time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSleep replaces the backoff sleeper.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient builds a Client from a loaded configuration. The configuration
// is read-only after construction.
func NewClient(cfg config.Gemini, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     zap.NewNop(),
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query sends a plain text prompt and returns the trimmed completion text.
func (c *Client) Query(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, GeminiRequest{
		Contents: []GeminiContent{{Parts: []GeminiPart{{Text: prompt}}}},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	})
}

// QueryWithSchema sends a prompt with a response schema so the model returns
// JSON conforming to it. The raw JSON text is returned for the caller to parse.
func (c *Client) QueryWithSchema(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	return c.generate(ctx, GeminiRequest{
		Contents: []GeminiContent{{Parts: []GeminiPart{{Text: prompt}}}},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:      c.cfg.Temperature,
			MaxOutputTokens:  c.cfg.MaxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
}

// generate performs the request/retry loop shared by both query forms.
//
// Retry policy: up to Attempts() total tries. Only transient failures are
// retried (5xx status, connection refused, request timeout); everything else
// returns immediately. The backoff before retry k is BaseDelay()*2^(k-1),
// and no delay follows the final attempt.
func (c *Client) generate(ctx context.Context, req GeminiRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("Error communicating with the Gemini API: %v", err)
	}
	telemetry.PersistPayload("request", body)

	// Apply the configured timeout when the caller didn't set a deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	queryID, _ := telemetry.QueryIDFromContext(ctx)
	attempts := c.cfg.Attempts()

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.sleep(c.cfg.BaseDelay() * time.Duration(1<<uint(attempt-1)))
		}

		start := time.Now()
		status, respBody, err := c.post(ctx, url, body)
		telemetry.Emit("api_call", map[string]any{
			"query_id":    queryID,
			"model":       c.cfg.Model,
			"attempt":     attempt + 1,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		if err != nil {
			if transient(err) && ctx.Err() == nil {
				c.logger.Warn("gemini unreachable",
					zap.Int("attempt", attempt+1),
					zap.Int("max_attempts", attempts),
					zap.Error(err))
				continue
			}
			return "", fmt.Errorf("Error communicating with the Gemini API: %v", err)
		}

		if status >= 500 && status < 600 {
			c.logger.Warn("gemini server error",
				zap.Int("status", status),
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", attempts))
			continue
		}

		if status != http.StatusOK {
			msg := gjson.GetBytes(respBody, "error.message").String()
			if msg == "" {
				msg = http.StatusText(status)
			}
			return "", fmt.Errorf("Error communicating with the Gemini API: status %d: %s", status, msg)
		}

		telemetry.PersistPayload("response", respBody)

		if apiErr := gjson.GetBytes(respBody, "error.message"); apiErr.Exists() {
			return "", fmt.Errorf("Error communicating with the Gemini API: %s", apiErr.String())
		}

		text := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text")
		if !text.Exists() {
			return "", ErrUnexpectedFormat
		}
		return strings.TrimSpace(text.String()), nil
	}

	return "", ErrServerUnavailable
}

// post issues one HTTP attempt and returns the status code and body.
func (c *Client) post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// transient reports whether a transport failure counts as the server being
// unavailable: connection refused and request timeouts qualify; DNS failures,
// TLS errors, and canceled contexts do not.
func transient(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}
