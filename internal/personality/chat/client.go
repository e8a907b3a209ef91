// internal/personality/chat/client.go
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"personality-workers/internal/common/logger"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

var (
	ErrChatTimeout = errors.New("CHAT_TIMEOUT")
	ErrChatFailed  = errors.New("CHAT_FAILED")
	ErrCircuitOpen = errors.New("chat gateway circuit is open")
)

// Message is one chat turn sent to the gateway.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is what the gateway receives.
type Request struct {
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
	RequestID string    `json:"request_id"`
}

// Gateway produces one assistant reply.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
	// Breaker settings.
	MaxFailures uint32
	Cooldown    time.Duration
}

// Client calls the GenAI gateway's /api/ai/generate endpoint behind a
// circuit breaker. Deadlines come from the caller's context.
type Client struct {
	config  ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger
}

func NewClient(cfg ClientConfig, log logger.Logger) *Client {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = 30 * time.Second
	}

	c := &Client{config: cfg, http: &http.Client{}, logger: log}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "genai-chat",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return c
}

// State reports the breaker state: closed, open or half-open.
func (c *Client) State() string {
	return c.breaker.State().String()
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.generateWithRetry(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %w", ErrChatFailed, ErrCircuitOpen)
		}
		return "", err
	}
	return out.(string), nil
}

func (c *Client) generateWithRetry(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatFailed, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrChatTimeout
			}
		}

		text, retry, err := c.post(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ErrChatTimeout
		}
		if !retry {
			break
		}
		c.logger.Debug("chat attempt failed", map[string]interface{}{
			"attempt":   attempt + 1,
			"requestId": req.RequestID,
			"error":     err.Error(),
		})
	}
	return "", fmt.Errorf("%w: %v", ErrChatFailed, lastErr)
}

// post sends one request. The bool reports whether a retry may help.
func (c *Client) post(ctx context.Context, body []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.config.BaseURL, "/")+"/api/ai/generate", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retry, fmt.Errorf("status %d", resp.StatusCode)
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", false, fmt.Errorf("decode error: %v", err)
	}
	if strings.TrimSpace(apiResponse.Text) == "" {
		return "", false, errors.New("empty reply")
	}
	return apiResponse.Text, false, nil
}
