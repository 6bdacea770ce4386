// Package sms provides a client for an HTTP SMS gateway.
//
// The gateway exposes a JSON API authenticated with an API key. Transient
// failures (network errors, 5xx, 429) are retried with exponential backoff;
// other 4xx responses fail immediately.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrBaseURLRequired is returned when the gateway base URL is missing.
	ErrBaseURLRequired = errors.New("sms: base url is required")
	// ErrRecipientRequired is returned when the destination number is empty.
	ErrRecipientRequired = errors.New("sms: recipient is required")
	// ErrRejected is returned when the gateway rejects the message.
	ErrRejected = errors.New("sms: message rejected by gateway")
)

// Config configures the Gateway client.
type Config struct {
	// BaseURL is the gateway endpoint, e.g. https://sms.example.com.
	BaseURL string
	// APIKey authenticates requests via the X-Api-Key header.
	APIKey string
	// SenderID is the originator shown to recipients.
	SenderID string
	// Timeout bounds a single delivery attempt.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Gateway is an SMS delivery client.
type Gateway struct {
	baseURL    string
	apiKey     string
	senderID   string
	maxRetries uint64
	client     *http.Client
}

// NewGateway constructs a Gateway client.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Gateway{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		maxRetries: cfg.MaxRetries,
		client:     client,
	}, nil
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// Send delivers a text message to the given number.
func (g *Gateway) Send(ctx context.Context, to, message string) error {
	if to == "" {
		return ErrRecipientRequired
	}

	body, err := json.Marshal(sendRequest{To: to, From: g.senderID, Message: message})
	if err != nil {
		return err
	}

	backoff := retry.NewExponential(200 * time.Millisecond)
	backoff = retry.WithMaxRetries(g.maxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return g.attempt(ctx, body)
	})
}

func (g *Gateway) attempt(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer func() {
		//nolint:errcheck // drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return retry.RetryableError(fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
}
