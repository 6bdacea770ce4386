package sms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGatewaySend(t *testing.T) {
	t.Run("delivers with api key and sender", func(t *testing.T) {
		var got sendRequest
		var apiKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey = r.Header.Get("X-Api-Key")
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode body: %v", err)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		gw, err := NewGateway(Config{BaseURL: srv.URL, APIKey: "secret", SenderID: "GOKEY"})
		if err != nil {
			t.Fatalf("NewGateway error: %v", err)
		}

		if err := gw.Send(context.Background(), "+628123456789", "your code is 123456"); err != nil {
			t.Fatalf("Send error: %v", err)
		}

		if apiKey != "secret" {
			t.Fatalf("api key = %q, want %q", apiKey, "secret")
		}
		if got.To != "+628123456789" || got.From != "GOKEY" {
			t.Fatalf("request = %+v", got)
		}
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		gw, err := NewGateway(Config{BaseURL: srv.URL, MaxRetries: 3})
		if err != nil {
			t.Fatalf("NewGateway error: %v", err)
		}

		if err := gw.Send(context.Background(), "+628123456789", "hello"); err != nil {
			t.Fatalf("Send error: %v", err)
		}
		if calls.Load() != 3 {
			t.Fatalf("attempts = %d, want 3", calls.Load())
		}
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		gw, err := NewGateway(Config{BaseURL: srv.URL, MaxRetries: 3})
		if err != nil {
			t.Fatalf("NewGateway error: %v", err)
		}

		if err := gw.Send(context.Background(), "+628123456789", "hello"); !errors.Is(err, ErrRejected) {
			t.Fatalf("Send error = %v, want ErrRejected", err)
		}
		if calls.Load() != 1 {
			t.Fatalf("attempts = %d, want 1", calls.Load())
		}
	})

	t.Run("requires base url", func(t *testing.T) {
		if _, err := NewGateway(Config{}); !errors.Is(err, ErrBaseURLRequired) {
			t.Fatalf("error = %v, want ErrBaseURLRequired", err)
		}
	})

	t.Run("requires recipient", func(t *testing.T) {
		gw, err := NewGateway(Config{BaseURL: "http://localhost"})
		if err != nil {
			t.Fatalf("NewGateway error: %v", err)
		}
		if err := gw.Send(context.Background(), "", "hello"); !errors.Is(err, ErrRecipientRequired) {
			t.Fatalf("Send error = %v, want ErrRecipientRequired", err)
		}
	})
}
