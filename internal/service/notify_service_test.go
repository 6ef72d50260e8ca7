package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/config"
)

func TestSendCliq(t *testing.T) {
	var gotContentType string
	var gotPayload map[string]string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"status":"queued"}`))
	}))
	defer upstream.Close()

	svc := NewNotifyService(config.CliqConfig{
		WebhookURL: upstream.URL,
		Message:    "Directory ping",
		Timeout:    5 * time.Second,
	})

	result, err := svc.SendCliq(context.Background())
	if err != nil {
		t.Fatalf("SendCliq failed: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotPayload["text"] != "Directory ping" {
		t.Errorf("payload text = %q", gotPayload["text"])
	}
	// Upstream status and body pass through untouched.
	if result.Status != http.StatusAccepted {
		t.Errorf("status = %d, want %d", result.Status, http.StatusAccepted)
	}
	if result.Body != `{"status":"queued"}` {
		t.Errorf("body = %q", result.Body)
	}
}

func TestSendCliqNotConfigured(t *testing.T) {
	svc := NewNotifyService(config.CliqConfig{Message: "Directory ping"})

	_, err := svc.SendCliq(context.Background())
	if !errors.Is(err, ErrWebhookNotConfigured) {
		t.Fatalf("expected ErrWebhookNotConfigured, got %v", err)
	}
}

func TestSendCliqTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	svc := NewNotifyService(config.CliqConfig{
		WebhookURL: upstream.URL,
		Message:    "Directory ping",
		Timeout:    time.Second,
	})

	result, err := svc.SendCliq(context.Background())
	if err == nil {
		t.Fatalf("expected transport error, got result %+v", result)
	}
	if errors.Is(err, ErrWebhookNotConfigured) {
		t.Fatal("transport failure must not be reported as missing configuration")
	}
}
