package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSlackWebhook_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewSlackWebhook(srv.URL)
	if err := hook.Send(context.Background(), "dev 회원 가입"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["text"] != "dev 회원 가입" {
		t.Errorf("expected text field, got %v", got)
	}
}

func TestSlackWebhook_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusGone)
	}))
	defer srv.Close()

	hook := NewSlackWebhook(srv.URL)
	if err := hook.Send(context.Background(), "hello"); err == nil {
		t.Error("expected an error for a non-2xx response")
	}
}

func TestSlackWebhook_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	hook := NewSlackWebhook(srv.URL)
	if err := hook.Send(context.Background(), "hello"); err == nil {
		t.Error("expected an error when the endpoint is unreachable")
	}
}

func TestDiscard(t *testing.T) {
	if err := (Discard{}).Send(context.Background(), "anything"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
