package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Title") != "axion" {
			t.Errorf("expected X-Title axion, got %q", r.Header.Get("X-Title"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "google/gemma-3n-e2b-it:free" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  world \n"}},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, time.Second)
	res := c.Complete(context.Background(), "google/gemma-3n-e2b-it:free", "hello")
	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Text != "world" {
		t.Errorf("expected trimmed 'world', got %q", res.Text)
	}
}

func TestComplete_FailureShapes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"upstream down"}}`},
		{"rate limited plain body", http.StatusTooManyRequests, `slow down`},
		{"error object with 200", http.StatusOK, `{"error":{"message":"model unavailable","code":503}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"missing choices", http.StatusOK, `{"id":"x"}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`},
		{"not json", http.StatusOK, `<html>oops</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := NewClient("k", server.URL, time.Second)
			res := c.Complete(context.Background(), "m", "hi")
			if res.OK() {
				t.Fatalf("expected failure, got text %q", res.Text)
			}
		})
	}
}

func TestComplete_EmptyPromptSkipsNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := NewClient("k", server.URL, time.Second)
	if res := c.Complete(context.Background(), "m", "  "); res.OK() {
		t.Fatal("expected failure for empty prompt")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("expected no request, got %d", hits)
	}
}

func TestComplete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient("k", server.URL, 20*time.Millisecond)
	if res := c.Complete(context.Background(), "m", "hi"); res.OK() {
		t.Fatal("expected timeout failure")
	}
}

func TestComplete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient("k", url, time.Second)
	if res := c.Complete(context.Background(), "m", "hi"); res.OK() {
		t.Fatal("expected transport failure")
	}
}
