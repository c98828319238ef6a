package mailer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func useServer(t *testing.T, m *Resend, raw string) {
	t.Helper()
	u, err := url.Parse(raw + "/")
	if err != nil {
		t.Fatal(err)
	}
	m.client.BaseURL = u
}

func TestSend_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer re_test" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	m := NewResend("re_test", "Axion <hello@example.com>", discardLogger())
	useServer(t, m, srv.URL)

	err := m.Send(context.Background(), "priya@acme.com", "Hello", "Hi Priya,\nI <3 Go & APIs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got["from"] != "Axion <hello@example.com>" || got["subject"] != "Hello" {
		t.Errorf("unexpected payload %v", got)
	}
	to, _ := got["to"].([]any)
	if len(to) != 1 || to[0] != "priya@acme.com" {
		t.Errorf("unexpected recipients %v", got["to"])
	}
	if got["html"] != "<p>Hi Priya,<br>I &lt;3 Go &amp; APIs</p>" {
		t.Errorf("unexpected html %q", got["html"])
	}
}

func TestSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"message":"Invalid to field"}`))
	}))
	defer srv.Close()

	m := NewResend("re_test", "hello@example.com", discardLogger())
	useServer(t, m, srv.URL)

	err := m.Send(context.Background(), "bad", "s", "b")
	if err == nil || !strings.Contains(err.Error(), "Invalid to field") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestSend_NotConfigured(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	m := NewResend("", "hello@example.com", discardLogger())
	useServer(t, m, srv.URL)

	if err := m.Send(context.Background(), "a@x.com", "s", "b"); err == nil {
		t.Error("expected error without api key")
	}
	m.client.ApiKey = "re_test"
	if err := m.Send(context.Background(), " ", "s", "b"); err == nil {
		t.Error("expected error for empty recipient")
	}
	if called {
		t.Error("no request should be made")
	}
}

func TestSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := NewResend("re_test", "hello@example.com", discardLogger())
	useServer(t, m, srv.URL)

	if err := m.Send(context.Background(), "a@x.com", "s", "b"); err == nil {
		t.Error("expected transport error")
	}
}
