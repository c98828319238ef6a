package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("ghp_test")
	u, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.gh.BaseURL = u
	return c
}

func TestFollow_Success(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusNotModified} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if r.URL.Path != "/user/following/octocat" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer ghp_test" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			if r.Header.Get("X-GitHub-Api-Version") == "" {
				t.Error("expected an api version header")
			}
			w.WriteHeader(status)
		})

		if res := c.Follow(context.Background(), " octocat "); !res.OK {
			t.Errorf("status %d: expected success, got %q", status, res.Reason)
		}
	}
}

func TestFollow_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	res := c.Follow(context.Background(), "ghost")
	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Reason, "404") || !strings.Contains(res.Reason, "Not Found") {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestFollow_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	})
	c.httpClient.Timeout = 20 * time.Millisecond

	if res := c.Follow(context.Background(), "slow"); res.OK {
		t.Error("expected timeout failure")
	}
}

func TestFollow_NotConfigured(t *testing.T) {
	c := NewClient("")
	if res := c.Follow(context.Background(), "octocat"); res.OK || !strings.Contains(res.Reason, "not configured") {
		t.Errorf("unexpected result %+v", res)
	}
	if res := NewClient("t").Follow(context.Background(), " "); res.OK {
		t.Error("expected failure for empty username")
	}
}
