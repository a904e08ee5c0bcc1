package deploy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testNotifier(attempts int) *Notifier {
	n := NewNotifier(0, attempts, nil, quietLogger())
	n.backoff = time.Millisecond
	return n
}

func TestNotifySucceedsAfterRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	req := baseRequest(1)
	req.EvaluationURL = srv.URL
	err := testNotifier(5).Notify(context.Background(), req, Result{PagesURL: "https://octo.github.io/x/"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if hits.Load() != 3 {
		t.Fatalf("want 3 attempts, got %d", hits.Load())
	}
}

func TestNotifyGivesUp(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	req := baseRequest(1)
	req.EvaluationURL = srv.URL
	err := testNotifier(3).Notify(context.Background(), req, Result{})
	if err == nil {
		t.Fatal("expected error after giving up")
	}
	if hits.Load() != 3 {
		t.Fatalf("want 3 attempts, got %d", hits.Load())
	}
}

func TestNotifyPayload(t *testing.T) {
	var got notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	req := baseRequest(2)
	req.EvaluationURL = srv.URL
	res := Result{
		RepoURL:   "https://github.com/octo/demo",
		CommitSHA: "abc123",
		PagesURL:  "https://octo.github.io/demo/",
	}
	if err := testNotifier(1).Notify(context.Background(), req, res); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if got.Nonce != req.Nonce || got.Task != req.Task || got.Round != 2 {
		t.Fatalf("correlation fields wrong: %+v", got)
	}
	if got.PagesURL != res.PagesURL || got.CommitSHA != res.CommitSHA || got.RepoURL != res.RepoURL {
		t.Fatalf("result fields wrong: %+v", got)
	}
	if got.Email != req.Email {
		t.Fatalf("email missing: %+v", got)
	}
}

func TestNotifyHonorsContextCancel(t *testing.T) {
	n := NewNotifier(time.Hour, 1, nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := baseRequest(1)
	req.EvaluationURL = "http://127.0.0.1:0"
	if err := n.Notify(ctx, req, Result{}); err == nil {
		t.Fatal("expected context error")
	}
}
