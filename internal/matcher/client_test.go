package matcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTriggerUserPowerMatch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/power-matches/trigger" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer svc-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","message":"ok","new_matches_found":3}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "svc-token", nil)
	res, err := c.TriggerUserPowerMatch(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("expected status success, got %q", res.Status)
	}
	if res.NewMatchesFound != 3 {
		t.Fatalf("expected 3 new matches, got %d", res.NewMatchesFound)
	}
}

func TestTriggerUserPowerMatch_MalformedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"no status field"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	_, err := c.TriggerUserPowerMatch(context.Background(), uuid.New())
	if !errors.Is(err, ErrMalformedResult) {
		t.Fatalf("expected ErrMalformedResult, got %v", err)
	}
}

func TestTriggerUserPowerMatch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	if _, err := c.TriggerUserPowerMatch(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestCalculateMatchScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match-score" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":87.5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	score, err := c.CalculateMatchScore(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score == nil || *score != 87.5 {
		t.Fatalf("expected 87.5, got %v", score)
	}
}

func TestCalculateMatchScore_NullScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	score, err := c.CalculateMatchScore(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score != nil {
		t.Fatalf("expected nil score, got %v", *score)
	}
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	if c := NewClient("  ", "", nil); c != nil {
		t.Fatalf("expected nil client for empty base URL")
	}
}
