package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
)

type fakeLimiter struct {
	counts map[string]int64
	err    error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int64)}
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.counts[scope]++
	count := f.counts[scope]
	return count <= limit, count, nil
}

func okHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
}

func TestWriteRateLimitBlocksAfterLimit(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewWriteRateLimitPolicy("catalog_write", time.Minute, 2)
	var hits int
	handler := WriteRateLimit(policy, limiter, nil)(okHandler(&hits))

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}

	blocked := httptest.NewRecorder()
	handler.ServeHTTP(blocked, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil))
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the limit, got %d", blocked.Code)
	}
	if hits != 2 {
		t.Fatalf("handler ran %d times, expected 2", hits)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(blocked.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error payload: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("expected rate limit code, got %s", payload.Error.Code)
	}
}

func TestWriteRateLimitIgnoresReads(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewWriteRateLimitPolicy("catalog_write", time.Minute, 1)
	var hits int
	handler := WriteRateLimit(policy, limiter, nil)(okHandler(&hits))

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("read %d: expected 200, got %d", i+1, resp.Code)
		}
	}
	if len(limiter.counts) != 0 {
		t.Fatalf("reads must not consume the window, counts=%v", limiter.counts)
	}
	if hits != 3 {
		t.Fatalf("handler ran %d times, expected 3", hits)
	}
}

func TestWriteRateLimitSeparatesClients(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewWriteRateLimitPolicy("catalog_write", time.Minute, 1)
	var hits int
	handler := WriteRateLimit(policy, limiter, nil)(okHandler(&hits))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	firstRec := httptest.NewRecorder()
	handler.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for first client, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	secondRec := httptest.NewRecorder()
	handler.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for second client, got %d", secondRec.Code)
	}

	repeat := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil)
	repeat.Header.Set("X-Forwarded-For", "10.0.0.1")
	repeatRec := httptest.NewRecorder()
	handler.ServeHTTP(repeatRec, repeat)
	if repeatRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for first client's repeat, got %d", repeatRec.Code)
	}
}

func TestWriteRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	limiter := newFakeLimiter()
	var hits int
	handler := WriteRateLimit(NewWriteRateLimitPolicy("off", 0, 0), limiter, nil)(okHandler(&hits))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected passthrough, got %d", resp.Code)
	}
	if len(limiter.counts) != 0 {
		t.Fatalf("disabled policy must not touch the store")
	}
}
