package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

const validBody = `{"name":"Jo","email":"jo@x.com","projectType":"web","message":"Hello there, interested."}`

// storeFunc adapts a function to ratelimit.Store
type storeFunc func(key string, now time.Time) ratelimit.Decision

func (f storeFunc) CheckAndRecord(key string, now time.Time) ratelimit.Decision {
	return f(key, now)
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 30, 0, 123_000_000, time.UTC)}
}

func newContactRouter(deps ContactDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/contact", HandleContactSubmit(deps))
	router.OPTIONS("/api/contact", HandleContactOptions())
	return router
}

func post(router http.Handler, body, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHandleContactSubmit_Accepted tests a valid submission is accepted
func TestHandleContactSubmit_Accepted(t *testing.T) {
	clock := newClock()
	var got contact.Receipt
	router := newContactRouter(ContactDeps{
		Limiter: ratelimit.NewDefault(),
		Now:     clock.Now,
		Notifier: contact.NotifierFunc(func(_ context.Context, r contact.Receipt) error {
			got = r
			return nil
		}),
	})

	w := post(router, validBody, "203.0.113.10")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Message != "Thank you for your message! We'll get back to you within 24 hours." {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Data.ProjectType != contact.ProjectWeb {
		t.Errorf("data.projectType = %q, want web", resp.Data.ProjectType)
	}
	if resp.Data.Name != "Jo" || resp.Data.Email != "jo@x.com" {
		t.Errorf("data = %+v", resp.Data)
	}
	if !strings.HasPrefix(resp.Data.ID, "contact_") {
		t.Errorf("data.id = %q, want contact_ prefix", resp.Data.ID)
	}
	if resp.Data.SubmittedAt != "2025-03-01T09:30:00.123Z" {
		t.Errorf("data.submittedAt = %q", resp.Data.SubmittedAt)
	}

	if got.ID != resp.Data.ID || got.ClientKey != "203.0.113.10" {
		t.Errorf("notifier receipt = %+v", got)
	}
}

// TestHandleContactSubmit_OptionalFieldsOmitted tests absent optional fields stay absent
func TestHandleContactSubmit_OptionalFieldsOmitted(t *testing.T) {
	router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault()})

	w := post(router, `{"name":"Jo","email":"jo@x.com","projectType":"web","budget":"","message":"Hello there, interested."}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var raw struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	for _, field := range []string{"company", "budget"} {
		if _, ok := raw.Data[field]; ok {
			t.Errorf("data.%s present, want omitted", field)
		}
	}
}

// TestHandleContactSubmit_ValidationFailed tests field errors are reported together
func TestHandleContactSubmit_ValidationFailed(t *testing.T) {
	router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault()})

	w := post(router, `{"name":"J","email":"bad","projectType":"nope","message":"hi"}`, "203.0.113.11")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Success || resp.Error != "Validation failed" {
		t.Errorf("response = %+v", resp)
	}

	wantFields := []string{"name", "email", "projectType", "message"}
	if len(resp.Details) != len(wantFields) {
		t.Fatalf("details = %+v, want %d entries", resp.Details, len(wantFields))
	}
	for i, f := range wantFields {
		if resp.Details[i].Field != f {
			t.Errorf("details[%d].field = %q, want %q", i, resp.Details[i].Field, f)
		}
		if resp.Details[i].Message == "" {
			t.Errorf("details[%d].message is empty", i)
		}
	}
}

// TestHandleContactSubmit_MalformedBody tests unparseable bodies get the generic 400
func TestHandleContactSubmit_MalformedBody(t *testing.T) {
	bodies := map[string]string{
		"not json":     "name=Jo",
		"json array":   `["Jo"]`,
		"empty body":   "",
		"oversized":    `{"message":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
		"truncated":    `{"name":"Jo"`,
		"json literal": `true`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault()})
			w := post(router, body, "")

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if resp["success"] != false || resp["error"] != "Invalid request body" {
				t.Errorf("response = %v", resp)
			}
			if _, ok := resp["details"]; ok {
				t.Error("malformed body response carries details")
			}
		})
	}
}

// TestHandleContactSubmit_RateLimited tests the sixth request within the window is throttled
func TestHandleContactSubmit_RateLimited(t *testing.T) {
	clock := newClock()
	router := newContactRouter(ContactDeps{
		Limiter: ratelimit.NewDefault(),
		Stats:   &ratelimit.Stats{},
		Now:     clock.Now,
	})

	for i := 1; i <= 5; i++ {
		if w := post(router, validBody, "198.51.100.20"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, w.Code)
		}
		clock.Advance(2 * time.Second)
	}

	w := post(router, validBody, "198.51.100.20")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request 6 status = %d, want 429", w.Code)
	}
	if w.Body.String() != `{"error":"Too many requests. Please try again later."}` {
		t.Errorf("429 body = %s", w.Body.String())
	}
	// First request leaves the window 60s after it was made; 10s have passed
	if got := w.Header().Get("Retry-After"); got != "50" {
		t.Errorf("Retry-After = %q, want 50", got)
	}

	// A different client is unaffected
	if w := post(router, validBody, "198.51.100.21"); w.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", w.Code)
	}
}

// TestHandleContactSubmit_ThrottleBeforeValidation tests invalid bodies still count and get 429 first
func TestHandleContactSubmit_ThrottleBeforeValidation(t *testing.T) {
	clock := newClock()
	router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault(), Now: clock.Now})

	for i := 0; i < 5; i++ {
		if w := post(router, `{}`, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("request %d status = %d, want 400", i+1, w.Code)
		}
	}
	if w := post(router, "not json", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

// TestHandleContactSubmit_WindowSlides tests rejected requests do not extend the block
func TestHandleContactSubmit_WindowSlides(t *testing.T) {
	clock := newClock()
	router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault(), Now: clock.Now})

	for i := 0; i < 5; i++ {
		post(router, validBody, "192.0.2.1")
	}

	// Hammer while blocked
	for i := 0; i < 20; i++ {
		clock.Advance(2 * time.Second)
		if w := post(router, validBody, "192.0.2.1"); w.Code != http.StatusTooManyRequests {
			t.Fatalf("blocked request status = %d, want 429", w.Code)
		}
	}

	// 40s since the burst; the burst leaves the window at 60s
	clock.Advance(20*time.Second + time.Millisecond)
	if w := post(router, validBody, "192.0.2.1"); w.Code != http.StatusOK {
		t.Errorf("status after window slid = %d, want 200", w.Code)
	}
}

// TestHandleContactSubmit_NotifierFailure tests collaborator errors become the generic 500
func TestHandleContactSubmit_NotifierFailure(t *testing.T) {
	router := newContactRouter(ContactDeps{
		Limiter: ratelimit.NewDefault(),
		Notifier: contact.NotifierFunc(func(context.Context, contact.Receipt) error {
			return errors.New("smtp: connection refused")
		}),
	})

	w := post(router, validBody, "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "smtp") {
		t.Error("500 body leaks internal error")
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Success || resp.Error != "Something went wrong. Please try again later." {
		t.Errorf("response = %+v", resp)
	}
}

// TestHandleContactSubmit_UnknownClientShared tests requests without X-Forwarded-For share a key
func TestHandleContactSubmit_UnknownClientShared(t *testing.T) {
	var keys []string
	router := newContactRouter(ContactDeps{
		Limiter: storeFunc(func(key string, _ time.Time) ratelimit.Decision {
			keys = append(keys, key)
			return ratelimit.Decision{Allowed: true}
		}),
	})

	post(router, validBody, "")
	post(router, validBody, "203.0.113.1, 10.0.0.1")

	if len(keys) != 2 || keys[0] != "unknown" || keys[1] != "203.0.113.1" {
		t.Errorf("limiter keys = %v", keys)
	}
}

// TestHandleContactOptions tests the CORS preflight response
func TestHandleContactOptions(t *testing.T) {
	router := newContactRouter(ContactDeps{Limiter: ratelimit.NewDefault()})

	req := httptest.NewRequest("OPTIONS", "/api/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}

	expectedHeaders := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for header, want := range expectedHeaders {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

// TestRetryAfterSeconds tests rounding of the Retry-After header value
func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "1"},
		{300 * time.Millisecond, "1"},
		{time.Second, "1"},
		{1500 * time.Millisecond, "2"},
		{60 * time.Second, "60"},
	}
	for _, tt := range tests {
		if got := retryAfterSeconds(tt.in); got != tt.want {
			t.Errorf("retryAfterSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
