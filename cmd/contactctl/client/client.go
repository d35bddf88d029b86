// Package client provides the contactd API client for the contactctl CLI.
//
// The ContactAPIClient wraps a Resty client with the service's timeouts,
// headers, retry policy and logging. Only connection failures are retried;
// an HTTP status from the server is always a final answer, so a submission
// is never sent twice after the server has seen it.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aeternum/contact/cmd/contactctl/config"
	"github.com/aeternum/contact/cmd/contactctl/utils"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/go-resty/resty/v2"
)

// ErrThrottled is returned when contactd rejects a submission with 429.
var ErrThrottled = errors.New("too many requests")

// SubmissionResult is the accepted submission returned by contactd.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		contact.Submission
		ID          string `json:"id"`
		SubmittedAt string `json:"submittedAt"`
	} `json:"data"`
}

// ValidationError is returned when contactd rejects a submission with 400.
// Details is empty when the body itself could not be parsed.
type ValidationError struct {
	Message string
	Details []contact.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d field errors)", e.Message, len(e.Details))
}

// ThrottleError carries the server's Retry-After hint. It wraps ErrThrottled.
type ThrottleError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

func (e *ThrottleError) Unwrap() error {
	return ErrThrottled
}

// Health is the contactd health report.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	RateLimit struct {
		Allowed        uint64 `json:"allowed"`
		Denied         uint64 `json:"denied"`
		TrackedClients int    `json:"trackedClients"`
	} `json:"rateLimit"`
}

// errorBody matches every non-200 body contactd returns
type errorBody struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Details []contact.FieldError `json:"details"`
}

// ContactAPIClient talks to a contactd instance.
type ContactAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewContactAPIClient creates a client for the contactd at apiAddr ("host:port").
func NewContactAPIClient(apiAddr string, timeout int) *ContactAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/api", apiAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestyLogger{})

	client.
		SetTimeout(time.Duration(timeout)*time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("contactctl/%s", config.Version))

	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &ContactAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// CreateAPIClient creates a client from the global CLI flags.
func CreateAPIClient() *ContactAPIClient {
	return NewContactAPIClient(config.Global.APIAddr, config.Global.Timeout)
}

// SubmitContact posts a submission. forwardedFor, when set, is sent as
// X-Forwarded-For so the request is rate limited as that client.
//
// A 400 is returned as *ValidationError and a 429 as *ThrottleError.
func (api *ContactAPIClient) SubmitContact(sub contact.Submission, forwardedFor string) (*SubmissionResult, error) {
	var (
		result  SubmissionResult
		failure errorBody
	)

	req := api.client.R().
		SetBody(sub).
		SetResult(&result).
		SetError(&failure)
	if forwardedFor != "" {
		req.SetHeader("X-Forwarded-For", forwardedFor)
	}

	resp, err := req.Post("/contact")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &result, nil
	case http.StatusBadRequest:
		return nil, &ValidationError{Message: failure.Error, Details: failure.Details}
	case http.StatusTooManyRequests:
		return nil, &ThrottleError{
			Message:    failure.Error,
			RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After")),
		}
	default:
		if failure.Error != "" {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), failure.Error)
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
}

// GetHealth fetches the contactd health report.
func (api *ContactAPIClient) GetHealth() (*Health, error) {
	var health Health

	resp, err := api.client.R().
		SetResult(&health).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &health, nil
}

// parseRetryAfter reads a delay-seconds Retry-After value; 0 when absent or invalid
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
