package handlers

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

const (
	// MaxBodyBytes caps the size of a contact request body.
	MaxBodyBytes = 64 << 10

	// submittedAtFormat is RFC 3339 in UTC with millisecond precision.
	submittedAtFormat = "2006-01-02T15:04:05.000Z"

	msgAccepted       = "Thank you for your message! We'll get back to you within 24 hours."
	msgThrottled      = "Too many requests. Please try again later."
	msgInvalidBody    = "Invalid request body"
	msgValidation     = "Validation failed"
	msgInternalFailed = "Something went wrong. Please try again later."
)

// SubmissionData is the accepted payload echoed back to the client.
type SubmissionData struct {
	contact.Submission
	ID          string `json:"id"`
	SubmittedAt string `json:"submittedAt"`
}

// SubmitResponse is the 200 body of a contact submission.
type SubmitResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    SubmissionData `json:"data"`
}

// ErrorResponse is the body of 400 and 500 responses.
type ErrorResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Details []contact.FieldError `json:"details,omitempty"`
}

// ThrottleResponse is the 429 body. It carries no success flag or details.
type ThrottleResponse struct {
	Error string `json:"error"`
}

// InternalError writes the generic 500 response. Used by the handler and by
// the server's panic recovery.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   msgInternalFailed,
	})
}

// ContactDeps holds the collaborators of the contact handler.
type ContactDeps struct {
	Limiter  ratelimit.Store
	Stats    *ratelimit.Stats // optional
	Notifier contact.Notifier // defaults to contact.LogNotifier
	Now      func() time.Time // defaults to time.Now
}

// HandleContactSubmit handles POST /api/contact.
//
// The request is rate limited first, then validated, then handed to the
// notifier. Only admitted requests are recorded by the limiter.
func HandleContactSubmit(deps ContactDeps) gin.HandlerFunc {
	if deps.Limiter == nil {
		panic("handlers: contact limiter cannot be nil")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = contact.LogNotifier{}
	}

	return func(c *gin.Context) {
		key := ratelimit.ClientKey(c.Request)

		decision := deps.Limiter.CheckAndRecord(key, now())
		deps.Stats.Observe(decision)
		if !decision.Allowed {
			logging.Warn("Rate limit exceeded for client %s", logging.FormatClientKey(key))
			c.Header("Retry-After", retryAfterSeconds(decision.RetryAfter))
			c.JSON(http.StatusTooManyRequests, ThrottleResponse{Error: msgThrottled})
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
		if err != nil {
			logging.Debug("Failed to read contact body from %s: %v", logging.FormatClientKey(key), err)
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: msgInvalidBody})
			return
		}

		sub, err := contact.Validate(body)
		if err != nil {
			var fieldErrs contact.FieldErrors
			switch {
			case errors.Is(err, contact.ErrMalformedBody):
				logging.Debug("Malformed contact body from %s: %v", logging.FormatClientKey(key), err)
				c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: msgInvalidBody})
			case errors.As(err, &fieldErrs):
				logging.Debug("Contact validation failed for %s: %v", logging.FormatClientKey(key), fieldErrs.Fields())
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Success: false,
					Error:   msgValidation,
					Details: fieldErrs,
				})
			default:
				logging.Error("Contact validation error: %v", err)
				InternalError(c)
			}
			return
		}

		id, err := contact.NewID()
		if err != nil {
			logging.Error("Failed to create submission id: %v", err)
			InternalError(c)
			return
		}

		receipt := contact.Receipt{
			Submission:  *sub,
			ID:          id,
			SubmittedAt: now().UTC(),
			ClientKey:   key,
		}

		if err := notifier.Notify(c.Request.Context(), receipt); err != nil {
			logging.Error("Failed to notify about submission %s: %v", id, err)
			InternalError(c)
			return
		}

		c.JSON(http.StatusOK, SubmitResponse{
			Success: true,
			Message: msgAccepted,
			Data: SubmissionData{
				Submission:  receipt.Submission,
				ID:          receipt.ID,
				SubmittedAt: receipt.SubmittedAt.Format(submittedAtFormat),
			},
		})
	}
}

// HandleContactOptions answers CORS preflight requests for the contact endpoint.
func HandleContactOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusOK)
	}
}

// retryAfterSeconds rounds up to whole seconds, never below 1.
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
