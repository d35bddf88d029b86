package handlers

import (
	"net/http"
	"time"

	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Uptime    string          `json:"uptime"`
	RateLimit RateLimitHealth `json:"rateLimit"`
}

// RateLimitHealth summarizes limiter activity since start.
type RateLimitHealth struct {
	Allowed        uint64 `json:"allowed"`
	Denied         uint64 `json:"denied"`
	TrackedClients int    `json:"trackedClients"`
}

// trackedCounter is implemented by stores that can report their size.
type trackedCounter interface {
	Len() int
}

// HandleHealth returns the health status of the API server. The limiter may
// be any ratelimit.Store; tracked clients are reported when it can count them.
func HandleHealth(version string, startTime time.Time, limiter ratelimit.Store, stats *ratelimit.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := time.Since(startTime).Round(time.Second)

		snap := stats.Snapshot()
		rl := RateLimitHealth{Allowed: snap.Allowed, Denied: snap.Denied}
		if tc, ok := limiter.(trackedCounter); ok {
			rl.TrackedClients = tc.Len()
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    uptime.String(),
			RateLimit: rl,
		})
	}
}
