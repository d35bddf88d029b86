package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClient is the shared key for requests without a forwarded address.
const UnknownClient = "unknown"

// ClientKey derives the rate limit key from the first X-Forwarded-For entry.
// The service runs behind the hosting platform's proxy, which sets this
// header; requests without it all share UnknownClient.
func ClientKey(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return UnknownClient
	}
	first, _, _ := strings.Cut(xff, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return UnknownClient
	}
	return first
}
