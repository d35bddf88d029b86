package api

import (
	"time"

	"github.com/aeternum/contact/internal/api/handlers"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// loggingMiddleware provides request logging. The client is identified by
// its rate limit key, masked unless debug logging is on.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logging.Info("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"",
			logging.FormatClientKey(ratelimit.ClientKey(param.Request)),
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
		return ""
	})
}

// recoveryMiddleware turns panics into the generic 500 response
func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered any) {
		logging.Error("Recovered from panic handling %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		handlers.InternalError(c)
	})
}

// corsMiddleware allows the site to call the API from any origin. Preflight
// headers are set by the OPTIONS route itself.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
