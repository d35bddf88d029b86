package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", s.getHandlerHealth())

	// Contact form endpoint
	api.POST("/contact", s.getHandlerContactSubmit())
	api.OPTIONS("/contact", s.getHandlerContactOptions())
}
