package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByteAtATime/firebase-auth-extension/ports"
	"github.com/ByteAtATime/firebase-auth-extension/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, transport ports.CredentialTransport, logger *slog.Logger) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, transport, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/auth", handlers.Authenticate)

	// Everything below the guard requires a valid credential
	protected := api.Group("")
	protected.Use(Guard(authService, transport))
	{
		protected.GET("/me", handlers.Me)
		protected.GET("/authorize", handlers.Authorize)
		protected.POST("/signout", handlers.SignOut)
	}

	return router
}
