package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"havenchat/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	sessionH *SessionHandler,
	eventsH *EventsHandler,
	tokens *service.SessionTokenService,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.POST("/sessions", sessionH.CreateSession)

	session := r.Group("/sessions/:id")
	session.Use(SessionAuthMiddleware(tokens))
	session.GET("/state", sessionH.State)
	session.POST("/messages", sessionH.Submit)
	session.PATCH("/settings", sessionH.UpdateSettings)
	session.PUT("/consent", sessionH.SetConsent)
	session.POST("/crisis/dismiss", sessionH.DismissCrisisFlag)
	session.POST("/clear", sessionH.Clear)
	session.GET("/transcript", sessionH.Transcript)
	session.GET("/events", eventsH.Stream)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
