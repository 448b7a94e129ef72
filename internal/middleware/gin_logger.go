package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ZerologMiddlewareForGin возвращает middleware для Gin, которое логирует
// запросы с помощью zerolog. Healthcheck и metrics не логируются.
func ZerologMiddlewareForGin(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		// Request ID: берем клиентский или генерируем свой.
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		event := logger.Info()
		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}

		event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Dur("latency", latency).
			Str("request_id", requestID).
			Msg("request completed")

		for _, ginErr := range c.Errors.ByType(gin.ErrorTypeAny) {
			logger.Error().Err(ginErr.Err).Str("request_id", requestID).Str("path", path).Msg("request error")
		}
	}
}
