package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/server"
)

const (
	// UserEmailKey is the echo context key the authenticated email is stored
	// under once RequireAuth has run.
	UserEmailKey = "user_email"

	// LoggerKey is the key for the request-scoped logger in both the echo
	// context and the request's context.Context.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying the request ID,
// method, path and client IP, and stores it where both handlers and deeper
// layers can reach it.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer constructs a ContextEnhancer.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the echo middleware that attaches the logger.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if email := GetUserEmail(c); email != "" {
				contextLogger = contextLogger.With().Str("user_email", email).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserEmail reads the authenticated email from the echo context, or ""
// when the request is unauthenticated.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from the echo context,
// falling back to a no-op logger when the enhancer has not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
