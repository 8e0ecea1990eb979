// Package middleware groups the HTTP middleware components: CORS, request
// logging, panic recovery, request IDs, the request-scoped logger, token
// authentication and the global error handler.
package middleware

import (
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
)

// Middlewares is a container that groups all middleware components used by
// the HTTP server so routing code wires them from one place.
type Middlewares struct {
	// Global holds middleware applied to every route plus the global error
	// handler.
	Global *GlobalMiddlewares

	// Auth enforces bearer-token authentication and the organizer role.
	Auth *AuthMiddleware

	// ContextEnhancer attaches a request-scoped logger to each request.
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components.
func NewMiddlewares(s *server.Server, services *service.Services) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, services.Auth, services.Users),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
