package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
)

// AuthMiddleware enforces bearer-token authentication and, for organizer
// routes, the organizer role. The role check reads the account record so a
// demotion takes effect immediately, not at token expiry.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
	users  *service.UserService
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auth *service.AuthService, users *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
		users:  users,
	}
}

// RequireAuth verifies the Authorization bearer token and stores the
// authenticated email in the echo context. A missing header and an invalid
// token produce distinct 401 codes.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return errs.NewUnauthorizedError("Missing authorization token", errs.CodeAccessDenied)
		}

		claims, err := auth.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return err
		}

		c.Set(UserEmailKey, claims.Email)
		return next(c)
	}
}

// RequireOrganizer allows only accounts holding the organizer role. It must
// run after RequireAuth.
func (auth *AuthMiddleware) RequireOrganizer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := GetUserEmail(c)
		if email == "" {
			return errs.NewUnauthorizedError("Missing authorization token", errs.CodeAccessDenied)
		}

		isOrganizer, err := auth.users.IsOrganizer(c.Request().Context(), email)
		if err != nil {
			// An unknown account is a plain 403; anything else (store outage,
			// timeout) keeps its own status so outages do not read as
			// permission errors.
			var httpErr *errs.HTTPError
			if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
				return errs.NewForbiddenError("Organizer access required")
			}
			return err
		}
		if !isOrganizer {
			return errs.NewForbiddenError("Organizer access required")
		}

		return next(c)
	}
}
