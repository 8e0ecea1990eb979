package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
	"github.com/medcamp/mcms/internal/validation"
)

// UserHandler serves the account and session-token endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
	auth  *service.AuthService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users, auth: auth}
}

// UpsertUserRequest stores an account on login. Role is optional and
// defaults to participant.
type UpsertUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=participant organizer"`
}

func (r *UpsertUserRequest) Validate() error { return validation.Struct(r) }

// UpsertUserResponse reports either the new account id or that the email was
// already known.
type UpsertUserResponse struct {
	Message    string `json:"message,omitempty"`
	InsertedID string `json:"insertedId,omitempty"`
}

// Upsert stores an account on first sight of an email; later calls are
// no-ops.
func (h *UserHandler) Upsert(c echo.Context, req *UpsertUserRequest) (*UpsertUserResponse, error) {
	user, created, err := h.users.Upsert(c.Request().Context(), &model.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Phone:    req.Phone,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return &UpsertUserResponse{Message: "user already exists"}, nil
	}
	return &UpsertUserResponse{InsertedID: user.ID}, nil
}

// TokenRequest asks for a session token for an email.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *TokenRequest) Validate() error { return validation.Struct(r) }

// TokenResponse carries the signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken signs a session token for an email.
func (h *UserHandler) IssueToken(c echo.Context, req *TokenRequest) (*TokenResponse, error) {
	token, err := h.auth.IssueToken(req.Email)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

// List returns all accounts, for organizer views.
func (h *UserHandler) List(c echo.Context, _ *EmptyRequest) ([]model.User, error) {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// UserIDRequest identifies an account by path parameter.
type UserIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *UserIDRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid user id", true, &code, nil)
	}
	return nil
}

// Promote grants an account the organizer role.
func (h *UserHandler) Promote(c echo.Context, req *UserIDRequest) (*UpdateResponse, error) {
	if err := h.users.Promote(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}
