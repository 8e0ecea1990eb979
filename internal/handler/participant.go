package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
	"github.com/medcamp/mcms/internal/validation"
)

// ParticipantHandler serves the registration endpoints.
type ParticipantHandler struct {
	Handler
	registrations *service.RegistrationService
}

// NewParticipantHandler constructs a ParticipantHandler.
func NewParticipantHandler(s *server.Server, registrations *service.RegistrationService) *ParticipantHandler {
	return &ParticipantHandler{Handler: NewHandler(s), registrations: registrations}
}

// RegisterParticipantRequest is the payload for joining a camp.
type RegisterParticipantRequest struct {
	CampID           string `json:"campId" validate:"required,uuid"`
	ParticipantEmail string `json:"participantEmail" validate:"required,email"`
	ParticipantName  string `json:"participantName" validate:"required"`
	Age              int    `json:"age" validate:"gte=0"`
	Phone            string `json:"phone"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergencyContact"`
}

func (r *RegisterParticipantRequest) Validate() error { return validation.Struct(r) }

// Register joins a camp. One email registers at most once per camp.
func (h *ParticipantHandler) Register(c echo.Context, req *RegisterParticipantRequest) (*InsertResponse, error) {
	id, err := h.registrations.Register(c.Request().Context(), &model.Participant{
		CampID:           req.CampID,
		UserEmail:        req.ParticipantEmail,
		Name:             req.ParticipantName,
		Age:              req.Age,
		Phone:            req.Phone,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		return nil, err
	}
	return &InsertResponse{InsertedID: id}, nil
}

// ParticipantIDRequest identifies a registration by path parameter.
type ParticipantIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *ParticipantIDRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid registration id", true, &code, nil)
	}
	return nil
}

// ParticipantEmailRequest identifies registrations by owner email.
type ParticipantEmailRequest struct {
	Email string `param:"email" validate:"required,email"`
}

func (r *ParticipantEmailRequest) Validate() error { return validation.Struct(r) }

// List returns every registration, for organizer views.
func (h *ParticipantHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Participant, error) {
	participants, err := h.registrations.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

// ListByEmail returns the registrations owned by one email.
func (h *ParticipantHandler) ListByEmail(c echo.Context, req *ParticipantEmailRequest) ([]model.Participant, error) {
	participants, err := h.registrations.ListByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

// Confirm marks a pending registration confirmed.
func (h *ParticipantHandler) Confirm(c echo.Context, req *ParticipantIDRequest) (*UpdateResponse, error) {
	if err := h.registrations.Confirm(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}

// Cancel withdraws a registration unless it is confirmed and paid.
func (h *ParticipantHandler) Cancel(c echo.Context, req *ParticipantIDRequest) (*DeleteResponse, error) {
	if err := h.registrations.Cancel(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{DeletedCount: 1}, nil
}

// UpdateParticipantRequest carries a partial profile update.
type UpdateParticipantRequest struct {
	ID               string  `param:"id" json:"-"`
	ParticipantName  *string `json:"participantName"`
	Age              *int    `json:"age"`
	Phone            *string `json:"phone"`
	Gender           *string `json:"gender"`
	EmergencyContact *string `json:"emergencyContact"`
}

func (r *UpdateParticipantRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid registration id", true, &code, nil)
	}
	if r.Age != nil && *r.Age < 0 {
		return validation.CustomValidationErrors{{Field: "age", Message: "must not be negative"}}
	}
	return nil
}

// Update applies a partial update to a registration's profile fields.
func (h *ParticipantHandler) Update(c echo.Context, req *UpdateParticipantRequest) (*UpdateResponse, error) {
	err := h.registrations.UpdateProfile(c.Request().Context(), req.ID, model.ParticipantProfile{
		Name:             req.ParticipantName,
		Age:              req.Age,
		Phone:            req.Phone,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}
