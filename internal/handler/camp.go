package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
	"github.com/medcamp/mcms/internal/validation"
)

// CampHandler serves the camp endpoints.
type CampHandler struct {
	Handler
	camps *service.CampService
}

// NewCampHandler constructs a CampHandler.
func NewCampHandler(s *server.Server, camps *service.CampService) *CampHandler {
	return &CampHandler{Handler: NewHandler(s), camps: camps}
}

// CreateCampRequest is the payload for publishing a camp.
type CreateCampRequest struct {
	CampName               string    `json:"campName" validate:"required"`
	Image                  string    `json:"image" validate:"required"`
	CampFees               float64   `json:"campFees" validate:"gte=0"`
	DateTime               time.Time `json:"dateTime" validate:"required"`
	Location               string    `json:"location" validate:"required"`
	HealthcareProfessional string    `json:"healthcareProfessional" validate:"required"`
	Description            string    `json:"description" validate:"required"`
}

func (r *CreateCampRequest) Validate() error { return validation.Struct(r) }

// Create publishes a camp.
func (h *CampHandler) Create(c echo.Context, req *CreateCampRequest) (*InsertResponse, error) {
	id, err := h.camps.Create(c.Request().Context(), &model.Camp{
		Name:                   req.CampName,
		Image:                  req.Image,
		Fees:                   req.CampFees,
		DateTime:               req.DateTime,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		Description:            req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &InsertResponse{InsertedID: id}, nil
}

// CampIDRequest identifies a camp by path parameter.
type CampIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *CampIDRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid camp id", true, &code, nil)
	}
	return nil
}

// Get returns one camp.
func (h *CampHandler) Get(c echo.Context, req *CampIDRequest) (*model.Camp, error) {
	return h.camps.Get(c.Request().Context(), req.ID)
}

// List returns all camps.
func (h *CampHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Camp, error) {
	camps, err := h.camps.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if camps == nil {
		camps = []model.Camp{}
	}
	return camps, nil
}

// ListUpcoming returns camps scheduled from now on.
func (h *CampHandler) ListUpcoming(c echo.Context, _ *EmptyRequest) ([]model.Camp, error) {
	camps, err := h.camps.ListUpcoming(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if camps == nil {
		camps = []model.Camp{}
	}
	return camps, nil
}

// Popular returns the camps with the highest participant counts.
func (h *CampHandler) Popular(c echo.Context, _ *EmptyRequest) ([]model.Camp, error) {
	camps, err := h.camps.Popular(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if camps == nil {
		camps = []model.Camp{}
	}
	return camps, nil
}

// UpdateCampRequest carries a partial camp update. The identifier comes from
// the path; nil body fields are left untouched.
type UpdateCampRequest struct {
	ID                     string     `param:"id" json:"-"`
	CampName               *string    `json:"campName"`
	Image                  *string    `json:"image"`
	CampFees               *float64   `json:"campFees"`
	DateTime               *time.Time `json:"dateTime"`
	Location               *string    `json:"location"`
	HealthcareProfessional *string    `json:"healthcareProfessional"`
	Description            *string    `json:"description"`
}

func (r *UpdateCampRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid camp id", true, &code, nil)
	}
	if r.CampFees != nil && *r.CampFees < 0 {
		return validation.CustomValidationErrors{{Field: "campFees", Message: "must not be negative"}}
	}
	return nil
}

// Update applies a partial update to a camp.
func (h *CampHandler) Update(c echo.Context, req *UpdateCampRequest) (*UpdateResponse, error) {
	err := h.camps.Update(c.Request().Context(), req.ID, model.CampUpdate{
		Name:                   req.CampName,
		Image:                  req.Image,
		Fees:                   req.CampFees,
		DateTime:               req.DateTime,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		Description:            req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}

// Delete removes a camp and its registrations.
func (h *CampHandler) Delete(c echo.Context, req *CampIDRequest) (*DeleteResponse, error) {
	if err := h.camps.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{DeletedCount: 1}, nil
}
