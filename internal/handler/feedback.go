package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
	"github.com/medcamp/mcms/internal/validation"
)

// FeedbackHandler serves the camp review endpoints.
type FeedbackHandler struct {
	Handler
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(s *server.Server, feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Handler: NewHandler(s), feedback: feedback}
}

// SubmitFeedbackRequest is the payload for posting a review.
type SubmitFeedbackRequest struct {
	CampID        string `json:"campId" validate:"required,uuid"`
	ParticipantID string `json:"participantId" validate:"required,uuid"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	FeedbackText  string `json:"feedbackText" validate:"required"`
}

func (r *SubmitFeedbackRequest) Validate() error { return validation.Struct(r) }

// Submit records a review.
func (h *FeedbackHandler) Submit(c echo.Context, req *SubmitFeedbackRequest) (*InsertResponse, error) {
	id, err := h.feedback.Submit(c.Request().Context(), &model.Feedback{
		CampID:        req.CampID,
		ParticipantID: req.ParticipantID,
		Rating:        req.Rating,
		FeedbackText:  req.FeedbackText,
	})
	if err != nil {
		return nil, err
	}
	return &InsertResponse{InsertedID: id}, nil
}

// List returns all feedback for the public wall.
func (h *FeedbackHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Feedback, error) {
	entries, err := h.feedback.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Feedback{}
	}
	return entries, nil
}

// FeedbackByCampRequest identifies a camp's feedback by path parameter.
type FeedbackByCampRequest struct {
	CampID string `param:"campId" validate:"required"`
}

func (r *FeedbackByCampRequest) Validate() error {
	if !validation.IsValidUUID(r.CampID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid camp id", true, &code, nil)
	}
	return nil
}

// ListByCamp returns the feedback for one camp.
func (h *FeedbackHandler) ListByCamp(c echo.Context, req *FeedbackByCampRequest) ([]model.Feedback, error) {
	entries, err := h.feedback.ListByCamp(c.Request().Context(), req.CampID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Feedback{}
	}
	return entries, nil
}
