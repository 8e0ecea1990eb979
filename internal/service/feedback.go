package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
)

// FeedbackService records and lists camp reviews.
type FeedbackService struct {
	store  FeedbackStore
	logger *zerolog.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(store FeedbackStore, logger *zerolog.Logger) *FeedbackService {
	return &FeedbackService{store: store, logger: logger}
}

// Submit records a review. Every field is required and the rating must fall
// in 1..5; otherwise nothing is written.
func (s *FeedbackService) Submit(ctx context.Context, fb *model.Feedback) (string, error) {
	if fb.CampID == "" || fb.ParticipantID == "" || fb.FeedbackText == "" ||
		fb.Rating < 1 || fb.Rating > 5 {
		code := errs.CodeMissingFeedbackFields
		return "", errs.NewBadRequestError(
			"Feedback requires camp, participant, rating (1-5) and text", true, &code, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.store.Create(ctx, fb)
}

// List returns all feedback for the public wall.
func (s *FeedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx)
}

// ListByCamp returns the feedback for one camp.
func (s *FeedbackService) ListByCamp(ctx context.Context, campID string) ([]model.Feedback, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.store.ListByCamp(ctx, campID)
}
