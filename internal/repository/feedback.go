package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcamp/mcms/internal/model"
)

// FeedbackRepository handles persistence for camp feedback.
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback record and returns its generated identifier.
func (r *FeedbackRepository) Create(ctx context.Context, fb *model.Feedback) (string, error) {
	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO feedback (id, camp_id, participant_id, rating, feedback_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		fb.ID, fb.CampID, fb.ParticipantID, fb.Rating, fb.FeedbackText, fb.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert feedback: %w", err)
	}
	return fb.ID, nil
}

// List returns all feedback, newest first.
func (r *FeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	return r.collect(ctx,
		`SELECT id, camp_id, participant_id, rating, feedback_text, created_at
		 FROM feedback ORDER BY created_at DESC`)
}

// ListByCamp returns all feedback for one camp, newest first.
func (r *FeedbackRepository) ListByCamp(ctx context.Context, campID string) ([]model.Feedback, error) {
	return r.collect(ctx,
		`SELECT id, camp_id, participant_id, rating, feedback_text, created_at
		 FROM feedback WHERE camp_id = $1 ORDER BY created_at DESC`, campID)
}

func (r *FeedbackRepository) collect(ctx context.Context, query string, args ...any) ([]model.Feedback, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.Feedback, error) {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list feedback: %w", err)
		}
		defer rows.Close()

		var entries []model.Feedback
		for rows.Next() {
			var fb model.Feedback
			if err := rows.Scan(&fb.ID, &fb.CampID, &fb.ParticipantID,
				&fb.Rating, &fb.FeedbackText, &fb.CreatedAt); err != nil {
				return nil, fmt.Errorf("scan feedback: %w", err)
			}
			entries = append(entries, fb)
		}
		return entries, rows.Err()
	})
}
