package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcamp/mcms/internal/model"
)

const campColumns = `id, name, image, fees, date_time, location,
	healthcare_professional, description, participant_count, created_at`

// CampRepository handles persistence for camps.
type CampRepository struct {
	db *pgxpool.Pool
}

// NewCampRepository constructs a CampRepository.
func NewCampRepository(db *pgxpool.Pool) *CampRepository {
	return &CampRepository{db: db}
}

func scanCamp(row pgx.Row) (*model.Camp, error) {
	var c model.Camp
	err := row.Scan(&c.ID, &c.Name, &c.Image, &c.Fees, &c.DateTime, &c.Location,
		&c.HealthcareProfessional, &c.Description, &c.ParticipantCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampRepository) collect(ctx context.Context, query string, args ...any) ([]model.Camp, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.Camp, error) {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list camps: %w", err)
		}
		defer rows.Close()

		var camps []model.Camp
		for rows.Next() {
			c, err := scanCamp(rows)
			if err != nil {
				return nil, fmt.Errorf("scan camp: %w", err)
			}
			camps = append(camps, *c)
		}
		return camps, rows.Err()
	})
}

// Create inserts a new camp with a zero participant count and returns its
// generated identifier.
func (r *CampRepository) Create(ctx context.Context, camp *model.Camp) (string, error) {
	camp.ID = uuid.New().String()
	camp.ParticipantCount = 0
	camp.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO camps (id, name, image, fees, date_time, location,
			healthcare_professional, description, participant_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		camp.ID, camp.Name, camp.Image, camp.Fees, camp.DateTime, camp.Location,
		camp.HealthcareProfessional, camp.Description, camp.ParticipantCount, camp.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert camp: %w", err)
	}
	return camp.ID, nil
}

// GetByID returns a single camp or ErrNotFound.
func (r *CampRepository) GetByID(ctx context.Context, id string) (*model.Camp, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.Camp, error) {
		camp, err := scanCamp(r.db.QueryRow(ctx,
			`SELECT `+campColumns+` FROM camps WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get camp: %w", err)
		}
		return camp, nil
	})
}

// List returns all camps ordered by creation time descending.
func (r *CampRepository) List(ctx context.Context) ([]model.Camp, error) {
	return r.collect(ctx,
		`SELECT `+campColumns+` FROM camps ORDER BY created_at DESC`)
}

// ListUpcoming returns camps scheduled at or after the given instant.
func (r *CampRepository) ListUpcoming(ctx context.Context, from time.Time) ([]model.Camp, error) {
	return r.collect(ctx,
		`SELECT `+campColumns+` FROM camps WHERE date_time >= $1 ORDER BY date_time ASC`,
		from)
}

// Popular returns the top camps by participant count, descending.
func (r *CampRepository) Popular(ctx context.Context, limit int) ([]model.Camp, error) {
	return r.collect(ctx,
		`SELECT `+campColumns+` FROM camps ORDER BY participant_count DESC LIMIT $1`,
		limit)
}

// Update applies a partial update to the organizer-mutable fields. It
// reports ErrNoChange when no row matched or every provided value already
// matched the stored one.
func (r *CampRepository) Update(ctx context.Context, id string, update model.CampUpdate) error {
	sets := make([]string, 0, 7)
	distinct := make([]string, 0, 7)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		placeholder := fmt.Sprintf("$%d", len(args))
		sets = append(sets, fmt.Sprintf("%s = %s", column, placeholder))
		distinct = append(distinct, fmt.Sprintf("%s IS DISTINCT FROM %s", column, placeholder))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Image != nil {
		add("image", *update.Image)
	}
	if update.Fees != nil {
		add("fees", *update.Fees)
	}
	if update.DateTime != nil {
		add("date_time", *update.DateTime)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.HealthcareProfessional != nil {
		add("healthcare_professional", *update.HealthcareProfessional)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if len(sets) == 0 {
		return ErrNoChange
	}

	query := fmt.Sprintf(
		`UPDATE camps SET %s WHERE id = $1 AND (%s)`,
		strings.Join(sets, ", "), strings.Join(distinct, " OR "))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update camp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoChange
	}
	return nil
}

// Delete removes a camp; dependent participants go with it via the cascade.
func (r *CampRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM camps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete camp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
