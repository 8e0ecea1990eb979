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

const participantColumns = `id, camp_id, user_email, participant_name, age,
	phone, gender, emergency_contact, confirmation_status, payment_status,
	transaction_id, payment_date, amount_paid, created_at`

// ParticipantRepository handles persistence for registrations. It is the
// only writer of camps.participant_count.
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository constructs a ParticipantRepository.
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(&p.ID, &p.CampID, &p.UserEmail, &p.Name, &p.Age,
		&p.Phone, &p.Gender, &p.EmergencyContact, &p.ConfirmationStatus,
		&p.PaymentStatus, &p.TransactionID, &p.PaymentDate, &p.AmountPaid,
		&p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Register creates a registration inside a single transaction.
//
// The camp row is locked with SELECT ... FOR UPDATE so concurrent
// registrations for the same camp serialize; the duplicate check, the
// participant insert and the counter increment then commit or roll back
// together. A crash can never leave the count and the participant rows
// disagreeing.
func (r *ParticipantRepository) Register(ctx context.Context, p *model.Participant) (id string, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var count int
	err = tx.QueryRow(ctx,
		`SELECT participant_count FROM camps WHERE id = $1 FOR UPDATE`,
		p.CampID,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lock camp row: %w", err)
	}

	var dupCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM participants WHERE camp_id = $1 AND user_email = $2`,
		p.CampID, p.UserEmail,
	).Scan(&dupCount)
	if err != nil {
		return "", fmt.Errorf("check duplicate: %w", err)
	}
	if dupCount > 0 {
		return "", ErrDuplicateRegistration
	}

	p.ID = uuid.New().String()
	p.ConfirmationStatus = model.ConfirmationPending
	p.PaymentStatus = model.PaymentUnpaid
	p.CreatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`INSERT INTO participants (id, camp_id, user_email, participant_name,
			age, phone, gender, emergency_contact, confirmation_status,
			payment_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.CampID, p.UserEmail, p.Name, p.Age, p.Phone, p.Gender,
		p.EmergencyContact, p.ConfirmationStatus, p.PaymentStatus, p.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert participant: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE camps SET participant_count = participant_count + 1 WHERE id = $1`,
		p.CampID,
	)
	if err != nil {
		return "", fmt.Errorf("increment participant_count: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return p.ID, nil
}

// Remove cancels a registration inside a single transaction: lock the
// participant row, re-check the cancellation lock, delete, and decrement the
// camp counter. The reverse of Register, with the same atomicity.
func (r *ParticipantRepository) Remove(ctx context.Context, id string) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var campID string
	var confirmation model.ConfirmationStatus
	var payment model.PaymentStatus
	err = tx.QueryRow(ctx,
		`SELECT camp_id, confirmation_status, payment_status
		 FROM participants WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&campID, &confirmation, &payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock participant row: %w", err)
	}

	if payment == model.PaymentPaid && confirmation == model.ConfirmationConfirmed {
		return ErrCancellationLocked
	}

	if _, err = tx.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE camps SET participant_count = participant_count - 1 WHERE id = $1`,
		campID,
	)
	if err != nil {
		return fmt.Errorf("decrement participant_count: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID returns a single registration or ErrNotFound.
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.Participant, error) {
		p, err := scanParticipant(r.db.QueryRow(ctx,
			`SELECT `+participantColumns+` FROM participants WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get participant: %w", err)
		}
		return p, nil
	})
}

// GetByEmailAndCamp returns the registration for one (email, camp) pair.
func (r *ParticipantRepository) GetByEmailAndCamp(ctx context.Context, email, campID string) (*model.Participant, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.Participant, error) {
		p, err := scanParticipant(r.db.QueryRow(ctx,
			`SELECT `+participantColumns+` FROM participants
			 WHERE user_email = $1 AND camp_id = $2`, email, campID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get participant: %w", err)
		}
		return p, nil
	})
}

func (r *ParticipantRepository) collect(ctx context.Context, query string, args ...any) ([]model.Participant, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.Participant, error) {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list participants: %w", err)
		}
		defer rows.Close()

		var participants []model.Participant
		for rows.Next() {
			p, err := scanParticipant(rows)
			if err != nil {
				return nil, fmt.Errorf("scan participant: %w", err)
			}
			participants = append(participants, *p)
		}
		return participants, rows.Err()
	})
}

// List returns every registration, newest first.
func (r *ParticipantRepository) List(ctx context.Context) ([]model.Participant, error) {
	return r.collect(ctx,
		`SELECT `+participantColumns+` FROM participants ORDER BY created_at DESC`)
}

// ListByEmail returns all registrations owned by one email.
func (r *ParticipantRepository) ListByEmail(ctx context.Context, email string) ([]model.Participant, error) {
	return r.collect(ctx,
		`SELECT `+participantColumns+` FROM participants
		 WHERE user_email = $1 ORDER BY created_at DESC`, email)
}

// Confirm flips a Pending registration to Confirmed. Missing records and
// already-Confirmed records both report ErrNotFound; the two cases are
// deliberately merged in the public contract.
func (r *ParticipantRepository) Confirm(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE participants SET confirmation_status = $1
		 WHERE id = $2 AND confirmation_status = $3`,
		model.ConfirmationConfirmed, id, model.ConfirmationPending,
	)
	if err != nil {
		return fmt.Errorf("confirm participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid records a successful payment on the registration matching the
// (email, camp) pair.
func (r *ParticipantRepository) MarkPaid(ctx context.Context, email, campID, transactionID string, amount float64, paidAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE participants
		 SET payment_status = $1, transaction_id = $2, payment_date = $3, amount_paid = $4
		 WHERE user_email = $5 AND camp_id = $6`,
		model.PaymentPaid, transactionID, paidAt, amount, email, campID,
	)
	if err != nil {
		return fmt.Errorf("mark participant paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile applies a partial update of the mutable profile fields,
// reporting ErrNoChange when no row matched or nothing observable changed.
func (r *ParticipantRepository) UpdateProfile(ctx context.Context, id string, update model.ParticipantProfile) error {
	sets := make([]string, 0, 5)
	distinct := make([]string, 0, 5)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		placeholder := fmt.Sprintf("$%d", len(args))
		sets = append(sets, fmt.Sprintf("%s = %s", column, placeholder))
		distinct = append(distinct, fmt.Sprintf("%s IS DISTINCT FROM %s", column, placeholder))
	}

	if update.Name != nil {
		add("participant_name", *update.Name)
	}
	if update.Age != nil {
		add("age", *update.Age)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Gender != nil {
		add("gender", *update.Gender)
	}
	if update.EmergencyContact != nil {
		add("emergency_contact", *update.EmergencyContact)
	}
	if len(sets) == 0 {
		return ErrNoChange
	}

	query := fmt.Sprintf(
		`UPDATE participants SET %s WHERE id = $1 AND (%s)`,
		strings.Join(sets, ", "), strings.Join(distinct, " OR "))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update participant profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoChange
	}
	return nil
}

// PaymentHistory returns the paid registrations for an email, projected to
// the fixed history shape (camp name and fees joined in from camps).
func (r *ParticipantRepository) PaymentHistory(ctx context.Context, email string) ([]model.PaymentHistoryEntry, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.PaymentHistoryEntry, error) {
		rows, err := r.db.Query(ctx,
			`SELECT c.name, c.fees, p.payment_status, p.confirmation_status,
				p.transaction_id, p.payment_date
			 FROM participants p
			 JOIN camps c ON c.id = p.camp_id
			 WHERE p.user_email = $1 AND p.payment_status = $2
			 ORDER BY p.payment_date DESC`,
			email, model.PaymentPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("payment history: %w", err)
		}
		defer rows.Close()

		var entries []model.PaymentHistoryEntry
		for rows.Next() {
			var e model.PaymentHistoryEntry
			if err := rows.Scan(&e.CampName, &e.Fees, &e.PaymentStatus,
				&e.ConfirmationStatus, &e.TransactionID, &e.PaymentDate); err != nil {
				return nil, fmt.Errorf("scan history entry: %w", err)
			}
			entries = append(entries, e)
		}
		return entries, rows.Err()
	})
}
