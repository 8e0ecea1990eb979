package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcamp/mcms/internal/model"
)

const paymentColumns = `id, camp_id, participant_email, amount, status,
	transaction_id, created_at`

// PaymentRepository handles persistence for the payment ledger. Entries here
// are independent of the payment fields on the participant record.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.CampID, &p.ParticipantEmail, &p.Amount,
		&p.Status, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create appends a ledger entry and returns its generated identifier.
func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) (string, error) {
	payment.ID = uuid.New().String()
	payment.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (id, camp_id, participant_email, amount, status,
			transaction_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		payment.ID, payment.CampID, payment.ParticipantEmail, payment.Amount,
		payment.Status, payment.TransactionID, payment.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return payment.ID, nil
}

// GetByID returns a single ledger entry or ErrNotFound.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.Payment, error) {
		p, err := scanPayment(r.db.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get payment: %w", err)
		}
		return p, nil
	})
}

// ListByEmail returns the ledger entries for one email, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.Payment, error) {
		rows, err := r.db.Query(ctx,
			`SELECT `+paymentColumns+` FROM payments
			 WHERE participant_email = $1 ORDER BY created_at DESC`, email)
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		defer rows.Close()

		var payments []model.Payment
		for rows.Next() {
			p, err := scanPayment(rows)
			if err != nil {
				return nil, fmt.Errorf("scan payment: %w", err)
			}
			payments = append(payments, *p)
		}
		return payments, rows.Err()
	})
}

// UpdateStatus changes the status of a ledger entry.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a ledger entry. This is record removal only; it never
// reverses the payment itself.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
