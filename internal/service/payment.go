package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/lib/payment"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/repository"
)

// ledgerStatusSucceeded is the only status this service writes; the ledger
// records completed charges, not attempts.
const ledgerStatusSucceeded = "succeeded"

// PaymentService creates processor payment intents and records completed
// payments on both the registration and the standalone ledger.
type PaymentService struct {
	participants ParticipantStore
	ledger       PaymentStore
	processor    payment.Processor
	logger       *zerolog.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(participants ParticipantStore, ledger PaymentStore, processor payment.Processor, logger *zerolog.Logger) *PaymentService {
	return &PaymentService{
		participants: participants,
		ledger:       ledger,
		processor:    processor,
		logger:       logger,
	}
}

// CreateIntent registers an intended charge with the processor and returns
// the client secret the frontend needs to complete it. Nothing is written
// locally; the registration only changes when the success callback arrives.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		code := errs.CodeInvalidAmount
		return "", errs.NewBadRequestError("Amount must be greater than zero", true, &code, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	intent, err := s.processor.CreateIntent(ctx, amount)
	if err != nil {
		s.logger.Error().Err(err).Msg("payment intent creation failed")
		return "", errs.NewUnavailableError("Payment processor unavailable")
	}
	return intent.ClientSecret, nil
}

// RecordSuccess marks a registration paid and appends a ledger entry. All
// four fields are required; with any missing, nothing at all is written.
func (s *PaymentService) RecordSuccess(ctx context.Context, email, campID, transactionID string, amount float64) error {
	if email == "" || campID == "" || transactionID == "" || amount <= 0 {
		code := errs.CodeMissingPaymentInfo
		return errs.NewBadRequestError("Missing required payment information", true, &code, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	paidAt := time.Now().UTC()
	if err := s.participants.MarkPaid(ctx, email, campID, transactionID, amount, paidAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return registrationNotFound()
		}
		return err
	}

	_, err := s.ledger.Create(ctx, &model.Payment{
		CampID:           campID,
		ParticipantEmail: email,
		Amount:           amount,
		Status:           ledgerStatusSucceeded,
		TransactionID:    transactionID,
	})
	return err
}

// History returns the paid registrations for an email in the fixed history
// projection.
func (s *PaymentService) History(ctx context.Context, email string) ([]model.PaymentHistoryEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.participants.PaymentHistory(ctx, email)
}

// ListLedger returns the ledger entries for an email.
func (s *PaymentService) ListLedger(ctx context.Context, email string) ([]model.Payment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.ledger.ListByEmail(ctx, email)
}

// RecordEntry appends an arbitrary ledger entry. Used by the ledger API
// directly, independent of the success callback.
func (s *PaymentService) RecordEntry(ctx context.Context, entry *model.Payment) (string, error) {
	if entry.ParticipantEmail == "" || entry.CampID == "" || entry.Amount <= 0 {
		code := errs.CodeMissingPaymentInfo
		return "", errs.NewBadRequestError("Missing required payment information", true, &code, nil)
	}
	if entry.Status == "" {
		entry.Status = ledgerStatusSucceeded
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.ledger.Create(ctx, entry)
}

// GetLedgerEntry returns one ledger entry.
func (s *PaymentService) GetLedgerEntry(ctx context.Context, id string) (*model.Payment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	entry, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			code := errs.CodePaymentEntryNotFound
			return nil, errs.NewNotFoundError("Payment entry not found", true, &code)
		}
		return nil, err
	}
	return entry, nil
}

// UpdateLedgerStatus changes the status field of a ledger entry.
func (s *PaymentService) UpdateLedgerStatus(ctx context.Context, id, status string) error {
	if status == "" {
		return errs.NewBadRequestError("Status is required", true, nil, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.ledger.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			code := errs.CodePaymentEntryNotFound
			return errs.NewNotFoundError("Payment entry not found", true, &code)
		}
		return err
	}
	return nil
}

// DeleteLedgerEntry removes one ledger entry. The registration's payment
// state is untouched; this is bookkeeping, not a refund.
func (s *PaymentService) DeleteLedgerEntry(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.ledger.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			code := errs.CodePaymentEntryNotFound
			return errs.NewNotFoundError("Payment entry not found", true, &code)
		}
		return err
	}
	return nil
}
