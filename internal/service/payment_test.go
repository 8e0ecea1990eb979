package service

import (
	"context"
	"testing"
	"time"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *fakeCampStore, *fakeParticipantStore, *fakePaymentStore, *fakeProcessor) {
	t.Helper()
	camps := newFakeCampStore()
	participants := newFakeParticipantStore(camps)
	ledger := newFakePaymentStore()
	processor := &fakeProcessor{}
	svc := NewPaymentService(participants, ledger, processor, nopLogger())
	return svc, camps, participants, ledger, processor
}

func TestCreateIntent(t *testing.T) {
	svc, _, _, _, processor := newPaymentFixture(t)
	ctx := context.Background()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			_, err := svc.CreateIntent(ctx, amount)
			assertStatus(t, err, 400, errs.CodeInvalidAmount)
		}
		if processor.intents != 0 {
			t.Fatalf("processor called %d times for invalid amounts", processor.intents)
		}
	})

	t.Run("returns client secret verbatim", func(t *testing.T) {
		secret, err := svc.CreateIntent(ctx, 49.99)
		if err != nil {
			t.Fatalf("create intent: %v", err)
		}
		if secret != "pi_test_secret" {
			t.Fatalf("client secret = %q, want %q", secret, "pi_test_secret")
		}
	})
}

func TestRecordSuccessRequiresAllFields(t *testing.T) {
	svc, camps, participants, ledger, _ := newPaymentFixture(t)
	ctx := context.Background()

	campID := seedCamp(t, camps)
	if _, err := participants.Register(ctx, &model.Participant{
		CampID:    campID,
		UserEmail: "payer@example.com",
		Name:      "Payer",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name          string
		email, camp   string
		transactionID string
		amount        float64
	}{
		{"missing email", "", campID, "txn_1", 25},
		{"missing camp", "payer@example.com", "", "txn_1", 25},
		{"missing transaction", "payer@example.com", campID, "", 25},
		{"zero amount", "payer@example.com", campID, "txn_1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordSuccess(ctx, tt.email, tt.camp, tt.transactionID, tt.amount)
			assertStatus(t, err, 400, errs.CodeMissingPaymentInfo)
		})
	}

	if ledger.count() != 0 {
		t.Fatalf("ledger entries = %d, want 0 after rejected requests", ledger.count())
	}
	p, err := participants.GetByEmailAndCamp(ctx, "payer@example.com", campID)
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}
	if p.PaymentStatus != model.PaymentUnpaid {
		t.Fatalf("payment status = %q, want Unpaid", p.PaymentStatus)
	}
}

func TestRecordSuccessMarksPaidAndAppendsLedger(t *testing.T) {
	svc, camps, participants, ledger, _ := newPaymentFixture(t)
	ctx := context.Background()

	campID := seedCamp(t, camps)
	if _, err := participants.Register(ctx, &model.Participant{
		CampID:    campID,
		UserEmail: "payer@example.com",
		Name:      "Payer",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.RecordSuccess(ctx, "payer@example.com", campID, "txn_42", 25); err != nil {
		t.Fatalf("record success: %v", err)
	}

	p, err := participants.GetByEmailAndCamp(ctx, "payer@example.com", campID)
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}
	if p.PaymentStatus != model.PaymentPaid {
		t.Errorf("payment status = %q, want Paid", p.PaymentStatus)
	}
	if p.TransactionID != "txn_42" {
		t.Errorf("transaction id = %q, want txn_42", p.TransactionID)
	}
	if p.PaymentDate == nil {
		t.Error("payment date not set")
	}
	if p.ConfirmationStatus != model.ConfirmationPending {
		t.Errorf("confirmation status = %q, payment must not confirm", p.ConfirmationStatus)
	}

	entries, err := ledger.ListByEmail(ctx, "payer@example.com")
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
	if entries[0].Status != ledgerStatusSucceeded {
		t.Errorf("ledger status = %q, want %q", entries[0].Status, ledgerStatusSucceeded)
	}
}

func TestRecordSuccessUnknownRegistration(t *testing.T) {
	svc, camps, _, ledger, _ := newPaymentFixture(t)
	campID := seedCamp(t, camps)

	err := svc.RecordSuccess(context.Background(), "ghost@example.com", campID, "txn_1", 25)
	assertStatus(t, err, 404, errs.CodeParticipantNotFound)

	if ledger.count() != 0 {
		t.Fatalf("ledger entries = %d, want 0", ledger.count())
	}
}

func TestHistoryProjectsPaidOnly(t *testing.T) {
	svc, camps, participants, _, _ := newPaymentFixture(t)
	ctx := context.Background()

	paidCamp := seedCamp(t, camps)
	unpaidCamp := seedCamp(t, camps)

	for _, campID := range []string{paidCamp, unpaidCamp} {
		if _, err := participants.Register(ctx, &model.Participant{
			CampID:    campID,
			UserEmail: "history@example.com",
			Name:      "History",
		}); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	if err := participants.MarkPaid(ctx, "history@example.com", paidCamp, "txn_h", 25, time.Now()); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	entries, err := svc.History(ctx, "history@example.com")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1 (unpaid rows excluded)", len(entries))
	}
	entry := entries[0]
	if entry.CampName != "Free Eye Screening" || entry.Fees != 25 {
		t.Errorf("camp fields not joined: %+v", entry)
	}
	if entry.PaymentStatus != model.PaymentPaid || entry.TransactionID != "txn_h" {
		t.Errorf("payment fields wrong: %+v", entry)
	}
}

func TestLedgerCRUD(t *testing.T) {
	svc, _, _, _, _ := newPaymentFixture(t)
	ctx := context.Background()

	id, err := svc.RecordEntry(ctx, &model.Payment{
		CampID:           "7b9e9c3e-0000-4000-8000-000000000001",
		ParticipantEmail: "ledger@example.com",
		Amount:           10,
	})
	if err != nil {
		t.Fatalf("record entry: %v", err)
	}

	entry, err := svc.GetLedgerEntry(ctx, id)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if entry.Status != ledgerStatusSucceeded {
		t.Errorf("default status = %q, want %q", entry.Status, ledgerStatusSucceeded)
	}

	if err := svc.UpdateLedgerStatus(ctx, id, "refund_requested"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	entry, _ = svc.GetLedgerEntry(ctx, id)
	if entry.Status != "refund_requested" {
		t.Errorf("status = %q after update", entry.Status)
	}

	if err := svc.DeleteLedgerEntry(ctx, id); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	_, err = svc.GetLedgerEntry(ctx, id)
	assertStatus(t, err, 404, errs.CodePaymentEntryNotFound)
}
