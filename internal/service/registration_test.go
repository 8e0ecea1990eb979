package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
)

func newRegistrationFixture(t *testing.T) (*RegistrationService, *fakeCampStore, *fakeParticipantStore) {
	t.Helper()
	camps := newFakeCampStore()
	participants := newFakeParticipantStore(camps)
	svc := NewRegistrationService(participants, camps, nil, nopLogger())
	return svc, camps, participants
}

func seedCamp(t *testing.T, camps *fakeCampStore) string {
	t.Helper()
	id, err := camps.Create(context.Background(), &model.Camp{
		Name:                   "Free Eye Screening",
		Image:                  "https://example.com/eye.jpg",
		Fees:                   25,
		DateTime:               time.Now().Add(48 * time.Hour),
		Location:               "Community Hall",
		HealthcareProfessional: "Dr. Rivera",
		Description:            "Basic vision checks",
	})
	if err != nil {
		t.Fatalf("seed camp: %v", err)
	}
	return id
}

func register(t *testing.T, svc *RegistrationService, campID, email string) string {
	t.Helper()
	id, err := svc.Register(context.Background(), &model.Participant{
		CampID:    campID,
		UserEmail: email,
		Name:      "Test Participant",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return id
}

func campCount(t *testing.T, camps *fakeCampStore, id string) int {
	t.Helper()
	camp, err := camps.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get camp: %v", err)
	}
	return camp.ParticipantCount
}

func assertStatus(t *testing.T, err error, status int, code string) {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != status {
		t.Errorf("status = %d, want %d", httpErr.Status, status)
	}
	if code != "" && httpErr.Code != code {
		t.Errorf("code = %q, want %q", httpErr.Code, code)
	}
}

func TestRegisterTracksParticipantCount(t *testing.T) {
	svc, camps, _ := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	first := register(t, svc, campID, "a@example.com")
	register(t, svc, campID, "b@example.com")
	register(t, svc, campID, "c@example.com")

	if got := campCount(t, camps, campID); got != 3 {
		t.Fatalf("participant count = %d, want 3", got)
	}

	if err := svc.Cancel(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := campCount(t, camps, campID); got != 2 {
		t.Fatalf("participant count after cancel = %d, want 2", got)
	}

	register(t, svc, campID, "a@example.com")
	if got := campCount(t, camps, campID); got != 3 {
		t.Fatalf("participant count after re-register = %d, want 3", got)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, camps, _ := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	register(t, svc, campID, "dup@example.com")

	_, err := svc.Register(ctx, &model.Participant{
		CampID:    campID,
		UserEmail: "dup@example.com",
		Name:      "Second Attempt",
	})
	assertStatus(t, err, 409, errs.CodeDuplicateRegistration)

	if got := campCount(t, camps, campID); got != 1 {
		t.Fatalf("participant count after duplicate = %d, want 1", got)
	}
}

func TestRegisterUnknownCamp(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.Register(context.Background(), &model.Participant{
		CampID:    "7b9e9c3e-0000-4000-8000-000000000000",
		UserEmail: "a@example.com",
		Name:      "Nobody",
	})
	assertStatus(t, err, 404, errs.CodeCampNotFound)
}

func TestCancelLockMatrix(t *testing.T) {
	tests := []struct {
		name    string
		paid    bool
		confirm bool
		locked  bool
	}{
		{"unpaid pending", false, false, false},
		{"paid pending", true, false, false},
		{"unpaid confirmed", false, true, false},
		{"paid confirmed", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, camps, participants := newRegistrationFixture(t)
			campID := seedCamp(t, camps)
			ctx := context.Background()

			id := register(t, svc, campID, "lock@example.com")
			if tt.paid {
				if err := participants.MarkPaid(ctx, "lock@example.com", campID, "txn_1", 25, time.Now()); err != nil {
					t.Fatalf("mark paid: %v", err)
				}
			}
			if tt.confirm {
				if err := svc.Confirm(ctx, id); err != nil {
					t.Fatalf("confirm: %v", err)
				}
			}

			err := svc.Cancel(ctx, id)
			if tt.locked {
				assertStatus(t, err, 400, errs.CodeCancellationLocked)
				if got := campCount(t, camps, campID); got != 1 {
					t.Fatalf("participant count after locked cancel = %d, want 1", got)
				}
			} else {
				if err != nil {
					t.Fatalf("cancel: %v", err)
				}
				if got := campCount(t, camps, campID); got != 0 {
					t.Fatalf("participant count after cancel = %d, want 0", got)
				}
			}
		})
	}
}

func TestConfirmMergesMissingAndAlreadyConfirmed(t *testing.T) {
	svc, camps, _ := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	id := register(t, svc, campID, "confirm@example.com")

	if err := svc.Confirm(ctx, id); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	second := svc.Confirm(ctx, id)
	missing := svc.Confirm(ctx, "7b9e9c3e-0000-4000-8000-000000000000")

	assertStatus(t, second, 404, errs.CodeParticipantNotFound)
	assertStatus(t, missing, 404, errs.CodeParticipantNotFound)

	var secondErr, missingErr *errs.HTTPError
	errors.As(second, &secondErr)
	errors.As(missing, &missingErr)
	if secondErr.Code != missingErr.Code || secondErr.Status != missingErr.Status {
		t.Fatalf("already-confirmed and missing must be indistinguishable: %+v vs %+v", secondErr, missingErr)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, camps, _ := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	id := register(t, svc, campID, "profile@example.com")

	t.Run("no fields", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, id, model.ParticipantProfile{})
		assertStatus(t, err, 400, "")
	})

	t.Run("applies change", func(t *testing.T) {
		phone := "555-0100"
		if err := svc.UpdateProfile(ctx, id, model.ParticipantProfile{Phone: &phone}); err != nil {
			t.Fatalf("update: %v", err)
		}
	})

	t.Run("no observable change", func(t *testing.T) {
		phone := "555-0100"
		err := svc.UpdateProfile(ctx, id, model.ParticipantProfile{Phone: &phone})
		assertStatus(t, err, 404, errs.CodeParticipantNotFound)
	})

	t.Run("missing registration", func(t *testing.T) {
		name := "New Name"
		err := svc.UpdateProfile(ctx, "7b9e9c3e-0000-4000-8000-000000000000",
			model.ParticipantProfile{Name: &name})
		assertStatus(t, err, 404, errs.CodeParticipantNotFound)
	})
}

func TestRegisterConfirmThenCancelWhileUnpaid(t *testing.T) {
	svc, camps, _ := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	id := register(t, svc, campID, "a@example.com")
	if got := campCount(t, camps, campID); got != 1 {
		t.Fatalf("participant count = %d, want 1", got)
	}

	_, err := svc.Register(ctx, &model.Participant{
		CampID:    campID,
		UserEmail: "a@example.com",
		Name:      "Again",
	})
	assertStatus(t, err, 409, errs.CodeDuplicateRegistration)
	if got := campCount(t, camps, campID); got != 1 {
		t.Fatalf("participant count after conflict = %d, want 1", got)
	}

	if err := svc.Confirm(ctx, id); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	p, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ConfirmationStatus != model.ConfirmationConfirmed {
		t.Fatalf("confirmation status = %q", p.ConfirmationStatus)
	}
	if p.PaymentStatus != model.PaymentUnpaid {
		t.Fatalf("payment status = %q, confirmation must not touch it", p.PaymentStatus)
	}

	// Confirmed but unpaid is still cancellable.
	if err := svc.Cancel(ctx, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := campCount(t, camps, campID); got != 0 {
		t.Fatalf("participant count after cancel = %d, want 0", got)
	}
}

func TestRegisterConfirmPayThenCancelIsLocked(t *testing.T) {
	svc, camps, participants := newRegistrationFixture(t)
	campID := seedCamp(t, camps)
	ctx := context.Background()

	id := register(t, svc, campID, "flow@example.com")
	if err := svc.Confirm(ctx, id); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := participants.MarkPaid(ctx, "flow@example.com", campID, "txn_flow", 25, time.Now()); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	err := svc.Cancel(ctx, id)
	assertStatus(t, err, 400, errs.CodeCancellationLocked)

	p, getErr := svc.Get(ctx, id)
	if getErr != nil {
		t.Fatalf("get: %v", getErr)
	}
	if !p.CancellationLocked() {
		t.Fatal("registration should report locked")
	}
	if got := campCount(t, camps, campID); got != 1 {
		t.Fatalf("participant count = %d, want 1", got)
	}
}
