package service

import (
	"context"
	"testing"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	return NewUserService(store, nopLogger()), store
}

func TestUpsertIsIdempotent(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	first, created, err := svc.Upsert(ctx, &model.User{Email: "new@example.com", Name: "New"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created {
		t.Fatal("first upsert should create")
	}
	if first.Role != model.RoleParticipant {
		t.Fatalf("new account role = %q, want participant", first.Role)
	}

	second, created, err := svc.Upsert(ctx, &model.User{Email: "new@example.com", Name: "Changed"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Fatal("second upsert must be a no-op")
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert returned different account: %s vs %s", second.ID, first.ID)
	}
	if second.Name != "New" {
		t.Fatalf("second upsert modified the account: name = %q", second.Name)
	}
}

func TestUpsertHonorsSuppliedRole(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	user, created, err := svc.Upsert(ctx, &model.User{
		Email: "admin@example.com",
		Role:  model.RoleOrganizer,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Fatal("upsert should create")
	}
	if user.Role != model.RoleOrganizer {
		t.Fatalf("role = %q, want organizer", user.Role)
	}

	isOrganizer, err := svc.IsOrganizer(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("is organizer: %v", err)
	}
	if !isOrganizer {
		t.Fatal("account created as organizer must pass the organizer check")
	}
}

func TestPromote(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	user, _, err := svc.Upsert(ctx, &model.User{Email: "promote@example.com"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := svc.Promote(ctx, user.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}

	isOrganizer, err := svc.IsOrganizer(ctx, "promote@example.com")
	if err != nil {
		t.Fatalf("is organizer: %v", err)
	}
	if !isOrganizer {
		t.Fatal("account should be organizer after promote")
	}

	// Promoting again succeeds without effect.
	if err := svc.Promote(ctx, user.ID); err != nil {
		t.Fatalf("second promote: %v", err)
	}

	err = svc.Promote(ctx, "7b9e9c3e-0000-4000-8000-000000000000")
	assertStatus(t, err, 404, errs.CodeUserNotFound)
}

func TestIsOrganizerDefaultsFalse(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	if _, _, err := svc.Upsert(ctx, &model.User{Email: "plain@example.com"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	isOrganizer, err := svc.IsOrganizer(ctx, "plain@example.com")
	if err != nil {
		t.Fatalf("is organizer: %v", err)
	}
	if isOrganizer {
		t.Fatal("new account must not be organizer")
	}

	_, err = svc.GetByEmail(ctx, "ghost@example.com")
	assertStatus(t, err, 404, errs.CodeUserNotFound)
}
