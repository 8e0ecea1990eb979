package service

import (
	"context"
	"time"

	"github.com/medcamp/mcms/internal/model"
)

// The store interfaces mirror the repository types so services can be tested
// against in-memory implementations. The pgx repositories satisfy them.

// CampStore persists camps.
type CampStore interface {
	Create(ctx context.Context, camp *model.Camp) (string, error)
	GetByID(ctx context.Context, id string) (*model.Camp, error)
	List(ctx context.Context) ([]model.Camp, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]model.Camp, error)
	Popular(ctx context.Context, limit int) ([]model.Camp, error)
	Update(ctx context.Context, id string, update model.CampUpdate) error
	Delete(ctx context.Context, id string) error
}

// ParticipantStore persists registrations and keeps the camp participant
// counter consistent with them.
type ParticipantStore interface {
	Register(ctx context.Context, p *model.Participant) (string, error)
	Remove(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	GetByEmailAndCamp(ctx context.Context, email, campID string) (*model.Participant, error)
	List(ctx context.Context) ([]model.Participant, error)
	ListByEmail(ctx context.Context, email string) ([]model.Participant, error)
	Confirm(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, email, campID, transactionID string, amount float64, paidAt time.Time) error
	UpdateProfile(ctx context.Context, id string, update model.ParticipantProfile) error
	PaymentHistory(ctx context.Context, email string) ([]model.PaymentHistoryEntry, error)
}

// PaymentStore persists the standalone payment ledger.
type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) (string, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// FeedbackStore persists camp feedback.
type FeedbackStore interface {
	Create(ctx context.Context, fb *model.Feedback) (string, error)
	List(ctx context.Context) ([]model.Feedback, error)
	ListByCamp(ctx context.Context, campID string) ([]model.Feedback, error)
}

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetRole(ctx context.Context, id string, role model.Role) error
}
