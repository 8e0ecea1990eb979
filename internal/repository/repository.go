// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update data,
// abstracting SQL logic away from the service layer. Logical operations that
// span two records (participant create + camp counter, participant delete +
// camp counter) run as single transactions with row-level locks so they can
// never be left half-applied.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medcamp/mcms/internal/server"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateRegistration is returned when the same email registers twice
// for one camp.
var ErrDuplicateRegistration = errors.New("email already registered for this camp")

// ErrCancellationLocked is returned when a registration is both confirmed
// and paid and may no longer be withdrawn.
var ErrCancellationLocked = errors.New("registration is confirmed and paid")

// ErrNoChange is returned when an update matched no row or produced no
// observable change.
var ErrNoChange = errors.New("no changes made")

// Repositories is a container for all repository instances.
type Repositories struct {
	Camps        *CampRepository
	Participants *ParticipantRepository
	Payments     *PaymentRepository
	Feedback     *FeedbackRepository
	Users        *UserRepository
}

// NewRepositories constructs the repository container from the shared
// application resources.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	return &Repositories{
		Camps:        NewCampRepository(pool),
		Participants: NewParticipantRepository(pool),
		Payments:     NewPaymentRepository(pool),
		Feedback:     NewFeedbackRepository(pool),
		Users:        NewUserRepository(pool),
	}
}

// readWithRetry runs an idempotent read, retrying once when the driver
// reports the failure as safe to retry (e.g. a connection dropped before the
// statement reached the server).
func readWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err != nil && pgconn.SafeToRetry(err) && ctx.Err() == nil {
		return fn(ctx)
	}
	return result, err
}
