// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers hand it
// validated input, it enforces the domain rules (duplicate registration,
// cancellation locking, payment linkage) and returns either results or
// errs.HTTPError values the boundary can serialize directly.
package service

import (
	"context"
	"time"

	"github.com/medcamp/mcms/internal/lib/job"
	"github.com/medcamp/mcms/internal/lib/payment"
	"github.com/medcamp/mcms/internal/repository"
	"github.com/medcamp/mcms/internal/server"
)

// defaultTimeout bounds every store call issued by the services. Slow
// downstream dependencies surface as 503s instead of hung requests.
const defaultTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}

// Services is a container for all service instances.
type Services struct {
	Auth          *AuthService
	Camps         *CampService
	Registrations *RegistrationService
	Payments      *PaymentService
	Feedback      *FeedbackService
	Users         *UserService
	Job           *job.JobService
}

// NewService constructs the service container from the shared application
// resources and the repository container.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	processor := payment.NewStripeProcessor(
		s.Config.Payment.StripeSecretKey,
		s.Config.Payment.Currency,
	)

	return &Services{
		Auth:          NewAuthService(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTLMinutes),
		Camps:         NewCampService(repos.Camps, s.Redis, s.Logger),
		Registrations: NewRegistrationService(repos.Participants, repos.Camps, s.Job, s.Logger),
		Payments:      NewPaymentService(repos.Participants, repos.Payments, processor, s.Logger),
		Feedback:      NewFeedbackService(repos.Feedback, s.Logger),
		Users:         NewUserService(repos.Users, s.Logger),
		Job:           s.Job,
	}, nil
}
