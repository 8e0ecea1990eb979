package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/lib/job"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/repository"
)

// RegistrationService manages the participant lifecycle: joining a camp,
// organizer confirmation, profile edits and cancellation. The participant
// count invariant is enforced by the store's transactions; this layer maps
// its outcomes onto the API error contract.
type RegistrationService struct {
	participants ParticipantStore
	camps        CampStore
	jobs         *job.JobService
	logger       *zerolog.Logger
}

// NewRegistrationService constructs a RegistrationService. jobs may be nil,
// in which case confirmation emails are skipped.
func NewRegistrationService(participants ParticipantStore, camps CampStore, jobs *job.JobService, logger *zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		participants: participants,
		camps:        camps,
		jobs:         jobs,
		logger:       logger,
	}
}

func registrationNotFound() *errs.HTTPError {
	code := errs.CodeParticipantNotFound
	return errs.NewNotFoundError("Registration not found", true, &code)
}

// Register creates a registration for a camp. One email registers at most
// once per camp; a second attempt is a conflict and leaves the participant
// count untouched.
func (s *RegistrationService) Register(ctx context.Context, p *model.Participant) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id, err := s.participants.Register(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRegistration):
			code := errs.CodeDuplicateRegistration
			return "", errs.NewConflictError("Already registered for this camp", &code)
		case errors.Is(err, repository.ErrNotFound):
			return "", campNotFound()
		}
		return "", err
	}
	return id, nil
}

// Get returns a single registration.
func (s *RegistrationService) Get(ctx context.Context, id string) (*model.Participant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, registrationNotFound()
		}
		return nil, err
	}
	return p, nil
}

// List returns every registration, for organizer views.
func (s *RegistrationService) List(ctx context.Context) ([]model.Participant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.participants.List(ctx)
}

// ListByEmail returns the registrations owned by one email.
func (s *RegistrationService) ListByEmail(ctx context.Context, email string) ([]model.Participant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.participants.ListByEmail(ctx, email)
}

// Confirm marks a Pending registration Confirmed and queues the notification
// email. A missing registration and an already-confirmed one are reported
// identically; callers cannot distinguish them.
func (s *RegistrationService) Confirm(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.participants.Confirm(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return registrationNotFound().WithMessage("Registration not found or already confirmed")
		}
		return err
	}

	s.enqueueConfirmationEmail(ctx, id)
	return nil
}

// enqueueConfirmationEmail queues the confirmed-registration email. The
// confirmation itself already committed, so failures here are logged and
// swallowed rather than surfaced to the caller.
func (s *RegistrationService) enqueueConfirmationEmail(ctx context.Context, id string) {
	if s.jobs == nil {
		return
	}

	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("registration_id", id).
			Msg("failed to load registration for confirmation email")
		return
	}

	camp, err := s.camps.GetByID(ctx, p.CampID)
	if err != nil {
		s.logger.Error().Err(err).Str("camp_id", p.CampID).
			Msg("failed to load camp for confirmation email")
		return
	}

	task, err := job.NewRegistrationConfirmedTask(
		p.UserEmail, p.Name, camp.Name, camp.DateTime.Format("January 2, 2006"))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build confirmation email task")
		return
	}

	if _, err := s.jobs.Client.Enqueue(task); err != nil {
		s.logger.Error().Err(err).Str("registration_id", id).
			Msg("failed to enqueue confirmation email")
	}
}

// Cancel withdraws a registration. A registration that is both Paid and
// Confirmed is locked and cannot be withdrawn; either state alone does not
// lock it.
func (s *RegistrationService) Cancel(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.participants.Remove(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCancellationLocked):
			code := errs.CodeCancellationLocked
			return errs.NewBadRequestError(
				"Cannot cancel a confirmed and paid registration", true, &code, nil)
		case errors.Is(err, repository.ErrNotFound):
			return registrationNotFound()
		}
		return err
	}
	return nil
}

// UpdateProfile applies a partial update of the registration's profile
// fields. A request naming no fields is rejected outright; one that matches
// no row or changes nothing observable reports that nothing was modified.
func (s *RegistrationService) UpdateProfile(ctx context.Context, id string, update model.ParticipantProfile) error {
	if update.Empty() {
		return errs.NewBadRequestError("No fields to update", true, nil, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.participants.UpdateProfile(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNoChange) {
			return registrationNotFound().WithMessage("Registration not found or no changes made")
		}
		return err
	}
	return nil
}
