package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleRegistrationConfirmedTask sends the confirmation email for one task.
// Returning an error makes Asynq schedule a retry.
func (j *JobService) handleRegistrationConfirmedTask(ctx context.Context, t *asynq.Task) error {
	var p RegistrationConfirmedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal registration confirmed payload: %w", err)
	}

	j.logger.Info().
		Str("type", "registration_confirmed").
		Str("to", p.To).
		Msg("processing confirmation email task")

	if err := j.email.SendRegistrationConfirmedEmail(p.To, p.ParticipantName, p.CampName, p.CampDate); err != nil {
		j.logger.Error().
			Str("type", "registration_confirmed").
			Str("to", p.To).
			Err(err).
			Msg("failed to send confirmation email")
		return err
	}

	j.logger.Info().
		Str("type", "registration_confirmed").
		Str("to", p.To).
		Msg("sent confirmation email")

	return nil
}
