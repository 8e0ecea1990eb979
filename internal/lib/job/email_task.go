package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskRegistrationConfirmed is the task type for the confirmation email
	// sent after an organizer confirms a registration.
	TaskRegistrationConfirmed = "email:registration_confirmed"
)

// RegistrationConfirmedPayload is the JSON payload for the confirmation
// email task.
type RegistrationConfirmedPayload struct {
	To              string `json:"to"`
	ParticipantName string `json:"participant_name"`
	CampName        string `json:"camp_name"`
	CampDate        string `json:"camp_date"`
}

// NewRegistrationConfirmedTask builds the Asynq task for a confirmation
// email: three retries, default queue, 30s handler timeout.
func NewRegistrationConfirmedTask(to, participantName, campName, campDate string) (*asynq.Task, error) {
	payload, err := json.Marshal(RegistrationConfirmedPayload{
		To:              to,
		ParticipantName: participantName,
		CampName:        campName,
		CampDate:        campDate,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRegistrationConfirmed,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
