// Package handler is the HTTP boundary. It parses and validates requests,
// calls the service layer, and shapes responses. No business rules live
// here.
package handler

import (
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router setup
// receives one object.
type Handlers struct {
	Health       *HealthHandler
	Camps        *CampHandler
	Participants *ParticipantHandler
	Payments     *PaymentHandler
	Feedback     *FeedbackHandler
	Users        *UserHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Camps:        NewCampHandler(s, services.Camps),
		Participants: NewParticipantHandler(s, services.Registrations),
		Payments:     NewPaymentHandler(s, services.Payments),
		Feedback:     NewFeedbackHandler(s, services.Feedback),
		Users:        NewUserHandler(s, services.Users, services.Auth),
	}
}
