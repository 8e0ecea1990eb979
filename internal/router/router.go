// Package router initializes the HTTP router (using echo).
//
// It registers the middleware chain and maps every API path to its handler,
// including the legacy aliases older frontends still call.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/handler"
	"github.com/medcamp/mcms/internal/middleware"
	"github.com/medcamp/mcms/internal/server"
)

// New builds the echo instance: middleware chain, error handler and all
// routes.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(m.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerUserRoutes(e, h, m)
	registerCampRoutes(e, h, m)
	registerParticipantRoutes(e, h)
	registerPaymentRoutes(e, h)
	registerFeedbackRoutes(e, h)

	return e
}

func registerUserRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	// 200 for both outcomes; the body says whether the account already
	// existed.
	e.POST("/users", handler.Handle(h.Users.Handler, h.Users.Upsert, http.StatusOK))
	e.POST("/jwt", handler.Handle(h.Users.Handler, h.Users.IssueToken, http.StatusOK))

	e.GET("/users", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
	e.PATCH("/users/organizer/:id", handler.Handle(h.Users.Handler, h.Users.Promote, http.StatusOK),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
}

func registerCampRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	e.GET("/camps", handler.Handle(h.Camps.Handler, h.Camps.List, http.StatusOK))
	e.GET("/available-camps", handler.Handle(h.Camps.Handler, h.Camps.List, http.StatusOK))
	e.GET("/upcoming-camps", handler.Handle(h.Camps.Handler, h.Camps.ListUpcoming, http.StatusOK))
	e.GET("/popular-camps", handler.Handle(h.Camps.Handler, h.Camps.Popular, http.StatusOK))
	e.GET("/camps/:id", handler.Handle(h.Camps.Handler, h.Camps.Get, http.StatusOK))

	e.POST("/add-camp", handler.Handle(h.Camps.Handler, h.Camps.Create, http.StatusCreated),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
	e.PUT("/camps/:id", handler.Handle(h.Camps.Handler, h.Camps.Update, http.StatusOK),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
	// Alias kept for older frontends.
	e.PUT("/update-camp/:id", handler.Handle(h.Camps.Handler, h.Camps.Update, http.StatusOK),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
	e.DELETE("/camps/:id", handler.Handle(h.Camps.Handler, h.Camps.Delete, http.StatusOK),
		m.Auth.RequireAuth, m.Auth.RequireOrganizer)
}

func registerParticipantRoutes(e *echo.Echo, h *handler.Handlers) {
	e.POST("/participants", handler.Handle(h.Participants.Handler, h.Participants.Register, http.StatusCreated))
	e.GET("/participants", handler.Handle(h.Participants.Handler, h.Participants.List, http.StatusOK))
	e.GET("/participants/:email", handler.Handle(h.Participants.Handler, h.Participants.ListByEmail, http.StatusOK))
	// Alias kept for older frontends.
	e.GET("/registered-camps/:email", handler.Handle(h.Participants.Handler, h.Participants.ListByEmail, http.StatusOK))
	e.PUT("/participants/:id", handler.Handle(h.Participants.Handler, h.Participants.Update, http.StatusOK))
	e.PUT("/confirm-registration/:id", handler.Handle(h.Participants.Handler, h.Participants.Confirm, http.StatusOK))
	e.DELETE("/cancel-registration/:id", handler.Handle(h.Participants.Handler, h.Participants.Cancel, http.StatusOK))
}

func registerPaymentRoutes(e *echo.Echo, h *handler.Handlers) {
	e.POST("/create-payment-intent", handler.Handle(h.Payments.Handler, h.Payments.CreateIntent, http.StatusOK))
	e.POST("/api/participants/payment-success", handler.Handle(h.Payments.Handler, h.Payments.RecordSuccess, http.StatusOK))
	e.GET("/api/participants/payment-history", handler.Handle(h.Payments.Handler, h.Payments.History, http.StatusOK))

	e.POST("/payments", handler.Handle(h.Payments.Handler, h.Payments.CreateLedgerEntry, http.StatusCreated))
	e.GET("/payments", handler.Handle(h.Payments.Handler, h.Payments.ListLedger, http.StatusOK))
	e.GET("/payments/:id", handler.Handle(h.Payments.Handler, h.Payments.GetLedgerEntry, http.StatusOK))
	e.PATCH("/payments/:id", handler.Handle(h.Payments.Handler, h.Payments.UpdateLedgerStatus, http.StatusOK))
	e.DELETE("/payments/:id", handler.Handle(h.Payments.Handler, h.Payments.DeleteLedgerEntry, http.StatusOK))
}

func registerFeedbackRoutes(e *echo.Echo, h *handler.Handlers) {
	e.POST("/submit-feedback", handler.Handle(h.Feedback.Handler, h.Feedback.Submit, http.StatusCreated))
	// Alias kept for older frontends.
	e.POST("/feedback", handler.Handle(h.Feedback.Handler, h.Feedback.Submit, http.StatusCreated))
	e.GET("/feedback", handler.Handle(h.Feedback.Handler, h.Feedback.List, http.StatusOK))
	e.GET("/feedback/:campId", handler.Handle(h.Feedback.Handler, h.Feedback.ListByCamp, http.StatusOK))
}
