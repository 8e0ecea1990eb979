package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/server"
	"github.com/medcamp/mcms/internal/service"
	"github.com/medcamp/mcms/internal/validation"
)

// PaymentHandler serves the payment endpoints: processor intents, the
// success callback, the history projection and the standalone ledger.
type PaymentHandler struct {
	Handler
	payments *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(s *server.Server, payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Handler: NewHandler(s), payments: payments}
}

// CreateIntentRequest asks the processor for a payment intent. The wire
// field is "price"; frontends send the camp fee under that name.
type CreateIntentRequest struct {
	Amount float64 `json:"price" validate:"required,gt=0"`
}

func (r *CreateIntentRequest) Validate() error { return validation.Struct(r) }

// CreateIntentResponse carries the processor's client secret verbatim.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent registers an intended charge with the processor.
func (h *PaymentHandler) CreateIntent(c echo.Context, req *CreateIntentRequest) (*CreateIntentResponse, error) {
	secret, err := h.payments.CreateIntent(c.Request().Context(), req.Amount)
	if err != nil {
		return nil, err
	}
	return &CreateIntentResponse{ClientSecret: secret}, nil
}

// PaymentSuccessRequest is the callback payload after a completed charge.
type PaymentSuccessRequest struct {
	ParticipantEmail string  `json:"participantEmail" validate:"required,email"`
	CampID           string  `json:"campId" validate:"required,uuid"`
	TransactionID    string  `json:"transactionId" validate:"required"`
	Amount           float64 `json:"amountPaid" validate:"required,gt=0"`
}

func (r *PaymentSuccessRequest) Validate() error { return validation.Struct(r) }

// RecordSuccess marks the matching registration paid and appends a ledger
// entry.
func (h *PaymentHandler) RecordSuccess(c echo.Context, req *PaymentSuccessRequest) (*UpdateResponse, error) {
	err := h.payments.RecordSuccess(c.Request().Context(),
		req.ParticipantEmail, req.CampID, req.TransactionID, req.Amount)
	if err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}

// HistoryRequest identifies whose payment history to return.
type HistoryRequest struct {
	ParticipantEmail string `query:"participantEmail" validate:"required,email"`
}

func (r *HistoryRequest) Validate() error { return validation.Struct(r) }

// History returns the paid registrations for an email.
func (h *PaymentHandler) History(c echo.Context, req *HistoryRequest) ([]model.PaymentHistoryEntry, error) {
	entries, err := h.payments.History(c.Request().Context(), req.ParticipantEmail)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.PaymentHistoryEntry{}
	}
	return entries, nil
}

// CreatePaymentRequest appends a ledger entry directly.
type CreatePaymentRequest struct {
	CampID           string  `json:"campId" validate:"required,uuid"`
	ParticipantEmail string  `json:"participantEmail" validate:"required,email"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Status           string  `json:"status"`
	TransactionID    string  `json:"transactionId"`
}

func (r *CreatePaymentRequest) Validate() error { return validation.Struct(r) }

// CreateLedgerEntry appends a ledger entry.
func (h *PaymentHandler) CreateLedgerEntry(c echo.Context, req *CreatePaymentRequest) (*InsertResponse, error) {
	id, err := h.payments.RecordEntry(c.Request().Context(), &model.Payment{
		CampID:           req.CampID,
		ParticipantEmail: req.ParticipantEmail,
		Amount:           req.Amount,
		Status:           req.Status,
		TransactionID:    req.TransactionID,
	})
	if err != nil {
		return nil, err
	}
	return &InsertResponse{InsertedID: id}, nil
}

// ListPaymentsRequest identifies whose ledger entries to return.
type ListPaymentsRequest struct {
	ParticipantEmail string `query:"participantEmail" validate:"required,email"`
}

func (r *ListPaymentsRequest) Validate() error { return validation.Struct(r) }

// ListLedger returns the ledger entries for an email.
func (h *PaymentHandler) ListLedger(c echo.Context, req *ListPaymentsRequest) ([]model.Payment, error) {
	entries, err := h.payments.ListLedger(c.Request().Context(), req.ParticipantEmail)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Payment{}
	}
	return entries, nil
}

// PaymentIDRequest identifies a ledger entry by path parameter.
type PaymentIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *PaymentIDRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid payment id", true, &code, nil)
	}
	return nil
}

// GetLedgerEntry returns one ledger entry.
func (h *PaymentHandler) GetLedgerEntry(c echo.Context, req *PaymentIDRequest) (*model.Payment, error) {
	return h.payments.GetLedgerEntry(c.Request().Context(), req.ID)
}

// UpdatePaymentStatusRequest changes a ledger entry's status.
type UpdatePaymentStatusRequest struct {
	ID     string `param:"id" json:"-"`
	Status string `json:"status" validate:"required"`
}

func (r *UpdatePaymentStatusRequest) Validate() error {
	if !validation.IsValidUUID(r.ID) {
		code := errs.CodeInvalidIdentifier
		return errs.NewBadRequestError("Invalid payment id", true, &code, nil)
	}
	return validation.Struct(r)
}

// UpdateLedgerStatus changes the status of a ledger entry.
func (h *PaymentHandler) UpdateLedgerStatus(c echo.Context, req *UpdatePaymentStatusRequest) (*UpdateResponse, error) {
	if err := h.payments.UpdateLedgerStatus(c.Request().Context(), req.ID, req.Status); err != nil {
		return nil, err
	}
	return &UpdateResponse{ModifiedCount: 1}, nil
}

// DeleteLedgerEntry removes a ledger entry; bookkeeping only, never a
// refund.
func (h *PaymentHandler) DeleteLedgerEntry(c echo.Context, req *PaymentIDRequest) (*DeleteResponse, error) {
	if err := h.payments.DeleteLedgerEntry(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{DeletedCount: 1}, nil
}
