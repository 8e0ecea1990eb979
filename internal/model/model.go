// Package model defines the core domain types for the medical camp
// registration platform: camps, participants, payments, feedback and users.
package model

import "time"

// Role classifies a user account.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
)

// ConfirmationStatus tracks organizer-side acknowledgment of a registration.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "Pending"
	ConfirmationConfirmed ConfirmationStatus = "Confirmed"
)

// PaymentStatus tracks whether a registration has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

// Camp is an organizer-published medical event. ParticipantCount equals the
// number of non-cancelled participants referencing the camp and is mutated
// only inside registration transactions.
type Camp struct {
	ID                     string    `json:"_id"`
	Name                   string    `json:"campName"`
	Image                  string    `json:"image"`
	Fees                   float64   `json:"campFees"`
	DateTime               time.Time `json:"dateTime"`
	Location               string    `json:"location"`
	HealthcareProfessional string    `json:"healthcareProfessional"`
	Description            string    `json:"description"`
	ParticipantCount       int       `json:"participantCount"`
	CreatedAt              time.Time `json:"createdAt"`
}

// Participant links a user's email to one camp and carries the composite
// confirmation/payment status.
type Participant struct {
	ID                 string             `json:"_id"`
	CampID             string             `json:"campId"`
	UserEmail          string             `json:"participantEmail"`
	Name               string             `json:"participantName"`
	Age                int                `json:"age,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	Gender             string             `json:"gender,omitempty"`
	EmergencyContact   string             `json:"emergencyContact,omitempty"`
	ConfirmationStatus ConfirmationStatus `json:"confirmationStatus"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus"`
	TransactionID      string             `json:"transactionId,omitempty"`
	PaymentDate        *time.Time         `json:"paymentDate,omitempty"`
	AmountPaid         float64            `json:"amountPaid,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// CancellationLocked reports whether the registration may no longer be
// withdrawn. Both conditions are required; either one alone does not lock.
func (p *Participant) CancellationLocked() bool {
	return p.PaymentStatus == PaymentPaid && p.ConfirmationStatus == ConfirmationConfirmed
}

// Payment is a standalone ledger entry, distinct from the participant's own
// payment fields. Deleting one removes the record; it is not a refund.
type Payment struct {
	ID               string    `json:"_id"`
	CampID           string    `json:"campId"`
	ParticipantEmail string    `json:"participantEmail"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
	TransactionID    string    `json:"transactionId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Feedback is a write-once record of a participant's camp review.
type Feedback struct {
	ID            string    `json:"_id"`
	CampID        string    `json:"campId"`
	ParticipantID string    `json:"participantId"`
	Rating        int       `json:"rating"`
	FeedbackText  string    `json:"feedbackText"`
	CreatedAt     time.Time `json:"date"`
}

// User is an account identified by its unique email.
type User struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentHistoryEntry is the fixed projection returned by the payment
// history listing; the raw participant record is never exposed there.
type PaymentHistoryEntry struct {
	CampName           string             `json:"campName"`
	Fees               float64            `json:"campFees"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus"`
	ConfirmationStatus ConfirmationStatus `json:"confirmationStatus"`
	TransactionID      string             `json:"transactionId"`
	PaymentDate        *time.Time         `json:"paymentDate"`
}
