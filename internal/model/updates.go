package model

import "time"

// ParticipantProfile carries the mutable participant fields for partial
// updates; nil fields are left untouched.
type ParticipantProfile struct {
	Name             *string `json:"participantName,omitempty"`
	Age              *int    `json:"age,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (p ParticipantProfile) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Phone == nil &&
		p.Gender == nil && p.EmergencyContact == nil
}

// CampUpdate carries the organizer-mutable camp fields for partial updates;
// the identifier and participant count are never updatable through it.
type CampUpdate struct {
	Name                   *string    `json:"campName,omitempty"`
	Image                  *string    `json:"image,omitempty"`
	Fees                   *float64   `json:"campFees,omitempty"`
	DateTime               *time.Time `json:"dateTime,omitempty"`
	Location               *string    `json:"location,omitempty"`
	HealthcareProfessional *string    `json:"healthcareProfessional,omitempty"`
	Description            *string    `json:"description,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (c CampUpdate) Empty() bool {
	return c.Name == nil && c.Image == nil && c.Fees == nil && c.DateTime == nil &&
		c.Location == nil && c.HealthcareProfessional == nil && c.Description == nil
}
