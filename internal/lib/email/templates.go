package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateRegistrationConfirmed corresponds to
	// templates/emails/registration_confirmed.html
	TemplateRegistrationConfirmed Template = "registration_confirmed"
)
