package errs

// Stable error codes used by the services beyond the HTTP status defaults.
const (
	CodeAccessDenied           = "ACCESS_DENIED"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeDuplicateRegistration  = "REGISTRATION_ALREADY_EXISTS"
	CodeCancellationLocked     = "REGISTRATION_CANCELLATION_LOCKED"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeMissingPaymentInfo     = "MISSING_PAYMENT_INFO"
	CodeMissingFeedbackFields  = "MISSING_FEEDBACK_FIELDS"
	CodeInvalidIdentifier      = "INVALID_IDENTIFIER"
	CodeParticipantNotFound    = "PARTICIPANT_NOT_FOUND"
	CodeCampNotFound           = "CAMP_NOT_FOUND"
	CodePaymentEntryNotFound   = "PAYMENT_ENTRY_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
)
