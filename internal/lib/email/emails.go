package email

// SendRegistrationConfirmedEmail notifies a participant that an organizer
// confirmed their camp registration.
func (c *Client) SendRegistrationConfirmedEmail(to, participantName, campName, campDate string) error {
	data := map[string]string{
		"ParticipantName": participantName,
		"CampName":        campName,
		"CampDate":        campDate,
	}

	return c.SendEmail(
		to,
		"Your camp registration is confirmed",
		TemplateRegistrationConfirmed,
		data,
	)
}
