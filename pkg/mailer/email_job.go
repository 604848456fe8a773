package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Verification-code deliveries set Template to "verification_code" and carry
// the code in Data; plain notifications use Text/HTML directly.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
