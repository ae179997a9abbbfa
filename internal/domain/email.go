package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEmailData holds data for the registration confirmation email.
type ConfirmationEmailData struct {
	Name       string
	Email      string
	EventTitle string
	EventDate  string
	Time       string
	Location   string
	Message    string // optional note left by the registrant
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConfirmationEmail(ctx context.Context, data *ConfirmationEmailData) error
}

// ConfirmationNotifier delivers confirmation emails off the request path.
// Enqueue never blocks and never fails the caller.
type ConfirmationNotifier interface {
	Enqueue(data *ConfirmationEmailData)
}
