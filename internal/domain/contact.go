package domain

import (
	"context"
	"strings"
	"time"
)

// ContactMessage is a message submitted through the public contact form.
// swagger:model ContactMessage
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate reports required-field problems.
func (m *ContactMessage) Validate() []string {
	var errs []string
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		errs = append(errs, "email is required")
	} else if !IsValidEmail(m.Email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(m.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// ContactRepository defines storage for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	// List returns messages newest first.
	List(ctx context.Context) ([]*ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ContactService defines contact form submission and moderation.
type ContactService interface {
	Submit(ctx context.Context, msg *ContactMessage) (*ContactMessage, error)
	List(ctx context.Context) ([]*ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*ContactMessage, error)
	Delete(ctx context.Context, id string) error
}
