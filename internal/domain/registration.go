package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(s))
}

// Registration is a single attendee's reservation against one event.
// swagger:model Registration
type Registration struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	Message      string    `json:"message,omitempty"`
	EventID      string    `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, name, email, mobile, message string, registeredAt time.Time) *Registration {
	return &Registration{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(strings.ToLower(email)),
		Mobile:       strings.TrimSpace(mobile),
		Message:      strings.TrimSpace(message),
		EventID:      strings.TrimSpace(eventID),
		RegisteredAt: registeredAt,
	}
}

// Validate reports required-field and format problems.
func (r *Registration) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Email == "" {
		errs = append(errs, "email is required")
	} else if !IsValidEmail(r.Email) {
		errs = append(errs, "invalid email format")
	}
	if r.Mobile == "" {
		errs = append(errs, "mobile is required")
	}
	if r.EventID == "" {
		errs = append(errs, "eventId is required")
	}
	return errs
}

// RegistrationWithEvent bundles a registration with the title of its event.
// EventTitle is empty when the event has been deleted.
type RegistrationWithEvent struct {
	*Registration
	EventTitle string `json:"eventTitle"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context) ([]*RegistrationWithEvent, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	Delete(ctx context.Context, id string) error
	// DeleteByEventID removes every registration of the event and returns how many were removed.
	DeleteByEventID(ctx context.Context, eventID string) (int, error)
}

// RegistrationInput is the public registration payload.
type RegistrationInput struct {
	Name    string
	Email   string
	Mobile  string
	Message string
	EventID string
}

// RegistrationService is the seat accounting core for registrations.
type RegistrationService interface {
	// Register reserves one seat. Returns ErrNotFound, ErrSeatsExhausted or a ValidationError.
	Register(ctx context.Context, in *RegistrationInput) (*Registration, error)
	ListAll(ctx context.Context) ([]*RegistrationWithEvent, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	// Delete removes one registration and restores its seat when the event still exists.
	Delete(ctx context.Context, id string) error
	// DeleteAllForEvent removes every registration of the event and returns the seats restored.
	DeleteAllForEvent(ctx context.Context, eventID string) (int, error)
}
