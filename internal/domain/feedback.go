package domain

import (
	"context"
	"strings"
	"time"
)

// Feedback rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a visitor review. Only verified feedback is shown publicly.
// swagger:model Feedback
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate reports required-field and rating problems.
func (f *Feedback) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name is required")
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(f.Comment) == "" {
		errs = append(errs, "comment is required")
	}
	return errs
}

// FeedbackRepository defines storage for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	// List returns feedback newest first; verifiedOnly filters to verified entries.
	List(ctx context.Context, verifiedOnly bool) ([]*Feedback, error)
	Verify(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// FeedbackService defines feedback submission and moderation.
type FeedbackService interface {
	Submit(ctx context.Context, fb *Feedback) (*Feedback, error)
	ListVerified(ctx context.Context) ([]*Feedback, error)
	ListAll(ctx context.Context) ([]*Feedback, error)
	Verify(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
