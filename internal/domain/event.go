package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Event is a schedulable happening with a finite seat capacity.
// LeftSeats is owned by the seat accounting services and always equals
// AvailableSeats(TotalSeats, live registration count).
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	TotalSeats  int       `json:"totalSeats"`
	LeftSeats   int       `json:"leftSeats"`
	Tags        string    `json:"tags"`
	Description string    `json:"description"`
	Highlights  string    `json:"highlights"`
	Organizer   string    `json:"organizer"`
	BannerPath  string    `json:"bannerPath"`
	BannerURL   string    `json:"bannerUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEvent returns an Event with LeftSeats seeded from totalSeats. A new event has no
// registrations, so every seat is available. ID is set by the repository on create.
func NewEvent(title, date, eventTime, location string, totalSeats int, createdAt time.Time) *Event {
	return &Event{
		Title:      title,
		Date:       date,
		Time:       eventTime,
		Location:   location,
		TotalSeats: totalSeats,
		LeftSeats:  totalSeats,
		CreatedAt:  createdAt,
	}
}

// MaxTotalSeats is the largest capacity the events.total_seats INTEGER column holds.
const MaxTotalSeats = math.MaxInt32

// AvailableSeats is the single formula used on every write path: capacity minus live
// registrations, never negative.
func AvailableSeats(totalSeats, registered int) int {
	if left := totalSeats - registered; left > 0 {
		return left
	}
	return 0
}

// Validate reports the required-field and capacity problems of e.
func (e *Event) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(e.Date) == "" {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(e.Time) == "" {
		errs = append(errs, "time is required")
	}
	if strings.TrimSpace(e.Location) == "" {
		errs = append(errs, "location is required")
	}
	if e.TotalSeats < 0 {
		errs = append(errs, "totalSeats must be zero or greater")
	}
	if e.TotalSeats > MaxTotalSeats {
		errs = append(errs, fmt.Sprintf("totalSeats must be at most %d", MaxTotalSeats))
	}
	return errs
}

// EventUpdate is a partial event edit. Nil fields are left untouched. LeftSeats is not
// editable: when TotalSeats is set it is recomputed from the live registration count.
type EventUpdate struct {
	Title       *string
	Date        *string
	Time        *string
	Location    *string
	TotalSeats  *int
	Tags        *string
	Description *string
	Highlights  *string
	Organizer   *string
}

// Apply copies the set fields of u onto e. It never touches LeftSeats.
func (u *EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Time != nil {
		e.Time = *u.Time
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.TotalSeats != nil {
		e.TotalSeats = *u.TotalSeats
	}
	if u.Tags != nil {
		e.Tags = *u.Tags
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Highlights != nil {
		e.Highlights = *u.Highlights
	}
	if u.Organizer != nil {
		e.Organizer = *u.Organizer
	}
}

// Transactor runs fn as one unit of work. Repositories called with the context passed to
// fn join that unit of work. Nested calls reuse the outer unit.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetForUpdate loads the event and holds its row lock until the surrounding
	// unit of work ends. Outside WithTx it behaves like GetByID.
	GetForUpdate(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// Save persists every editable column of event, including seat counts.
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventInput is the payload for creating an event.
type EventInput struct {
	Title       string
	Date        string
	Time        string
	Location    string
	TotalSeats  int
	Tags        string
	Description string
	Highlights  string
	Organizer   string
	Banner      *BannerUpload
}

// EventEdit is the payload for updating an event. RemoveBanner clears the current
// banner; Banner replaces it.
type EventEdit struct {
	Update       EventUpdate
	Banner       *BannerUpload
	RemoveBanner bool
}

// EventService defines event management including capacity edits.
type EventService interface {
	CreateEvent(ctx context.Context, in *EventInput) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, edit *EventEdit) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
