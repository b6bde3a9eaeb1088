package domain

import (
	"context"
	"strings"
	"time"
)

// Wire formats for event dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event is a user-owned calendar entry. CreatedByID is set at creation and never changes.
// EventDate carries only a calendar date (midnight UTC); EventTime carries only a
// wall-clock time (on 0000-01-01 UTC).
type Event struct {
	ID          string
	Title       string
	Description *string
	EventDate   time.Time
	EventTime   time.Time
	Location    string
	CreatedByID string
	CreatedBy   *UserSummary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title string, description *string, eventDate, eventTime time.Time, location, createdByID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		EventDate:   eventDate,
		EventTime:   eventTime,
		Location:    location,
		CreatedByID: createdByID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// FormattedDate returns the event date as YYYY-MM-DD.
func (e *Event) FormattedDate() string { return e.EventDate.Format(DateLayout) }

// FormattedTime returns the event time as HH:MM.
func (e *Event) FormattedTime() string { return e.EventTime.Format(TimeLayout) }

// ParseEventDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date
// at midnight UTC.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, NewValidationError("Invalid event date")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseEventTime accepts HH:MM or HH:MM:SS and returns the time of day on 0000-01-01 UTC.
func ParseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError("Invalid event time")
}

// EventPatch describes a partial update. Nil fields are left untouched.
// Description is applied only when SetDescription is true; a nil Description then clears it.
type EventPatch struct {
	Title          *string
	Description    *string
	SetDescription bool
	EventDate      *time.Time
	EventTime      *time.Time
	Location       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && !p.SetDescription && p.EventDate == nil && p.EventTime == nil && p.Location == nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// GetByID returns the event with CreatedBy populated.
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetOwnerID returns only the owner of the event, for authorization checks.
	GetOwnerID(ctx context.Context, id string) (string, error)
	// ListByCreator returns the owner's events ordered by date, then time, ascending.
	ListByCreator(ctx context.Context, createdByID string) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventInput carries the fields of a new event.
type EventInput struct {
	Title       string
	Description *string
	EventDate   time.Time
	EventTime   time.Time
	Location    string
}

// EventService defines the business logic for events. Every single-event operation
// returns ErrNotFound for a missing event and ErrForbidden when requesterID is not the owner.
type EventService interface {
	CreateEvent(ctx context.Context, requesterID string, in EventInput) (*Event, error)
	ListMyEvents(ctx context.Context, requesterID string) ([]*Event, error)
	GetEvent(ctx context.Context, eventID, requesterID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, requesterID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, requesterID string) error
}
