package controllers

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// EventResponse is the client representation of an event.
type EventResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	EventDate   string              `json:"eventDate" example:"2025-08-01"`
	EventTime   string              `json:"eventTime" example:"18:00"`
	Location    string              `json:"location"`
	CreatedByID string              `json:"createdById"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	CreatedBy   *domain.UserSummary `json:"createdBy,omitempty"`
}

func newEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.FormattedDate(),
		EventTime:   e.FormattedTime(),
		Location:    e.Location,
		CreatedByID: e.CreatedByID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string  `json:"title" example:"Launch party"`
	Description *string `json:"description"`
	EventDate   string  `json:"eventDate" example:"2025-08-01"`
	EventTime   string  `json:"eventTime" example:"18:00"`
	Location    string  `json:"location" example:"HQ"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	for _, v := range []string{c.Title, c.EventDate, c.EventTime, c.Location} {
		if strings.TrimSpace(v) == "" {
			return []string{domain.MsgMissingEventFields}
		}
	}
	return nil
}

func (c CreateEventRequest) toInput() (domain.EventInput, error) {
	date, err := domain.ParseEventDate(c.EventDate)
	if err != nil {
		return domain.EventInput{}, err
	}
	clock, err := domain.ParseEventTime(c.EventTime)
	if err != nil {
		return domain.EventInput{}, err
	}
	return domain.EventInput{
		Title:       c.Title,
		Description: c.Description,
		EventDate:   date,
		EventTime:   clock,
		Location:    c.Location,
	}, nil
}

// optionalString distinguishes an absent field from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UpdateEventRequest is the request body for PUT /events/{id}. All fields are optional;
// omitted fields are unchanged and a null description clears it.
type UpdateEventRequest struct {
	Title       optionalString `json:"title" swaggertype:"string"`
	Description optionalString `json:"description" swaggertype:"string"`
	EventDate   optionalString `json:"eventDate" swaggertype:"string" example:"2025-08-02"`
	EventTime   optionalString `json:"eventTime" swaggertype:"string" example:"19:30"`
	Location    optionalString `json:"location" swaggertype:"string"`
}

// Validate implements Validator. Required fields may be omitted but never blanked.
func (u UpdateEventRequest) Validate() []string {
	fields := []struct {
		name string
		v    optionalString
	}{
		{"title", u.Title},
		{"eventDate", u.EventDate},
		{"eventTime", u.EventTime},
		{"location", u.Location},
	}
	for _, f := range fields {
		if f.v.Set && (f.v.Value == nil || strings.TrimSpace(*f.v.Value) == "") {
			return []string{f.name + " cannot be empty"}
		}
	}
	return nil
}

func (u UpdateEventRequest) toPatch() (domain.EventPatch, error) {
	patch := domain.EventPatch{
		Title:          u.Title.Value,
		Location:       u.Location.Value,
		SetDescription: u.Description.Set,
		Description:    u.Description.Value,
	}
	if u.EventDate.Set {
		date, err := domain.ParseEventDate(*u.EventDate.Value)
		if err != nil {
			return domain.EventPatch{}, err
		}
		patch.EventDate = &date
	}
	if u.EventTime.Set {
		clock, err := domain.ParseEventTime(*u.EventTime.Value)
		if err != nil {
			return domain.EventPatch{}, err
		}
		patch.EventTime = &clock
	}
	return patch, nil
}
