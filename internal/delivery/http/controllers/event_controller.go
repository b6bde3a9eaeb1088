package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

const msgEventNotFound = "Event not found"

// EventListResponse is the response body for GET /events/my.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// EventEnvelope is the response body for GET /events/{id}.
type EventEnvelope struct {
	Event EventResponse `json:"event"`
}

// EventMutationResponse is the response body for a created or updated event.
type EventMutationResponse struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create an event owned by the caller. eventDate is YYYY-MM-DD (an RFC 3339 timestamp is accepted and its date kept); eventTime is HH:MM or HH:MM:SS.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventMutationResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.writeError(w, r, err, "", "")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), id.UserID, in)
	if err != nil {
		c.writeError(w, r, err, "", "Server error creating event")
		return
	}
	h.WriteJSON(w, http.StatusCreated, EventMutationResponse{
		Message: "Event created successfully",
		Event:   newEventResponse(event),
	})
}

// ListMyEvents godoc
// @Summary List my events
// @Description Returns the caller's events ordered by date, then time, ascending.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListResponse
// @Failure 401 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /events/my [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	events, err := c.Service.ListMyEvents(r.Context(), id.UserID)
	if err != nil {
		c.writeError(w, r, err, "", "Server error fetching events")
		return
	}
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e))
	}
	h.WriteJSON(w, http.StatusOK, EventListResponse{Events: out})
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns one of the caller's events with its creator.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventEnvelope
// @Failure 401 {object} helpers.MessageResponse
// @Failure 403 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID, id.UserID)
	if err != nil {
		c.writeError(w, r, err, "Not authorized to view this event", "Server error fetching event")
		return
	}
	h.WriteJSON(w, http.StatusOK, EventEnvelope{Event: newEventResponse(event)})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially update one of the caller's events. Omitted fields are unchanged; a null description clears it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventMutationResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.MessageResponse
// @Failure 403 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		c.writeError(w, r, err, "", "")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, id.UserID, patch)
	if err != nil {
		c.writeError(w, r, err, "Not authorized to update this event", "Server error updating event")
		return
	}
	h.WriteJSON(w, http.StatusOK, EventMutationResponse{
		Message: "Event updated successfully",
		Event:   newEventResponse(event),
	})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.MessageResponse
// @Failure 403 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, id.UserID); err != nil {
		c.writeError(w, r, err, "Not authorized to delete this event", "Server error deleting event")
		return
	}
	h.WriteJSON(w, http.StatusOK, h.MessageResponse{Message: "Event deleted successfully"})
}

// eventIDFromPath returns the {id} path value. Anything that is not a UUID cannot name
// an event, so it is answered as a miss.
func eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	parsed, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.WriteJSONError(w, http.StatusNotFound, msgEventNotFound)
		return "", false
	}
	return parsed.String(), true
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg, serverMsg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.WriteJSONError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, msgEventNotFound)
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, forbiddenMsg)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, serverMsg)
	}
}
