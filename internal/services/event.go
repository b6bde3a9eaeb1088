package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	publisher      domain.ActivityPublisher
	logger         *slog.Logger
	contextTimeout time.Duration
	notifyTimeout  time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository, publisher domain.ActivityPublisher, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		notifyTimeout:  defaultNotifyTimeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, requesterID string, in domain.EventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || location == "" || in.EventDate.IsZero() || in.EventTime.IsZero() {
		return nil, domain.NewValidationError(domain.MsgMissingEventFields)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().UTC()
	event := domain.NewEvent(title, in.Description, in.EventDate, in.EventTime, location, requesterID, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.publish(ctx, domain.ActivityEventCreated, requesterID, event.ID)
	return event, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, requesterID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCreator(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID, requesterID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, wrapLookup(err)
	}
	if err := authorizeOwner(event.CreatedByID, requesterID); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, requesterID string, patch domain.EventPatch) (*domain.Event, error) {
	if err := normalizePatch(&patch); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkOwner(ctx, eventID, requesterID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		return nil, wrapLookup(err)
	}
	s.publish(ctx, domain.ActivityEventUpdated, requesterID, eventID)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, requesterID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkOwner(ctx, eventID, requesterID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return wrapLookup(err)
	}
	s.publish(ctx, domain.ActivityEventDeleted, requesterID, eventID)
	return nil
}

func (s *eventService) checkOwner(ctx context.Context, eventID, requesterID string) error {
	ownerID, err := s.eventRepo.GetOwnerID(ctx, eventID)
	if err != nil {
		return wrapLookup(err)
	}
	return authorizeOwner(ownerID, requesterID)
}

func (s *eventService) publish(ctx context.Context, activityType, userID, eventID string) {
	if s.publisher == nil {
		return
	}
	a := domain.NewActivity(activityType, userID, s.now())
	a.EventID = eventID
	pubCtx, cancel := notifyContext(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, a); err != nil {
		s.logger.WarnContext(ctx, "publish activity failed", "type", activityType, "event_id", eventID, "error", err)
	}
}

// normalizePatch trims the text fields of patch and rejects required fields set to blank.
func normalizePatch(patch *domain.EventPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.NewValidationError("title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		if location == "" {
			return domain.NewValidationError("location cannot be empty")
		}
		patch.Location = &location
	}
	return nil
}

func wrapLookup(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("failed to access event: %w", err)
}
