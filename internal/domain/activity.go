package domain

import (
	"context"
	"time"
)

// Activity types published on the activity feed.
const (
	ActivityUserRegistered = "user_registered"
	ActivityEventCreated   = "event_created"
	ActivityEventUpdated   = "event_updated"
	ActivityEventDeleted   = "event_deleted"
)

// ActivityVersion is the schema version stamped on every Activity.
const ActivityVersion = 1

// Activity is a notification that something changed for a user.
type Activity struct {
	Type    string    `json:"event"`
	Version int       `json:"version"`
	UserID  string    `json:"user_id"`
	EventID string    `json:"event_id,omitempty"`
	Email   string    `json:"email,omitempty"`
	TS      time.Time `json:"ts"`
}

// NewActivity returns an Activity of the given type stamped with the current version.
func NewActivity(activityType, userID string, ts time.Time) Activity {
	return Activity{Type: activityType, Version: ActivityVersion, UserID: userID, TS: ts.UTC()}
}

// ActivityPublisher delivers activities to downstream consumers.
type ActivityPublisher interface {
	Publish(ctx context.Context, a Activity) error
	Close() error
}
