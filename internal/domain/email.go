package domain

import (
	"context"
	"time"
)

// OutgoingEmail is a rendered message ready to hand to a Mailer.
type OutgoingEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg OutgoingEmail) error
}

// EmailTemplate names a template set: <name>_subject.txt, <name>.html and <name>.txt.
type EmailTemplate string

const EmailTemplateWelcome EmailTemplate = "welcome"

type EmailRenderer interface {
	Render(name EmailTemplate, data any) (subject, html, text string, err error)
}

// WelcomeEmail is the data the welcome template is executed with.
type WelcomeEmail struct {
	Email      string
	UserID     string
	SignedUpAt time.Time
}

// EmailService sends account notifications.
type EmailService interface {
	SendWelcome(ctx context.Context, user *User) error
}
