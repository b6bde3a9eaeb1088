package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailRenderer
	logger   *slog.Logger
}

func NewEmailService(mailer domain.Mailer, renderer domain.EmailRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendWelcome(ctx context.Context, user *domain.User) error {
	if user == nil || user.Email == "" {
		return errors.New("welcome email needs a recipient")
	}
	data := domain.WelcomeEmail{Email: user.Email, UserID: user.ID, SignedUpAt: user.CreatedAt}
	msg, err := s.render(domain.EmailTemplateWelcome, user.Email, data)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", domain.EmailTemplateWelcome, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", domain.EmailTemplateWelcome, "user_id", user.ID)
	return nil
}

func (s *emailService) render(name domain.EmailTemplate, to string, data any) (domain.OutgoingEmail, error) {
	subject, html, text, err := s.renderer.Render(name, data)
	if err != nil {
		return domain.OutgoingEmail{}, fmt.Errorf("render %s email: %w", name, err)
	}
	return domain.OutgoingEmail{To: to, Subject: subject, HTML: html, Text: text}, nil
}
