package services

import (
	"context"
	"fmt"
	"log/slog"

	"calbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	return s.send(ctx, domain.EmailWelcome, data.Email, data)
}

// SendBookingEmail renders one of the booking templates for a single recipient.
func (s *emailService) SendBookingEmail(ctx context.Context, templateName string, data *domain.BookingEmailData) error {
	if data == nil {
		return fmt.Errorf("booking email data is nil")
	}
	if data.RecipientEmail == "" {
		return fmt.Errorf("booking email has no recipient")
	}
	return s.send(ctx, templateName, data.RecipientEmail, data)
}

func (s *emailService) send(ctx context.Context, templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.DebugContext(ctx, "email sent", "template", templateName, "to", to)
	return nil
}
