// Package mail delivers contact-form submissions to the site owner via
// an outbound SMTP relay. Delivery is always asynchronous; see Dispatcher.
package mail

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/models"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a single contact message.
type Sender interface {
	Send(ctx context.Context, msg *models.ContactMessage) error
}

// smtpSender sends mail through the configured SMTP relay.
type smtpSender struct {
	client *gomail.Client
	from   string
	to     string
}

// NewSMTPSender builds a Sender from the application configuration.
func NewSMTPSender(cfg *config.Config) (Sender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &smtpSender{
		client: client,
		from:   cfg.MailFrom,
		to:     cfg.MailTo,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg *models.ContactMessage) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(s.to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}

	m.Subject(fmt.Sprintf("New contact message from %s", msg.Name))
	m.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Message,
	))

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
