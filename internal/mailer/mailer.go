package mailer

import (
	"context"
	"errors"

	"github.com/ukydev/showroom/internal/config"
)

var (
	ErrNotConfigured = errors.New("mail relay is not configured")
	ErrNoRecipient   = errors.New("message has no recipient")
)

// Message is one outbound email with an HTML part and a plain-text fallback.
type Message struct {
	From     string
	FromName string
	To       []string
	Subject  string
	HTML     string
	Text     string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Disabled rejects every message. It stands in when no relay is configured so
// the contact endpoint can answer with a server error instead of panicking.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}

// New picks a relay from configuration: SMTP first, then Resend, which also
// needs SMTP_FROM and SMTP_TO for its sender and recipient. MAIL_NOOP forces
// the logging sender for local development.
func New(cfg config.Config) Sender {
	switch {
	case cfg.MailNoop:
		return NewNoopSender()
	case cfg.SMTP.Configured():
		return NewSMTPSender(cfg.SMTP)
	case cfg.ResendConfigured():
		return NewResendSender(cfg.ResendAPIKey, cfg.SMTP.From)
	default:
		return Disabled{}
	}
}
