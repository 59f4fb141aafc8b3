package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	log "github.com/sirupsen/logrus"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a ResendSender with the given API key and default from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send sends a single email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}
	from := msg.From
	if from == "" {
		from = s.from
	}
	if from == "" {
		return ErrNotConfigured
	}
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, from)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.WithError(err).WithField("subject", msg.Subject).Error("Resend send failed")
		return fmt.Errorf("resend send: %w", err)
	}

	log.WithFields(log.Fields{
		"message_id": sent.Id,
		"to":         msg.To,
		"subject":    msg.Subject,
	}).Info("Sent email")
	return nil
}
