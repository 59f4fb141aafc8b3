package mailer

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// NoopSender logs messages instead of delivering them.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, msg Message) error {
	log.WithFields(log.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Noop email send")
	return nil
}
