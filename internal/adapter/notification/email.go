package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer stands in for a real email gateway: it logs the send and
// returns. Template rendering and delivery live outside this service.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendEmail(_ context.Context, to, subject, body string) error {
	m.logger.Info("sending email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}
