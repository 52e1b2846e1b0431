package port

import "context"

// EmailSender is fire-and-forget from the caller's perspective: failures
// are logged, not retried by this subsystem.
//
//go:generate mockgen -source=notification.go -destination=mock/notification.go -package=mock
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}
