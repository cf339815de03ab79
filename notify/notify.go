/*
Package notify sends best-effort email notifications.

Submissions and cancellations notify the administrator mailbox. Failure to
send is never fatal: callers log the error and the data mutation stands.
*/
package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// Notifier delivers a human-readable notification. Implementations must be
// safe to call after the triggering mutation has already been persisted.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// =============================================================================
// SMTP MAILER
// =============================================================================

// Mailer sends notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     []string
}

func NewMailer(host string, port int, username, password, from string, to []string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (m *Mailer) Notify(_ context.Context, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// =============================================================================
// NOOP
// =============================================================================

// Noop is used when no SMTP transport is configured.
type Noop struct{}

func (Noop) Notify(context.Context, string, string) error { return nil }
