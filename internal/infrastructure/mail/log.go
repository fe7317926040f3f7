package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/memberhub/registration-system/internal/api/metrics"
)

// LogMailer writes emails to the log instead of sending them. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("email dispatch (log only)")
	metrics.ConfirmationEmailsTotal.WithLabelValues("sent").Inc()
	return nil
}
