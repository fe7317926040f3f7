package ports

import "context"

// Mailer dispatches a single HTML email. Implementations must not retry;
// the caller decides how a failed send is reported.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
