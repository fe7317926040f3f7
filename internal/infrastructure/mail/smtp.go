package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/memberhub/registration-system/internal/api/metrics"
)

// SMTPMailer dispatches emails through an SMTP relay using go-mail. Sends are
// one-shot; failed sends are reported to the caller and never retried here.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []gomail.Option{gomail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.ConfirmationEmailsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("send email: %w", err)
	}
	metrics.ConfirmationEmailsTotal.WithLabelValues("sent").Inc()
	return nil
}
