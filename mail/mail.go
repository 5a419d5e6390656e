package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"

	"github.com/learnhub/learnhub/config"
)

// Sender delivers account emails. Implementations must respect the context
// deadline.
type Sender interface {
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

// Mailer sends account emails over SMTP.
type Mailer struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromAddress string
	useStartTLS bool
	logger      *slog.Logger
}

var _ Sender = (*Mailer)(nil)

// New creates a new Mailer instance from the SMTP configuration.
func New(cfg config.Smtp, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:        cfg.Host,
		port:        cfg.Port,
		username:    cfg.Username,
		password:    cfg.Password,
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		useStartTLS: cfg.UseStartTLS,
		logger:      logger,
	}
}

// SendPasswordResetCode mails a one-time password reset code. The send is
// synchronous; the caller decides what a delivery failure means.
func (m *Mailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	// STARTTLS upgrades the plain connection when the server offers it;
	// otherwise the session uses implicit TLS from the first byte.
	var mail *mailyak.MailYak
	if m.useStartTLS {
		mail = mailyak.New(addr, auth)
	} else {
		var err error
		mail, err = mailyak.NewWithTLS(addr, auth, nil)
		if err != nil {
			return fmt.Errorf("failed to create smtp client: %w", err)
		}
	}

	mail.To(email)
	mail.From(m.fromAddress)
	mail.FromName(m.fromName)
	mail.Subject("Password Reset Code")
	mail.HTML().Set(fmt.Sprintf(`
		<h1>Password Reset</h1>
		<p>Your one-time code is:</p>
		<h2>%s</h2>
		<p>It expires in 5 minutes. If you did not request a reset, ignore this email.</p>
	`, code))

	// Send email with context timeout
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send password reset email: %w", err)
		}
	}

	m.logger.Info("sent password reset email", "email", email)
	return nil
}
