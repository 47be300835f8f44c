// internal/adapters/out/mail/passwordReset_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"
)

// PasswordResetMailer implements usecase.ResetMailer on top of an
// EmailClient.
type PasswordResetMailer struct {
	client      EmailClient
	fromAddress string
}

func NewPasswordResetMailer(client EmailClient, fromAddress string) *PasswordResetMailer {
	return &PasswordResetMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	subject := "Reset your Atelier password"

	body := fmt.Sprintf(
		`A password reset was requested for your Atelier account.

Open the link below to choose a new password:

  %s

If you did not request a reset, you can ignore this message.

--
Atelier`,
		strings.TrimSpace(resetLink),
	)

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(toEmail), subject, body)
}
