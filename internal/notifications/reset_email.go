package notifications

import (
	"context"
	"fmt"
	"strings"
)

// ResetEmailSender delivers password reset links. It satisfies the
// coordinator's EmailSender interface.
type ResetEmailSender struct {
	BaseURL string // app/front-end base URL the reset link points at
}

// SendResetCode emails the reset link carrying the code to the given address.
func (s *ResetEmailSender) SendResetCode(ctx context.Context, toAddress string, code string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(s.BaseURL, "/"), code)

	bodyHTML := fmt.Sprintf(`
        <h2>Reset Your Password</h2>
        <p>Hello,</p>
        <p>You requested to reset your MoodyMe password. Click the link below to reset it. This link will expire in 1 hour.</p>
        <p><a href="%s">Reset Password</a></p>
        <p>If you didn't request this, please ignore this email.</p>
        <p style="font-size: 12px;">This is an automated email. Please do not reply.</p>
    `, resetLink)

	bodyText := fmt.Sprintf(
		"You requested to reset your MoodyMe password. Open the link below to reset it. "+
			"This link will expire in 1 hour.\n\n%s\n\nIf you didn't request this, please ignore this email.",
		resetLink,
	)

	return SendEmailNotification(ctx, toAddress, "Reset Your Password - MoodyMe", bodyHTML, bodyText)
}
