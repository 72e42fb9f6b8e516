package notifications

import (
	"context"
	"errors"

	appcfg "moodyme/backend/pkg/config"
	mmlog "moodyme/backend/pkg/log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailNotifier is the outbound email capability.
type EmailNotifier interface {
	SendEmail(ctx context.Context, to, subject, bodyHTML, bodyText string) error
}

// SESEmailNotifier implements EmailNotifier using AWS SES.
type SESEmailNotifier struct {
	client *sesv2.Client
	sender string
}

// DefaultEmailNotifier is the notifier used by the application. It is nil when
// SES is not configured; SendEmailNotification then logs instead of sending.
var DefaultEmailNotifier EmailNotifier

// InitEmailService initializes the default email notifier from configuration.
func InitEmailService() {
	log := mmlog.L.Named("InitEmailService")

	awsRegion := appcfg.Cfg.AWSRegion
	senderEmail := appcfg.Cfg.SESEmailSender

	if awsRegion == "" || senderEmail == "" {
		log.Warn("AWS SES email service is not configured (missing AWS_REGION or SES_EMAIL_SENDER). Emails will be logged, not sent.")
		DefaultEmailNotifier = nil
		return
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		log.Error("Failed to load AWS SDK config for SES", zap.Error(err))
		DefaultEmailNotifier = nil
		return
	}

	DefaultEmailNotifier = &SESEmailNotifier{
		client: sesv2.NewFromConfig(cfg),
		sender: senderEmail,
	}
	log.Info("AWS SES email service initialized.", zap.String("sender", senderEmail), zap.String("region", awsRegion))
}

// SendEmailNotification sends an email through the configured notifier,
// falling back to a log line when none is configured.
func SendEmailNotification(ctx context.Context, to, subject, bodyHTML, bodyText string) error {
	if DefaultEmailNotifier == nil {
		mmlog.L.Info("--- SIMULATING EMAIL SEND (Fallback) ---",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}
	return DefaultEmailNotifier.SendEmail(ctx, to, subject, bodyHTML, bodyText)
}

// SendEmail sends through SES.
func (s *SESEmailNotifier) SendEmail(ctx context.Context, to, subject, bodyHTML, bodyText string) error {
	if s.client == nil {
		return errors.New("SES client not initialized")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.sender,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(bodyHTML),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(bodyText),
						Charset: aws.String("UTF-8"),
					},
				},
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		mmlog.L.Error("Failed to send email via SES", zap.Error(err), zap.String("recipient", to))
		return err
	}

	mmlog.L.Info("Successfully sent email", zap.String("recipient", to), zap.String("subject", subject))
	return nil
}
