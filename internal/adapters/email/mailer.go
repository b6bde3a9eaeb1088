package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventhub/internal/domain"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"

	charset = "UTF-8"
)

// SESConfig holds credentials for AWS SES. Empty keys leave requests unsigned,
// which only suits a local SES emulator.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sesAPI is the part of *ses.Client the mailer calls.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer picks a Mailer by provider. Unknown providers fall back to the noop mailer.
func NewMailer(cfg MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch cfg.Provider {
	case ProviderSES:
		if cfg.FromAddress == "" {
			return nil, errors.New("ses mailer requires a from address")
		}
		if cfg.SES.InsecureSkipVerify {
			logger.Warn("SES TLS verification disabled")
		}
		from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
		return &sesMailer{client: newSESClient(cfg.SES), from: from.String(), logger: logger}, nil
	case ProviderNoop, "":
	default:
		logger.Warn("unknown email provider, emails will be dropped", "provider", cfg.Provider)
	}
	return noopMailer{logger: logger}, nil
}

func newSESClient(cfg SESConfig) *ses.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	awsCfg := aws.Config{
		Region:     cfg.Region,
		HTTPClient: &http.Client{Transport: transport},
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	return ses.NewFromConfig(awsCfg)
}

type sesMailer struct {
	client sesAPI
	from   string
	logger *slog.Logger
}

func (m *sesMailer) Send(ctx context.Context, msg domain.OutgoingEmail) error {
	out, err := m.client.SendEmail(ctx, sendEmailInput(m.from, msg))
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	m.logger.DebugContext(ctx, "ses accepted email", "message_id", aws.ToString(out.MessageId))
	return nil
}

// sendEmailInput leaves out empty bodies; SES rejects empty content blocks.
func sendEmailInput(from string, msg domain.OutgoingEmail) *ses.SendEmailInput {
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = content(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = content(msg.Text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message:     &types.Message{Subject: content(msg.Subject), Body: body},
	}
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charset)}
}

type noopMailer struct {
	logger *slog.Logger
}

func (m noopMailer) Send(ctx context.Context, msg domain.OutgoingEmail) error {
	m.logger.DebugContext(ctx, "email dropped", "to", msg.To, "subject", msg.Subject)
	return nil
}
