package checkout

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPTransport renders emails as plain text and sends them through gomail.
type SMTPTransport struct {
	cfg    SMTPConfig
	dialer sender
}

func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from email are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPTransport{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Deliver(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.To == "" {
		return fmt.Errorf("smtp: recipient required")
	}
	return t.dialer.DialAndSend(t.compose(e))
}

func (t *SMTPTransport) compose(e Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", t.cfg.FromEmail, t.cfg.FromName)
	msg.SetHeader("To", e.To)
	if e.Template == TemplateOwner {
		if replyTo := e.Params["client_email"]; replyTo != "" {
			msg.SetHeader("Reply-To", replyTo)
		}
	}
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.Text())
	return msg
}
