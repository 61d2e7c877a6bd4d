package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
)

const componentName = "notify"

// SMTPConfig configures the email integration.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// sendMailFunc matches smtp.SendMail. Swappable for tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPChannel delivers messages as plain-text email.
type SMTPChannel struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPChannel creates the email channel.
func NewSMTPChannel(cfg SMTPConfig) *SMTPChannel {
	return &SMTPChannel{cfg: cfg, sendMail: smtp.SendMail}
}

// Name implements Channel.
func (c *SMTPChannel) Name() string {
	return "email"
}

// Send delivers one message. The context is honored up front only; the
// smtp package offers no cancellation mid-transfer.
func (c *SMTPChannel) Send(ctx context.Context, recipient string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recipient == "" {
		return exception.New(componentName, "no notification recipient configured", nil, false)
	}

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	payload := buildMIMEMessage(c.cfg.From, recipient, msg)
	if err := c.sendMail(addr, auth, c.cfg.From, []string{recipient}, payload); err != nil {
		return exception.New(componentName, fmt.Sprintf("failed to send email via '%s'", addr), err, true)
	}
	return nil
}

func buildMIMEMessage(from, to string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
