package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/jonathan/press-monitor/internal/types"
)

// EmailConfig holds SMTP delivery settings. The server is expected to speak
// implicit TLS (port 465 style).
type EmailConfig struct {
	SMTPHost string `json:"smtp_host" validate:"required"`
	SMTPPort int    `json:"smtp_port" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty"`
	From     string `json:"from" validate:"required,email"`
	To       string `json:"to" validate:"required,email"`
}

// EmailNotifier implements Notifier over SMTP.
type EmailNotifier struct {
	config EmailConfig
}

var _ Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates an SMTP notifier.
func NewEmailNotifier(config EmailConfig) *EmailNotifier {
	return &EmailNotifier{config: config}
}

// Notify implements Notifier. It sends a single message carrying the whole
// batch.
func (n *EmailNotifier) Notify(ctx context.Context, company string, releases []types.PressRelease, summaries map[string]string) error {
	if len(releases) == 0 {
		return nil
	}

	subject := buildSubject(len(releases))
	body := buildBody(releases, summaries)
	msg := n.buildMessage(subject, body)

	if err := n.send(ctx, msg); err != nil {
		return fmt.Errorf("sending notification for %s: %w", company, err)
	}
	return nil
}

// buildMessage assembles the RFC 5322 message bytes.
func (n *EmailNotifier) buildMessage(subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + n.config.From + "\r\n")
	sb.WriteString("To: " + n.config.To + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(sb.String())
}

// send delivers the message over an implicit-TLS SMTP session.
func (n *EmailNotifier) send(ctx context.Context, msg []byte) error {
	addr := net.JoinHostPort(n.config.SMTPHost, strconv.Itoa(n.config.SMTPPort))

	dialer := &tls.Dialer{NetDialer: &net.Dialer{}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, n.config.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("starting SMTP session: %w", err)
	}
	defer client.Close()

	if n.config.Password != "" {
		auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(n.config.From); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}
	if err := client.Rcpt(n.config.To); err != nil {
		return fmt.Errorf("SMTP RCPT failed: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}

	return client.Quit()
}
