// Package email delivers notifications over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
)

// SMTPSender sends plain-text UTF-8 messages through one relay.
type SMTPSender struct {
	addr string
	host string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender configures a sender. Authentication is skipped when username is empty.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		auth: auth,
		from: from,
		send: smtp.SendMail,
	}
}

var _ portssvc.NotificationSender = (*SMTPSender)(nil)

func (s *SMTPSender) Send(ctx context.Context, n portssvc.Notification) error {
	if len(n.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, n, time.Now())
	if err := s.send(s.addr, s.auth, s.from, n.To, msg); err != nil {
		return fmt.Errorf("failed to send e-mail %q: %w", n.Subject, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("E-mail sent", slog.String("subject", n.Subject), slog.Int("recipients", len(n.To)))
	return nil
}

func buildMessage(from string, n portssvc.Notification, at time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(n.Body, "\n", "\r\n"))
	return b.Bytes()
}

// LogSender only logs notifications. Used when SMTP is not configured.
type LogSender struct{}

var _ portssvc.NotificationSender = LogSender{}

func (LogSender) Send(ctx context.Context, n portssvc.Notification) error {
	middleware.GetLoggerFromCtx(ctx).Info("E-mail delivery disabled, notification dropped",
		slog.String("subject", n.Subject), slog.Any("to", n.To))
	return nil
}
