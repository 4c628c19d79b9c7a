package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"car-rental/pkg/utils"
)

type Sender interface {
	Send(to, replyTo, subject, body string) error
}

// SMTPSender sends plain-text mail via unauthenticated SMTP (Mailpit-compatible
// in development, relay in production).
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(config utils.EmailConfig) *SMTPSender {
	from := strings.TrimSpace(config.From)
	if from == "" {
		from = "no-reply@car-rental.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", strings.TrimSpace(config.Host), strings.TrimSpace(config.Port)),
		from: from,
	}
}

func (s *SMTPSender) Send(to, replyTo, subject, body string) error {
	msg := buildMessage(s.from, to, replyTo, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, replyTo, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
