package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers plain-text email over SMTP. Delivery is best effort;
// callers log and swallow failures.
type Sender struct {
	host     string
	port     string
	from     string
	password string
	enabled  bool
}

func NewSender(host, port, from, password string, enabled bool) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		enabled:  enabled,
	}
}

func (s *Sender) Send(to, subject, body string) error {
	if !s.enabled || s.from == "" {
		return fmt.Errorf("email sending is disabled")
	}

	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", s.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	return smtp.SendMail(
		s.host+":"+s.port,
		smtp.PlainAuth("", s.from, s.password, s.host),
		s.from,
		[]string{to},
		[]byte(msg),
	)
}
