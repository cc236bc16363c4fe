package services

import (
	"fmt"
	"net/smtp"

	"dolanlur/config"
)

// Mailer sends plain SMTP mail; used by the password-reset flow.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(cfg config.SMTP) (*Mailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("missing required SMTP configuration")
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		addr: cfg.Host + ":" + cfg.Port,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from: from,
	}, nil
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=utf-8\r\n" +
			"\r\n" + body + "\r\n")
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
