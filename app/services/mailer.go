package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.Port > 0 && c.From != ""
}

type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

func NewMailer(cfg Config) *Mailer {
	m := &Mailer{config: cfg}
	if cfg.Enabled() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	if m.dialer == nil {
		return fmt.Errorf("mailer not configured")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		zap.S().Errorf("Mailer.SendHTMLEmail: sending to %s failed: %v", to, err)
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
