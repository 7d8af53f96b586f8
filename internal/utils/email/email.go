package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending report emails via SMTP with STARTTLS.
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers an HTML report email to the configured recipient.
func (s *Sender) Send(subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = s.cfg.EmailFrom
	e.To = []string{s.cfg.EmailTo}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	if err := e.SendWithStartTLS(addr, auth, tlsConfig); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", s.cfg.EmailTo, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.EmailTo, subject)
	return nil
}
