// Package notify emails the site owner when a contact comes in.
package notify

import (
	"fmt"
	"net/smtp"

	"github.com/Zachkp/portfolio-server/internal/config"
	"github.com/Zachkp/portfolio-server/internal/model"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends contact notifications through SMTP.
type Mailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// NewMailer returns a Mailer for cfg. When no recipient is configured the
// messages go to the SMTP user itself.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	if cfg.ToEmail == "" {
		cfg.ToEmail = cfg.User
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.User != "" && m.cfg.Pass != ""
}

// NotifyContact sends one email describing c.
func (m *Mailer) NotifyContact(c *model.Contact) error {
	if !m.Enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.ToEmail}, m.compose(c)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func (m *Mailer) compose(c *model.Contact) []byte {
	service := c.ServiceName()
	if service == "" {
		service = "-"
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", c.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Service: %s (%d)
Message:
%s

---
Contact id %s
`, c.Name, c.Email, service, c.ServicePrice, c.Message, c.ID)

	if c.Attachment != "" {
		body += "Attachment: " + c.Attachment + "\n"
	}

	return []byte("To: " + m.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + c.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
