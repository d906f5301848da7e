package infra

import (
	"fmt"
	"net/smtp"

	"github.com/santyarena1/soundtec-fin/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending account emails.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Enabled reports whether SMTP is configured at all; without a host the
// mailer is a no-op and temporary passwords only travel in API responses.
func (m *Mailer) Enabled() bool { return m.host != "" }

// SendTempPassword mails a freshly generated temporary password.
func (m *Mailer) SendTempPassword(to, password string) error {
	if !m.Enabled() {
		return nil
	}

	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = "Acceso al sistema de listas de precios"
	e.Text = []byte(fmt.Sprintf(
		"Se generó una contraseña temporal para tu cuenta: %s\n\n"+
			"Deberás cambiarla al iniciar sesión.\n", password))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
