package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

// Sender delivers HTML emails.
type Sender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// Mailer represents an email sender.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// Email represents an email message.
type Email struct {
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	Body     string
	HTMLBody string
}

// Config holds SMTP configuration for sending emails.
type Config struct {
	Driver   string `env:"DRIVER"   envDefault:"log"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"     envDefault:"reset@builtbyrain.com"`
}

// NewSender returns the Sender selected by cfg.Driver.
func NewSender(logger *zerolog.Logger, cfg Config) Sender {
	if cfg.Driver == DriverSMTP {
		return NewMailer(logger, cfg)
	}

	logger.Warn().Msg("SMTP driver disabled, emails will only be logged")
	return NewLogMailer(logger, cfg.From)
}

// NewMailer creates a new Mailer instance with the given configuration.
func NewMailer(logger *zerolog.Logger, cfg Config) *Mailer {
	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate Mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
	}
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	m.setEmailMessage(msg, email)

	return m.dialer.DialAndSend(msg)
}

// SendHTML sends an HTML email.
func (m *Mailer) SendHTML(to []string, subject, htmlBody string) error {
	return m.Send(Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (m *Mailer) setEmailMessage(msg *gomail.Message, email Email) {
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)

	if len(email.Cc) > 0 {
		msg.SetHeader("Cc", email.Cc...)
	}

	if len(email.Bcc) > 0 {
		msg.SetHeader("Bcc", email.Bcc...)
	}

	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}
}

// validate checks if the Mailer configuration is valid.
func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
