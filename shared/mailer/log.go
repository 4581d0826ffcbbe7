package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LogMailer writes emails to the logger instead of delivering them.
// Used in development, where no SMTP relay is configured.
type LogMailer struct {
	logger *zerolog.Logger
	from   string
}

func NewLogMailer(logger *zerolog.Logger, from string) *LogMailer {
	return &LogMailer{logger: logger, from: from}
}

func (m *LogMailer) SendHTML(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m.logger.Info().
		Str("from", m.from).
		Strs("to", to).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("email not delivered, logged instead")

	return nil
}
