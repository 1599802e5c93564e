// Package notify sends operator notifications for new quote requests
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stilessandgravel/backend/internal/config"
	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

const dialTimeout = 10 * time.Second

// Mailer emails a summary of every stored quote request to the operator
type Mailer struct {
	from   string
	to     string
	send   func(m *mail.Message) error
	logger *zap.Logger
}

// NewMailer creates a new Mailer from SMTP settings.
//
// Port 465 uses implicit TLS, any other port upgrades with STARTTLS when offered.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	d.Timeout = dialTimeout

	return &Mailer{
		from:   cfg.From,
		to:     cfg.NotifyEmail,
		send:   func(msg *mail.Message) error { return d.DialAndSend(msg) },
		logger: logger,
	}
}

// NotifyQuote sends the quote summary. There are no retries.
func (m *Mailer) NotifyQuote(ctx context.Context, quote *models.QuoteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", quoteSubject(quote))
	msg.SetBody("text/plain", quoteBody(quote))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("quote notification sent", zap.Int64("quote_id", quote.ID), zap.String("to", m.to))
	return nil
}

func quoteSubject(quote *models.QuoteRequest) string {
	return "New quote request: " + quote.Name
}

func quoteBody(quote *models.QuoteRequest) string {
	lines := []string{
		"Name: " + quote.Name,
		"Phone: " + quote.Phone,
		"Email: " + quote.Email,
		"Address: " + quote.Address,
		"City: " + quote.City,
		"Material Needed: " + quote.MaterialNeeded,
		"Quantity (yards): " + quote.QuantityYards,
		"Preferred Delivery Date: " + quote.PreferredDeliveryDate,
		"Notes: " + quote.Notes,
	}
	return strings.Join(lines, "\n")
}
