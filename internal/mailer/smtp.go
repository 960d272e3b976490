package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// SMTP sends confirmation emails through a transactional SMTP account.
// Every message goes to the customer plus a fixed operator address.
type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	operator string
}

// NewSMTP builds an SMTP sender from account credentials. operator is
// the internal address copied on every confirmation.
func NewSMTP(host string, port int, user, password, from, operator string) *SMTP {
	return &SMTP{
		dialer:   gomail.NewDialer(host, port, user, password),
		from:     from,
		operator: operator,
	}
}

func (s *SMTP) SendOrderConfirmation(ctx context.Context, conf OrderConfirmation) error {
	// gomail carries no context; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderConfirmation(conf)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", conf.CustomerEmail, s.operator)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation - %s", conf.OrderNumber))
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	log.Info().Str("orderNumber", conf.OrderNumber).Str("to", conf.CustomerEmail).Msg("Confirmation email sent")
	return nil
}
