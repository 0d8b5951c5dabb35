package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/keshster98/cashfly-backend/config"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/ticket"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender mails booking notifications. With no SMTP host configured it only
// logs what it would have sent.
type Sender struct {
	dialer dialer
	from   string
}

func NewSender(cfg config.SMTPConfig) *Sender {
	s := &Sender{from: cfg.From}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	if s.from == "" {
		s.from = "no-reply@cashfly.local"
	}
	return s
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.compose(event)
	if err != nil {
		return err
	}
	if s.dialer == nil {
		log.Printf("smtp disabled, would send %q to %s", subject(event), event.Email)
		return nil
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", event.Email, err)
	}
	log.Printf("sent %s email to %s", event.Type, event.Email)
	return nil
}

func (s *Sender) compose(event kafka.BookingEvent) (*gomail.Message, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)
	m.SetHeader("Subject", subject(event))
	m.SetBody("text/plain", body(event))

	if event.Type == kafka.EventBookingPaid {
		png, err := ticket.PNG(&domain.Booking{
			ID:     event.BookingID,
			Flight: event.FlightID,
			Seats:  event.Seats,
			Name:   event.Name,
		}, ticket.DefaultSize)
		if err != nil {
			return nil, err
		}
		m.Attach("boarding-pass.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}))
	}
	return m, nil
}

func subject(event kafka.BookingEvent) string {
	flight := event.FlightNumber
	if flight == "" {
		flight = event.FlightID
	}
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Your CashFly booking for flight " + flight
	case kafka.EventBookingPaid:
		return "Payment received for flight " + flight
	case kafka.EventBookingCancelled:
		return "Your booking for flight " + flight + " was cancelled"
	case kafka.EventBookingExpired:
		return "Your unpaid booking for flight " + flight + " has expired"
	default:
		return "CashFly booking update"
	}
}

func body(event kafka.BookingEvent) string {
	var b strings.Builder
	name := event.Name
	if name == "" {
		name = "traveller"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Booking: %s\n", event.BookingID)
	if event.FlightNumber != "" {
		fmt.Fprintf(&b, "Flight: %s\n", event.FlightNumber)
	}
	fmt.Fprintf(&b, "Seats: %s\n", strings.Join(event.Seats, ", "))
	if event.PaidAt != nil {
		fmt.Fprintf(&b, "Paid at: %s\n", event.PaidAt.Format("2006-01-02 15:04 MST"))
	}
	if event.Type == kafka.EventBookingPaid {
		b.WriteString("\nYour boarding pass QR code is attached.\n")
	}
	b.WriteString("\nThank you for flying with CashFly.\n")
	return b.String()
}
