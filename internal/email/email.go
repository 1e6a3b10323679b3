package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/kafka"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"go.uber.org/zap"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notification is one outgoing email.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Sender turns booking events into notifications. Delivery is a structured
// log line; deliver can be replaced to hook a real mail transport.
type Sender struct {
	users   UserLookup
	log     *logger.Logger
	deliver func(ctx context.Context, n Notification) error
}

func NewSender(users UserLookup, log *logger.Logger) *Sender {
	s := &Sender{users: users, log: logger.OrGlobal(log).Named("email")}
	s.deliver = s.logDelivery
	return s
}

// Send notifies every recipient of the event. A recipient that no longer
// exists is skipped; a store failure is returned so the event is retried.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body := render(event)
	for _, id := range event.Recipients {
		user, err := s.users.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("notification recipient gone", zap.Int64("user_id", id), zap.Int64("booking_id", event.BookingID))
			continue
		}
		if err != nil {
			return err
		}
		if err := s.deliver(ctx, Notification{To: user.Email, Subject: subject, Body: body}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sender) logDelivery(_ context.Context, n Notification) error {
	s.log.Info("send email", zap.String("to", n.To), zap.String("subject", n.Subject))
	return nil
}

func render(e kafka.BookingEvent) (subject, body string) {
	dates := fmt.Sprintf("%s to %s", e.CheckIn.Format("2 Jan 2006"), e.CheckOut.Format("2 Jan 2006"))
	switch e.Type {
	case kafka.EventBookingCreated:
		return "New booking request", fmt.Sprintf("You have a new booking request for %q, %s.", e.ListingTitle, dates)
	case kafka.EventBookingConfirmed:
		return "Booking confirmed", fmt.Sprintf("Your booking for %q, %s, is confirmed. You can now chat with your host.", e.ListingTitle, dates)
	case kafka.EventBookingRejected:
		return "Booking rejected", fmt.Sprintf("Your booking for %q, %s, was rejected.", e.ListingTitle, dates)
	case kafka.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("The booking for %q, %s, was cancelled by the guest.", e.ListingTitle, dates)
	default:
		return "Booking removed", fmt.Sprintf("The booking for %q, %s, was removed.", e.ListingTitle, dates)
	}
}
