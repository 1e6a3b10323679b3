package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Domenick1991/wanderlust/internal/access"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/kafka"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/Domenick1991/wanderlust/pkg/metrics"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, caller *domain.Identity, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error)
	MyBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error)
	OwnerBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error)
	AllBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error)
	ConfirmBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error)
	RejectBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, caller *domain.Identity, bookingID int64) error
	DeleteBooking(ctx context.Context, caller *domain.Identity, bookingID int64) error
}

type ListingLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	listings           ListingLookup
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
	log                *logger.Logger
}

type CreateBookingInput struct {
	ListingID int64
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log *logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	listings ListingLookup,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		listings:     listings,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.log = logger.OrGlobal(service.log).Named("booking")
	return service
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nights rounds a partial day up.
func nights(checkIn, checkOut time.Time) int64 {
	return int64(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func (s *BookingService) validate(input CreateBookingInput) error {
	if input.Guests < 1 {
		return fmt.Errorf("%w: at least 1 guest is required", domain.ErrValidation)
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out dates are required", domain.ErrValidation)
	}
	if startOfDay(input.CheckIn).Before(startOfDay(s.now())) {
		return fmt.Errorf("%w: check-in date cannot be in the past", domain.ErrValidation)
	}
	if !input.CheckOut.After(input.CheckIn) {
		return fmt.Errorf("%w: check-out date must be after check-in date", domain.ErrValidation)
	}
	return nil
}

func (s *BookingService) CreateBooking(ctx context.Context, caller *domain.Identity, input CreateBookingInput) (*domain.Booking, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanCreateBooking(caller, listing); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ListingID:      listing.ID,
		CustomerID:     caller.UserID,
		ListingOwnerID: listing.OwnerID,
		ListingTitle:   listing.Title,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		Guests:         input.Guests,
		TotalPrice:     nights(input.CheckIn, input.CheckOut) * listing.Price,
		Status:         domain.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanViewBooking(caller, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) MyBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	return s.bookings.ListByCustomer(ctx, caller.UserID)
}

// OwnerBookings lists bookings on every listing the caller owns.
func (s *BookingService) OwnerBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, caller.UserID)
}

func (s *BookingService) AllBookings(ctx context.Context, caller *domain.Identity) ([]domain.Booking, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error) {
	return s.decide(ctx, caller, bookingID, domain.BookingStatusConfirmed, kafka.EventBookingConfirmed)
}

func (s *BookingService) RejectBooking(ctx context.Context, caller *domain.Identity, bookingID int64) (*domain.Booking, error) {
	return s.decide(ctx, caller, bookingID, domain.BookingStatusRejected, kafka.EventBookingRejected)
}

// decide moves a pending booking to a final status. Bookings never return to
// pending and a decided booking cannot be decided again.
func (s *BookingService) decide(ctx context.Context, caller *domain.Identity, bookingID int64, to domain.BookingStatus, event string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanDecideBooking(caller, current); err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is already %s", domain.ErrConflict, current.Status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, to)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event, updated)
	return updated, nil
}

// CancelBooking hard-deletes the booking on behalf of its customer, in any status.
func (s *BookingService) CancelBooking(ctx context.Context, caller *domain.Identity, bookingID int64) error {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := access.CanCancelBooking(caller, current); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventBookingCancelled, current)
	return nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, caller *domain.Identity, bookingID int64) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventBookingDeleted, current)
	return nil
}

// publish never fails the caller; a lost event is logged.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	metrics.RecordBookingEvent(eventType)
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())
	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, event.Key(), event); err != nil {
			s.log.Warn("failed to publish booking event",
				zap.String("event", eventType),
				zap.String("topic", topic),
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
