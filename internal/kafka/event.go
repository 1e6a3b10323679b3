package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingRejected  = "booking_rejected"
	EventBookingCancelled = "booking_cancelled"
	EventBookingDeleted   = "booking_deleted"
)

// BookingEvent is published on every booking lifecycle change. Recipients
// are the user ids to notify.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    int64     `json:"booking_id"`
	ListingID    int64     `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	CustomerID   int64     `json:"customer_id"`
	OwnerID      int64     `json:"owner_id"`
	Status       string    `json:"status"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Recipients   []int64   `json:"recipients"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewBookingEvent builds the event for b. The party that acted is not
// notified: owner-driven events go to the customer and customer-driven ones
// to the owner; admin deletes go to both.
func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	var recipients []int64
	switch eventType {
	case EventBookingConfirmed, EventBookingRejected:
		recipients = []int64{b.CustomerID}
	case EventBookingCreated, EventBookingCancelled:
		recipients = []int64{b.ListingOwnerID}
	default:
		recipients = []int64{b.CustomerID, b.ListingOwnerID}
	}
	return BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		ListingID:    b.ListingID,
		ListingTitle: b.ListingTitle,
		CustomerID:   b.CustomerID,
		OwnerID:      b.ListingOwnerID,
		Status:       string(b.Status),
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Recipients:   recipients,
		OccurredAt:   at,
	}
}

// Key partitions events by booking so one booking's events stay ordered.
func (e BookingEvent) Key() string {
	return strconv.FormatInt(e.BookingID, 10)
}

func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" {
		return BookingEvent{}, fmt.Errorf("decode booking event: missing type")
	}
	return event, nil
}
