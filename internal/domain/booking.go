package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
)

// Booking is a stay request by a customer for a listing. ListingOwnerID and
// ListingTitle are read through the listing and never written.
type Booking struct {
	ID             int64
	ListingID      int64
	CustomerID     int64
	ListingOwnerID int64
	ListingTitle   string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	TotalPrice     int64
	Status         BookingStatus
	CreatedAt      time.Time
}
