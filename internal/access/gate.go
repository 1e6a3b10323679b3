// Package access decides who may act on bookings, chats, listings and
// reviews. Every check is a pure function of the caller identity and the
// entity state; nothing is persisted.
package access

import (
	"fmt"

	"github.com/Domenick1991/wanderlust/internal/domain"
)

// RequireUser refuses anonymous callers.
func RequireUser(id *domain.Identity) error {
	if id == nil {
		return fmt.Errorf("%w: you must be logged in", domain.ErrUnauthenticated)
	}
	return nil
}

// RequireAdmin allows admins only.
func RequireAdmin(id *domain.Identity) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if !id.IsAdmin {
		return fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}
	return nil
}

// CanCreateBooking refuses anonymous callers and owners booking their own listing.
func CanCreateBooking(id *domain.Identity, listing *domain.Listing) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if listing.OwnerID == id.UserID {
		return fmt.Errorf("%w: you cannot book your own listing", domain.ErrForbidden)
	}
	return nil
}

// CanViewBooking allows the customer, the listing owner and admins.
func CanViewBooking(id *domain.Identity, b *domain.Booking) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == b.CustomerID || id.UserID == b.ListingOwnerID {
		return nil
	}
	return fmt.Errorf("%w: not a party to this booking", domain.ErrForbidden)
}

// CanDecideBooking allows the listing owner or an admin to confirm or reject.
// It does not look at the status; the transition check lives with the service.
func CanDecideBooking(id *domain.Identity, b *domain.Booking) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == b.ListingOwnerID {
		return nil
	}
	return fmt.Errorf("%w: only the listing owner can decide on this booking", domain.ErrForbidden)
}

// CanCancelBooking allows the customer or an admin, in any status.
func CanCancelBooking(id *domain.Identity, b *domain.Booking) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == b.CustomerID {
		return nil
	}
	return fmt.Errorf("%w: only the customer can cancel this booking", domain.ErrForbidden)
}

// CanUseChat gates reading and appending to a booking chat. The caller must be
// the customer, the listing owner or an admin, and the booking must be
// confirmed. Admins are not exempt from the status rule.
func CanUseChat(id *domain.Identity, b *domain.Booking) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if !id.IsAdmin && id.UserID != b.CustomerID && id.UserID != b.ListingOwnerID {
		return fmt.Errorf("%w: you don't have access to this chat", domain.ErrForbidden)
	}
	if b.Status != domain.BookingStatusConfirmed {
		return fmt.Errorf("%w: chat is only available for confirmed bookings", domain.ErrForbidden)
	}
	return nil
}

// CanManageListing allows the owner or an admin to edit or delete a listing.
func CanManageListing(id *domain.Identity, listing *domain.Listing) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == listing.OwnerID {
		return nil
	}
	return fmt.Errorf("%w: you are not the owner of this listing", domain.ErrForbidden)
}

// CanDeleteReview allows the author or an admin.
func CanDeleteReview(id *domain.Identity, r *domain.Review) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if id.IsAdmin || id.UserID == r.AuthorID {
		return nil
	}
	return fmt.Errorf("%w: you are not the author of this review", domain.ErrForbidden)
}
