package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.listing_id, b.customer_id, l.owner_id, l.title, b.check_in, b.check_out, b.guests, b.total_price, b.status, b.created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.ListingID, &b.CustomerID, &b.ListingOwnerID, &b.ListingTitle, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.TotalPrice, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (listing_id, customer_id, check_in, check_out, guests, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		booking.ListingID, booking.CustomerID, booking.CheckIn, booking.CheckOut, booking.Guests, booking.TotalPrice, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	return storeErr(err, "booking")
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN listings l ON l.id = b.listing_id WHERE b.id=$1`, id))
	if err != nil {
		return nil, storeErr(err, "booking")
	}
	return b, nil
}

func (r *PGBookingRepository) list(ctx context.Context, where string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN listings l ON l.id = b.listing_id `+where+` ORDER BY b.created_at DESC`, args...)
	if err != nil {
		return nil, storeErr(err, "bookings")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, storeErr(err, "bookings")
		}
		bookings = append(bookings, *b)
	}
	return bookings, storeErr(rows.Err(), "bookings")
}

func (r *PGBookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return r.list(ctx, `WHERE b.customer_id=$1`, customerID)
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return r.list(ctx, `WHERE l.owner_id=$1`, ownerID)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, ``)
}

// UpdateStatus moves a booking from one status to another in a single
// statement. If the booking is no longer in from, nothing changes and
// ErrConflict is returned.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `WITH b AS (
			UPDATE bookings SET status=$1 WHERE id=$2 AND status=$3 RETURNING *
		)
		SELECT `+bookingColumns+` FROM b JOIN listings l ON l.id = b.listing_id`, to, id, from))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking %d is not %s", domain.ErrConflict, id, from)
	}
	if err != nil {
		return nil, storeErr(err, "booking")
	}
	return b, nil
}

// Delete removes the booking and, by cascade, its chat.
func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return storeErr(err, "booking")
	}
	if res.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "booking")
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
