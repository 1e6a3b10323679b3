package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingRepository interface {
	Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	ImageURLs(ctx context.Context) (map[int64]string, error)
	SetImage(ctx context.Context, id int64, url, filename string) error
}

type PGListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) ListingRepository {
	return &PGListingRepository{db: db}
}

const listingSelect = `SELECT l.id, l.title, l.description, l.image_url, l.image_filename, l.price, l.location, l.country, l.category,
	l.owner_id, u.username, l.longitude, l.latitude, l.created_at, l.updated_at
	FROM listings l JOIN users u ON u.id = l.owner_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildListingQuery renders a ListingFilter as SQL. User text is always bound
// as a parameter with LIKE wildcards escaped.
func buildListingQuery(f domain.ListingFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Text != "" {
		p := arg(containsPattern(f.Text))
		where = append(where, fmt.Sprintf("(l.location ILIKE %[1]s OR l.country ILIKE %[1]s OR l.title ILIKE %[1]s)", p))
	}
	if f.Country != "" {
		where = append(where, "l.country ILIKE "+arg(containsPattern(f.Country)))
	}
	if f.Category != "" {
		where = append(where, "l.category = "+arg(f.Category))
	}
	if f.MinPrice != nil {
		where = append(where, "l.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "l.price <= "+arg(*f.MaxPrice))
	}

	var sb strings.Builder
	sb.WriteString(listingSelect)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	switch f.Order {
	case domain.OrderPriceAsc:
		sb.WriteString(" ORDER BY l.price ASC, l.id ASC")
	default:
		sb.WriteString(" ORDER BY l.created_at DESC, l.id DESC")
	}
	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}
	return sb.String(), args
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		l        domain.Listing
		lng, lat *float64
	)
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.ImageURL, &l.ImageFilename, &l.Price, &l.Location, &l.Country, &l.Category,
		&l.OwnerID, &l.OwnerUsername, &lng, &lat, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if lng != nil && lat != nil {
		l.Geometry = &domain.Geometry{Type: "Point", Coordinates: [2]float64{*lng, *lat}}
	}
	return &l, nil
}

func (r *PGListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query, args := buildListingQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err, "listings")
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, storeErr(err, "listings")
		}
		listings = append(listings, *l)
	}
	return listings, storeErr(rows.Err(), "listings")
}

func (r *PGListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, listingSelect+` WHERE l.id=$1`, id))
	if err != nil {
		return nil, storeErr(err, "listing")
	}
	return l, nil
}

func coordinates(g *domain.Geometry) (lng, lat *float64) {
	if g == nil {
		return nil, nil
	}
	return &g.Coordinates[0], &g.Coordinates[1]
}

func (r *PGListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	lng, lat := coordinates(listing.Geometry)
	err := r.db.QueryRow(ctx, `INSERT INTO listings (title, description, image_url, image_filename, price, location, country, category, owner_id, longitude, latitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		listing.Title, listing.Description, listing.ImageURL, listing.ImageFilename, listing.Price, listing.Location, listing.Country,
		listing.Category, listing.OwnerID, lng, lat).
		Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	return storeErr(err, "listing")
}

func (r *PGListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	lng, lat := coordinates(listing.Geometry)
	err := r.db.QueryRow(ctx, `UPDATE listings SET title=$1, description=$2, image_url=$3, image_filename=$4, price=$5, location=$6,
		country=$7, category=$8, longitude=$9, latitude=$10, updated_at=now()
		WHERE id=$11 RETURNING updated_at`,
		listing.Title, listing.Description, listing.ImageURL, listing.ImageFilename, listing.Price, listing.Location,
		listing.Country, listing.Category, lng, lat, listing.ID).
		Scan(&listing.UpdatedAt)
	return storeErr(err, "listing")
}

// Delete removes the listing. Reviews, bookings and their chats go with it
// through ON DELETE CASCADE.
func (r *PGListingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return storeErr(err, "listing")
	}
	if res.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "listing")
	}
	return nil
}

func (r *PGListingRepository) ImageURLs(ctx context.Context) (map[int64]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, image_url FROM listings WHERE image_url <> ''`)
	if err != nil {
		return nil, storeErr(err, "listings")
	}
	defer rows.Close()

	urls := make(map[int64]string)
	for rows.Next() {
		var (
			id  int64
			url string
		)
		if err := rows.Scan(&id, &url); err != nil {
			return nil, storeErr(err, "listings")
		}
		urls[id] = url
	}
	return urls, storeErr(rows.Err(), "listings")
}

func (r *PGListingRepository) SetImage(ctx context.Context, id int64, url, filename string) error {
	_, err := r.db.Exec(ctx, `UPDATE listings SET image_url=$1, image_filename=$2, updated_at=now() WHERE id=$3`, url, filename, id)
	return storeErr(err, "listing")
}

var _ ListingRepository = (*PGListingRepository)(nil)
