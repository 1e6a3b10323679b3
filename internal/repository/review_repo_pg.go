package repository

import (
	"context"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

const reviewSelect = `SELECT r.id, r.listing_id, r.author_id, u.username, r.comment, r.rating, r.created_at
	FROM reviews r JOIN users u ON u.id = r.author_id`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.ListingID, &rv.AuthorID, &rv.AuthorUsername, &rv.Comment, &rv.Rating, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reviews (listing_id, author_id, comment, rating)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		review.ListingID, review.AuthorID, review.Comment, review.Rating).
		Scan(&review.ID, &review.CreatedAt)
	return storeErr(err, "review")
}

func (r *PGReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, storeErr(err, "review")
	}
	return rv, nil
}

func (r *PGReviewRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, reviewSelect+` WHERE r.listing_id=$1 ORDER BY r.created_at DESC`, listingID)
	if err != nil {
		return nil, storeErr(err, "reviews")
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, storeErr(err, "reviews")
		}
		reviews = append(reviews, *rv)
	}
	return reviews, storeErr(rows.Err(), "reviews")
}

func (r *PGReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return storeErr(err, "review")
	}
	if res.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "review")
	}
	return nil
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
