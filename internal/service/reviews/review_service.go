package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/wanderlust/internal/access"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/repository"
)

type ReviewUseCase interface {
	Create(ctx context.Context, caller *domain.Identity, listingID int64, input ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, caller *domain.Identity, listingID, reviewID int64) error
}

type ListingLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type ReviewInput struct {
	Rating  int
	Comment string
}

type ReviewService struct {
	repo     repository.ReviewRepository
	listings ListingLookup
}

func NewReviewService(repo repository.ReviewRepository, listings ListingLookup) *ReviewService {
	return &ReviewService{repo: repo, listings: listings}
}

func (s *ReviewService) Create(ctx context.Context, caller *domain.Identity, listingID int64, input ReviewInput) (*domain.Review, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(input.Comment)
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ListingID:      listingID,
		AuthorID:       caller.UserID,
		AuthorUsername: caller.Username,
		Comment:        comment,
		Rating:         input.Rating,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review of the given listing. A review id that belongs to
// another listing is reported as not found.
func (s *ReviewService) Delete(ctx context.Context, caller *domain.Identity, listingID, reviewID int64) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ListingID != listingID {
		return fmt.Errorf("%w: review not found", domain.ErrNotFound)
	}
	if err := access.CanDeleteReview(caller, review); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewID)
}

var _ ReviewUseCase = (*ReviewService)(nil)
