package listings

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Domenick1991/wanderlust/internal/access"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"go.uber.org/zap"
)

const (
	maxTitleLength   = 30
	maxCountryLength = 27
	minPrice         = 300

	// repairedFilename marks images whose URL was rewritten by RepairImageURLs.
	repairedFilename = "listingimage"
)

type ListingUseCase interface {
	List(ctx context.Context, query ListQuery) ([]domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	Create(ctx context.Context, caller *domain.Identity, input ListingInput) (*domain.Listing, error)
	Update(ctx context.Context, caller *domain.Identity, id int64, input ListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, caller *domain.Identity, id int64) error
	Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	RepairImageURLs(ctx context.Context) (int, error)
}

type Geocoder interface {
	Forward(ctx context.Context, query string) (*domain.Geometry, error)
}

type ReviewLister interface {
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
}

// ListQuery is the public index filter. Category "all" or empty means any.
type ListQuery struct {
	Category string
	Search   string
}

type ListingInput struct {
	Title       string
	Description string
	ImageURL    string
	Price       int64
	Location    string
	Country     string
	Category    string
}

type ListingService struct {
	repo     repository.ListingRepository
	reviews  ReviewLister
	geocoder Geocoder
	log      *logger.Logger
}

func NewListingService(repo repository.ListingRepository, reviews ReviewLister, geocoder Geocoder, log *logger.Logger) *ListingService {
	return &ListingService{
		repo:     repo,
		reviews:  reviews,
		geocoder: geocoder,
		log:      logger.OrGlobal(log).Named("listings"),
	}
}

func (s *ListingService) List(ctx context.Context, query ListQuery) ([]domain.Listing, error) {
	filter := domain.ListingFilter{
		Country: strings.TrimSpace(query.Search),
		Order:   domain.OrderNewest,
	}
	if c := strings.TrimSpace(query.Category); c != "" && !strings.EqualFold(c, "all") {
		filter.Category = c
	}
	return s.repo.Find(ctx, filter)
}

// Get returns the listing with its reviews populated.
func (s *ListingService) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByListing(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.Reviews = reviews
	return listing, nil
}

func (s *ListingService) Create(ctx context.Context, caller *domain.Identity, input ListingInput) (*domain.Listing, error) {
	if err := access.RequireUser(caller); err != nil {
		return nil, err
	}
	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	listing := &domain.Listing{OwnerID: caller.UserID, OwnerUsername: caller.Username}
	input.apply(listing)
	listing.Geometry = s.geocode(ctx, input.Location)

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.log.Info("listing created", zap.Int64("listing_id", listing.ID), zap.Int64("owner_id", listing.OwnerID))
	return listing, nil
}

// Update keeps the previous geometry when the new location cannot be resolved.
func (s *ListingService) Update(ctx context.Context, caller *domain.Identity, id int64, input ListingInput) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CanManageListing(caller, listing); err != nil {
		return nil, err
	}
	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	input.apply(listing)
	if geometry := s.geocode(ctx, input.Location); geometry != nil {
		listing.Geometry = geometry
	}

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, caller *domain.Identity, id int64) error {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CanManageListing(caller, listing); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("listing deleted", zap.Int64("listing_id", id), zap.Int64("by", caller.UserID))
	return nil
}

// Find runs a raw filter; the bot uses it for recommendations.
func (s *ListingService) Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	return s.repo.Find(ctx, filter)
}

// RepairImageURLs rewrites malformed stored image URLs and returns how many
// listings were changed. A failed write is logged and the sweep continues.
func (s *ListingService) RepairImageURLs(ctx context.Context) (int, error) {
	urls, err := s.repo.ImageURLs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for id, raw := range urls {
		fixed, changed := RepairImageURL(raw)
		if !changed {
			continue
		}
		if err := s.repo.SetImage(ctx, id, fixed, repairedFilename); err != nil {
			s.log.Error("repair image url", zap.Int64("listing_id", id), zap.Error(err))
			continue
		}
		repaired++
	}
	if repaired > 0 {
		s.log.Info("image urls repaired", zap.Int("count", repaired))
	}
	return repaired, nil
}

func (s *ListingService) geocode(ctx context.Context, location string) *domain.Geometry {
	if s.geocoder == nil {
		return nil
	}
	geometry, err := s.geocoder.Forward(ctx, location)
	if err != nil {
		s.log.Warn("geocoding failed", zap.String("location", location), zap.Error(err))
		return nil
	}
	return geometry
}

var stringifiedURL = regexp.MustCompile(`url:\s*['"](https?://[^'"]+)['"]`)

// RepairImageURL strips wrapping quotes and extracts the URL from a
// stringified {filename, url} object.
func RepairImageURL(raw string) (string, bool) {
	fixed := raw
	if len(fixed) >= 2 {
		first, last := fixed[0], fixed[len(fixed)-1]
		if (first == '\'' || first == '"') && first == last {
			fixed = fixed[1 : len(fixed)-1]
		}
	}
	if strings.Contains(fixed, "filename") && strings.Contains(fixed, "url") {
		if m := stringifiedURL.FindStringSubmatch(fixed); m != nil {
			fixed = m[1]
		}
	}
	return fixed, fixed != raw
}

func (in ListingInput) normalize() ListingInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Location = strings.TrimSpace(in.Location)
	in.Country = strings.TrimSpace(in.Country)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in ListingInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, maxTitleLength)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case in.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case in.Country == "":
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	case utf8.RuneCountInString(in.Country) > maxCountryLength:
		return fmt.Errorf("%w: country must be at most %d characters", domain.ErrValidation, maxCountryLength)
	case in.Price < minPrice:
		return fmt.Errorf("%w: price must be at least %d", domain.ErrValidation, minPrice)
	}
	return nil
}

func (in ListingInput) apply(l *domain.Listing) {
	l.Title = in.Title
	l.Description = in.Description
	l.Price = in.Price
	l.Location = in.Location
	l.Country = in.Country
	l.Category = in.Category
	if in.ImageURL != "" {
		l.ImageURL = in.ImageURL
	}
}

var _ ListingUseCase = (*ListingService)(nil)
