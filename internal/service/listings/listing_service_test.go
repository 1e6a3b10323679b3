package listings

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock структуры

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	if args.Error(0) == nil {
		listing.ID = 42
	}
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) ImageURLs(ctx context.Context) (map[int64]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockListingRepository) SetImage(ctx context.Context, id int64, url, filename string) error {
	args := m.Called(ctx, id, url, filename)
	return args.Error(0)
}

type MockReviewLister struct {
	mock.Mock
}

func (m *MockReviewLister) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Forward(ctx context.Context, query string) (*domain.Geometry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Geometry), args.Error(1)
}

var (
	owner    = &domain.Identity{UserID: 7, Username: "host"}
	stranger = &domain.Identity{UserID: 9, Username: "guest"}
	admin    = &domain.Identity{UserID: 1, Username: "root", IsAdmin: true}
)

func validInput() ListingInput {
	return ListingInput{
		Title:       "Beach hut",
		Description: "Steps from the sea",
		Price:       2500,
		Location:    "Calangute",
		Country:     "India",
		Category:    "beach",
	}
}

func newService() (*ListingService, *MockListingRepository, *MockReviewLister, *MockGeocoder) {
	repo := &MockListingRepository{}
	reviews := &MockReviewLister{}
	geo := &MockGeocoder{}
	return NewListingService(repo, reviews, geo, logger.NewNop()), repo, reviews, geo
}

func TestListingService_List(t *testing.T) {
	ctx := context.Background()

	// Тест 1: категория "all" игнорируется, поиск идёт по стране
	service, repo, _, _ := newService()
	repo.On("Find", ctx, domain.ListingFilter{Country: "india", Order: domain.OrderNewest}).
		Return([]domain.Listing{{ID: 1}}, nil)

	result, err := service.List(ctx, ListQuery{Category: "all", Search: " india "})
	require.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertExpectations(t)

	// Тест 2: конкретная категория
	service, repo, _, _ = newService()
	repo.On("Find", ctx, domain.ListingFilter{Category: "mountains", Order: domain.OrderNewest}).
		Return([]domain.Listing{}, nil)

	_, err = service.List(ctx, ListQuery{Category: "mountains"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingService_Get(t *testing.T) {
	ctx := context.Background()
	service, repo, reviews, _ := newService()

	// Настройка моков
	repo.On("GetByID", ctx, int64(5)).Return(&domain.Listing{ID: 5, Title: "Loft"}, nil)
	reviews.On("ListByListing", ctx, int64(5)).Return([]domain.Review{{ID: 1, Rating: 5}}, nil)

	// Выполнение
	listing, err := service.Get(ctx, 5)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, listing.Reviews, 1)
}

func TestListingService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	service, repo, reviews, _ := newService()

	repo.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

	_, err := service.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	reviews.AssertNotCalled(t, "ListByListing", mock.Anything, mock.Anything)
}

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()
	service, repo, _, geo := newService()

	point := &domain.Geometry{Type: "Point", Coordinates: [2]float64{73.75, 15.54}}
	geo.On("Forward", ctx, "Calangute").Return(point, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.OwnerID == 7 && l.Title == "Beach hut" && l.Geometry == point
	})).Return(nil)

	listing, err := service.Create(ctx, owner, validInput())

	require.NoError(t, err)
	assert.Equal(t, int64(42), listing.ID)
	assert.Equal(t, "host", listing.OwnerUsername)
	repo.AssertExpectations(t)
}

func TestListingService_Create_GeocodingFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	service, repo, _, geo := newService()

	geo.On("Forward", ctx, "Calangute").Return(nil, errors.New("timeout"))
	repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Geometry == nil
	})).Return(nil)

	_, err := service.Create(ctx, owner, validInput())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingService_Create_Anonymous(t *testing.T) {
	service, repo, _, _ := newService()

	_, err := service.Create(context.Background(), nil, validInput())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingInput_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{"missing title", func(in *ListingInput) { in.Title = "  " }},
		{"long title", func(in *ListingInput) { in.Title = "A title that is definitely too long" }},
		{"missing description", func(in *ListingInput) { in.Description = "" }},
		{"missing location", func(in *ListingInput) { in.Location = "" }},
		{"missing country", func(in *ListingInput) { in.Country = "" }},
		{"long country", func(in *ListingInput) { in.Country = "The Democratic Republic of Somewhere" }},
		{"cheap", func(in *ListingInput) { in.Price = 299 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			assert.ErrorIs(t, in.normalize().validate(), domain.ErrValidation)
		})
	}

	assert.NoError(t, validInput().validate())
}

func TestListingService_Update(t *testing.T) {
	ctx := context.Background()

	// Тест 1: геокодер ничего не нашёл, старая геометрия сохраняется
	service, repo, _, geo := newService()
	old := &domain.Geometry{Type: "Point", Coordinates: [2]float64{1, 2}}
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Listing{ID: 3, OwnerID: 7, Geometry: old, ImageURL: "https://img/a.jpg"}, nil)
	geo.On("Forward", ctx, "Calangute").Return(nil, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	listing, err := service.Update(ctx, owner, 3, validInput())
	require.NoError(t, err)
	assert.Same(t, old, listing.Geometry)
	assert.Equal(t, "https://img/a.jpg", listing.ImageURL)
	assert.Equal(t, int64(2500), listing.Price)

	// Тест 2: чужое объявление
	service, repo, _, _ = newService()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Listing{ID: 3, OwnerID: 7}, nil)

	_, err = service.Update(ctx, stranger, 3, validInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestListingService_Delete(t *testing.T) {
	ctx := context.Background()

	// Тест 1: администратор может удалить любое объявление
	service, repo, _, _ := newService()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Listing{ID: 3, OwnerID: 7}, nil)
	repo.On("Delete", ctx, int64(3)).Return(nil)

	require.NoError(t, service.Delete(ctx, admin, 3))
	repo.AssertExpectations(t)

	// Тест 2: посторонний пользователь
	service, repo, _, _ = newService()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Listing{ID: 3, OwnerID: 7}, nil)

	assert.ErrorIs(t, service.Delete(ctx, stranger, 3), domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRepairImageURL(t *testing.T) {
	testCases := []struct {
		raw     string
		want    string
		changed bool
	}{
		{"https://img.example/a.jpg", "https://img.example/a.jpg", false},
		{`"https://img.example/a.jpg"`, "https://img.example/a.jpg", true},
		{"'https://img.example/a.jpg'", "https://img.example/a.jpg", true},
		{"{ filename: 'listingimage', url: 'https://img.example/b.jpg' }", "https://img.example/b.jpg", true},
		{`'{ filename: "x", url: "http://img.example/c.png" }'`, "http://img.example/c.png", true},
		{"'https://img.example/a.jpg\"", "'https://img.example/a.jpg\"", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, changed := RepairImageURL(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestListingService_RepairImageURLs(t *testing.T) {
	ctx := context.Background()
	service, repo, _, _ := newService()

	// Настройка моков
	repo.On("ImageURLs", ctx).Return(map[int64]string{
		1: "https://img.example/ok.jpg",
		2: `"https://img.example/quoted.jpg"`,
		3: "{ filename: 'f', url: 'https://img.example/obj.jpg' }",
	}, nil)
	repo.On("SetImage", ctx, int64(2), "https://img.example/quoted.jpg", "listingimage").Return(nil)
	repo.On("SetImage", ctx, int64(3), "https://img.example/obj.jpg", "listingimage").Return(errors.New("db down"))

	// Выполнение
	count, err := service.RepairImageURLs(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}
