package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cabinrental/internal/domain"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/pkg/daterange"
	"cabinrental/internal/pkg/pagination"
	"cabinrental/internal/repository"
)

type MockCabinRepository struct {
	mock.Mock
}

func (m *MockCabinRepository) Search(ctx context.Context, f repository.CabinFilter) ([]domain.CabinSummary, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CabinSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockCabinRepository) GetByID(ctx context.Context, id int64) (*domain.Cabin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cabin), args.Error(1)
}

func (m *MockCabinRepository) Create(ctx context.Context, cabin *domain.Cabin) error {
	args := m.Called(ctx, cabin)
	if args.Error(0) == nil {
		cabin.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCabinRepository) Update(ctx context.Context, cabin *domain.Cabin, replaceImages bool) error {
	args := m.Called(ctx, cabin, replaceImages)
	return args.Error(0)
}

func (m *MockCabinRepository) SetActive(ctx context.Context, id int64, active *bool) (*domain.Cabin, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cabin), args.Error(1)
}

type MockBlockReader struct {
	mock.Mock
}

func (m *MockBlockReader) ListByCabin(ctx context.Context, cabinID int64) ([]domain.MaintenanceBlock, error) {
	args := m.Called(ctx, cabinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaintenanceBlock), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) {
	m.Called(ctx, e)
}

var admin = domain.AdminIdentity{AdminID: 1, Username: "admin"}

func validInput() CabinInput {
	return CabinInput{
		Title:            "  Cabaña del Lago ",
		ShortDescription: "Vista al lago",
		Description:      "Cabaña completa",
		PricePerNight:    120.5,
		MaxGuests:        4,
	}
}

func TestService_Search_PassesFilters(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	lo := 50.0
	repo.On("Search", mock.Anything, mock.MatchedBy(func(f repository.CabinFilter) bool {
		return f.ActiveOnly && f.Dates != nil && f.Dates.From == "2026-01-10" && f.Dates.To == "2026-01-12" &&
			f.MinGuests == 3 && *f.MinPrice == 50 && f.MaxPrice == nil &&
			f.Sort == repository.SortPriceAsc && f.Limit == 5 && f.Offset == 10
	})).Return([]domain.CabinSummary{{ID: 1}}, int64(11), nil)

	res, err := svc.Search(context.Background(), SearchQuery{
		DatesRequested: true, From: "2026-01-10", To: "2026-01-12",
		Guests: 3, MinPrice: &lo, Sort: repository.SortPriceAsc, Page: 3, Limit: 5,
	})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.EqualValues(t, 11, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.Page)
	repo.AssertExpectations(t)
}

func TestService_Search_WithoutDates(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	repo.On("Search", mock.Anything, mock.MatchedBy(func(f repository.CabinFilter) bool {
		return f.Dates == nil && f.Offset == 0
	})).Return([]domain.CabinSummary{}, int64(0), nil)

	res, err := svc.Search(context.Background(), SearchQuery{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
}

func TestService_Search_InvalidDates(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"only from", "2026-01-10", "", daterange.ErrInvalidFormat},
		{"bad format", "10/01/2026", "2026-01-12", daterange.ErrInvalidFormat},
		{"empty range", "2026-01-10", "2026-01-10", daterange.ErrInvalidRange},
		{"reversed", "2026-01-12", "2026-01-10", daterange.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), SearchQuery{DatesRequested: true, From: tt.from, To: tt.to, Page: 1, Limit: 12})
			assert.ErrorIs(t, err, tt.want)
		})
	}
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestService_AdminList_IncludesInactive(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	repo.On("Search", mock.Anything, mock.MatchedBy(func(f repository.CabinFilter) bool {
		return !f.ActiveOnly && f.Sort == repository.SortNewest && f.Limit == 20 && f.Offset == 20
	})).Return([]domain.CabinSummary{{ID: 9, IsActive: false}}, int64(21), nil)

	res, err := svc.AdminList(context.Background(), pagination.Params{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPages)
	repo.AssertExpectations(t)
}

func TestService_GetPublic(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Cabin{ID: 1, IsActive: true, Images: []domain.CabinImage{{ImageURL: "u"}}}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&domain.Cabin{ID: 2, IsActive: false}, nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound)

	got, err := svc.GetPublic(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "u", *got.CoverImage)

	_, err = svc.GetPublic(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPublic(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)

	detail, err := svc.GetAdmin(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, detail.IsActive)
}

func TestService_Quote(t *testing.T) {
	repo := new(MockCabinRepository)
	blocks := new(MockBlockReader)
	svc := NewService(repo, blocks, nil)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Cabin{ID: 5, PricePerNight: 99.99, IsActive: true}, nil)
	blocks.On("ListByCabin", mock.Anything, int64(5)).Return([]domain.MaintenanceBlock{
		{CabinID: 5, FromDate: "2026-01-10", ToDate: "2026-01-15"},
	}, nil)

	q, err := svc.Quote(context.Background(), 5, "2026-01-15", "2026-01-18")
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, 299.97, q.Total)
	assert.True(t, q.Available, "a stay starting on the block's end date is free")

	q, err = svc.Quote(context.Background(), 5, "2026-01-14", "2026-01-16")
	require.NoError(t, err)
	assert.False(t, q.Available)
	assert.Equal(t, "2026-01-14", q.From)
}

func TestService_Quote_TotalRoundedToCents(t *testing.T) {
	repo := new(MockCabinRepository)
	blocks := new(MockBlockReader)
	svc := NewService(repo, blocks, nil)

	repo.On("GetByID", mock.Anything, int64(8)).Return(&domain.Cabin{ID: 8, PricePerNight: 0.1, IsActive: true}, nil)
	blocks.On("ListByCabin", mock.Anything, int64(8)).Return([]domain.MaintenanceBlock{}, nil)

	q, err := svc.Quote(context.Background(), 8, "2026-01-01", "2026-01-04")
	require.NoError(t, err)
	assert.Equal(t, 0.3, q.Total)
}

func TestService_Quote_Errors(t *testing.T) {
	repo := new(MockCabinRepository)
	blocks := new(MockBlockReader)
	svc := NewService(repo, blocks, nil)

	_, err := svc.Quote(context.Background(), 5, "2026-01-15", "2026-01-15")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	repo.On("GetByID", mock.Anything, int64(6)).Return(&domain.Cabin{ID: 6, IsActive: false}, nil)
	_, err = svc.Quote(context.Background(), 6, "2026-01-15", "2026-01-16")
	assert.ErrorIs(t, err, ErrNotFound)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Cabin{ID: 7, IsActive: true}, nil)
	blocks.On("ListByCabin", mock.Anything, int64(7)).Return(nil, errors.New("db down"))
	_, err = svc.Quote(context.Background(), 7, "2026-01-15", "2026-01-16")
	assert.EqualError(t, err, "db down")
}

func TestService_Create_Defaults(t *testing.T) {
	repo := new(MockCabinRepository)
	pub := new(MockPublisher)
	svc := NewService(repo, nil, pub)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Cabin) bool {
		return c.Title == "Cabaña del Lago" && c.Slug == "cabana-del-lago" &&
			c.City == domain.DefaultCity && c.Province == domain.DefaultProvince &&
			c.Bedrooms == 1 && c.Bathrooms == 1 && c.IsActive
	})).Return(nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.CabinCreated && e.CabinID == 42 && e.AdminID == 1
	})).Return()

	cabin, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(42), cabin.ID)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Create_ImagesAndExplicitFields(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	in := validInput()
	in.Slug = "Mi Slug!"
	inactive := false
	in.IsActive = &inactive
	zero := 0
	in.Bedrooms = &zero
	alt := " frente "
	in.Images = &[]ImageInput{{URL: " "}, {URL: "https://img/a.jpg", Alt: &alt}, {URL: "https://img/b.jpg"}}

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	cabin, err := svc.Create(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, "mi-slug", cabin.Slug)
	assert.False(t, cabin.IsActive)
	assert.Equal(t, 0, cabin.Bedrooms)
	require.Len(t, cabin.Images, 2)
	assert.Equal(t, "frente", *cabin.Images[0].AltText)
	assert.Equal(t, 1, cabin.Images[0].SortOrder)
	assert.Equal(t, 2, cabin.Images[1].SortOrder)
}

func TestService_Create_Validation(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	in := validInput()
	in.Title = "   "
	in.PricePerNight = 0
	in.MaxGuests = -1

	_, err := svc.Create(context.Background(), admin, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "price_per_night")
	assert.Contains(t, verr.Fields, "max_guests")
	assert.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.Title = "¡¡!!"
	_, err = svc.Create(context.Background(), admin, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateSlug(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Create(context.Background(), admin, validInput())
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestService_Create_Unauthenticated(t *testing.T) {
	svc := NewService(new(MockCabinRepository), nil, nil)

	_, err := svc.Create(context.Background(), domain.AdminIdentity{}, validInput())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_Update(t *testing.T) {
	repo := new(MockCabinRepository)
	svc := NewService(repo, nil, nil)

	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Cabin) bool { return c.ID == 8 }), false).Return(nil).Once()
	_, err := svc.Update(context.Background(), admin, 8, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Images = &[]ImageInput{}
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Cabin) bool { return len(c.Images) == 0 }), true).Return(nil).Once()
	_, err = svc.Update(context.Background(), admin, 8, in)
	require.NoError(t, err)

	repo.On("Update", mock.Anything, mock.Anything, false).Return(repository.ErrNotFound).Once()
	_, err = svc.Update(context.Background(), admin, 9, validInput())
	assert.ErrorIs(t, err, ErrNotFound)

	repo.AssertExpectations(t)
}

func TestService_SetActive(t *testing.T) {
	repo := new(MockCabinRepository)
	pub := new(MockPublisher)
	svc := NewService(repo, nil, pub)

	repo.On("SetActive", mock.Anything, int64(3), (*bool)(nil)).Return(&domain.Cabin{ID: 3, IsActive: false}, nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.CabinActivation && e.Active != nil && !*e.Active
	})).Return()

	cabin, err := svc.SetActive(context.Background(), admin, 3, nil)
	require.NoError(t, err)
	assert.False(t, cabin.IsActive)
	pub.AssertExpectations(t)

	repo.On("SetActive", mock.Anything, int64(4), (*bool)(nil)).Return(nil, repository.ErrNotFound)
	_, err = svc.SetActive(context.Background(), admin, 4, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
