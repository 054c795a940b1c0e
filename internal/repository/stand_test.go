package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
)

type mockStandDAO struct {
	mock.Mock
}

func (m *mockStandDAO) Insert(ctx context.Context, stand dao.Stand) (dao.Stand, error) {
	args := m.Called(ctx, stand)
	return args.Get(0).(dao.Stand), args.Error(1)
}

func (m *mockStandDAO) FindByID(ctx context.Context, id uuid.UUID) (dao.Stand, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dao.Stand), args.Error(1)
}

func (m *mockStandDAO) FindByApproval(ctx context.Context, approved bool) ([]dao.Stand, error) {
	args := m.Called(ctx, approved)
	return args.Get(0).([]dao.Stand), args.Error(1)
}

func (m *mockStandDAO) Approve(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStandDAO) UpdateInventory(ctx context.Context, id uuid.UUID, stockLevel string, verifiedAt time.Time, paymentMethods []string) error {
	return m.Called(ctx, id, stockLevel, verifiedAt, paymentMethods).Error(0)
}

func floatPtr(f float64) *float64 {
	return &f
}

func validRow() dao.Stand {
	return dao.Stand{
		ID:             uuid.New(),
		Name:           "Birch Bundles",
		Address:        "123 Main St, Anytown, MI 48047",
		Latitude:       floatPtr(42.5),
		Longitude:      floatPtr(-83.1),
		PriceTier:      "5_to_10",
		PaymentMethods: pq.StringArray{"cash", "venmo"},
		StockLevel:     "Medium",
	}
}

func TestStandDaoToDomain(t *testing.T) {
	row := validRow()

	got, err := standDaoToDomain(row)
	require.NoError(t, err)

	assert.Equal(t, &geo.Point{Lat: 42.5, Lon: -83.1}, got.Location)
	assert.Equal(t, domain.Price5To10, got.PriceTier)
	assert.Equal(t, []domain.PaymentMethod{domain.PaymentCash, domain.PaymentVenmo}, got.PaymentMethods)
	assert.Equal(t, domain.StockMedium, got.StockLevel)
	assert.NotNil(t, got.Photos)
}

func TestStandDaoToDomainRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dao.Stand)
		field  string
	}{
		{name: "half coordinates", mutate: func(s *dao.Stand) { s.Longitude = nil }, field: "location"},
		{name: "latitude out of range", mutate: func(s *dao.Stand) { s.Latitude = floatPtr(91) }, field: "location"},
		{name: "unknown stock level", mutate: func(s *dao.Stand) { s.StockLevel = "Plenty" }, field: "stock_level"},
		{name: "unknown price tier", mutate: func(s *dao.Stand) { s.PriceTier = "cheap" }, field: "price_tier"},
		{name: "unknown payment method", mutate: func(s *dao.Stand) { s.PaymentMethods = pq.StringArray{"barter"} }, field: "payment_methods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(&row)

			_, err := standDaoToDomain(row)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRow)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, apperr.FieldsOf(err), tt.field)
		})
	}
}

func TestStandDaoToDomainAllowsMissingLocationAndTier(t *testing.T) {
	row := validRow()
	row.Latitude, row.Longitude = nil, nil
	row.PriceTier = ""

	got, err := standDaoToDomain(row)
	require.NoError(t, err)
	assert.Nil(t, got.Location)
	assert.Equal(t, domain.PriceUnknown, got.PriceTier)
}

func TestStandRepositoryListApprovedSkipsMalformed(t *testing.T) {
	good := validRow()
	bad := validRow()
	bad.StockLevel = "???"

	m := new(mockStandDAO)
	m.On("FindByApproval", mock.Anything, true).Return([]dao.Stand{good, bad}, nil)

	stands, skipped, err := NewStandRepository(m).ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, stands, 1)
	assert.Equal(t, good.ID, stands[0].ID)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrMalformedRow)
}

func TestStandRepositoryFindByIDWrapsNotFound(t *testing.T) {
	id := uuid.New()
	m := new(mockStandDAO)
	m.On("FindByID", mock.Anything, id).Return(dao.Stand{}, apperr.NotFound("dao.StandDAO.FindByID", dao.ErrStandNotFound))

	_, err := NewStandRepository(m).FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrStandNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStandRepositoryUpdateInventoryKeepsNilPaymentMethods(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	m := new(mockStandDAO)
	m.On("UpdateInventory", mock.Anything, id, "None", now, []string(nil)).Return(nil).Once()
	m.On("UpdateInventory", mock.Anything, id, "High", now, []string{"zelle"}).Return(nil).Once()

	r := NewStandRepository(m)
	require.NoError(t, r.UpdateInventory(context.Background(), id, domain.InventoryUpdate{StockLevel: domain.StockNone, LastVerifiedAt: now}))
	require.NoError(t, r.UpdateInventory(context.Background(), id, domain.InventoryUpdate{
		StockLevel:     domain.StockHigh,
		LastVerifiedAt: now,
		PaymentMethods: []domain.PaymentMethod{domain.PaymentZelle},
	}))

	m.AssertExpectations(t)
}

func TestStandDomainToDaoRoundTripsLocation(t *testing.T) {
	row := standDomainToDao(domain.Stand{Name: "x", Location: &geo.Point{Lat: 1, Lon: 2}})
	require.NotNil(t, row.Latitude)
	require.NotNil(t, row.Longitude)
	assert.Equal(t, 1.0, *row.Latitude)
	assert.Equal(t, 2.0, *row.Longitude)

	assert.Nil(t, standDomainToDao(domain.Stand{}).Latitude)
}
