package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPriceConfigRepository is a mock implementation of billing.PriceConfigRepository
type MockPriceConfigRepository struct {
	mock.Mock
}

func (m *MockPriceConfigRepository) Create(ctx context.Context, price *billing.PriceConfig) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceConfigRepository) FindLatest(ctx context.Context) (*billing.PriceConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PriceConfig), args.Error(1)
}

func (m *MockPriceConfigRepository) FindAll(ctx context.Context) ([]*billing.PriceConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*billing.PriceConfig), args.Error(1)
}

func TestPriceService_GetLatestPrice_CreatesDefaultsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.priceService.GetLatestPrice(ctx)
	require.NoError(t, err)
	assert.True(t, first.WaterPrice.Equal(decimal.NewFromFloat(4.0)))
	assert.True(t, first.ElecPrice.Equal(decimal.NewFromFloat(0.8)))
	assert.True(t, first.GasPrice.Equal(decimal.NewFromFloat(3.0)))
	assert.True(t, first.PropertyRate.Equal(decimal.NewFromFloat(0.5)))

	second, err := env.priceService.GetLatestPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := env.priceService.ListPrices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPriceService_GetLatestPrice_PrefersNewest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.priceService.GetLatestPrice(ctx)
	require.NoError(t, err)

	created, err := env.priceService.CreatePrice(ctx, PriceInput{
		WaterPrice:   decimal.NewFromInt(5),
		ElecPrice:    decimal.NewFromInt(1),
		GasPrice:     decimal.NewFromInt(4),
		PropertyRate: decimal.NewFromFloat(0.6),
	})
	require.NoError(t, err)

	latest, err := env.priceService.GetLatestPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, latest.ID)
}

func TestPriceService_CreatePrice_RejectsNegative(t *testing.T) {
	svc := NewPriceService(new(MockPriceConfigRepository), zap.NewNop())

	_, err := svc.CreatePrice(context.Background(), PriceInput{WaterPrice: decimal.NewFromInt(-1)})

	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPriceService_GetLatestPrice_ReturnsStoredDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceConfigRepository)
	stored := billing.DefaultPriceConfig()

	repo.On("FindLatest", ctx).Return(nil, shared.ErrNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(p *billing.PriceConfig) bool {
		return p.ID == billing.DefaultPriceConfigID
	})).Return(nil)
	repo.On("FindLatest", ctx).Return(stored, nil).Once()

	price, err := NewPriceService(repo, zap.NewNop()).GetLatestPrice(ctx)

	require.NoError(t, err)
	assert.Equal(t, billing.DefaultPriceConfigID, price.ID)
	repo.AssertExpectations(t)
}

func TestPriceService_GetLatestPrice_StorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceConfigRepository)
	boom := errors.New("db down")
	repo.On("FindLatest", ctx).Return(nil, boom)

	_, err := NewPriceService(repo, zap.NewNop()).GetLatestPrice(ctx)

	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
