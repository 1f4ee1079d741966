package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMeterReadingRepository mocks only the lookups ReadingLookup uses
type MockMeterReadingRepository struct {
	rental.MeterReadingRepository
	mock.Mock
}

func (m *MockMeterReadingRepository) FindLastBefore(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	args := m.Called(ctx, roomID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.MeterReading), args.Error(1)
}

func TestReadingLookup_GetLastReadingBefore(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	reading := func(period rental.Period) *rental.MeterReading {
		r, err := rental.NewMeterReading(roomID, period, rental.NewMeterValues(10, 100, 5))
		require.NoError(t, err)
		return r
	}

	t.Run("returns the earlier reading", func(t *testing.T) {
		repo := new(MockMeterReadingRepository)
		repo.On("FindLastBefore", ctx, roomID, rental.Period("2024-02")).Return(reading("2023-11"), nil)

		got, err := NewReadingLookup(repo).GetLastReadingBefore(ctx, roomID, "2024-02")
		require.NoError(t, err)
		assert.Equal(t, rental.Period("2023-11"), got.Period)
	})

	t.Run("no earlier reading is nil without error", func(t *testing.T) {
		repo := new(MockMeterReadingRepository)
		repo.On("FindLastBefore", ctx, roomID, rental.Period("2024-01")).Return(nil, shared.ErrNotFound)

		got, err := NewReadingLookup(repo).GetLastReadingBefore(ctx, roomID, "2024-01")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rejects a reading that is not earlier", func(t *testing.T) {
		repo := new(MockMeterReadingRepository)
		repo.On("FindLastBefore", ctx, roomID, rental.Period("2024-02")).Return(reading("2024-02"), nil)

		got, err := NewReadingLookup(repo).GetLastReadingBefore(ctx, roomID, "2024-02")
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "want one before 2024-02")
	})
}
