package rental

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/stretchr/testify/mock"
)

// MockRoomRepository is a mock implementation of rental.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *rental.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *rental.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByRoomNo(ctx context.Context, roomNo string) (*rental.Room, error) {
	args := m.Called(ctx, roomNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context) ([]*rental.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*rental.Room), args.Error(1)
}

// MockMeterReadingRepository is a mock implementation of rental.MeterReadingRepository
type MockMeterReadingRepository struct {
	mock.Mock
}

func (m *MockMeterReadingRepository) Save(ctx context.Context, reading *rental.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockMeterReadingRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	args := m.Called(ctx, roomID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindLastBefore(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	args := m.Called(ctx, roomID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindAll(ctx context.Context, filter rental.ReadingFilter) ([]*rental.MeterReading, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*rental.MeterReading), args.Error(1)
}
