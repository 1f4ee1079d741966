package rental

import (
	"context"

	"github.com/google/uuid"
)

// RoomRepository defines persistence for rooms
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error

	// Delete removes the room together with its readings and bills
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByRoomNo(ctx context.Context, roomNo string) (*Room, error)

	// FindAll returns every room ordered by room number
	FindAll(ctx context.Context) ([]*Room, error)
}

// ReadingFilter narrows a reading listing
type ReadingFilter struct {
	RoomID *uuid.UUID
	Period *Period
}

// MeterReadingRepository defines persistence for meter readings
type MeterReadingRepository interface {
	// Save inserts or updates the reading keyed by (RoomID, Period)
	Save(ctx context.Context, reading *MeterReading) error

	// FindByRoomAndPeriod returns the reading for exactly that period
	FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period Period) (*MeterReading, error)

	// FindLastBefore returns the reading with the greatest period strictly
	// less than period, or shared.ErrNotFound when there is none
	FindLastBefore(ctx context.Context, roomID uuid.UUID, period Period) (*MeterReading, error)

	// FindAll lists readings ordered by period descending
	FindAll(ctx context.Context, filter ReadingFilter) ([]*MeterReading, error)
}
