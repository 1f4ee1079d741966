package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// ReadingLookup finds the readings a bill is computed from
type ReadingLookup struct {
	readingRepo rental.MeterReadingRepository
}

// NewReadingLookup creates a new ReadingLookup
func NewReadingLookup(readingRepo rental.MeterReadingRepository) *ReadingLookup {
	return &ReadingLookup{readingRepo: readingRepo}
}

// GetReading returns the reading of exactly that period, or nil when there is none
func (l *ReadingLookup) GetReading(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	return orNil(l.readingRepo.FindByRoomAndPeriod(ctx, roomID, period))
}

// GetLastReadingBefore returns the latest reading strictly before period, or nil
func (l *ReadingLookup) GetLastReadingBefore(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	reading, err := orNil(l.readingRepo.FindLastBefore(ctx, roomID, period))
	if err != nil || reading == nil {
		return reading, err
	}
	if !reading.Period.Before(period) {
		return nil, fmt.Errorf("reading lookup returned period %s, want one before %s", reading.Period, period)
	}
	return reading, nil
}

func orNil(reading *rental.MeterReading, err error) (*rental.MeterReading, error) {
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return reading, err
}
