package rental

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/rental"
	"go.uber.org/zap"
)

// ReadingService records and lists meter readings
type ReadingService struct {
	roomRepo    rental.RoomRepository
	readingRepo rental.MeterReadingRepository
	logger      *zap.Logger
}

// NewReadingService creates a new reading service
func NewReadingService(roomRepo rental.RoomRepository, readingRepo rental.MeterReadingRepository, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		roomRepo:    roomRepo,
		readingRepo: readingRepo,
		logger:      logger,
	}
}

// ListReadings lists readings, latest period first
func (s *ReadingService) ListReadings(ctx context.Context, query ReadingQuery) ([]*rental.MeterReading, error) {
	filter := rental.ReadingFilter{RoomID: query.RoomID}
	if query.Period != nil {
		period, err := rental.ParsePeriod(*query.Period)
		if err != nil {
			return nil, err
		}
		filter.Period = &period
	}
	return s.readingRepo.FindAll(ctx, filter)
}

// RecordReading creates the reading for (room, period) or overwrites its values
func (s *ReadingService) RecordReading(ctx context.Context, input ReadingInput) (*rental.MeterReading, error) {
	period, err := rental.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	if _, err := s.roomRepo.FindByID(ctx, input.RoomID); err != nil {
		return nil, roomNotFound(err)
	}

	reading, err := rental.NewMeterReading(input.RoomID, period, input.Values)
	if err != nil {
		return nil, err
	}
	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	s.logger.Info("Meter reading recorded",
		zap.String("room_id", input.RoomID.String()),
		zap.String("period", period.String()))
	return reading, nil
}
