package rental

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// MeterReading is the cumulative meter snapshot of one room in one period.
// There is at most one reading per (room, period).
type MeterReading struct {
	shared.BaseEntity
	RoomID uuid.UUID
	Period Period
	Values MeterValues
}

// NewMeterReading creates a reading for a room and period
func NewMeterReading(roomID uuid.UUID, period Period, values MeterValues) (*MeterReading, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewValidationError("room_id is required")
	}
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	return &MeterReading{
		BaseEntity: shared.NewBaseEntity(),
		RoomID:     roomID,
		Period:     period,
		Values:     values,
	}, nil
}

// Record overwrites the meter values of an existing reading
func (m *MeterReading) Record(values MeterValues) {
	m.Values = values
	m.Touch()
}
