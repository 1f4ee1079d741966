package rental

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// RoomInput contains the editable attributes of a room
type RoomInput struct {
	RoomNo   string
	BaseRent decimal.Decimal
	Baseline rental.MeterValues
}

// ReadingInput records the meter values of a room for a period
type ReadingInput struct {
	RoomID uuid.UUID
	Period string
	Values rental.MeterValues
}

// ReadingQuery filters a reading listing; zero fields match everything
type ReadingQuery struct {
	RoomID *uuid.UUID
	Period *string
}
