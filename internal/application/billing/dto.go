package billing

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PriceInput contains the unit prices of a new price configuration
type PriceInput struct {
	WaterPrice   decimal.Decimal
	ElecPrice    decimal.Decimal
	GasPrice     decimal.Decimal
	PropertyRate decimal.Decimal
}

// GenerationStatus is the outcome of generating one room's bill
type GenerationStatus string

const (
	GenerationStatusGenerated GenerationStatus = "generated"
	GenerationStatusSkipped   GenerationStatus = "skipped"
)

// GenerationResult is the per-room outcome of a batch generation
type GenerationResult struct {
	RoomID uuid.UUID
	RoomNo string
	Status GenerationStatus
	// Bill is set when Status is generated
	Bill *billing.Bill
	// Reason is set when Status is skipped
	Reason string
}

// BillQuery filters a bill listing; zero fields match everything
type BillQuery struct {
	Period *string
	RoomID *uuid.UUID
}
