package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
)

// PriceConfigRepository defines persistence for price configurations
type PriceConfigRepository interface {
	// Create inserts a configuration; an ID that is already stored is left untouched
	Create(ctx context.Context, price *PriceConfig) error

	// FindLatest returns the configuration with the latest EffectiveFrom,
	// or shared.ErrNotFound when none exists
	FindLatest(ctx context.Context) (*PriceConfig, error)

	// FindAll lists configurations, latest first
	FindAll(ctx context.Context) ([]*PriceConfig, error)
}

// BillFilter narrows a bill listing
type BillFilter struct {
	Period *rental.Period
	RoomID *uuid.UUID
}

// BillRepository defines persistence for bills
type BillRepository interface {
	// Create inserts a new bill. If a bill for the same (room, period) was
	// inserted concurrently, its charges are overwritten instead and bill.ID
	// is set to the stored row's ID.
	Create(ctx context.Context, bill *Bill) error

	// UpdateCharges writes only the derived charge columns of an existing
	// bill. Payment columns in storage are left as they are.
	UpdateCharges(ctx context.Context, bill *Bill) error

	// UpdatePayment writes only the payment columns of an existing bill
	UpdatePayment(ctx context.Context, bill *Bill) error

	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period rental.Period) (*Bill, error)

	// FindByIDs returns the bills that exist among ids; unknown ids are ignored
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Bill, error)

	// FindAllWithRoom lists bills joined with room numbers, ordered by
	// period descending then room number
	FindAllWithRoom(ctx context.Context, filter BillFilter) ([]*BillWithRoom, error)
}
