package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// Bill is the monthly bill of one room. There is exactly one bill per
// (room, period); regenerating it rewrites Charges in place.
type Bill struct {
	shared.BaseEntity
	RoomID      uuid.UUID
	Period      rental.Period
	Charges     Charges
	GeneratedAt time.Time
	Payment     Payment
}

// NewBill creates an unpaid bill with the given charges
func NewBill(roomID uuid.UUID, period rental.Period, charges Charges) *Bill {
	b := &Bill{
		BaseEntity: shared.NewBaseEntity(),
		RoomID:     roomID,
		Period:     period,
	}
	b.ApplyCharges(charges)
	return b
}

// ApplyCharges overwrites the derived amounts. Payment fields are left alone.
func (b *Bill) ApplyCharges(charges Charges) {
	b.Charges = charges
	b.GeneratedAt = time.Now()
	b.Touch()
}

// ApplyPayment sets the payment state. An unpaid payment clears paid time, method and remark.
func (b *Bill) ApplyPayment(p Payment) {
	if !p.IsPaid {
		p = Payment{}
	}
	b.Payment = p
	b.Touch()
}

// IsPaid returns true if the bill has been paid
func (b *Bill) IsPaid() bool {
	return b.Payment.IsPaid
}

// BillWithRoom is a bill joined with its room number for listings and exports
type BillWithRoom struct {
	*Bill
	RoomNo string
}
