package rental

import (
	"strings"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const maxRoomNoLength = 50

// Room is a rentable unit with a monthly base rent and baseline meter values.
// The baseline stands in for the previous reading until the room's first reading exists.
type Room struct {
	shared.BaseEntity
	RoomNo   string
	BaseRent decimal.Decimal
	Baseline MeterValues
}

// NewRoom creates a new room
func NewRoom(roomNo string, baseRent decimal.Decimal, baseline MeterValues) (*Room, error) {
	roomNo, err := normalizeRoomNo(roomNo)
	if err != nil {
		return nil, err
	}
	if baseRent.IsNegative() {
		return nil, shared.NewValidationError("base_rent cannot be negative")
	}

	return &Room{
		BaseEntity: shared.NewBaseEntity(),
		RoomNo:     roomNo,
		BaseRent:   baseRent,
		Baseline:   baseline,
	}, nil
}

// Update replaces the room's editable attributes
func (r *Room) Update(roomNo string, baseRent decimal.Decimal, baseline MeterValues) error {
	roomNo, err := normalizeRoomNo(roomNo)
	if err != nil {
		return err
	}
	if baseRent.IsNegative() {
		return shared.NewValidationError("base_rent cannot be negative")
	}

	r.RoomNo = roomNo
	r.BaseRent = baseRent
	r.Baseline = baseline
	r.Touch()
	return nil
}

func normalizeRoomNo(roomNo string) (string, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return "", shared.NewValidationError("room_no cannot be empty")
	}
	if len(roomNo) > maxRoomNoLength {
		return "", shared.NewValidationError("room_no cannot exceed %d characters", maxRoomNoLength)
	}
	return roomNo, nil
}
