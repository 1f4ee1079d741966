package handler

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RoomRequest is the body of room create and update
type RoomRequest struct {
	RoomNo    string           `json:"room_no" binding:"required,max=50"`
	BaseRent  *decimal.Decimal `json:"base_rent" binding:"required"`
	WaterBase *decimal.Decimal `json:"water_base"`
	ElecBase  *decimal.Decimal `json:"elec_base"`
	GasBase   *decimal.Decimal `json:"gas_base"`
}

// RoomResponse is the public view of a room
type RoomResponse struct {
	ID        uuid.UUID       `json:"id"`
	RoomNo    string          `json:"room_no"`
	BaseRent  decimal.Decimal `json:"base_rent"`
	WaterBase decimal.Decimal `json:"water_base"`
	ElecBase  decimal.Decimal `json:"elec_base"`
	GasBase   decimal.Decimal `json:"gas_base"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// ReadingListQuery filters GET /readings
type ReadingListQuery struct {
	RoomID *string `form:"room_id" binding:"omitempty,uuid"`
	Period *string `form:"period" binding:"omitempty,period"`
}

// ReadingRequest is the body of POST /readings
type ReadingRequest struct {
	RoomID string           `json:"room_id" binding:"required,uuid"`
	Period string           `json:"period" binding:"required,period"`
	Water  *decimal.Decimal `json:"water" binding:"required"`
	Elec   *decimal.Decimal `json:"elec" binding:"required"`
	Gas    *decimal.Decimal `json:"gas" binding:"required"`
}

// ReadingResponse is the public view of a meter reading
type ReadingResponse struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	Period    string          `json:"period"`
	Water     decimal.Decimal `json:"water"`
	Elec      decimal.Decimal `json:"elec"`
	Gas       decimal.Decimal `json:"gas"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func (r RoomRequest) baseline() rental.MeterValues {
	return rental.MeterValues{
		Water: lo.FromPtrOr(r.WaterBase, decimal.Zero),
		Elec:  lo.FromPtrOr(r.ElecBase, decimal.Zero),
		Gas:   lo.FromPtrOr(r.GasBase, decimal.Zero),
	}
}

func toRoomResponse(r *rental.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		RoomNo:    r.RoomNo,
		BaseRent:  money(r.BaseRent),
		WaterBase: r.Baseline.Water,
		ElecBase:  r.Baseline.Elec,
		GasBase:   r.Baseline.Gas,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func toReadingResponse(m *rental.MeterReading) ReadingResponse {
	return ReadingResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Period:    m.Period.String(),
		Water:     m.Values.Water,
		Elec:      m.Values.Elec,
		Gas:       m.Values.Gas,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}
