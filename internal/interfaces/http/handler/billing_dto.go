package handler

import (
	"github.com/google/uuid"
	appbilling "github.com/rentdesk/backend/internal/application/billing"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PriceRequest is the body of POST /prices
type PriceRequest struct {
	WaterPrice   *decimal.Decimal `json:"water_price" binding:"required"`
	ElecPrice    *decimal.Decimal `json:"elec_price" binding:"required"`
	GasPrice     *decimal.Decimal `json:"gas_price" binding:"required"`
	PropertyRate *decimal.Decimal `json:"property_rate" binding:"required"`
}

// PriceResponse is the public view of a price configuration
type PriceResponse struct {
	ID            uuid.UUID       `json:"id"`
	WaterPrice    decimal.Decimal `json:"water_price"`
	ElecPrice     decimal.Decimal `json:"elec_price"`
	GasPrice      decimal.Decimal `json:"gas_price"`
	PropertyRate  decimal.Decimal `json:"property_rate"`
	EffectiveFrom string          `json:"effective_from"`
}

// PeriodQuery is a required ?period=YYYY-MM parameter
type PeriodQuery struct {
	Period string `form:"period" binding:"required,period"`
}

// BillListQuery filters GET /bills
type BillListQuery struct {
	Period *string `form:"period" binding:"omitempty,period"`
	RoomID *string `form:"room_id" binding:"omitempty,uuid"`
}

// PaymentRequest is the body of a payment update. is_paid is 1 (paid) or 0 (unpaid).
type PaymentRequest struct {
	IsPaid    *int    `json:"is_paid" binding:"required"`
	PaidAt    *string `json:"paid_at"`
	PayMethod *string `json:"pay_method" binding:"omitempty,max=32"`
	Remark    *string `json:"remark" binding:"omitempty,max=255"`
}

// BatchPaymentRequest applies one payment update to many bills
type BatchPaymentRequest struct {
	BillIDs []string `json:"bill_ids" binding:"required,dive,uuid"`
	PaymentRequest
}

// BillResponse is the public view of a bill
type BillResponse struct {
	ID           uuid.UUID       `json:"id"`
	RoomID       uuid.UUID       `json:"room_id"`
	RoomNo       string          `json:"room_no"`
	Period       string          `json:"period"`
	RentFee      decimal.Decimal `json:"rent_fee"`
	WaterUsed    decimal.Decimal `json:"water_used"`
	WaterFee     decimal.Decimal `json:"water_fee"`
	ElecUsed     decimal.Decimal `json:"elec_used"`
	ElecFee      decimal.Decimal `json:"elec_fee"`
	GasUsed      decimal.Decimal `json:"gas_used"`
	GasFee       decimal.Decimal `json:"gas_fee"`
	PropertyRate decimal.Decimal `json:"property_rate"`
	PropertyFee  decimal.Decimal `json:"property_fee"`
	Total        decimal.Decimal `json:"total"`
	GeneratedAt  string          `json:"generated_at"`
	IsPaid       int             `json:"is_paid"`
	PaidAt       *string         `json:"paid_at"`
	PayMethod    *string         `json:"pay_method"`
	Remark       *string         `json:"remark"`
}

// SkippedRoom is a room the batch generator could not bill
type SkippedRoom struct {
	RoomID uuid.UUID `json:"room_id"`
	RoomNo string    `json:"room_no"`
	Reason string    `json:"reason"`
}

// GenerateBillsResponse is the result of POST /bills/generate
type GenerateBillsResponse struct {
	Period  string         `json:"period"`
	Bills   []BillResponse `json:"bills"`
	Skipped []SkippedRoom  `json:"skipped"`
}

// BatchPaymentResponse is the result of PATCH /bills/pay/batch
type BatchPaymentResponse struct {
	Updated int64 `json:"updated"`
}

func (r PaymentRequest) toInput() billing.PaymentInput {
	return billing.PaymentInput{
		IsPaid:    *r.IsPaid,
		PaidAt:    r.PaidAt,
		PayMethod: r.PayMethod,
		Remark:    r.Remark,
	}
}

func toPriceResponse(p *billing.PriceConfig) PriceResponse {
	return PriceResponse{
		ID:            p.ID,
		WaterPrice:    p.WaterPrice,
		ElecPrice:     p.ElecPrice,
		GasPrice:      p.GasPrice,
		PropertyRate:  p.PropertyRate,
		EffectiveFrom: formatTime(p.EffectiveFrom),
	}
}

func toBillResponse(b *billing.Bill, roomNo string) BillResponse {
	ch := b.Charges
	return BillResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomNo:       roomNo,
		Period:       b.Period.String(),
		RentFee:      money(ch.RentFee),
		WaterUsed:    ch.Used.Water,
		WaterFee:     money(ch.WaterFee),
		ElecUsed:     ch.Used.Elec,
		ElecFee:      money(ch.ElecFee),
		GasUsed:      ch.Used.Gas,
		GasFee:       money(ch.GasFee),
		PropertyRate: ch.PropertyRate,
		PropertyFee:  money(ch.PropertyFee),
		Total:        money(ch.Total),
		GeneratedAt:  formatTime(b.GeneratedAt),
		IsPaid:       lo.Ternary(b.IsPaid(), 1, 0),
		PaidAt:       formatTimePtr(b.Payment.PaidAt),
		PayMethod:    lo.EmptyableToPtr(b.Payment.Method),
		Remark:       lo.EmptyableToPtr(b.Payment.Remark),
	}
}

func toBillResponses(bills []*billing.BillWithRoom) []BillResponse {
	return lo.Map(bills, func(b *billing.BillWithRoom, _ int) BillResponse {
		return toBillResponse(b.Bill, b.RoomNo)
	})
}

func toGenerateBillsResponse(period string, results []appbilling.GenerationResult) GenerateBillsResponse {
	resp := GenerateBillsResponse{
		Period:  period,
		Bills:   []BillResponse{},
		Skipped: []SkippedRoom{},
	}
	for _, r := range results {
		switch r.Status {
		case appbilling.GenerationStatusGenerated:
			resp.Bills = append(resp.Bills, toBillResponse(r.Bill, r.RoomNo))
		case appbilling.GenerationStatusSkipped:
			resp.Skipped = append(resp.Skipped, SkippedRoom{RoomID: r.RoomID, RoomNo: r.RoomNo, Reason: r.Reason})
		}
	}
	return resp
}
