package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// PriceConfigModel is the persistence model for the PriceConfig domain entity.
type PriceConfigModel struct {
	EntityColumns
	WaterPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ElecPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GasPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PropertyRate  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EffectiveFrom time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PriceConfigModel) TableName() string {
	return "price_configs"
}

// ToDomain converts the persistence model to a domain PriceConfig
func (m *PriceConfigModel) ToDomain() *billing.PriceConfig {
	return &billing.PriceConfig{
		BaseEntity:    m.EntityColumns.entity(),
		WaterPrice:    m.WaterPrice,
		ElecPrice:     m.ElecPrice,
		GasPrice:      m.GasPrice,
		PropertyRate:  m.PropertyRate,
		EffectiveFrom: m.EffectiveFrom,
	}
}

// PriceConfigModelFromDomain creates a persistence model from a domain PriceConfig
func PriceConfigModelFromDomain(p *billing.PriceConfig) *PriceConfigModel {
	m := &PriceConfigModel{
		WaterPrice:    p.WaterPrice,
		ElecPrice:     p.ElecPrice,
		GasPrice:      p.GasPrice,
		PropertyRate:  p.PropertyRate,
		EffectiveFrom: p.EffectiveFrom,
	}
	m.EntityColumns = columnsOf(p.BaseEntity)
	return m
}

// BillChargeColumns are the derived columns rewritten on every generation
var BillChargeColumns = []string{
	"rent_fee",
	"water_used", "water_fee",
	"elec_used", "elec_fee",
	"gas_used", "gas_fee",
	"property_rate", "property_fee",
	"total", "generated_at", "updated_at",
}

// BillPaymentColumns are the columns written by payment updates
var BillPaymentColumns = []string{"is_paid", "paid_at", "pay_method", "remark", "updated_at"}

// BillModel is the persistence model for the Bill domain entity.
// (room_id, period) is unique.
type BillModel struct {
	EntityColumns
	RoomID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_room_period_bill,priority:1"`
	Period       string          `gorm:"type:varchar(7);not null;uniqueIndex:uq_room_period_bill,priority:2;index"`
	RentFee      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WaterUsed    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WaterFee     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElecUsed     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElecFee      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GasUsed      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GasFee       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PropertyRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PropertyFee  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GeneratedAt  time.Time       `gorm:"not null"`
	IsPaid       bool            `gorm:"not null;default:false;index"`
	PaidAt       *time.Time
	PayMethod    string `gorm:"type:varchar(50)"`
	Remark       string `gorm:"type:varchar(255)"`

	Room *RoomModel `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseEntity: m.EntityColumns.entity(),
		RoomID:     m.RoomID,
		Period:     rental.Period(m.Period),
		Charges: billing.Charges{
			RentFee: m.RentFee,
			Used: rental.MeterValues{
				Water: m.WaterUsed,
				Elec:  m.ElecUsed,
				Gas:   m.GasUsed,
			},
			WaterFee:     m.WaterFee,
			ElecFee:      m.ElecFee,
			GasFee:       m.GasFee,
			PropertyRate: m.PropertyRate,
			PropertyFee:  m.PropertyFee,
			Total:        m.Total,
		},
		GeneratedAt: m.GeneratedAt,
		Payment: billing.Payment{
			IsPaid: m.IsPaid,
			PaidAt: m.PaidAt,
			Method: m.PayMethod,
			Remark: m.Remark,
		},
	}
}

// BillModelFromDomain creates a persistence model from a domain Bill
func BillModelFromDomain(b *billing.Bill) *BillModel {
	c := b.Charges
	m := &BillModel{
		RoomID:       b.RoomID,
		Period:       b.Period.String(),
		RentFee:      c.RentFee,
		WaterUsed:    c.Used.Water,
		WaterFee:     c.WaterFee,
		ElecUsed:     c.Used.Elec,
		ElecFee:      c.ElecFee,
		GasUsed:      c.Used.Gas,
		GasFee:       c.GasFee,
		PropertyRate: c.PropertyRate,
		PropertyFee:  c.PropertyFee,
		Total:        c.Total,
		GeneratedAt:  b.GeneratedAt,
		IsPaid:       b.Payment.IsPaid,
		PaidAt:       b.Payment.PaidAt,
		PayMethod:    b.Payment.Method,
		Remark:       b.Payment.Remark,
	}
	m.EntityColumns = columnsOf(b.BaseEntity)
	return m
}

// BillWithRoomRow is the scan target of a bills/rooms join
type BillWithRoomRow struct {
	BillModel
	RoomNo string
}

// ToDomain converts the row to a domain BillWithRoom
func (r *BillWithRoomRow) ToDomain() *billing.BillWithRoom {
	return &billing.BillWithRoom{
		Bill:   r.BillModel.ToDomain(),
		RoomNo: r.RoomNo,
	}
}
