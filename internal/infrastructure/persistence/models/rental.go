package models

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// RoomModel is the persistence model for the Room domain entity.
type RoomModel struct {
	EntityColumns
	RoomNo    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BaseRent  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WaterBase decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElecBase  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GasBase   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity
func (m *RoomModel) ToDomain() *rental.Room {
	return &rental.Room{
		BaseEntity: m.EntityColumns.entity(),
		RoomNo:     m.RoomNo,
		BaseRent:   m.BaseRent,
		Baseline: rental.MeterValues{
			Water: m.WaterBase,
			Elec:  m.ElecBase,
			Gas:   m.GasBase,
		},
	}
}

// RoomModelFromDomain creates a persistence model from a domain Room
func RoomModelFromDomain(r *rental.Room) *RoomModel {
	m := &RoomModel{
		RoomNo:    r.RoomNo,
		BaseRent:  r.BaseRent,
		WaterBase: r.Baseline.Water,
		ElecBase:  r.Baseline.Elec,
		GasBase:   r.Baseline.Gas,
	}
	m.EntityColumns = columnsOf(r.BaseEntity)
	return m
}

// MeterReadingModel is the persistence model for the MeterReading domain entity.
// (room_id, period) is unique.
type MeterReadingModel struct {
	EntityColumns
	RoomID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_room_period_reading,priority:1"`
	Period string          `gorm:"type:varchar(7);not null;uniqueIndex:uq_room_period_reading,priority:2;index"`
	Water  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Elec   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Gas    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Room *RoomModel `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MeterReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts the persistence model to a domain MeterReading entity
func (m *MeterReadingModel) ToDomain() *rental.MeterReading {
	return &rental.MeterReading{
		BaseEntity: m.EntityColumns.entity(),
		RoomID:     m.RoomID,
		Period:     rental.Period(m.Period),
		Values: rental.MeterValues{
			Water: m.Water,
			Elec:  m.Elec,
			Gas:   m.Gas,
		},
	}
}

// MeterReadingModelFromDomain creates a persistence model from a domain MeterReading
func MeterReadingModelFromDomain(r *rental.MeterReading) *MeterReadingModel {
	m := &MeterReadingModel{
		RoomID: r.RoomID,
		Period: r.Period.String(),
		Water:  r.Values.Water,
		Elec:   r.Values.Elec,
		Gas:    r.Values.Gas,
	}
	m.EntityColumns = columnsOf(r.BaseEntity)
	return m
}
