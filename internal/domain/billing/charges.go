package billing

import (
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// Charges are the derived amounts of a bill
type Charges struct {
	RentFee      decimal.Decimal
	Used         rental.MeterValues
	WaterFee     decimal.Decimal
	ElecFee      decimal.Decimal
	GasFee       decimal.Decimal
	PropertyRate decimal.Decimal
	PropertyFee  decimal.Decimal
	Total        decimal.Decimal
}

// ComputeCharges prices the usage between previous and current at the given
// unit prices. The property fee rides on electricity usage.
//
// Amounts are kept at full precision; rounding is a presentation concern.
func ComputeCharges(baseRent decimal.Decimal, previous, current rental.MeterValues, price *PriceConfig) Charges {
	used := current.Sub(previous)

	c := Charges{
		RentFee:      baseRent,
		Used:         used,
		WaterFee:     used.Water.Mul(price.WaterPrice),
		ElecFee:      used.Elec.Mul(price.ElecPrice),
		GasFee:       used.Gas.Mul(price.GasPrice),
		PropertyRate: price.PropertyRate,
		PropertyFee:  used.Elec.Mul(price.PropertyRate),
	}
	c.Total = c.RentFee.Add(c.WaterFee).Add(c.ElecFee).Add(c.GasFee).Add(c.PropertyFee)
	return c
}
