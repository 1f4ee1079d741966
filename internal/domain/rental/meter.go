package rental

import "github.com/shopspring/decimal"

// MeterValues is a triple of water, electricity and gas meter values
type MeterValues struct {
	Water decimal.Decimal
	Elec  decimal.Decimal
	Gas   decimal.Decimal
}

// NewMeterValues builds MeterValues from floats
func NewMeterValues(water, elec, gas float64) MeterValues {
	return MeterValues{
		Water: decimal.NewFromFloat(water),
		Elec:  decimal.NewFromFloat(elec),
		Gas:   decimal.NewFromFloat(gas),
	}
}

// Sub returns the per-utility difference m - previous.
// Negative results are kept as-is; a meter reset shows up as negative usage.
func (m MeterValues) Sub(previous MeterValues) MeterValues {
	return MeterValues{
		Water: m.Water.Sub(previous.Water),
		Elec:  m.Elec.Sub(previous.Elec),
		Gas:   m.Gas.Sub(previous.Gas),
	}
}
