package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Default unit prices used when no price configuration has been recorded yet
var (
	DefaultWaterPrice   = decimal.RequireFromString("4.0")
	DefaultElecPrice    = decimal.RequireFromString("0.8")
	DefaultGasPrice     = decimal.RequireFromString("3.0")
	DefaultPropertyRate = decimal.RequireFromString("0.5")
)

// PriceConfig is a versioned snapshot of unit prices. Rows are never updated;
// a price change is a new row with a later EffectiveFrom.
type PriceConfig struct {
	shared.BaseEntity
	WaterPrice decimal.Decimal
	ElecPrice  decimal.Decimal
	GasPrice   decimal.Decimal
	// PropertyRate is charged per unit of electricity used
	PropertyRate  decimal.Decimal
	EffectiveFrom time.Time
}

// NewPriceConfig creates a price configuration effective now
func NewPriceConfig(water, elec, gas, propertyRate decimal.Decimal) (*PriceConfig, error) {
	for name, v := range map[string]decimal.Decimal{
		"water_price":   water,
		"elec_price":    elec,
		"gas_price":     gas,
		"property_rate": propertyRate,
	} {
		if v.IsNegative() {
			return nil, shared.NewValidationError("%s cannot be negative", name)
		}
	}

	base := shared.NewBaseEntity()
	return &PriceConfig{
		BaseEntity:    base,
		WaterPrice:    water,
		ElecPrice:     elec,
		GasPrice:      gas,
		PropertyRate:  propertyRate,
		EffectiveFrom: base.CreatedAt,
	}, nil
}

// DefaultPriceConfigID is the fixed ID of the default configuration, so that
// concurrent first reads insert at most one default row.
var DefaultPriceConfigID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:rentdesk:price-config:default"))

// DefaultPriceConfig returns a price configuration populated with the default prices
func DefaultPriceConfig() *PriceConfig {
	pc, _ := NewPriceConfig(DefaultWaterPrice, DefaultElecPrice, DefaultGasPrice, DefaultPropertyRate)
	pc.ID = DefaultPriceConfigID
	return pc
}
