package export

import (
	"strings"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BillRow is the flat, display-ready form of a bill
type BillRow struct {
	RoomNo       string `csv:"room_no"`
	Period       string `csv:"period"`
	RentFee      string `csv:"rent_fee"`
	WaterUsed    string `csv:"water_used"`
	WaterFee     string `csv:"water_fee"`
	ElecUsed     string `csv:"elec_used"`
	ElecFee      string `csv:"elec_fee"`
	GasUsed      string `csv:"gas_used"`
	GasFee       string `csv:"gas_fee"`
	PropertyRate string `csv:"property_rate"`
	PropertyFee  string `csv:"property_fee"`
	Total        string `csv:"total"`
	Status       string `csv:"status"`
	PaidAt       string `csv:"paid_at"`
	PayMethod    string `csv:"pay_method"`
	Remark       string `csv:"remark"`
}

var statusCaser = cases.Title(language.English)

// NewBillRows flattens bills into rows, keeping their order
func NewBillRows(bills []*billing.BillWithRoom) []BillRow {
	return lo.Map(bills, func(b *billing.BillWithRoom, _ int) BillRow {
		c := b.Charges
		row := BillRow{
			RoomNo:       b.RoomNo,
			Period:       b.Period.String(),
			RentFee:      money(c.RentFee),
			WaterUsed:    money(c.Used.Water),
			WaterFee:     money(c.WaterFee),
			ElecUsed:     money(c.Used.Elec),
			ElecFee:      money(c.ElecFee),
			GasUsed:      money(c.Used.Gas),
			GasFee:       money(c.GasFee),
			PropertyRate: money(c.PropertyRate),
			PropertyFee:  money(c.PropertyFee),
			Total:        money(c.Total),
			Status:       statusCaser.String(strings.ToLower(b.Payment.Status().String())),
			PayMethod:    b.Payment.Method,
			Remark:       b.Payment.Remark,
		}
		if b.Payment.PaidAt != nil {
			row.PaidAt = b.Payment.PaidAt.Format(billing.PaidAtLayout)
		}
		return row
	})
}

// money renders an amount with two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
