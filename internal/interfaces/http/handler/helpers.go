package handler

import (
	"time"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// timeLayout is the wire format of every timestamp in request and response bodies
const timeLayout = billing.PaidAtLayout

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// money rounds an amount for display. Stored values keep full precision.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
