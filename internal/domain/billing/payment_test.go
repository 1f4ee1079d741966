package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentInput_Parse(t *testing.T) {
	t.Run("paid with valid timestamp", func(t *testing.T) {
		p, err := PaymentInput{
			IsPaid:    1,
			PaidAt:    lo.ToPtr("2024-02-03 10:11:12"),
			PayMethod: lo.ToPtr("wechat"),
			Remark:    lo.ToPtr("on time"),
		}.Parse()

		require.NoError(t, err)
		assert.True(t, p.IsPaid)
		require.NotNil(t, p.PaidAt)
		assert.Equal(t, "2024-02-03 10:11:12", p.PaidAt.Format(PaidAtLayout))
		assert.Equal(t, "wechat", p.Method)
		assert.Equal(t, "on time", p.Remark)
		assert.Equal(t, PaymentStatusPaid, p.Status())
	})

	t.Run("paid without paid_at fails", func(t *testing.T) {
		_, err := PaymentInput{IsPaid: 1}.Parse()

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("paid with blank paid_at fails", func(t *testing.T) {
		_, err := PaymentInput{IsPaid: 1, PaidAt: lo.ToPtr("  ")}.Parse()

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("paid with malformed paid_at fails", func(t *testing.T) {
		_, err := PaymentInput{IsPaid: 1, PaidAt: lo.ToPtr("2024-02-03T10:11:12Z")}.Parse()

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("unpaid ignores supplied metadata", func(t *testing.T) {
		p, err := PaymentInput{
			IsPaid:    0,
			PaidAt:    lo.ToPtr("2024-02-03 10:11:12"),
			PayMethod: lo.ToPtr("cash"),
			Remark:    lo.ToPtr("x"),
		}.Parse()

		require.NoError(t, err)
		assert.Equal(t, Payment{}, p)
		assert.Equal(t, PaymentStatusUnpaid, p.Status())
	})

	t.Run("unknown is_paid value fails", func(t *testing.T) {
		_, err := PaymentInput{IsPaid: 2}.Parse()

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestBill_ApplyPayment(t *testing.T) {
	bill := NewBill(uuid.New(), "2024-01", Charges{})
	paidAt := time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local)

	bill.ApplyPayment(Payment{IsPaid: true, PaidAt: &paidAt, Method: "cash", Remark: "r"})
	assert.True(t, bill.IsPaid())
	assert.Equal(t, "cash", bill.Payment.Method)

	bill.ApplyPayment(Payment{IsPaid: false, PaidAt: &paidAt, Method: "cash", Remark: "r"})
	assert.False(t, bill.IsPaid())
	assert.Nil(t, bill.Payment.PaidAt)
	assert.Empty(t, bill.Payment.Method)
	assert.Empty(t, bill.Payment.Remark)
}

func TestBill_ApplyChargesKeepsPayment(t *testing.T) {
	bill := NewBill(uuid.New(), "2024-01", Charges{Total: dec("1")})
	paidAt := time.Now()
	bill.ApplyPayment(Payment{IsPaid: true, PaidAt: &paidAt, Method: "card"})
	id := bill.ID

	bill.ApplyCharges(Charges{Total: dec("2")})

	assert.Equal(t, id, bill.ID)
	assert.True(t, bill.Charges.Total.Equal(dec("2")))
	assert.True(t, bill.IsPaid())
	assert.Equal(t, "card", bill.Payment.Method)
}

func TestNewPriceConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		pc := DefaultPriceConfig()

		assert.True(t, pc.WaterPrice.Equal(dec("4")))
		assert.True(t, pc.ElecPrice.Equal(dec("0.8")))
		assert.True(t, pc.GasPrice.Equal(dec("3")))
		assert.True(t, pc.PropertyRate.Equal(dec("0.5")))
		assert.False(t, pc.EffectiveFrom.IsZero())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewPriceConfig(dec("-1"), dec("1"), dec("1"), dec("1"))

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}
