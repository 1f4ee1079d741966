package billing

import (
	"strings"
	"time"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// PaidAtLayout is the wire format of payment timestamps
const PaidAtLayout = "2006-01-02 15:04:05"

// PaymentStatus is the payment state of a bill
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is the payment metadata of a bill. PaidAt, Method and Remark only
// carry meaning while the bill is paid.
type Payment struct {
	IsPaid bool
	PaidAt *time.Time
	Method string
	Remark string
}

// Status returns PAID or UNPAID
func (p Payment) Status() PaymentStatus {
	if p.IsPaid {
		return PaymentStatusPaid
	}
	return PaymentStatusUnpaid
}

// PaymentInput is an unvalidated payment update as received from a caller
type PaymentInput struct {
	IsPaid    int
	PaidAt    *string
	PayMethod *string
	Remark    *string
}

// Parse validates the input and turns it into the Payment it describes.
//
// is_paid=1 requires paid_at in YYYY-MM-DD HH:MM:SS. is_paid=0 yields an
// empty payment whatever else was supplied.
func (in PaymentInput) Parse() (Payment, error) {
	switch in.IsPaid {
	case 0:
		return Payment{}, nil
	case 1:
	default:
		return Payment{}, shared.NewValidationError("is_paid must be 0 or 1, got %d", in.IsPaid)
	}

	if in.PaidAt == nil || strings.TrimSpace(*in.PaidAt) == "" {
		return Payment{}, shared.NewValidationError("paid_at is required when is_paid=1")
	}
	paidAt, err := time.ParseInLocation(PaidAtLayout, strings.TrimSpace(*in.PaidAt), time.Local)
	if err != nil {
		return Payment{}, shared.NewValidationError("paid_at must be in YYYY-MM-DD HH:MM:SS format")
	}

	p := Payment{IsPaid: true, PaidAt: &paidAt}
	if in.PayMethod != nil {
		p.Method = *in.PayMethod
	}
	if in.Remark != nil {
		p.Remark = *in.Remark
	}
	return p, nil
}
