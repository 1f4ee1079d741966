package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// PaymentService applies payment state changes to bills
type PaymentService struct {
	tm       shared.TransactionManager
	roomRepo rental.RoomRepository
	billRepo billing.BillRepository
	metrics  MetricsRecorder
	logger   *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	tm shared.TransactionManager,
	roomRepo rental.RoomRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		tm:       tm,
		roomRepo: roomRepo,
		billRepo: billRepo,
		metrics:  nopRecorder{},
		logger:   logger,
	}
}

// UpdatePayment marks one bill paid or unpaid
func (s *PaymentService) UpdatePayment(ctx context.Context, billID uuid.UUID, input billing.PaymentInput) (*billing.BillWithRoom, error) {
	payment, err := input.Parse()
	if err != nil {
		return nil, err
	}

	var result *billing.BillWithRoom
	err = s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByID(ctx, billID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Bill not found")
			}
			return err
		}

		bill.ApplyPayment(payment)
		if err := s.billRepo.UpdatePayment(ctx, bill); err != nil {
			return err
		}

		room, err := s.roomRepo.FindByID(ctx, bill.RoomID)
		if err != nil {
			return err
		}
		result = &billing.BillWithRoom{Bill: bill, RoomNo: room.RoomNo}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayments(ctx, payment.Status().String(), 1)
	s.logger.Info("Bill payment updated",
		zap.String("bill_id", billID.String()),
		zap.String("status", payment.Status().String()))
	return result, nil
}

// BatchUpdatePayment applies the same payment state to every existing bill
// among billIDs and returns how many were updated. Unknown IDs are ignored;
// when none of them exist the result is NotFound.
func (s *PaymentService) BatchUpdatePayment(ctx context.Context, billIDs []uuid.UUID, input billing.PaymentInput) (int64, error) {
	if len(billIDs) == 0 {
		return 0, shared.NewValidationError("bill_ids cannot be empty")
	}
	payment, err := input.Parse()
	if err != nil {
		return 0, err
	}

	var updated int64
	err = s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		bills, err := s.billRepo.FindByIDs(ctx, lo.Uniq(billIDs))
		if err != nil {
			return err
		}
		if len(bills) == 0 {
			return shared.NewNotFoundError("No bills found")
		}

		for _, bill := range bills {
			bill.ApplyPayment(payment)
			if err := s.billRepo.UpdatePayment(ctx, bill); err != nil {
				return err
			}
		}
		updated = int64(len(bills))
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.RecordPayments(ctx, payment.Status().String(), int(updated))
	s.logger.Info("Bill payments updated",
		zap.Int("requested", len(billIDs)),
		zap.Int64("updated", updated),
		zap.String("status", payment.Status().String()))
	return updated, nil
}
