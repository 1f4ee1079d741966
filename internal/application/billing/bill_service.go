package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// BillService generates and lists bills
type BillService struct {
	tm       shared.TransactionManager
	roomRepo rental.RoomRepository
	billRepo billing.BillRepository
	prices   *PriceService
	readings *ReadingLookup
	metrics  MetricsRecorder
	logger   *zap.Logger
}

// NewBillService creates a new bill service
func NewBillService(
	tm shared.TransactionManager,
	roomRepo rental.RoomRepository,
	billRepo billing.BillRepository,
	prices *PriceService,
	readings *ReadingLookup,
	logger *zap.Logger,
) *BillService {
	return &BillService{
		tm:       tm,
		roomRepo: roomRepo,
		billRepo: billRepo,
		prices:   prices,
		readings: readings,
		metrics:  nopRecorder{},
		logger:   logger,
	}
}

// GenerateBillForRoom computes the bill of room for period and stores it.
//
// The current period's reading is required. The previous values come from the
// latest earlier reading, or the room baseline when the room has none. An
// existing bill for (room, period) is rewritten in place and keeps its ID and
// payment state. Everything runs in one transaction.
func (s *BillService) GenerateBillForRoom(ctx context.Context, room *rental.Room, period rental.Period) (*billing.Bill, error) {
	var bill *billing.Bill
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.readings.GetReading(ctx, room.ID, period)
		if err != nil {
			return err
		}
		if current == nil {
			return shared.NewNotFoundError("no meter reading for room %s in period %s", room.RoomNo, period)
		}

		previous := room.Baseline
		prior, err := s.readings.GetLastReadingBefore(ctx, room.ID, period)
		if err != nil {
			return err
		}
		if prior != nil {
			previous = prior.Values
		}

		price, err := s.prices.GetLatestPrice(ctx)
		if err != nil {
			return err
		}
		charges := billing.ComputeCharges(room.BaseRent, previous, current.Values, price)

		existing, err := s.billRepo.FindByRoomAndPeriod(ctx, room.ID, period)
		switch {
		case err == nil:
			existing.ApplyCharges(charges)
			if err := s.billRepo.UpdateCharges(ctx, existing); err != nil {
				return err
			}
			bill = existing
		case errors.Is(err, shared.ErrNotFound):
			bill = billing.NewBill(room.ID, period, charges)
			if err := s.billRepo.Create(ctx, bill); err != nil {
				return err
			}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Bill generated",
		zap.String("room_no", room.RoomNo),
		zap.String("period", period.String()),
		zap.String("total", bill.Charges.Total.String()))
	return bill, nil
}

// GenerateBillForRoomID looks up the room and generates its bill
func (s *BillService) GenerateBillForRoomID(ctx context.Context, roomID uuid.UUID, period string) (*billing.BillWithRoom, error) {
	p, err := rental.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Room not found")
		}
		return nil, err
	}

	bill, err := s.GenerateBillForRoom(ctx, room, p)
	if err != nil {
		return nil, err
	}
	return &billing.BillWithRoom{Bill: bill, RoomNo: room.RoomNo}, nil
}

// GenerateBillsDetailed generates the bill of every room for period, in room
// number order. Each room runs in its own transaction. A room without a
// reading for the period is reported as skipped; any other failure stops the
// batch and is returned with the results gathered so far.
func (s *BillService) GenerateBillsDetailed(ctx context.Context, period string) ([]GenerationResult, error) {
	p, err := rental.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		s.metrics.RecordGeneration(ctx, p.String(), 0, 0, time.Since(start), err)
		return nil, err
	}

	results := make([]GenerationResult, 0, len(rooms))
	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			s.metrics.RecordGeneration(ctx, p.String(), 0, 0, time.Since(start), err)
			return results, err
		}

		bill, err := s.GenerateBillForRoom(ctx, room, p)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Error("Bill generation aborted",
					zap.String("room_no", room.RoomNo),
					zap.String("period", p.String()),
					zap.Error(err))
				s.metrics.RecordGeneration(ctx, p.String(), 0, 0, time.Since(start), err)
				return results, err
			}
			s.logger.Info("Room skipped during bill generation",
				zap.String("room_no", room.RoomNo),
				zap.String("period", p.String()),
				zap.String("reason", err.Error()))
			results = append(results, GenerationResult{
				RoomID: room.ID,
				RoomNo: room.RoomNo,
				Status: GenerationStatusSkipped,
				Reason: err.Error(),
			})
			continue
		}

		results = append(results, GenerationResult{
			RoomID: room.ID,
			RoomNo: room.RoomNo,
			Status: GenerationStatusGenerated,
			Bill:   bill,
		})
	}

	generated := lo.CountBy(results, func(r GenerationResult) bool { return r.Status == GenerationStatusGenerated })
	skipped := len(results) - generated
	s.metrics.RecordGeneration(ctx, p.String(), generated, skipped, time.Since(start), nil)
	s.logger.Info("Bills generated",
		zap.String("period", p.String()),
		zap.Int("rooms", len(rooms)),
		zap.Int("generated", generated),
		zap.Int("skipped", skipped))
	return results, nil
}

// GenerateBills generates the bills of a period and returns the successful
// ones joined with their room numbers, in room number order
func (s *BillService) GenerateBills(ctx context.Context, period string) ([]*billing.BillWithRoom, error) {
	results, err := s.GenerateBillsDetailed(ctx, period)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(results, func(r GenerationResult, _ int) (*billing.BillWithRoom, bool) {
		if r.Status != GenerationStatusGenerated {
			return nil, false
		}
		return &billing.BillWithRoom{Bill: r.Bill, RoomNo: r.RoomNo}, true
	}), nil
}

// ListBills lists bills with room numbers, latest period first
func (s *BillService) ListBills(ctx context.Context, query BillQuery) ([]*billing.BillWithRoom, error) {
	filter := billing.BillFilter{RoomID: query.RoomID}
	if query.Period != nil {
		p, err := rental.ParsePeriod(*query.Period)
		if err != nil {
			return nil, err
		}
		filter.Period = &p
	}
	return s.billRepo.FindAllWithRoom(ctx, filter)
}
