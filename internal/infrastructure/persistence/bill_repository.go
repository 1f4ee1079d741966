package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create inserts a bill. When another writer inserted the same (room_id, period)
// first, the unique index turns the insert into an update of the charge columns
// only, and bill is reloaded from the stored row.
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	db := conn(ctx, r.db)
	model := models.BillModelFromDomain(bill)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns(models.BillChargeColumns),
	}).Create(model).Error
	if err != nil {
		return translateError(err)
	}

	stored, err := r.FindByRoomAndPeriod(ctx, bill.RoomID, bill.Period)
	if err != nil {
		return err
	}
	*bill = *stored
	return nil
}

// UpdateCharges rewrites the charge columns of an existing bill and reloads
// the payment state from storage, so a payment committed by another
// transaction is neither overwritten nor hidden from the caller.
func (r *GormBillRepository) UpdateCharges(ctx context.Context, bill *billing.Bill) error {
	if err := r.updateColumns(ctx, bill, models.BillChargeColumns); err != nil {
		return err
	}
	stored, err := r.FindByID(ctx, bill.ID)
	if err != nil {
		return err
	}
	bill.Payment = stored.Payment
	return nil
}

// UpdatePayment writes the payment columns of an existing bill
func (r *GormBillRepository) UpdatePayment(ctx context.Context, bill *billing.Bill) error {
	return r.updateColumns(ctx, bill, models.BillPaymentColumns)
}

func (r *GormBillRepository) updateColumns(ctx context.Context, bill *billing.Bill, columns []string) error {
	model := models.BillModelFromDomain(bill)
	result := conn(ctx, r.db).Model(model).Select(columns).Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByRoomAndPeriod finds the bill of a room for a period
func (r *GormBillRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period rental.Period) (*billing.Bill, error) {
	var model models.BillModel
	err := conn(ctx, r.db).
		Where("room_id = ? AND period = ?", roomID, period.String()).
		Take(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the bills that exist among ids
func (r *GormBillRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*billing.Bill, error) {
	if len(ids) == 0 {
		return []*billing.Bill{}, nil
	}

	var rows []models.BillModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	bills := make([]*billing.Bill, len(rows))
	for i := range rows {
		bills[i] = rows[i].ToDomain()
	}
	return bills, nil
}

// FindAllWithRoom lists bills joined with their room numbers
func (r *GormBillRepository) FindAllWithRoom(ctx context.Context, filter billing.BillFilter) ([]*billing.BillWithRoom, error) {
	query := conn(ctx, r.db).
		Table("bills").
		Select("bills.*, rooms.room_no AS room_no").
		Joins("JOIN rooms ON rooms.id = bills.room_id")
	if filter.Period != nil {
		query = query.Where("bills.period = ?", filter.Period.String())
	}
	if filter.RoomID != nil {
		query = query.Where("bills.room_id = ?", *filter.RoomID)
	}

	var rows []models.BillWithRoomRow
	if err := query.Order("bills.period DESC").Order("rooms.room_no ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	bills := make([]*billing.BillWithRoom, len(rows))
	for i := range rows {
		bills[i] = rows[i].ToDomain()
	}
	return bills, nil
}

var _ billing.BillRepository = (*GormBillRepository)(nil)
