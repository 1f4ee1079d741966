package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMeterReadingRepository implements rental.MeterReadingRepository using GORM
type GormMeterReadingRepository struct {
	db *gorm.DB
}

// NewGormMeterReadingRepository creates a new GormMeterReadingRepository
func NewGormMeterReadingRepository(db *gorm.DB) *GormMeterReadingRepository {
	return &GormMeterReadingRepository{db: db}
}

// Save upserts the reading on (room_id, period). On return reading holds the
// stored row, so an update keeps the ID of the existing reading.
func (r *GormMeterReadingRepository) Save(ctx context.Context, reading *rental.MeterReading) error {
	db := conn(ctx, r.db)
	model := models.MeterReadingModelFromDomain(reading)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{"water", "elec", "gas", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return translateError(err)
	}

	stored, err := r.FindByRoomAndPeriod(ctx, reading.RoomID, reading.Period)
	if err != nil {
		return err
	}
	*reading = *stored
	return nil
}

// FindByRoomAndPeriod returns the reading for exactly that period
func (r *GormMeterReadingRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	var model models.MeterReadingModel
	err := conn(ctx, r.db).
		Where("room_id = ? AND period = ?", roomID, period.String()).
		Take(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindLastBefore returns the most recent reading strictly before period
func (r *GormMeterReadingRepository) FindLastBefore(ctx context.Context, roomID uuid.UUID, period rental.Period) (*rental.MeterReading, error) {
	var model models.MeterReadingModel
	err := conn(ctx, r.db).
		Where("room_id = ? AND period < ?", roomID, period.String()).
		Order("period DESC").
		Take(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists readings ordered by period descending
func (r *GormMeterReadingRepository) FindAll(ctx context.Context, filter rental.ReadingFilter) ([]*rental.MeterReading, error) {
	query := conn(ctx, r.db).Model(&models.MeterReadingModel{})
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", filter.Period.String())
	}

	var rows []models.MeterReadingModel
	if err := query.Order("period DESC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	readings := make([]*rental.MeterReading, len(rows))
	for i := range rows {
		readings[i] = rows[i].ToDomain()
	}
	return readings, nil
}

var _ rental.MeterReadingRepository = (*GormMeterReadingRepository)(nil)
