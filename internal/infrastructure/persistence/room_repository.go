package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements rental.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// Create inserts a room. A duplicate room number yields shared.ErrAlreadyExists.
func (r *GormRoomRepository) Create(ctx context.Context, room *rental.Room) error {
	return translateError(conn(ctx, r.db).Create(models.RoomModelFromDomain(room)).Error)
}

// Update writes every field of an existing room
func (r *GormRoomRepository) Update(ctx context.Context, room *rental.Room) error {
	model := models.RoomModelFromDomain(room)
	result := conn(ctx, r.db).Model(model).
		Select("room_no", "base_rent", "water_base", "elec_base", "gas_base", "updated_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the room and everything that belongs to it.
// Child rows are deleted explicitly so the cascade does not depend on
// the driver enforcing foreign keys.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.BillModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.MeterReadingModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.RoomModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a room by ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Room, error) {
	var model models.RoomModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByRoomNo finds a room by its room number
func (r *GormRoomRepository) FindByRoomNo(ctx context.Context, roomNo string) (*rental.Room, error) {
	var model models.RoomModel
	if err := conn(ctx, r.db).Where("room_no = ?", roomNo).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every room ordered by room number
func (r *GormRoomRepository) FindAll(ctx context.Context) ([]*rental.Room, error) {
	var rows []models.RoomModel
	if err := conn(ctx, r.db).Order("room_no ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	rooms := make([]*rental.Room, len(rows))
	for i := range rows {
		rooms[i] = rows[i].ToDomain()
	}
	return rooms, nil
}

var _ rental.RoomRepository = (*GormRoomRepository)(nil)
