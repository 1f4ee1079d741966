package persistence

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriceConfigRepository implements billing.PriceConfigRepository using GORM.
// Price rows are insert-only.
type GormPriceConfigRepository struct {
	db *gorm.DB
}

// NewGormPriceConfigRepository creates a new GormPriceConfigRepository
func NewGormPriceConfigRepository(db *gorm.DB) *GormPriceConfigRepository {
	return &GormPriceConfigRepository{db: db}
}

// Create inserts a new price version. Inserting an ID that already exists is a no-op.
func (r *GormPriceConfigRepository) Create(ctx context.Context, price *billing.PriceConfig) error {
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(models.PriceConfigModelFromDomain(price)).Error
	return translateError(err)
}

// FindLatest returns the price configuration with the latest effective_from
func (r *GormPriceConfigRepository) FindLatest(ctx context.Context) (*billing.PriceConfig, error) {
	var model models.PriceConfigModel
	err := conn(ctx, r.db).
		Order("effective_from DESC").
		Order("created_at DESC").
		Take(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists price configurations, latest first
func (r *GormPriceConfigRepository) FindAll(ctx context.Context) ([]*billing.PriceConfig, error) {
	var rows []models.PriceConfigModel
	if err := conn(ctx, r.db).Order("effective_from DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	prices := make([]*billing.PriceConfig, len(rows))
	for i := range rows {
		prices[i] = rows[i].ToDomain()
	}
	return prices, nil
}

var _ billing.PriceConfigRepository = (*GormPriceConfigRepository)(nil)
