package billing

import (
	"context"
	"errors"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PriceService resolves and records price configurations
type PriceService struct {
	priceRepo billing.PriceConfigRepository
	logger    *zap.Logger
}

// NewPriceService creates a new price service
func NewPriceService(priceRepo billing.PriceConfigRepository, logger *zap.Logger) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// GetLatestPrice returns the configuration with the latest effective_from.
// When none exists yet the default configuration is stored and returned.
func (s *PriceService) GetLatestPrice(ctx context.Context) (*billing.PriceConfig, error) {
	price, err := s.priceRepo.FindLatest(ctx)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// the default row has a fixed ID, so racing callers insert it once
	defaults := billing.DefaultPriceConfig()
	if err := s.priceRepo.Create(ctx, defaults); err != nil {
		return nil, err
	}
	s.logger.Info("Default price configuration ensured",
		zap.String("price_id", defaults.ID.String()),
		zap.String("water_price", defaults.WaterPrice.String()),
		zap.String("elec_price", defaults.ElecPrice.String()),
		zap.String("gas_price", defaults.GasPrice.String()),
		zap.String("property_rate", defaults.PropertyRate.String()))

	return s.priceRepo.FindLatest(ctx)
}

// ListPrices lists every configuration, latest first
func (s *PriceService) ListPrices(ctx context.Context) ([]*billing.PriceConfig, error) {
	return s.priceRepo.FindAll(ctx)
}

// CreatePrice records a new configuration effective now
func (s *PriceService) CreatePrice(ctx context.Context, input PriceInput) (*billing.PriceConfig, error) {
	price, err := billing.NewPriceConfig(input.WaterPrice, input.ElecPrice, input.GasPrice, input.PropertyRate)
	if err != nil {
		return nil, err
	}
	if err := s.priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}

	s.logger.Info("Price configuration created", zap.String("price_id", price.ID.String()))
	return price, nil
}
