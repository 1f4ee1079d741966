package billing

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/infrastructure/export"
)

// ExportService renders the bills of one period for download
type ExportService struct {
	billRepo billing.BillRepository
	exporter *export.Exporter
}

// NewExportService creates a new export service
func NewExportService(billRepo billing.BillRepository, exporter *export.Exporter) *ExportService {
	return &ExportService{
		billRepo: billRepo,
		exporter: exporter,
	}
}

// Export renders the bills of period, ordered by room number
func (s *ExportService) Export(ctx context.Context, format export.Format, period string) (*export.Document, error) {
	p, err := rental.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindAllWithRoom(ctx, billing.BillFilter{Period: &p})
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, format, p.String(), bills)
}
