package export

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// Exporter renders bills of one period in any supported format
type Exporter struct {
	renderer PDFRenderer
	logger   *zap.Logger
}

// NewExporter creates an Exporter. renderer may be nil when PDF export is not needed.
func NewExporter(renderer PDFRenderer, logger *zap.Logger) *Exporter {
	return &Exporter{renderer: renderer, logger: logger}
}

// Export renders bills, which must already be sorted for display
func (e *Exporter) Export(ctx context.Context, format Format, period string, bills []*billing.BillWithRoom) (*Document, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatXLSX:
		data, err = WriteXLSX(bills)
	case FormatCSV:
		data, err = WriteCSV(bills)
	case FormatPDF:
		if e.renderer == nil {
			return nil, NewRenderError(ErrCodeRenderFailed, "no PDF renderer configured", nil)
		}
		data, err = WritePDF(ctx, e.renderer, period, bills)
	default:
		_, err = ParseFormat(string(format))
	}
	if err != nil {
		e.logger.Error("Bill export failed",
			zap.String("format", string(format)),
			zap.String("period", period),
			zap.Error(err))
		return nil, err
	}

	e.logger.Info("Bills exported",
		zap.String("format", string(format)),
		zap.String("period", period),
		zap.Int("bills", len(bills)),
		zap.Int("bytes", len(data)))

	return &Document{
		FileName:    format.FileName(period),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
