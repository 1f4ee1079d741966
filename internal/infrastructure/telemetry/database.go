package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// InstrumentDatabase registers the otelgorm plugin so every query becomes a
// child span of the request. Bound query values are only recorded when
// db_log_full_sql is set.
func (p *Providers) InstrumentDatabase(db *gorm.DB, dbName string) error {
	if !p.cfg.Enabled || !p.cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{
		otelgorm.WithDBName(dbName),
		otelgorm.WithTracerProvider(p.TracerProvider()),
	}
	if !p.cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	return nil
}
