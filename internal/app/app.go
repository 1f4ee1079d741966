// Package app assembles the repositories and application services shared by
// the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	appbilling "github.com/rentdesk/backend/internal/application/billing"
	appidentity "github.com/rentdesk/backend/internal/application/identity"
	apprental "github.com/rentdesk/backend/internal/application/rental"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/export"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// App holds the wired services of one process
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *persistence.Database

	Telemetry *telemetry.Providers

	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist

	Auth     *appidentity.AuthService
	Users    *appidentity.UserService
	Rooms    *apprental.RoomService
	Readings *apprental.ReadingService
	Prices   *appbilling.PriceService
	Bills    *appbilling.BillService
	Payments *appbilling.PaymentService
	Exports  *appbilling.ExportService

	closers []func() error
}

// New starts telemetry, connects to storage, migrates the schema and builds
// every service. The caller owns the returned App and must Close it.
// App.Logger also exports to the collector when telemetry logs are enabled.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("failed to start telemetry: %w", err)
	}
	log = tel.Logger(log)
	a := &App{Config: cfg, Logger: log, Telemetry: tel}
	a.closers = append(a.closers, func() error { return tel.Shutdown(context.Background()) })

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	if err := tel.InstrumentDatabase(db.DB, databaseName(cfg.Database)); err != nil {
		_ = a.Close()
		return nil, err
	}

	if err := db.AutoMigrate(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	if cfg.Redis.Enabled {
		blacklist, err := auth.NewRedisTokenBlacklist(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Blacklist = blacklist
		a.closers = append(a.closers, blacklist.Close)
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		a.Blacklist = auth.NewInMemoryTokenBlacklist()
	}

	renderer, err := export.NewChromedpRenderer(&export.ChromedpConfig{
		ExecPath:       cfg.Export.ChromePath,
		DefaultTimeout: cfg.Export.RenderTimeout,
		NoSandbox:      cfg.Export.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create pdf renderer: %w", err)
	}
	a.closers = append(a.closers, renderer.Close)

	tm := persistence.NewGormTransactionManager(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	readingRepo := persistence.NewGormMeterReadingRepository(db.DB)
	priceRepo := persistence.NewGormPriceConfigRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)

	a.JWT = auth.NewJWTService(cfg.JWT)
	a.Auth = appidentity.NewAuthService(userRepo, a.JWT, a.Blacklist, log)
	a.Users = appidentity.NewUserService(userRepo, log)
	a.Rooms = apprental.NewRoomService(roomRepo, log)
	a.Readings = apprental.NewReadingService(roomRepo, readingRepo, log)
	a.Prices = appbilling.NewPriceService(priceRepo, log)
	a.Bills = appbilling.NewBillService(tm, roomRepo, billRepo, a.Prices, appbilling.NewReadingLookup(readingRepo), log)
	a.Payments = appbilling.NewPaymentService(tm, roomRepo, billRepo, log)
	a.Exports = appbilling.NewExportService(billRepo, export.NewExporter(renderer, log))

	metrics, err := telemetry.NewBillingMetrics(tel.MeterProvider())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to register billing metrics: %w", err)
	}
	a.Bills.SetMetrics(metrics)
	a.Payments.SetMetrics(metrics)
	return a, nil
}

func databaseName(db config.DatabaseConfig) string {
	if db.Driver == config.DriverSQLite {
		return db.Path
	}
	return db.DBName
}

// Bootstrap ensures the configured administrator and the default price row exist
func (a *App) Bootstrap(ctx context.Context) error {
	bc := a.Config.Bootstrap
	if bc.AdminUsername != "" && bc.AdminPassword != "" {
		created, err := a.Users.EnsureAdmin(ctx, bc.AdminUsername, bc.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to ensure admin account: %w", err)
		}
		if created {
			a.Logger.Warn("Created bootstrap administrator; change its password",
				zap.String("username", bc.AdminUsername))
		}
	}
	if _, err := a.Prices.GetLatestPrice(ctx); err != nil {
		return fmt.Errorf("failed to ensure default prices: %w", err)
	}
	return nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
