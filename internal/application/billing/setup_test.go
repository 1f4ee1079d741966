package billing

import (
	"context"
	"testing"

	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	rooms    *persistence.GormRoomRepository
	readings *persistence.GormMeterReadingRepository
	prices   *persistence.GormPriceConfigRepository
	bills    *persistence.GormBillRepository

	priceService   *PriceService
	billService    *BillService
	paymentService *PaymentService
	logs           *observer.ObservedLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	env := &testEnv{
		rooms:    persistence.NewGormRoomRepository(db),
		readings: persistence.NewGormMeterReadingRepository(db),
		prices:   persistence.NewGormPriceConfigRepository(db),
		bills:    persistence.NewGormBillRepository(db),
		logs:     logs,
	}
	tm := persistence.NewGormTransactionManager(db)
	env.priceService = NewPriceService(env.prices, log)
	env.billService = NewBillService(tm, env.rooms, env.bills, env.priceService, NewReadingLookup(env.readings), log)
	env.paymentService = NewPaymentService(tm, env.rooms, env.bills, log)
	return env
}

func (e *testEnv) addRoom(t *testing.T, roomNo string, rent int64, baseline rental.MeterValues) *rental.Room {
	t.Helper()
	room, err := rental.NewRoom(roomNo, decimal.NewFromInt(rent), baseline)
	require.NoError(t, err)
	require.NoError(t, e.rooms.Create(context.Background(), room))
	return room
}

func (e *testEnv) addReading(t *testing.T, room *rental.Room, period rental.Period, values rental.MeterValues) {
	t.Helper()
	reading, err := rental.NewMeterReading(room.ID, period, values)
	require.NoError(t, err)
	require.NoError(t, e.readings.Save(context.Background(), reading))
}
