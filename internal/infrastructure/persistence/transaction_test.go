package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormTransactionManager(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback on error", func(t *testing.T) {
		db := newTestDB(t)
		tm := NewGormTransactionManager(db)
		repo := NewGormRoomRepository(db)
		boom := errors.New("boom")

		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			room, err := rental.NewRoom("101", decimal.NewFromInt(100), rental.MeterValues{})
			require.NoError(t, err)
			require.NoError(t, repo.Create(ctx, room))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = repo.FindByRoomNo(ctx, "101")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		db := newTestDB(t)
		tm := NewGormTransactionManager(db)
		repo := NewGormRoomRepository(db)

		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			return tm.WithinTransaction(ctx, func(ctx context.Context) error {
				room, err := rental.NewRoom("101", decimal.NewFromInt(100), rental.MeterValues{})
				if err != nil {
					return err
				}
				return repo.Create(ctx, room)
			})
		})
		require.NoError(t, err)

		_, err = repo.FindByRoomNo(ctx, "101")
		assert.NoError(t, err)
	})
}

func TestGormRoomRepository_DatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "rooms"`).WillReturnError(errors.New("connection reset"))

	_, err = NewGormRoomRepository(db).FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrNotFound))
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
