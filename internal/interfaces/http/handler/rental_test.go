package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomHandler(t *testing.T) {
	env := newAPIEnv(t)

	r102 := env.createRoom(t, "102", "800")
	r101 := env.createRoom(t, "101", "1000.5", "10", "100", "5")
	assert.True(t, r101.BaseRent.Equal(decimal.RequireFromString("1000.5")))
	assert.True(t, r101.ElecBase.Equal(decimal.NewFromInt(100)))
	assert.True(t, r102.WaterBase.IsZero())

	t.Run("list is sorted by room number", func(t *testing.T) {
		var rooms []RoomResponse
		code, resp := env.call(t, http.MethodGet, "/api/v1/rooms", env.userToken, nil, &rooms)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, int64(2), resp.Meta.Total)
		require.Len(t, rooms, 2)
		assert.Equal(t, "101", rooms[0].RoomNo)
		assert.Equal(t, "102", rooms[1].RoomNo)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPost, "/api/v1/rooms", env.adminToken,
			map[string]any{"room_no": "101", "base_rent": 900}, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, shared.CodeAlreadyExists, errorCode(resp))
	})

	t.Run("missing base_rent", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPost, "/api/v1/rooms", env.adminToken,
			map[string]any{"room_no": "103"}, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, shared.CodeValidation, errorCode(resp))
	})

	t.Run("room writes need admin", func(t *testing.T) {
		code, _ := env.call(t, http.MethodPost, "/api/v1/rooms", env.userToken,
			map[string]any{"room_no": "103", "base_rent": 900}, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("update", func(t *testing.T) {
		var updated RoomResponse
		code, _ := env.call(t, http.MethodPut, "/api/v1/rooms/"+r102.ID.String(), env.adminToken,
			map[string]any{"room_no": "102A", "base_rent": 850, "gas_base": 2}, &updated)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, r102.ID, updated.ID)
		assert.Equal(t, "102A", updated.RoomNo)
		assert.True(t, updated.GasBase.Equal(decimal.NewFromInt(2)))
	})

	t.Run("update to a taken number", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPut, "/api/v1/rooms/"+r102.ID.String(), env.adminToken,
			map[string]any{"room_no": "101", "base_rent": 850}, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, shared.CodeAlreadyExists, errorCode(resp))
	})

	t.Run("update unknown room", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPut, "/api/v1/rooms/"+uuid.NewString(), env.adminToken,
			map[string]any{"room_no": "999", "base_rent": 1}, nil)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, shared.CodeNotFound, errorCode(resp))
	})

	t.Run("delete cascades to readings and bills", func(t *testing.T) {
		env.recordReading(t, r101.ID.String(), "2024-01", 15, 150, 8)
		code, _ := env.call(t, http.MethodPost, "/api/v1/bills/generate?period=2024-01", env.userToken, nil, nil)
		require.Equal(t, http.StatusOK, code)

		w := env.do(http.MethodDelete, "/api/v1/rooms/"+r101.ID.String(), env.adminToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		var readings []ReadingResponse
		env.call(t, http.MethodGet, "/api/v1/readings?room_id="+r101.ID.String(), env.userToken, nil, &readings)
		assert.Empty(t, readings)

		var bills []BillResponse
		env.call(t, http.MethodGet, "/api/v1/bills?room_id="+r101.ID.String(), env.userToken, nil, &bills)
		assert.Empty(t, bills)

		code, _ = env.call(t, http.MethodDelete, "/api/v1/rooms/"+r101.ID.String(), env.adminToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("bad id", func(t *testing.T) {
		code, resp := env.call(t, http.MethodDelete, "/api/v1/rooms/abc", env.adminToken, nil, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, shared.CodeValidation, errorCode(resp))
	})
}

func TestReadingHandler(t *testing.T) {
	env := newAPIEnv(t)
	room := env.createRoom(t, "101", "1000")

	t.Run("upsert keeps one reading per period", func(t *testing.T) {
		env.recordReading(t, room.ID.String(), "2024-01", 15, 150, 8)
		env.recordReading(t, room.ID.String(), "2024-02", 20, 180, 10)
		env.recordReading(t, room.ID.String(), "2024-01", 16, 151, 9)

		var readings []ReadingResponse
		code, _ := env.call(t, http.MethodGet, "/api/v1/readings?room_id="+room.ID.String(), env.userToken, nil, &readings)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, readings, 2)
		assert.Equal(t, "2024-02", readings[0].Period)
		assert.Equal(t, "2024-01", readings[1].Period)
		assert.True(t, readings[1].Water.Equal(decimal.NewFromInt(16)))
	})

	t.Run("filter by period", func(t *testing.T) {
		var readings []ReadingResponse
		code, _ := env.call(t, http.MethodGet, "/api/v1/readings?period=2024-02", env.userToken, nil, &readings)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, readings, 1)
		assert.Equal(t, room.ID, readings[0].RoomID)
	})

	t.Run("invalid period", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPost, "/api/v1/readings", env.userToken, map[string]any{
			"room_id": room.ID.String(), "period": "2024-13", "water": 1, "elec": 1, "gas": 1,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, shared.CodeValidation, errorCode(resp))

		code, _ = env.call(t, http.MethodGet, "/api/v1/readings?period=202401", env.userToken, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("unknown room", func(t *testing.T) {
		code, resp := env.call(t, http.MethodPost, "/api/v1/readings", env.userToken, map[string]any{
			"room_id": uuid.NewString(), "period": "2024-01", "water": 1, "elec": 1, "gas": 1,
		}, nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, shared.CodeNotFound, errorCode(resp))
	})
}
