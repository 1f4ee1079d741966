package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/rentdesk/backend/internal/application/billing"
	appidentity "github.com/rentdesk/backend/internal/application/identity"
	apprental "github.com/rentdesk/backend/internal/application/rental"
	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/export"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, req *export.RenderRequest) (*export.RenderResult, error) {
	return &export.RenderResult{PDFData: []byte("%PDF-1.4 " + req.Title)}, nil
}

func (stubRenderer) Close() error { return nil }

// apiEnv is a complete in-memory API: sqlite storage, real services and the
// JWT middleware, with an admin and a regular user logged in.
type apiEnv struct {
	engine     *gin.Engine
	adminToken string
	userToken  string
}

func newAPIEnv(t *testing.T) *apiEnv {
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

	log := zap.NewNop()
	tm := persistence.NewGormTransactionManager(db)
	userRepo := persistence.NewGormUserRepository(db)
	roomRepo := persistence.NewGormRoomRepository(db)
	readingRepo := persistence.NewGormMeterReadingRepository(db)
	priceRepo := persistence.NewGormPriceConfigRepository(db)
	billRepo := persistence.NewGormBillRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-32-characters!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "rentdesk-test",
	})
	authService := appidentity.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), log)
	userService := appidentity.NewUserService(userRepo, log)
	priceService := appbilling.NewPriceService(priceRepo, log)
	billService := appbilling.NewBillService(tm, roomRepo, billRepo, priceService, appbilling.NewReadingLookup(readingRepo), log)
	paymentService := appbilling.NewPaymentService(tm, roomRepo, billRepo, log)
	exportService := appbilling.NewExportService(billRepo, export.NewExporter(stubRenderer{}, log))

	authH := NewAuthHandler(authService)
	userH := NewUserHandler(userService)
	roomH := NewRoomHandler(apprental.NewRoomService(roomRepo, log))
	readingH := NewReadingHandler(apprental.NewReadingService(roomRepo, readingRepo, log))
	priceH := NewPriceHandler(priceService)
	billH := NewBillHandler(billService, paymentService, exportService)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	authn := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{Authenticator: authService})
	admin := middleware.RequireAdmin()

	api := engine.Group("/api/v1")
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authn, authH.Logout)
	api.GET("/auth/me", authn, authH.Me)
	api.GET("/users", authn, admin, userH.List)
	api.POST("/users", authn, admin, userH.Create)
	api.GET("/rooms", authn, roomH.List)
	api.POST("/rooms", authn, admin, roomH.Create)
	api.PUT("/rooms/:id", authn, admin, roomH.Update)
	api.DELETE("/rooms/:id", authn, admin, roomH.Delete)
	api.GET("/readings", authn, readingH.List)
	api.POST("/readings", authn, readingH.Record)
	api.GET("/prices/latest", authn, priceH.Latest)
	api.GET("/prices", authn, priceH.List)
	api.POST("/prices", authn, admin, priceH.Create)
	api.POST("/bills/generate", authn, billH.Generate)
	api.POST("/bills/generate/:room_id", authn, billH.GenerateForRoom)
	api.GET("/bills", authn, billH.List)
	api.PATCH("/bills/pay/batch", authn, billH.BatchPay)
	api.PATCH("/bills/:id/pay", authn, billH.Pay)
	api.GET("/bills/export/:format", authn, billH.Export)

	ctx := context.Background()
	_, err = userService.CreateUser(ctx, appidentity.CreateUserInput{Username: "admin", Password: "admin123456", Role: identity.RoleAdmin})
	require.NoError(t, err)
	_, err = userService.CreateUser(ctx, appidentity.CreateUserInput{Username: "clerk", Password: "clerk123456", Role: identity.RoleUser})
	require.NoError(t, err)

	env := &apiEnv{engine: engine}
	env.adminToken = env.login(t, "admin", "admin123456")
	env.userToken = env.login(t, "clerk", "clerk123456")
	return env
}

func (e *apiEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// call performs a request and decodes the envelope, with data decoded into out when given
func (e *apiEnv) call(t *testing.T, method, path, token string, body any, out any) (int, dto.Response) {
	t.Helper()
	w := e.do(method, path, token, body)

	var raw struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	}
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return w.Code, raw.Response
}

func (e *apiEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	var resp LoginResponse
	code, _ := e.call(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: username, Password: password}, &resp)
	require.Equal(t, http.StatusOK, code)
	return resp.AccessToken
}

func (e *apiEnv) createRoom(t *testing.T, roomNo string, rent string, bases ...string) RoomResponse {
	t.Helper()
	body := map[string]any{"room_no": roomNo, "base_rent": rent}
	for i, key := range []string{"water_base", "elec_base", "gas_base"} {
		if i < len(bases) {
			body[key] = bases[i]
		}
	}
	var room RoomResponse
	code, resp := e.call(t, http.MethodPost, "/api/v1/rooms", e.adminToken, body, &room)
	require.Equal(t, http.StatusCreated, code, resp.Error)
	return room
}

func (e *apiEnv) recordReading(t *testing.T, roomID, period string, water, elec, gas float64) {
	t.Helper()
	code, resp := e.call(t, http.MethodPost, "/api/v1/readings", e.userToken, map[string]any{
		"room_id": roomID, "period": period, "water": water, "elec": elec, "gas": gas,
	}, nil)
	require.Equal(t, http.StatusOK, code, resp.Error)
}

func errorCode(resp dto.Response) string {
	if resp.Error == nil {
		return ""
	}
	return resp.Error.Code
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
