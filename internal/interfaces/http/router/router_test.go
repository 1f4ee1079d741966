package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("test", "/test")
	assert.Equal(t, "test", g.Name())
	assert.Equal(t, "/test", g.Prefix())

	g.Use(func(c *gin.Context) {
		c.Header("X-Group", "applied")
		c.Next()
	})
	routeOnly := func(c *gin.Context) {
		c.Header("X-Route", "applied")
		c.Next()
	}
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		DELETE("/b/:id", routeOnly, func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })

	NewRouter(engine).Register(g).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/a", nil))
	assert.Equal(t, "applied", w.Header().Get("X-Group"))
	assert.Empty(t, w.Header().Get("X-Route"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/test/b/42", nil))
	assert.Equal(t, "applied", w.Header().Get("X-Group"))
	assert.Equal(t, "applied", w.Header().Get("X-Route"))
	assert.Equal(t, "42", w.Body.String())
}

func newAPIEngine(authenticate gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	h := Handlers{
		System:  &handler.SystemHandler{},
		Auth:    &handler.AuthHandler{},
		User:    &handler.UserHandler{},
		Room:    &handler.RoomHandler{},
		Reading: &handler.ReadingHandler{},
		Price:   &handler.PriceHandler{},
		Bill:    &handler.BillHandler{},
	}
	NewRouter(engine).Register(APIGroups(h, authenticate)...).Setup()
	return engine
}

func TestAPIGroups_RouteTable(t *testing.T) {
	engine := newAPIEngine(func(c *gin.Context) { c.Next() })

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"GET /api/v1/health",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"GET /api/v1/users",
		"POST /api/v1/users",
		"GET /api/v1/rooms",
		"POST /api/v1/rooms",
		"PUT /api/v1/rooms/:id",
		"DELETE /api/v1/rooms/:id",
		"GET /api/v1/readings",
		"POST /api/v1/readings",
		"GET /api/v1/prices/latest",
		"GET /api/v1/prices",
		"POST /api/v1/prices",
		"POST /api/v1/bills/generate",
		"POST /api/v1/bills/generate/:room_id",
		"GET /api/v1/bills",
		"PATCH /api/v1/bills/:id/pay",
		"PATCH /api/v1/bills/pay/batch",
		"GET /api/v1/bills/export/:format",
	} {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestAPIGroups_AuthenticationGuard(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	engine := newAPIEngine(deny)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/rooms"},
		{http.MethodPost, "/api/v1/readings"},
		{http.MethodGet, "/api/v1/prices/latest"},
		{http.MethodPost, "/api/v1/bills/generate?period=2024-01"},
		{http.MethodPatch, "/api/v1/bills/pay/batch"},
		{http.MethodGet, "/api/v1/bills/export/csv?period=2024-01"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterSetup_ReturnsMountedRoutes(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	system := NewDomainGroup("system", "").GET("/health", ok)
	bills := NewDomainGroup("bills", "/bills").
		GET("", ok).
		PATCH("/:id/pay", ok)

	r := NewRouter(engine)
	assert.Equal(t, "/api/v1", r.BasePath())
	routes := r.Register(system, bills).Setup()

	assert.Equal(t, []RouteInfo{
		{Group: "system", Method: http.MethodGet, Path: "/api/v1/health"},
		{Group: "bills", Method: http.MethodGet, Path: "/api/v1/bills"},
		{Group: "bills", Method: http.MethodPatch, Path: "/api/v1/bills/:id/pay"},
	}, routes)
	assert.Len(t, engine.Routes(), 3)
}
