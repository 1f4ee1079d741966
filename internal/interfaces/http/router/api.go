package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers served under /api/v1
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Room    *handler.RoomHandler
	Reading *handler.ReadingHandler
	Price   *handler.PriceHandler
	Bill    *handler.BillHandler
}

// APIGroups builds the route table. authenticate guards everything except
// health and login; admin-only routes add middleware.RequireAdmin.
func APIGroups(h Handlers, authenticate gin.HandlerFunc) []RouteRegistrar {
	admin := middleware.RequireAdmin()

	systemRoutes := NewDomainGroup("system", "")
	systemRoutes.GET("/health", h.System.Health)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/logout", authenticate, h.Auth.Logout)
	authRoutes.GET("/me", authenticate, h.Auth.Me)

	userRoutes := NewDomainGroup("users", "/users").Use(authenticate, admin)
	userRoutes.GET("", h.User.List)
	userRoutes.POST("", h.User.Create)

	roomRoutes := NewDomainGroup("rooms", "/rooms").Use(authenticate)
	roomRoutes.GET("", h.Room.List)
	roomRoutes.POST("", admin, h.Room.Create)
	roomRoutes.PUT("/:id", admin, h.Room.Update)
	roomRoutes.DELETE("/:id", admin, h.Room.Delete)

	readingRoutes := NewDomainGroup("readings", "/readings").Use(authenticate)
	readingRoutes.GET("", h.Reading.List)
	readingRoutes.POST("", h.Reading.Record)

	priceRoutes := NewDomainGroup("prices", "/prices").Use(authenticate)
	priceRoutes.GET("/latest", h.Price.Latest)
	priceRoutes.GET("", h.Price.List)
	priceRoutes.POST("", admin, h.Price.Create)

	billRoutes := NewDomainGroup("bills", "/bills").Use(authenticate)
	billRoutes.POST("/generate", h.Bill.Generate)
	billRoutes.POST("/generate/:room_id", h.Bill.GenerateForRoom)
	billRoutes.GET("", h.Bill.List)
	billRoutes.PATCH("/pay/batch", h.Bill.BatchPay)
	billRoutes.PATCH("/:id/pay", h.Bill.Pay)
	billRoutes.GET("/export/:format", h.Bill.Export)

	return []RouteRegistrar{
		systemRoutes,
		authRoutes,
		userRoutes,
		roomRoutes,
		readingRoutes,
		priceRoutes,
		billRoutes,
	}
}
