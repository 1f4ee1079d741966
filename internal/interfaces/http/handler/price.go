package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/rentdesk/backend/internal/application/billing"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/samber/lo"
)

// PriceHandler handles price configuration requests
type PriceHandler struct {
	BaseHandler
	priceService *appbilling.PriceService
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(priceService *appbilling.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// Latest returns the price configuration in effect, creating the defaults on first use.
// GET /prices/latest
func (h *PriceHandler) Latest(c *gin.Context) {
	price, err := h.priceService.GetLatestPrice(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPriceResponse(price))
}

// List returns every price version, newest first.
// GET /prices
func (h *PriceHandler) List(c *gin.Context) {
	prices, err := h.priceService.ListPrices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, lo.Map(prices, func(p *billing.PriceConfig, _ int) PriceResponse {
		return toPriceResponse(p)
	}), len(prices))
}

// Create appends a new price version effective now.
// POST /prices
func (h *PriceHandler) Create(c *gin.Context) {
	var req PriceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	price, err := h.priceService.CreatePrice(c.Request.Context(), appbilling.PriceInput{
		WaterPrice:   *req.WaterPrice,
		ElecPrice:    *req.ElecPrice,
		GasPrice:     *req.GasPrice,
		PropertyRate: *req.PropertyRate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPriceResponse(price))
}
