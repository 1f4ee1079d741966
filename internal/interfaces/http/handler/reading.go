package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/application/rental"
	domain "github.com/rentdesk/backend/internal/domain/rental"
	"github.com/samber/lo"
)

// ReadingHandler handles meter reading requests
type ReadingHandler struct {
	BaseHandler
	readingService *rental.ReadingService
}

// NewReadingHandler creates a new reading handler
func NewReadingHandler(readingService *rental.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// List returns readings, latest period first, optionally filtered by room_id and period.
// GET /readings
func (h *ReadingHandler) List(c *gin.Context) {
	var q ReadingListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	query := rental.ReadingQuery{Period: q.Period}
	if q.RoomID != nil {
		query.RoomID = lo.ToPtr(uuid.MustParse(*q.RoomID))
	}

	readings, err := h.readingService.ListReadings(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, lo.Map(readings, func(m *domain.MeterReading, _ int) ReadingResponse {
		return toReadingResponse(m)
	}), len(readings))
}

// Record creates or overwrites the reading of (room_id, period).
// POST /readings
func (h *ReadingHandler) Record(c *gin.Context) {
	var req ReadingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	reading, err := h.readingService.RecordReading(c.Request.Context(), rental.ReadingInput{
		RoomID: uuid.MustParse(req.RoomID),
		Period: req.Period,
		Values: domain.MeterValues{Water: *req.Water, Elec: *req.Elec, Gas: *req.Gas},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReadingResponse(reading))
}
