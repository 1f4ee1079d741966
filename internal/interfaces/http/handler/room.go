package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/application/rental"
	domain "github.com/rentdesk/backend/internal/domain/rental"
	"github.com/samber/lo"
)

// RoomHandler handles room requests
type RoomHandler struct {
	BaseHandler
	roomService *rental.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *rental.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// List returns every room ordered by room number.
// GET /rooms
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, lo.Map(rooms, func(r *domain.Room, _ int) RoomResponse {
		return toRoomResponse(r)
	}), len(rooms))
}

// Create adds a room.
// POST /rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), rental.RoomInput{
		RoomNo:   req.RoomNo,
		BaseRent: *req.BaseRent,
		Baseline: req.baseline(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toRoomResponse(room))
}

// Update replaces a room's attributes.
// PUT /rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req RoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, rental.RoomInput{
		RoomNo:   req.RoomNo,
		BaseRent: *req.BaseRent,
		Baseline: req.baseline(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toRoomResponse(room))
}

// Delete removes a room together with its readings and bills.
// DELETE /rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
