package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/rentdesk/backend/internal/application/billing"
	"github.com/rentdesk/backend/internal/infrastructure/export"
	"github.com/samber/lo"
)

// BillHandler handles bill generation, listing, payment and export requests
type BillHandler struct {
	BaseHandler
	billService    *appbilling.BillService
	paymentService *appbilling.PaymentService
	exportService  *appbilling.ExportService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billService *appbilling.BillService,
	paymentService *appbilling.PaymentService,
	exportService *appbilling.ExportService,
) *BillHandler {
	return &BillHandler{
		billService:    billService,
		paymentService: paymentService,
		exportService:  exportService,
	}
}

// Generate bills every room for a period and reports the rooms it skipped.
// POST /bills/generate?period=YYYY-MM
func (h *BillHandler) Generate(c *gin.Context) {
	var q PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	results, err := h.billService.GenerateBillsDetailed(c.Request.Context(), q.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toGenerateBillsResponse(q.Period, results))
}

// GenerateForRoom bills one room for a period.
// POST /bills/generate/:room_id?period=YYYY-MM
func (h *BillHandler) GenerateForRoom(c *gin.Context) {
	roomID, ok := h.pathUUID(c, "room_id")
	if !ok {
		return
	}
	var q PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	bill, err := h.billService.GenerateBillForRoomID(c.Request.Context(), roomID, q.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(bill.Bill, bill.RoomNo))
}

// List returns bills, latest period first then by room number.
// GET /bills
func (h *BillHandler) List(c *gin.Context) {
	var q BillListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	query := appbilling.BillQuery{Period: q.Period}
	if q.RoomID != nil {
		query.RoomID = lo.ToPtr(uuid.MustParse(*q.RoomID))
	}

	bills, err := h.billService.ListBills(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, toBillResponses(bills), len(bills))
}

// Pay updates the payment state of one bill.
// PATCH /bills/:id/pay
func (h *BillHandler) Pay(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	bill, err := h.paymentService.UpdatePayment(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(bill.Bill, bill.RoomNo))
}

// BatchPay applies one payment update to several bills.
// PATCH /bills/pay/batch
func (h *BillHandler) BatchPay(c *gin.Context) {
	var req BatchPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ids := lo.Map(req.BillIDs, func(s string, _ int) uuid.UUID { return uuid.MustParse(s) })
	updated, err := h.paymentService.BatchUpdatePayment(c.Request.Context(), ids, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, BatchPaymentResponse{Updated: updated})
}

// Export downloads the bills of a period as xlsx, csv or pdf.
// GET /bills/export/:format?period=YYYY-MM
func (h *BillHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var q PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	doc, err := h.exportService.Export(c.Request.Context(), format, q.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
