package handler

import (
	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler serves invoice creation, queries and lifecycle transitions
type InvoiceHandler struct {
	BaseHandler
	invoices  *apprental.InvoiceService
	lifecycle *apprental.LifecycleService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *apprental.InvoiceService, lifecycle *apprental.LifecycleService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, lifecycle: lifecycle}
}

// Create reserves a new invoice
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "customer_id is not a valid UUID")
		return
	}

	createReq := apprental.CreateInvoiceRequest{
		StoreID:       storeID,
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		TotalPrice:    req.TotalPrice,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			h.BadRequest(c, "product_id is not a valid UUID")
			return
		}
		createReq.ProductID = &productID
	}
	if req.CollectionDate != "" {
		d := parseDate(req.CollectionDate)
		createReq.CollectionDate = &d
	}
	if req.ReturnDate != "" {
		d := parseDate(req.ReturnDate)
		createReq.ReturnDate = &d
	}

	invoice, err := h.invoices.CreateInvoice(c.Request.Context(), createReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.InvoiceResponseFromDomain(invoice))
}

// Get loads one invoice
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), storeID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.InvoiceResponseFromDomain(invoice))
}

// List lists invoices with filtering and pagination
// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var query dto.InvoiceFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	query.Normalize()

	filter := rental.InvoiceFilter{
		Filter: shared.Filter{
			Page:     query.Page,
			PageSize: query.PageSize,
			OrderBy:  query.OrderBy,
			OrderDir: query.OrderDir,
		},
	}
	if query.CustomerID != "" {
		id, _ := uuid.Parse(query.CustomerID)
		filter.CustomerID = &id
	}
	if query.ProductID != "" {
		id, _ := uuid.Parse(query.ProductID)
		filter.ProductID = &id
	}
	if query.Status != "" {
		status := rental.InvoiceStatus(query.Status)
		filter.Status = &status
	}

	page, err := h.invoices.ListInvoices(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]dto.InvoiceResponse, len(page.Items))
	for i := range page.Items {
		items[i] = dto.InvoiceResponseFromDomain(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// ChangeStatus applies a lifecycle transition
// POST /api/v1/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.lifecycle.ChangeStatus(c.Request.Context(), apprental.ChangeStatusRequest{
		StoreID:         storeID,
		InvoiceID:       invoiceID,
		TargetStatus:    rental.InvoiceStatus(req.TargetStatus),
		ActorID:         actorID,
		Notes:           req.Notes,
		ReturnCondition: rental.ReturnCondition(req.ReturnCondition),
		Reason:          req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmReservation commits a rental window to a reserved invoice
// POST /api/v1/invoices/:id/reservation
func (h *InvoiceHandler) ConfirmReservation(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "product_id is not a valid UUID")
		return
	}

	result, err := h.lifecycle.ConfirmReservation(c.Request.Context(), storeID, invoiceID, productID, actorID,
		apprental.CheckAvailabilityRequest{
			CollectionDate: parseDate(req.CollectionDate),
			ReturnDate:     parseDate(req.ReturnDate),
		})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StatusHistory lists the transition audit trail of an invoice
// GET /api/v1/invoices/:id/history
func (h *InvoiceHandler) StatusHistory(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	query.Normalize()

	page, err := h.lifecycle.GetStatusHistory(c.Request.Context(), storeID, invoiceID, shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]dto.StatusHistoryResponse, len(page.Items))
	for i := range page.Items {
		items[i] = dto.StatusHistoryResponseFromDomain(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET(":id", h.Get)
		invoices.POST(":id/status", h.ChangeStatus)
		invoices.POST(":id/reservation", h.ConfirmReservation)
		invoices.GET(":id/history", h.StatusHistory)
	}
}
