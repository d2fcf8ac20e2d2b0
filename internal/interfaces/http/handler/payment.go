package handler

import (
	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the payment ledger of an invoice
type PaymentHandler struct {
	BaseHandler
	ledger *apprental.LedgerService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(ledger *apprental.LedgerService) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// Add records a ledger entry on an invoice
// POST /api/v1/invoices/:id/payments
func (h *PaymentHandler) Add(c *gin.Context) {
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

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	addReq := apprental.AddPaymentRequest{
		StoreID:   storeID,
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Kind:      rental.PaymentKind(req.Kind),
		Method:    rental.PaymentMethod(req.Method),
		Notes:     req.Notes,
		ActorID:   &actorID,
	}
	if req.OccurredOn != "" {
		d := parseDate(req.OccurredOn)
		addReq.OccurredOn = &d
	}

	result, err := h.ledger.AddPayment(c.Request.Context(), addReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List lists every ledger entry of an invoice, reversed ones included
// GET /api/v1/invoices/:id/payments
func (h *PaymentHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	events, err := h.ledger.ListPayments(c.Request.Context(), storeID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]dto.PaymentEventResponse, len(events))
	for i := range events {
		items[i] = dto.PaymentEventResponseFromDomain(&events[i])
	}
	h.Success(c, items)
}

// Summary derives the live financial summary of an invoice
// GET /api/v1/invoices/:id/summary
func (h *PaymentHandler) Summary(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.ledger.GetPaymentSummary(c.Request.Context(), storeID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.PaymentSummaryResponseFromDomain(summary))
}

// Reverse reverses a ledger entry. The entry stays on the ledger with its
// reversal metadata; it simply stops counting toward the summary.
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) Reverse(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	paymentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.ledger.DeletePayment(c.Request.Context(), storeID, paymentID, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.PaymentSummaryResponseFromDomain(summary))
}

// RegisterRoutes registers payment ledger routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST(":id/payments", h.Add)
		invoices.GET(":id/payments", h.List)
		invoices.GET(":id/summary", h.Summary)
	}

	payments := rg.Group("/payments")
	{
		payments.DELETE(":id", h.Reverse)
	}
}
