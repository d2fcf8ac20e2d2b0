package handler

import (
	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AvailabilityHandler serves double-booking checks
type AvailabilityHandler struct {
	BaseHandler
	availability *apprental.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(availability *apprental.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Check reports whether a product is free for a rental window, listing the
// bookings it collides with when it is not
// GET /api/v1/availability
func (h *AvailabilityHandler) Check(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var query dto.CheckAvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	productID, err := uuid.Parse(query.ProductID)
	if err != nil {
		h.BadRequest(c, "product_id is not a valid UUID")
		return
	}

	checkReq := apprental.CheckAvailabilityRequest{
		StoreID:        storeID,
		ProductID:      productID,
		CollectionDate: parseDate(query.CollectionDate),
		ReturnDate:     parseDate(query.ReturnDate),
	}
	if query.ExcludeInvoiceID != "" {
		excludeID, err := uuid.Parse(query.ExcludeInvoiceID)
		if err != nil {
			h.BadRequest(c, "exclude_invoice_id is not a valid UUID")
			return
		}
		checkReq.ExcludeInvoiceID = &excludeID
	}

	result, err := h.availability.CheckAvailability(c.Request.Context(), checkReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers availability routes
func (h *AvailabilityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.Check)
}
