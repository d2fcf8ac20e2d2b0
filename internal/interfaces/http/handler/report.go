package handler

import (
	"time"

	apprental "github.com/atelier/backend/internal/application/rental"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves revenue and receivables reports
type ReportHandler struct {
	BaseHandler
	revenue     *apprental.RevenueService
	receivables *apprental.ReceivablesService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(revenue *apprental.RevenueService, receivables *apprental.ReceivablesService) *ReportHandler {
	return &ReportHandler{revenue: revenue, receivables: receivables}
}

// Revenue returns cash-based revenue for an inclusive date range
// GET /api/v1/reports/revenue
func (h *ReportHandler) Revenue(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	from := parseDate(query.From)
	to := parseDate(query.To)
	if to.Before(from) {
		h.BadRequest(c, "to must not be before from")
		return
	}

	amount, err := h.revenue.CalculateRevenueForPeriod(c.Request.Context(), storeID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.RevenueResponse{From: from, To: to, Revenue: amount})
}

// DailyRevenue returns cash-based revenue for a single day
// GET /api/v1/reports/revenue/daily/:date
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		h.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}

	amount, err := h.revenue.CalculateDailyRevenue(c.Request.Context(), storeID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.RevenueResponse{From: day, To: day, Revenue: amount})
}

// Aging returns the receivables aging report for open invoices
// GET /api/v1/reports/receivables/aging
func (h *ReportHandler) Aging(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "as_of must be formatted as YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	report, err := h.receivables.AgingReport(c.Request.Context(), storeID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// RegisterRoutes registers reporting routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("revenue", h.Revenue)
		reports.GET("revenue/daily/:date", h.DailyRevenue)
		reports.GET("receivables/aging", h.Aging)
	}
}
