package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	accountingapp "github.com/gulfbooks/backend/internal/application/accounting"
)

// ReportsHandler handles financial report API endpoints
type ReportsHandler struct {
	BaseHandler
	reportService *accountingapp.ReportService
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(reportService *accountingapp.ReportService) *ReportsHandler {
	return &ReportsHandler{reportService: reportService}
}

// RegisterRoutes registers report routes under the API group
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/vat-summary", h.VATSummary)
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/income-statement", h.IncomeStatement)
	}
}

type periodQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// resolve fills open period bounds with the current month
func (q periodQuery) resolve(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now
	if q.From != nil {
		from = *q.From
	}
	if q.To != nil {
		// inclusive end of day
		to = q.To.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to
}

// VATSummary returns output vs input VAT and the net payable for a period
func (h *ReportsHandler) VATSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to := query.resolve(time.Now().UTC())

	summary, err := h.reportService.VATSummary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TrialBalance returns per-account debit and credit totals as of a date
func (h *ReportsHandler) TrialBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "as_of must be formatted as YYYY-MM-DD")
			return
		}
		asOf = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	report, err := h.reportService.TrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// IncomeStatement returns revenue, expenses and net income for a period
func (h *ReportsHandler) IncomeStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to := query.resolve(time.Now().UTC())

	report, err := h.reportService.IncomeStatement(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
