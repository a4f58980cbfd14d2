package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/gulfbooks/backend/internal/application/trade"
)

// SalesHandler handles sales invoice API endpoints
type SalesHandler struct {
	BaseHandler
	salesService *tradeapp.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *tradeapp.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// RegisterRoutes registers sales routes under the API group
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.GetByID)
		sales.POST("/:id/payments", h.RecordPayment)
		sales.POST("/:id/cancel", h.Cancel)
	}
}

// Create finalizes a new sales invoice
func (h *SalesHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List returns sales invoices with date and status filtering
func (h *SalesHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var filter tradeapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.salesService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.TotalCount, page.Page, page.PageSize)
}

// GetByID returns one sales invoice
func (h *SalesHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.GetByID(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// RecordPayment registers a payment against an invoice
func (h *SalesHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.RecordPayment(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel excludes an invoice from VAT reporting
func (h *SalesHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.Cancel(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
