package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/gulfbooks/backend/internal/application/trade"
)

// PurchasesHandler handles purchase order API endpoints
type PurchasesHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchasesHandler creates a new PurchasesHandler
func NewPurchasesHandler(purchaseService *tradeapp.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase routes under the API group
func (h *PurchasesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.GetByID)
		purchases.POST("/:id/payments", h.RecordPayment)
		purchases.POST("/:id/cancel", h.Cancel)
	}
}

// Create finalizes a new purchase order
func (h *PurchasesHandler) Create(c *gin.Context) {
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

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// List returns purchase orders with date and status filtering
func (h *PurchasesHandler) List(c *gin.Context) {
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

	page, err := h.purchaseService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.TotalCount, page.Page, page.PageSize)
}

// GetByID returns one purchase order
func (h *PurchasesHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// RecordPayment registers a payment against a purchase order
func (h *PurchasesHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req tradeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.RecordPayment(c.Request.Context(), tenantID, purchaseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Cancel excludes a purchase order from VAT reporting
func (h *PurchasesHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.Cancel(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}
