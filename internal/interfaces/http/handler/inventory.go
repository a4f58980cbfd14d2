package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/gulfbooks/backend/internal/application/inventory"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// InventoryHandler handles stock level and movement API endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// RegisterRoutes registers inventory routes under the API group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("/stocks", h.StockLevels)
		inventory.GET("/stocks/low", h.LowStock)
		inventory.POST("/adjustments", h.Adjust)
		inventory.GET("/movements", h.Movements)
	}
}

// movementQuery narrows the movement history listing
type movementQuery struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// StockLevels lists on-hand quantities with reorder states
func (h *InventoryHandler) StockLevels(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		warehouseID = &id
	}

	levels, err := h.stockService.StockLevels(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}

// LowStock lists rows at or below their reorder level
func (h *InventoryHandler) LowStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	levels, err := h.stockService.LowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}

// Adjust applies a manual stock correction
func (h *InventoryHandler) Adjust(c *gin.Context) {
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

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	level, err := h.stockService.Adjust(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, level)
}

// Movements pages through the stock movement audit trail
func (h *InventoryHandler) Movements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var query movementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		productID = &id
	}

	page := shared.Pagination{Page: query.Page, PageSize: query.PageSize}
	history, err := h.stockService.MovementHistory(c.Request.Context(), tenantID, productID, query.From, query.To, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, history.Items, history.TotalCount, history.Page, history.PageSize)
}
