package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/gulfbooks/backend/internal/application/accounting"
)

// AccountsHandler handles chart of accounts API endpoints
type AccountsHandler struct {
	BaseHandler
	chartService *accountingapp.ChartService
}

// NewAccountsHandler creates a new AccountsHandler
func NewAccountsHandler(chartService *accountingapp.ChartService) *AccountsHandler {
	return &AccountsHandler{chartService: chartService}
}

// RegisterRoutes registers chart of accounts routes under the API group
func (h *AccountsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:code", h.GetByCode)
		accounts.POST("/defaults", h.EnsureDefaults)
		accounts.POST("/:code/deactivate", h.Deactivate)
	}
}

// Create adds an account to the chart
func (h *AccountsHandler) Create(c *gin.Context) {
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

	var req accountingapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.chartService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// List returns the tenant's chart of accounts
func (h *AccountsHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	activeOnly := c.Query("active_only") == "true"
	accounts, err := h.chartService.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// GetByCode returns one account by its chart code
func (h *AccountsHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	account, err := h.chartService.GetByCode(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// EnsureDefaults seeds the fixed posting accounts for the tenant
func (h *AccountsHandler) EnsureDefaults(c *gin.Context) {
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

	if err := h.chartService.EnsureDefaultChart(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate marks an account inactive so it cannot receive new postings
func (h *AccountsHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	account, err := h.chartService.GetByCode(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.chartService.Deactivate(c.Request.Context(), tenantID, account.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
