package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/gulfbooks/backend/internal/application/identity"
)

// CompaniesHandler handles company (tenant) API endpoints
type CompaniesHandler struct {
	BaseHandler
	companyService *identityapp.CompanyService
}

// NewCompaniesHandler creates a new CompaniesHandler
func NewCompaniesHandler(companyService *identityapp.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companyService: companyService}
}

// RegisterRoutes registers company routes under the API group
func (h *CompaniesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.POST("", h.Create)
		companies.GET("/current", h.GetCurrent)
		companies.PUT("/current/vat-settings", h.UpdateVATSettings)
	}
}

// Create provisions a new company with its default chart of accounts
func (h *CompaniesHandler) Create(c *gin.Context) {
	var req identityapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// GetCurrent returns the company of the authenticated tenant
func (h *CompaniesHandler) GetCurrent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpdateVATSettings changes the tenant's VAT registration settings
func (h *CompaniesHandler) UpdateVATSettings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req identityapp.UpdateVATSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.UpdateVATSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}
