package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/gulfbooks/backend/internal/application/catalog"
)

// ProductsHandler handles product catalog API endpoints
type ProductsHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductsHandler creates a new ProductsHandler
func NewProductsHandler(productService *catalogapp.ProductService) *ProductsHandler {
	return &ProductsHandler{productService: productService}
}

// RegisterRoutes registers product routes under the API group
func (h *ProductsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create registers a new product
func (h *ProductsHandler) Create(c *gin.Context) {
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

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List returns the tenant's products
func (h *ProductsHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	if sku := c.Query("sku"); sku != "" {
		product, err := h.productService.GetBySKU(c.Request.Context(), tenantID, sku)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, product)
		return
	}

	activeOnly := c.Query("active_only") == "true"
	products, err := h.productService.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID returns one product
func (h *ProductsHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update changes product attributes
func (h *ProductsHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate removes a product from sale without deleting its history
func (h *ProductsHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
