package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// ProductService manages the tenant's product catalog
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductRequest adds a product to the catalog
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	SKU          string          `json:"sku" binding:"required,min=1,max=100"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// UpdateProductRequest changes prices and the reorder level
type UpdateProductRequest struct {
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	IsActive     bool            `json:"is_active"`
}

func toProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		SKU:          product.SKU,
		SellingPrice: product.SellingPrice,
		CostPrice:    product.CostPrice,
		ReorderLevel: product.ReorderLevel,
		IsActive:     product.IsActive,
	}
}

// Create adds a product. SKUs are unique per tenant.
func (s *ProductService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindBySKU(ctx, tenantID, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product SKU "+req.SKU+" already exists")
	}

	product, err := catalog.NewProduct(tenantID, userID, req.Name, req.SKU, req.SellingPrice, req.CostPrice)
	if err != nil {
		return nil, err
	}
	if req.ReorderLevel.IsPositive() {
		if err := product.SetReorderLevel(req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

// Update changes prices and the reorder level for a product
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	sellingPrice := product.SellingPrice
	if req.SellingPrice != nil {
		sellingPrice = *req.SellingPrice
	}
	costPrice := product.CostPrice
	if req.CostPrice != nil {
		costPrice = *req.CostPrice
	}
	if err := product.UpdatePrices(sellingPrice, costPrice); err != nil {
		return nil, err
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

// List returns the catalog, optionally restricted to active products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]ProductResponse, error) {
	products, err := s.productRepo.List(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	return responses, nil
}

// Deactivate removes a product from sale
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}
