package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/catalog"
	"github.com/gulfbooks/backend/internal/domain/inventory"
	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// StockService moves stock quantities. Every change goes through a
// StockMovement, so the movement history is a complete audit trail of
// the on-hand numbers.
type StockService struct {
	stockRepo   inventory.StockRepository
	productRepo catalog.ProductRepository
}

// NewStockService creates a new StockService
func NewStockService(stockRepo inventory.StockRepository, productRepo catalog.ProductRepository) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// ===================== DTOs =====================

// AdjustStockRequest applies a manual signed correction to one stock row
type AdjustStockRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reason      string          `json:"reason" binding:"required,max=500"`
}

// StockLevelResponse is one product's on-hand position in a warehouse
type StockLevelResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SKU          string          `json:"sku"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	ReorderState string          `json:"reorder_state"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	MovedAt     time.Time       `json:"moved_at"`
}

// MovementHistoryResponse is a page of stock movements
type MovementHistoryResponse struct {
	Items      []MovementResponse `json:"items"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

func toMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		Notes:       m.Notes,
		MovedAt:     m.MovedAt,
	}
}

// ===================== Operations =====================

// ReduceOnSale writes one OUT movement per invoice line. The movement
// quantity is negative; a line that would drive stock below zero fails
// the whole call with ErrInsufficientStock.
func (s *StockService) ReduceOnSale(ctx context.Context, sale *trade.Sale) error {
	for _, item := range sale.Items {
		movement, err := inventory.NewStockMovement(
			sale.TenantID, sale.CreatedBy,
			item.ProductID, sale.WarehouseID,
			inventory.MovementTypeOut, item.Quantity.Neg(),
			sale.InvoiceNumber, "",
		)
		if err != nil {
			return err
		}
		if _, err := s.stockRepo.ApplyMovement(ctx, movement); err != nil {
			return err
		}
	}
	return nil
}

// IncreaseOnPurchase writes one IN movement per purchase line
func (s *StockService) IncreaseOnPurchase(ctx context.Context, purchase *trade.Purchase) error {
	for _, item := range purchase.Items {
		movement, err := inventory.NewStockMovement(
			purchase.TenantID, purchase.CreatedBy,
			item.ProductID, purchase.WarehouseID,
			inventory.MovementTypeIn, item.Quantity,
			purchase.OrderNumber, "",
		)
		if err != nil {
			return err
		}
		if _, err := s.stockRepo.ApplyMovement(ctx, movement); err != nil {
			return err
		}
	}
	return nil
}

// Adjust applies a manual correction and records the reason on the
// movement
func (s *StockService) Adjust(ctx context.Context, tenantID, userID uuid.UUID, req AdjustStockRequest) (*StockLevelResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	movement, err := inventory.NewStockMovement(
		tenantID, userID,
		req.ProductID, req.WarehouseID,
		inventory.MovementTypeAdjustment, req.Quantity,
		"", req.Reason,
	)
	if err != nil {
		return nil, err
	}
	stock, err := s.stockRepo.ApplyMovement(ctx, movement)
	if err != nil {
		return nil, err
	}
	return &StockLevelResponse{
		ProductID:    product.ID,
		ProductName:  product.Name,
		SKU:          product.SKU,
		WarehouseID:  stock.WarehouseID,
		Quantity:     stock.Quantity,
		ReorderLevel: product.ReorderLevel,
		ReorderState: string(inventory.ReorderStatus(stock.Quantity, product.ReorderLevel)),
	}, nil
}

// StockLevels lists on-hand quantities, optionally narrowed to one
// warehouse, with the reorder state evaluated per row.
func (s *StockService) StockLevels(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]StockLevelResponse, error) {
	stocks, err := s.stockRepo.List(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	levels := make([]StockLevelResponse, 0, len(stocks))
	for _, stock := range stocks {
		level := StockLevelResponse{
			ProductID:    stock.ProductID,
			WarehouseID:  stock.WarehouseID,
			Quantity:     stock.Quantity,
			ReorderState: string(inventory.ReorderStateOK),
		}
		if product, ok := byID[stock.ProductID]; ok {
			level.ProductName = product.Name
			level.SKU = product.SKU
			level.ReorderLevel = product.ReorderLevel
			level.ReorderState = string(inventory.ReorderStatus(stock.Quantity, product.ReorderLevel))
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// LowStock returns only the rows at or below their reorder level
func (s *StockService) LowStock(ctx context.Context, tenantID uuid.UUID) ([]StockLevelResponse, error) {
	levels, err := s.StockLevels(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	low := make([]StockLevelResponse, 0)
	for _, level := range levels {
		if level.ReorderState != string(inventory.ReorderStateOK) {
			low = append(low, level)
		}
	}
	return low, nil
}

// MovementHistory pages through the movement audit trail
func (s *StockService) MovementHistory(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, from, to *time.Time, page shared.Pagination) (*MovementHistoryResponse, error) {
	result, err := s.stockRepo.Movements(ctx, tenantID, productID, from, to, page)
	if err != nil {
		return nil, err
	}
	items := make([]MovementResponse, 0, len(result.Items))
	for _, movement := range result.Items {
		items = append(items, toMovementResponse(movement))
	}
	return &MovementHistoryResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	}, nil
}
