package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormAccountRepository implements accounting.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new account repository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Save persists an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return dbFromContext(ctx, r.db).Save(account).Error
}

// FindByID retrieves an account by ID within a tenant
func (r *GormAccountRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	var account accounting.Account
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByCode retrieves an account by its chart code
func (r *GormAccountRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	var account accounting.Account
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByCodes retrieves several accounts keyed by chart code. Missing
// codes are simply absent from the result map.
func (r *GormAccountRepository) FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*accounting.Account, error) {
	var accounts []*accounting.Account
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND code IN ?", tenantID, codes).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]*accounting.Account, len(accounts))
	for _, account := range accounts {
		result[account.Code] = account
	}
	return result, nil
}

// List retrieves the chart of accounts ordered by code
func (r *GormAccountRepository) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*accounting.Account, error) {
	query := dbFromContext(ctx, r.db).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var accounts []*accounting.Account
	if err := query.Order("code").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// AdjustBalance applies a signed delta to the cached balance in place
func (r *GormAccountRepository) AdjustBalance(ctx context.Context, tenantID, accountID uuid.UUID, delta decimal.Decimal) error {
	result := dbFromContext(ctx, r.db).
		Model(&accounting.Account{}).
		Where("tenant_id = ? AND id = ?", tenantID, accountID).
		Update("current_balance", gorm.Expr("current_balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
