package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gulfbooks/backend/internal/domain/identity"
	"github.com/gulfbooks/backend/internal/domain/shared"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new company repository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Save persists a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	return dbFromContext(ctx, r.db).Save(company).Error
}

// FindByID retrieves a company
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var company identity.Company
	err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}
