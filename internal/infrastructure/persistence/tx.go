package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// dbFromContext returns the transaction carried on the context, falling
// back to the given root connection.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// GormTxManager implements shared.TxManager on a GORM connection.
// The transaction handle travels on the context so repositories used
// inside the callback join the same transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a transaction manager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTransaction runs fn inside a transaction. If the context already
// carries one the existing transaction is reused, so nested calls commit
// or roll back as a single unit.
func (m *GormTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
