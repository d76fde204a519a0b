package persistence

import (
	"context"

	"github.com/verkoop/backend/internal/domain/crm"
	"gorm.io/gorm"
)

// GormTxManager implements crm.TxManager on top of gorm transactions. The
// repositories handed to the unit of work share one transaction, so a
// failing step rolls back every write.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn against transaction-bound repositories
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos crm.Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepos(tx))
	})
}

// NewRepos builds a crm repository bundle bound to the given gorm handle,
// which may be a transaction or the root connection.
func NewRepos(db *gorm.DB) crm.Repos {
	return crm.Repos{
		Shadows:     NewGormCustomerShadowRepository(db),
		Sellers:     NewGormSellerRepository(db),
		Assignments: NewGormSellerAssignmentRepository(db),
		Events:      NewGormDomainEventRepository(db),
	}
}

// Ensure GormTxManager implements TxManager
var _ crm.TxManager = (*GormTxManager)(nil)
