package crm

import "context"

// Repos bundles the crm repositories bound to a single transaction. All
// writes performed through a bundle commit or roll back together.
type Repos struct {
	Shadows     CustomerShadowRepository
	Sellers     SellerRepository
	Assignments SellerAssignmentRepository
	Events      DomainEventRepository
}

// TxManager runs a unit of work against transaction-bound repositories. An
// error returned from fn rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
