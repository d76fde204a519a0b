package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/shared"
)

// SellerRepository defines persistence for sellers
type SellerRepository interface {
	// FindByID finds a seller by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)

	// FindByCode finds a seller by its business code (case-insensitive)
	FindByCode(ctx context.Context, code string) (*Seller, error)

	// FindAll finds sellers matching the filter with total count
	FindAll(ctx context.Context, filter shared.Filter) ([]Seller, int64, error)

	// Save creates or updates a seller
	Save(ctx context.Context, seller *Seller) error
}
