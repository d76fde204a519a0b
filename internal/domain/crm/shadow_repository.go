package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/shared"
)

// CustomerShadowRepository defines persistence for customer shadows
type CustomerShadowRepository interface {
	// FindByID finds a shadow by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerShadow, error)

	// FindByExternalID finds a shadow by the registry customer id
	FindByExternalID(ctx context.Context, externalID string) (*CustomerShadow, error)

	// FindByEmail finds a shadow by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*CustomerShadow, error)

	// FindAll finds shadows matching the filter with total count
	FindAll(ctx context.Context, filter shared.Filter) ([]CustomerShadow, int64, error)

	// Save creates or updates a shadow
	Save(ctx context.Context, shadow *CustomerShadow) error

	// Count returns the number of shadows
	Count(ctx context.Context) (int64, error)
}
