package crm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
)

// CustomerService serves customer shadow reads.
type CustomerService struct {
	shadowRepo     crm.CustomerShadowRepository
	assignmentRepo crm.SellerAssignmentRepository
	sellerRepo     crm.SellerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	shadowRepo crm.CustomerShadowRepository,
	assignmentRepo crm.SellerAssignmentRepository,
	sellerRepo crm.SellerRepository,
) *CustomerService {
	return &CustomerService{
		shadowRepo:     shadowRepo,
		assignmentRepo: assignmentRepo,
		sellerRepo:     sellerRepo,
	}
}

// List returns customer shadows matching the filter with their current-seller
// projection.
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerShadowResponse], error) {
	shadows, total, err := s.shadowRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerShadowResponse, 0, len(shadows))
	for i := range shadows {
		seller, err := s.currentSellerOf(ctx, shadows[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, NewCustomerShadowResponse(&shadows[i], seller))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetByID returns one customer shadow with its current-seller projection.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerShadowResponse, error) {
	shadow, err := s.shadowRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller, err := s.currentSellerOf(ctx, shadow.ID)
	if err != nil {
		return nil, err
	}

	resp := NewCustomerShadowResponse(shadow, seller)
	return &resp, nil
}

func (s *CustomerService) currentSellerOf(ctx context.Context, customerID uuid.UUID) (*crm.Seller, error) {
	open, err := s.assignmentRepo.FindOpenByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, open.SellerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return seller, nil
}
