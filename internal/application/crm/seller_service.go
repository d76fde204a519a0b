package crm

import (
	"context"

	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
)

// SellerService serves seller reference reads.
type SellerService struct {
	sellerRepo     crm.SellerRepository
	assignmentRepo crm.SellerAssignmentRepository
}

// NewSellerService creates a new SellerService
func NewSellerService(sellerRepo crm.SellerRepository, assignmentRepo crm.SellerAssignmentRepository) *SellerService {
	return &SellerService{
		sellerRepo:     sellerRepo,
		assignmentRepo: assignmentRepo,
	}
}

// List returns sellers matching the filter with their open-assignment counts.
func (s *SellerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SellerResponse], error) {
	sellers, total, err := s.sellerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SellerResponse, 0, len(sellers))
	for i := range sellers {
		count, err := s.assignmentRepo.CountOpenBySellerID(ctx, sellers[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, NewSellerResponse(&sellers[i], count))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetByCode returns one seller by its business code.
func (s *SellerService) GetByCode(ctx context.Context, code string) (*SellerResponse, error) {
	seller, err := s.sellerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	count, err := s.assignmentRepo.CountOpenBySellerID(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	resp := NewSellerResponse(seller, count)
	return &resp, nil
}
