package crm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssignmentService handles explicit seller assignment requests and history
// reads. Unlike the sync path, an explicit assign fails hard when the
// referenced seller does not exist.
type AssignmentService struct {
	txm            crm.TxManager
	shadowRepo     crm.CustomerShadowRepository
	assignmentRepo crm.SellerAssignmentRepository
	sellerRepo     crm.SellerRepository
	logger         *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	txm crm.TxManager,
	shadowRepo crm.CustomerShadowRepository,
	assignmentRepo crm.SellerAssignmentRepository,
	sellerRepo crm.SellerRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		txm:            txm,
		shadowRepo:     shadowRepo,
		assignmentRepo: assignmentRepo,
		sellerRepo:     sellerRepo,
		logger:         logger,
	}
}

// Assign assigns a customer to the seller selected by the request, recording
// assignedBy as the acting subject. The previous assignment is closed and the
// new one opened in one transaction.
func (s *AssignmentService) Assign(ctx context.Context, customerID uuid.UUID, req AssignSellerRequest, assignedBy string) (*CustomerShadowResponse, error) {
	ref := SellerRef{ID: req.SellerID, Code: req.SellerCode}
	if ref.IsEmpty() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "either seller_id or seller_code is required")
	}

	var resp *CustomerShadowResponse
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos crm.Repos) error {
		shadow, err := repos.Shadows.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		seller, err := resolveSeller(ctx, repos, ref)
		if err != nil {
			return err
		}

		if err := openAssignment(ctx, repos, shadow, seller, assignedBy, time.Now()); err != nil {
			return err
		}

		s.logger.Info("customer assigned to seller",
			zap.String("customer_id", shadow.ID.String()),
			zap.String("seller_code", seller.Code),
			zap.String("assigned_by", assignedBy))

		r := NewCustomerShadowResponse(shadow, seller)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// History returns a customer's assignment history, oldest first.
func (s *AssignmentService) History(ctx context.Context, customerID uuid.UUID) ([]AssignmentHistoryItem, error) {
	if _, err := s.shadowRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	sellers := make(map[uuid.UUID]*crm.Seller)
	items := make([]AssignmentHistoryItem, 0, len(assignments))
	for _, a := range assignments {
		seller, ok := sellers[a.SellerID]
		if !ok {
			seller, err = s.sellerRepo.FindByID(ctx, a.SellerID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			sellers[a.SellerID] = seller
		}

		item := AssignmentHistoryItem{
			ID:           a.ID,
			SellerID:     a.SellerID,
			AssignedBy:   a.AssignedBy,
			AssignedAt:   a.AssignedAt,
			UnassignedAt: a.UnassignedAt,
		}
		if seller != nil {
			item.SellerCode = seller.Code
			item.SellerName = seller.DisplayName()
		}
		items = append(items, item)
	}
	return items, nil
}

// resolveSeller resolves a seller ref by id first, then by code. Returns
// shared.ErrNotFound when neither matches.
func resolveSeller(ctx context.Context, repos crm.Repos, ref SellerRef) (*crm.Seller, error) {
	if ref.ID != nil {
		seller, err := repos.Sellers.FindByID(ctx, *ref.ID)
		if err == nil {
			return seller, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if ref.Code != "" {
		return repos.Sellers.FindByCode(ctx, ref.Code)
	}
	return nil, shared.ErrNotFound
}
