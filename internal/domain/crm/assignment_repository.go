package crm

import (
	"context"

	"github.com/google/uuid"
)

// SellerAssignmentRepository defines persistence for the assignment ledger
type SellerAssignmentRepository interface {
	// FindOpenByCustomerID finds the current assignment of a customer, if any
	FindOpenByCustomerID(ctx context.Context, customerID uuid.UUID) (*SellerAssignment, error)

	// FindByCustomerID returns a customer's full assignment history ordered
	// by assigned_at ascending
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]SellerAssignment, error)

	// CountOpenBySellerID counts customers currently assigned to a seller
	CountOpenBySellerID(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// Save creates or updates an assignment row
	Save(ctx context.Context, assignment *SellerAssignment) error
}
