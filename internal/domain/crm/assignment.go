package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/shared"
)

// AssignedBySync is the actor tag recorded on assignments opened by the
// registry sync path. Explicit assignments carry the authenticated subject.
const AssignedBySync = "sync"

// SellerAssignment links a customer shadow to a seller for an interval.
// UnassignedAt is nil while the assignment is current; a customer has at most
// one open assignment, enforced by a partial unique index.
type SellerAssignment struct {
	shared.BaseEntity
	CustomerID   uuid.UUID
	SellerID     uuid.UUID
	AssignedBy   string
	AssignedAt   time.Time
	UnassignedAt *time.Time
}

// NewSellerAssignment opens an assignment effective at the given instant,
// tagged with the actor that requested it.
func NewSellerAssignment(customerID, sellerID uuid.UUID, assignedBy string, at time.Time) *SellerAssignment {
	return &SellerAssignment{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		SellerID:   sellerID,
		AssignedBy: assignedBy,
		AssignedAt: at,
	}
}

// IsOpen reports whether the assignment is still current.
func (a *SellerAssignment) IsOpen() bool {
	return a.UnassignedAt == nil
}

// Close ends the assignment at the given instant. Closing twice is an
// invalid state transition, not a no-op: it would silently rewrite history.
func (a *SellerAssignment) Close(at time.Time) error {
	if a.UnassignedAt != nil {
		return shared.ErrInvalidState
	}
	a.UnassignedAt = &at
	a.Touch()
	return nil
}
