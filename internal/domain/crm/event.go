package crm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/shared"
)

// Event types emitted by the crm context. Events are recorded in the same
// transaction as the state change they describe.
const (
	EventCustomerSynced           = "CustomerSynced"
	EventCustomerAssignedToSeller = "CustomerAssignedToSeller"
)

// EntityTypeCustomer tags events whose EntityID is a registry customer id.
const EntityTypeCustomer = "customer"

// DomainEventRecord is an append-only log entry for integration consumers.
// EntityID references the affected entity by its externally-known id so that
// consumers can correlate without access to internal surrogate keys. Payload
// holds the event body as JSON.
type DomainEventRecord struct {
	ID         uuid.UUID
	EventType  string
	EntityType string
	EntityID   string
	Payload    string
	OccurredAt time.Time
}

// NewDomainEventRecord marshals the payload and stamps the event.
func NewDomainEventRecord(eventType, entityType, entityID string, payload any) (*DomainEventRecord, error) {
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "event entity type is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "event payload is not serializable")
	}
	return &DomainEventRecord{
		ID:         uuid.New(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    string(body),
		OccurredAt: time.Now(),
	}, nil
}

// CustomerSyncedPayload is the body of a CustomerSynced event.
type CustomerSyncedPayload struct {
	CustomerID         uuid.UUID `json:"customer_id"`
	ExternalCustomerID string    `json:"external_customer_id"`
	Email              string    `json:"email"`
	Created            bool      `json:"created"`
	Source             string    `json:"source,omitempty"`
}

// CustomerAssignedPayload is the body of a CustomerAssignedToSeller event.
// PreviousSellerID is nil on a first assignment.
type CustomerAssignedPayload struct {
	CustomerID       uuid.UUID  `json:"customer_id"`
	SellerID         uuid.UUID  `json:"seller_id"`
	SellerCode       string     `json:"seller_code"`
	PreviousSellerID *uuid.UUID `json:"previous_seller_id,omitempty"`
	AssignedBy       string     `json:"assigned_by"`
	AssignedAt       time.Time  `json:"assigned_at"`
}
