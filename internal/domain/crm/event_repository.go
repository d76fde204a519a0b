package crm

import (
	"context"
)

// DomainEventRepository defines persistence for the append-only event log
type DomainEventRepository interface {
	// Append stores an event record
	Append(ctx context.Context, event *DomainEventRecord) error

	// FindByEntity returns events for an entity ordered by occurred_at
	// ascending
	FindByEntity(ctx context.Context, entityType, entityID string) ([]DomainEventRecord, error)
}
