package persistence

import (
	"context"

	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDomainEventRepository implements DomainEventRepository using GORM
type GormDomainEventRepository struct {
	db *gorm.DB
}

// NewGormDomainEventRepository creates a new GormDomainEventRepository
func NewGormDomainEventRepository(db *gorm.DB) *GormDomainEventRepository {
	return &GormDomainEventRepository{db: db}
}

// Append stores an event record
func (r *GormDomainEventRepository) Append(ctx context.Context, event *crm.DomainEventRecord) error {
	var model models.DomainEventModel
	model.FromDomain(event)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByEntity returns events for an entity, oldest first
func (r *GormDomainEventRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]crm.DomainEventRecord, error) {
	var eventModels []models.DomainEventModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("occurred_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]crm.DomainEventRecord, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Ensure GormDomainEventRepository implements DomainEventRepository
var _ crm.DomainEventRepository = (*GormDomainEventRepository)(nil)
