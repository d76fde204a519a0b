package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"github.com/verkoop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSellerAssignmentRepository implements SellerAssignmentRepository using GORM
type GormSellerAssignmentRepository struct {
	db *gorm.DB
}

// NewGormSellerAssignmentRepository creates a new GormSellerAssignmentRepository
func NewGormSellerAssignmentRepository(db *gorm.DB) *GormSellerAssignmentRepository {
	return &GormSellerAssignmentRepository{db: db}
}

// FindOpenByCustomerID finds the current assignment of a customer
func (r *GormSellerAssignmentRepository) FindOpenByCustomerID(ctx context.Context, customerID uuid.UUID) (*crm.SellerAssignment, error) {
	var model models.SellerAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND unassigned_at IS NULL", customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomerID returns a customer's assignment history, oldest first
func (r *GormSellerAssignmentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]crm.SellerAssignment, error) {
	var assignmentModels []models.SellerAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("assigned_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]crm.SellerAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments, nil
}

// CountOpenBySellerID counts customers currently assigned to a seller
func (r *GormSellerAssignmentRepository) CountOpenBySellerID(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.SellerAssignmentModel{}).
		Where("seller_id = ? AND unassigned_at IS NULL", sellerID).
		Count(&total).Error
	return total, err
}

// Save creates or updates an assignment row
func (r *GormSellerAssignmentRepository) Save(ctx context.Context, assignment *crm.SellerAssignment) error {
	var model models.SellerAssignmentModel
	model.FromDomain(assignment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormSellerAssignmentRepository implements SellerAssignmentRepository
var _ crm.SellerAssignmentRepository = (*GormSellerAssignmentRepository)(nil)
