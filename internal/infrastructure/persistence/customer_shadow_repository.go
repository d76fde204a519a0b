package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"github.com/verkoop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerShadowRepository implements CustomerShadowRepository using GORM
type GormCustomerShadowRepository struct {
	db *gorm.DB
}

// NewGormCustomerShadowRepository creates a new GormCustomerShadowRepository
func NewGormCustomerShadowRepository(db *gorm.DB) *GormCustomerShadowRepository {
	return &GormCustomerShadowRepository{db: db}
}

// FindByID finds a shadow by its internal ID
func (r *GormCustomerShadowRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CustomerShadow, error) {
	var model models.CustomerShadowModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds a shadow by the registry customer id
func (r *GormCustomerShadowRepository) FindByExternalID(ctx context.Context, externalID string) (*crm.CustomerShadow, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "External customer id cannot be empty")
	}
	var model models.CustomerShadowModel
	if err := r.db.WithContext(ctx).
		Where("external_customer_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a shadow by email
func (r *GormCustomerShadowRepository) FindByEmail(ctx context.Context, email string) (*crm.CustomerShadow, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	var model models.CustomerShadowModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds shadows matching the filter with total count
func (r *GormCustomerShadowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.CustomerShadow, int64, error) {
	var shadowModels []models.CustomerShadowModel

	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.CustomerShadowModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerShadowModel{}), filter)
	if err := query.Find(&shadowModels).Error; err != nil {
		return nil, 0, err
	}

	shadows := make([]crm.CustomerShadow, len(shadowModels))
	for i, model := range shadowModels {
		shadows[i] = *model.ToDomain()
	}
	return shadows, total, nil
}

// Save creates or updates a shadow
func (r *GormCustomerShadowRepository) Save(ctx context.Context, shadow *crm.CustomerShadow) error {
	var model models.CustomerShadowModel
	model.FromDomain(shadow)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Count returns the number of shadows
func (r *GormCustomerShadowRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.CustomerShadowModel{}).Count(&total).Error
	return total, err
}

// applyFilter applies filter options including pagination
func (r *GormCustomerShadowRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CustomerShadowSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerShadowRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"email LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR company_name LIKE ? OR external_customer_id LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "customer_type":
			query = query.Where("customer_type = ?", value)
		case "seller_id":
			query = query.Where(
				"id IN (?)",
				r.db.Model(&models.SellerAssignmentModel{}).
					Select("customer_id").
					Where("seller_id = ? AND unassigned_at IS NULL", value),
			)
		}
	}

	return query
}

// Ensure GormCustomerShadowRepository implements CustomerShadowRepository
var _ crm.CustomerShadowRepository = (*GormCustomerShadowRepository)(nil)
