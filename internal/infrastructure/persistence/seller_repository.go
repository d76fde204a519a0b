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

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its internal ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a seller by its business code
func (r *GormSellerRepository) FindByCode(ctx context.Context, code string) (*crm.Seller, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Seller code cannot be empty")
	}
	var model models.SellerModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", crm.NormalizeSellerCode(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sellers matching the filter with total count
func (r *GormSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Seller, int64, error) {
	var sellerModels []models.SellerModel

	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.SellerModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SellerModel{}), filter)
	if err := query.Find(&sellerModels).Error; err != nil {
		return nil, 0, err
	}

	sellers := make([]crm.Seller, len(sellerModels))
	for i, model := range sellerModels {
		sellers[i] = *model.ToDomain()
	}
	return sellers, total, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, seller *crm.Seller) error {
	var model models.SellerModel
	model.FromDomain(seller)
	return r.db.WithContext(ctx).Save(&model).Error
}

// applyFilter applies filter options including pagination
func (r *GormSellerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, SellerSortFields, "code")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("code ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSellerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormSellerRepository implements SellerRepository
var _ crm.SellerRepository = (*GormSellerRepository)(nil)
