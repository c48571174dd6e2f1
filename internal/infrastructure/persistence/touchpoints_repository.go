package persistence

import (
	"context"
	"errors"

	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/crm/touchpoints/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTouchpointsRepository implements crm.TouchpointsRepository using GORM
type GormTouchpointsRepository struct {
	db *gorm.DB
}

// NewGormTouchpointsRepository creates a new GormTouchpointsRepository
func NewGormTouchpointsRepository(db *gorm.DB) *GormTouchpointsRepository {
	return &GormTouchpointsRepository{db: db}
}

// Create inserts one touchpoints record and reads it back, so the caller
// sees the row exactly as the store persisted it. Every call inserts a new
// row; existing records for the same customer are never checked.
func (r *GormTouchpointsRepository) Create(ctx context.Context, record *crm.Touchpoints) (*crm.Touchpoints, error) {
	model := models.TouchpointsModelFromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, crm.NewConstraintViolationError(record.CustomerID, err)
		}
		return nil, crm.NewWriteFailedError(record.CustomerID, err)
	}

	var persisted models.TouchpointsModel
	if err := r.db.WithContext(ctx).First(&persisted, "id = ?", model.ID).Error; err != nil {
		return nil, crm.NewWriteFailedError(record.CustomerID, err)
	}
	return persisted.ToDomain(), nil
}

// FindByID finds a touchpoints record by its ID
func (r *GormTouchpointsRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Touchpoints, error) {
	var model models.TouchpointsModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, crm.NewStoreUnavailableError("find touchpoints by id", err)
	}
	return model.ToDomain(), nil
}

// CountByCustomer counts touchpoints records for a customer
func (r *GormTouchpointsRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TouchpointsModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, crm.NewStoreUnavailableError("count touchpoints by customer", err)
	}
	return count, nil
}

// Ensure GormTouchpointsRepository implements TouchpointsRepository
var _ crm.TouchpointsRepository = (*GormTouchpointsRepository)(nil)
