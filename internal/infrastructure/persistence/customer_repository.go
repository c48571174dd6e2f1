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

// GormCustomerRepository implements crm.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByName resolves a customer by exact name. The query fetches up to two
// rows so a second match can be distinguished from a unique one without
// scanning the whole table.
func (r *GormCustomerRepository) FindByName(ctx context.Context, name string) (*crm.CorporateCustomer, error) {
	var customerModels []models.CorporateCustomerModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(2).
		Find(&customerModels).Error; err != nil {
		return nil, crm.NewStoreUnavailableError("find customer by name", err)
	}

	switch len(customerModels) {
	case 0:
		return nil, crm.NewCustomerNotFoundError(name)
	case 1:
		return customerModels[0].ToDomain(), nil
	default:
		return nil, crm.NewAmbiguousCustomerError(name)
	}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CorporateCustomer, error) {
	var model models.CorporateCustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, crm.NewStoreUnavailableError("find customer by id", err)
	}
	return model.ToDomain(), nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
