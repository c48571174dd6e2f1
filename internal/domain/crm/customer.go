package crm

import (
	"context"

	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/google/uuid"
)

// CorporateCustomer represents a business-entity account. The customer
// lifecycle is owned by the upstream account system; this service only reads
// customer rows, so the type carries no mutators.
type CorporateCustomer struct {
	shared.BaseEntity
	Name             string
	SubscriptionTier string
}

// CustomerRepository provides read access to the corporate customer store.
type CustomerRepository interface {
	// FindByName performs an exact, case-sensitive lookup by customer name.
	// Zero matches yield a CUSTOMER_NOT_FOUND error; more than one match
	// yields AMBIGUOUS_CUSTOMER rather than silently picking a row.
	FindByName(ctx context.Context, name string) (*CorporateCustomer, error)

	// FindByID looks up a customer by its identity.
	FindByID(ctx context.Context, id uuid.UUID) (*CorporateCustomer, error)
}
