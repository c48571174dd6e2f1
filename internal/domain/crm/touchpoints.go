package crm

import (
	"context"
	"time"

	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/google/uuid"
)

// Touchpoints is the onboarding checklist record for one customer instance.
// Each milestone date is nil until the corresponding activity is completed;
// completion is handled by a downstream system, so this service only ever
// creates records with every milestone unset.
type Touchpoints struct {
	shared.BaseEntity
	CustomerID          uuid.UUID
	WelcomeOutreach     *time.Time
	TechnicalOnboarding *time.Time
	FollowUpCall        *time.Time
	FeedbackSession     *time.Time
}

// NewTouchpoints creates a touchpoints record for the given customer with a
// fresh identity and all milestone dates unset.
func NewTouchpoints(customerID uuid.UUID) *Touchpoints {
	return &Touchpoints{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
	}
}

// MilestonesPending reports whether every milestone is still unset.
func (t *Touchpoints) MilestonesPending() bool {
	return t.WelcomeOutreach == nil &&
		t.TechnicalOnboarding == nil &&
		t.FollowUpCall == nil &&
		t.FeedbackSession == nil
}

// TouchpointsRepository persists touchpoints records.
type TouchpointsRepository interface {
	// Create inserts exactly one record and returns it as stored, so the
	// caller observes store-assigned state (e.g. timestamp precision)
	// rather than locally computed values. Repeated calls for the same
	// customer create independent records.
	Create(ctx context.Context, record *Touchpoints) (*Touchpoints, error)

	// FindByID looks up a record by its identity.
	FindByID(ctx context.Context, id uuid.UUID) (*Touchpoints, error)

	// CountByCustomer returns the number of records owned by a customer.
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
