package crm

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeTouchpointsCreated is the event type tag and the default logical
// channel name for creation events.
const EventTypeTouchpointsCreated = "touchpoints-created"

// NextActions is the suggested follow-up for each milestone, in milestone
// order. The list is fixed; it does not depend on customer data.
var NextActions = []string{
	"Schedule welcome outreach",
	"Plan technical onboarding session",
	"Set up follow-up call",
	"Arrange feedback session",
}

// CustomerSnapshot is the customer portion of the event payload.
type CustomerSnapshot struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MilestoneDates is the milestone portion of the event payload. All four
// fields serialize to null at creation time.
type MilestoneDates struct {
	WelcomeOutreach     *time.Time `json:"welcome_outreach"`
	TechnicalOnboarding *time.Time `json:"technical_onboarding"`
	FollowUpCall        *time.Time `json:"follow_up_call"`
	FeedbackSession     *time.Time `json:"feedback_session"`
}

// TouchpointsCreatedEvent announces that a touchpoints record was created.
// The struct's JSON tags define the wire contract consumed downstream; field
// names and nesting must not change without coordinating with subscribers.
type TouchpointsCreatedEvent struct {
	Type          string           `json:"event_type"`
	Timestamp     time.Time        `json:"timestamp"`
	TouchpointsID uuid.UUID        `json:"touchpoints_id"`
	Customer      CustomerSnapshot `json:"customer"`
	Touchpoints   MilestoneDates   `json:"touchpoints"`
	NextActions   []string         `json:"next_actions"`
}

// NewTouchpointsCreatedEvent builds the creation event from the resolved
// customer and the persisted record. The emission timestamp is taken in UTC
// at construction time.
func NewTouchpointsCreatedEvent(customer *CorporateCustomer, record *Touchpoints) *TouchpointsCreatedEvent {
	return &TouchpointsCreatedEvent{
		Type:          EventTypeTouchpointsCreated,
		Timestamp:     time.Now().UTC(),
		TouchpointsID: record.ID,
		Customer: CustomerSnapshot{
			ID:               customer.ID,
			Name:             customer.Name,
			SubscriptionTier: customer.SubscriptionTier,
			CreatedAt:        customer.CreatedAt,
			UpdatedAt:        customer.UpdatedAt,
		},
		Touchpoints: MilestoneDates{
			WelcomeOutreach:     record.WelcomeOutreach,
			TechnicalOnboarding: record.TechnicalOnboarding,
			FollowUpCall:        record.FollowUpCall,
			FeedbackSession:     record.FeedbackSession,
		},
		NextActions: NextActions,
	}
}

// EventType returns the event type tag.
func (e *TouchpointsCreatedEvent) EventType() string {
	return e.Type
}

// OccurredAt returns the emission timestamp.
func (e *TouchpointsCreatedEvent) OccurredAt() time.Time {
	return e.Timestamp
}
