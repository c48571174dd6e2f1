package onboarding

import (
	"context"
	"strings"

	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/crm/touchpoints/internal/domain/shared"
	"go.uber.org/zap"
)

// State identifies how far a workflow run progressed.
type State string

const (
	StateIdle       State = "idle"
	StateResolving  State = "resolving"
	StateWriting    State = "writing"
	StatePublishing State = "publishing"
	StateDone       State = "done"
)

// EventPublisher publishes a creation event to the message bus. The call
// blocks until the transport acknowledges acceptance; delivery to subscribers
// is at-least-once and not confirmed here.
type EventPublisher interface {
	Publish(ctx context.Context, event shared.DomainEvent) error
}

// WorkflowService runs the touchpoints creation workflow: resolve a customer
// by name, insert one touchpoints record, publish the creation event. Each
// run is independent; the service keeps no state between invocations.
type WorkflowService struct {
	customers   crm.CustomerRepository
	touchpoints crm.TouchpointsRepository
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewWorkflowService creates a WorkflowService. A nil logger disables step
// logging.
func NewWorkflowService(
	customers crm.CustomerRepository,
	touchpoints crm.TouchpointsRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *WorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowService{
		customers:   customers,
		touchpoints: touchpoints,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run executes the workflow for one customer name. The three steps are
// strictly sequential; the first failure short-circuits the run. A publish
// failure after a successful insert is reported as partial success because
// the record is already durable and must not be rolled back.
func (s *WorkflowService) Run(ctx context.Context, customerName string) Result {
	if strings.TrimSpace(customerName) == "" {
		return failed(StateIdle, shared.NewDomainError("INVALID_INPUT", "customer name must not be empty"))
	}

	s.logger.Info("Starting touchpoints workflow", zap.String("customer_name", customerName))

	customer, err := s.customers.FindByName(ctx, customerName)
	if err != nil {
		return failed(StateResolving, err)
	}
	s.logger.Info("Resolved customer",
		zap.String("customer_id", customer.ID.String()),
		zap.String("subscription_tier", customer.SubscriptionTier),
	)

	record, err := s.touchpoints.Create(ctx, crm.NewTouchpoints(customer.ID))
	if err != nil {
		return failedWithCustomer(StateWriting, customer, err)
	}
	s.logger.Info("Created touchpoints record",
		zap.String("touchpoints_id", record.ID.String()),
		zap.String("customer_id", customer.ID.String()),
	)

	event := crm.NewTouchpointsCreatedEvent(customer, record)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Touchpoints record persisted but event publish failed",
			zap.String("touchpoints_id", record.ID.String()),
			zap.Error(err),
		)
		return Result{
			Status:        StatusPartialSuccess,
			State:         StatePublishing,
			Customer:      customer,
			TouchpointsID: record.ID,
			Err:           crm.NewPublishFailedError(record.ID, err),
		}
	}
	s.logger.Info("Published creation event",
		zap.String("touchpoints_id", record.ID.String()),
		zap.String("event_type", event.EventType()),
	)

	return Result{
		Status:        StatusSucceeded,
		State:         StateDone,
		Customer:      customer,
		TouchpointsID: record.ID,
	}
}
