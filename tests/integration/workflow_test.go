package integration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/crm/touchpoints/internal/application/onboarding"
	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/crm/touchpoints/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingPublisher records published events instead of sending them
type capturingPublisher struct {
	events []shared.DomainEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newWorkflow(tdb *TestDB, publisher onboarding.EventPublisher) *onboarding.WorkflowService {
	return onboarding.NewWorkflowService(
		persistence.NewGormCustomerRepository(tdb.DB),
		persistence.NewGormTouchpointsRepository(tdb.DB),
		publisher,
		nil,
	)
}

func TestWorkflow_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	touchpointsRepo := persistence.NewGormTouchpointsRepository(tdb.DB)

	t.Run("creates record and publishes event", func(t *testing.T) {
		tdb.CleanTables()

		customerID := uuid.New()
		tdb.SeedCustomer(customerID, "TechCorp Solutions", "far-out")

		publisher := &capturingPublisher{}
		result := newWorkflow(tdb, publisher).Run(context.Background(), "TechCorp Solutions")

		require.True(t, result.Succeeded(), "workflow failed: %v", result.Err)
		assert.Equal(t, onboarding.StateDone, result.State)

		// Record is durable with all milestones unset
		persisted, err := touchpointsRepo.FindByID(context.Background(), result.TouchpointsID)
		require.NoError(t, err)
		assert.Equal(t, customerID, persisted.CustomerID)
		assert.True(t, persisted.MilestonesPending())

		// Event carries the full wire shape
		require.Len(t, publisher.events, 1)
		data, err := json.Marshal(publisher.events[0])
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, "touchpoints-created", payload["event_type"])
		assert.Equal(t, result.TouchpointsID.String(), payload["touchpoints_id"])

		customer, ok := payload["customer"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, customerID.String(), customer["id"])
		assert.Equal(t, "TechCorp Solutions", customer["name"])
		assert.Equal(t, "far-out", customer["subscription_tier"])

		milestones, ok := payload["touchpoints"].(map[string]any)
		require.True(t, ok)
		for _, key := range []string{"welcome_outreach", "technical_onboarding", "follow_up_call", "feedback_session"} {
			value, present := milestones[key]
			assert.True(t, present, "missing milestone key %q", key)
			assert.Nil(t, value)
		}

		actions, ok := payload["next_actions"].([]any)
		require.True(t, ok)
		assert.Len(t, actions, len(crm.NextActions))
	})

	t.Run("every run inserts a new record", func(t *testing.T) {
		tdb.CleanTables()

		customerID := uuid.New()
		tdb.SeedCustomer(customerID, "TechCorp Solutions", "far-out")

		workflow := newWorkflow(tdb, &capturingPublisher{})
		first := workflow.Run(context.Background(), "TechCorp Solutions")
		second := workflow.Run(context.Background(), "TechCorp Solutions")

		require.True(t, first.Succeeded())
		require.True(t, second.Succeeded())
		assert.NotEqual(t, first.TouchpointsID, second.TouchpointsID)

		count, err := touchpointsRepo.CountByCustomer(context.Background(), customerID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("unknown customer writes nothing", func(t *testing.T) {
		tdb.CleanTables()

		publisher := &capturingPublisher{}
		result := newWorkflow(tdb, publisher).Run(context.Background(), "Ghost Inc")

		assert.Equal(t, onboarding.StatusFailed, result.Status)
		assert.Equal(t, onboarding.StateResolving, result.State)
		assert.True(t, shared.HasCode(result.Err, crm.ErrCodeCustomerNotFound))
		assert.Empty(t, publisher.events)

		var count int64
		require.NoError(t, tdb.DB.Raw(`SELECT count(*) FROM touchpoints`).Scan(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("publish failure leaves the record in place", func(t *testing.T) {
		tdb.CleanTables()

		customerID := uuid.New()
		tdb.SeedCustomer(customerID, "TechCorp Solutions", "far-out")

		publisher := &capturingPublisher{err: errors.New("broken pipe")}
		result := newWorkflow(tdb, publisher).Run(context.Background(), "TechCorp Solutions")

		assert.True(t, result.PartialSuccess())
		assert.Equal(t, onboarding.StatePublishing, result.State)
		assert.True(t, shared.HasCode(result.Err, crm.ErrCodePublishFailed))

		persisted, err := touchpointsRepo.FindByID(context.Background(), result.TouchpointsID)
		require.NoError(t, err)
		assert.Equal(t, customerID, persisted.CustomerID)
	})

	t.Run("insert with unknown customer id violates the foreign key", func(t *testing.T) {
		tdb.CleanTables()

		record, err := touchpointsRepo.Create(context.Background(), crm.NewTouchpoints(uuid.New()))

		assert.Nil(t, record)
		assert.True(t, shared.HasCode(err, crm.ErrCodeConstraintViolation))
	})
}
