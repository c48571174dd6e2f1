package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mocks
// =============================================================================

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, name string) (*crm.CorporateCustomer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CorporateCustomer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CorporateCustomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CorporateCustomer), args.Error(1)
}

type MockTouchpointsRepository struct {
	mock.Mock
}

func (m *MockTouchpointsRepository) Create(ctx context.Context, record *crm.Touchpoints) (*crm.Touchpoints, error) {
	args := m.Called(ctx, record)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	if args.Get(0) == nil {
		// Configured with Return(nil, nil): echo the inserted record back,
		// like a store round trip.
		return record, nil
	}
	return args.Get(0).(*crm.Touchpoints), nil
}

func (m *MockTouchpointsRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Touchpoints, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Touchpoints), args.Error(1)
}

func (m *MockTouchpointsRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestCustomer(name string) *crm.CorporateCustomer {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &crm.CorporateCustomer{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: created,
			UpdatedAt: created,
		},
		Name:             name,
		SubscriptionTier: "far-out",
	}
}

func newWorkflow(customers *MockCustomerRepository, touchpoints *MockTouchpointsRepository, publisher *MockEventPublisher) *WorkflowService {
	return NewWorkflowService(customers, touchpoints, publisher, nil)
}

// =============================================================================
// Tests
// =============================================================================

func TestWorkflowService_Run_Success(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customer := newTestCustomer("TechCorp Solutions")
	customers.On("FindByName", mock.Anything, "TechCorp Solutions").Return(customer, nil)

	touchpoints.On("Create", mock.Anything, mock.AnythingOfType("*crm.Touchpoints")).
		Return(nil, nil)

	var published *crm.TouchpointsCreatedEvent
	publisher.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(*crm.TouchpointsCreatedEvent)
		}).
		Return(nil)

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "TechCorp Solutions")

	assert.True(t, result.Succeeded())
	assert.Equal(t, StateDone, result.State)
	assert.NotEqual(t, uuid.Nil, result.TouchpointsID)
	require.NotNil(t, result.Customer)
	assert.Equal(t, "TechCorp Solutions", result.Customer.Name)

	require.NotNil(t, published)
	assert.Equal(t, result.TouchpointsID, published.TouchpointsID)
	assert.Equal(t, customer.ID, published.Customer.ID)
	assert.Equal(t, "TechCorp Solutions", published.Customer.Name)
	assert.Nil(t, published.Touchpoints.WelcomeOutreach)
	assert.Nil(t, published.Touchpoints.TechnicalOnboarding)
	assert.Nil(t, published.Touchpoints.FollowUpCall)
	assert.Nil(t, published.Touchpoints.FeedbackSession)

	customers.AssertExpectations(t)
	touchpoints.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestWorkflowService_Run_EmptyName(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "   ")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, StateIdle, result.State)
	customers.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	touchpoints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestWorkflowService_Run_CustomerNotFound(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customers.On("FindByName", mock.Anything, "Ghost Inc").
		Return(nil, crm.NewCustomerNotFoundError("Ghost Inc"))

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "Ghost Inc")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, StateResolving, result.State)
	assert.True(t, shared.HasCode(result.Err, crm.ErrCodeCustomerNotFound))
	touchpoints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestWorkflowService_Run_AmbiguousCustomer(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customers.On("FindByName", mock.Anything, "TechCorp Solutions").
		Return(nil, crm.NewAmbiguousCustomerError("TechCorp Solutions"))

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "TechCorp Solutions")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, StateResolving, result.State)
	assert.True(t, shared.HasCode(result.Err, crm.ErrCodeAmbiguousCustomer))
	touchpoints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkflowService_Run_WriteFailure(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customer := newTestCustomer("TechCorp Solutions")
	customers.On("FindByName", mock.Anything, "TechCorp Solutions").Return(customer, nil)
	touchpoints.On("Create", mock.Anything, mock.Anything).
		Return(nil, crm.NewWriteFailedError(customer.ID, errors.New("connection reset")))

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "TechCorp Solutions")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, StateWriting, result.State)
	assert.True(t, shared.HasCode(result.Err, crm.ErrCodeWriteFailed))
	assert.Equal(t, uuid.Nil, result.TouchpointsID)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestWorkflowService_Run_PublishFailureIsPartialSuccess(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customer := newTestCustomer("TechCorp Solutions")
	customers.On("FindByName", mock.Anything, "TechCorp Solutions").Return(customer, nil)
	touchpoints.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broken pipe"))

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "TechCorp Solutions")

	assert.True(t, result.PartialSuccess())
	assert.False(t, result.Succeeded())
	assert.Equal(t, StatePublishing, result.State)
	assert.NotEqual(t, uuid.Nil, result.TouchpointsID)
	assert.True(t, shared.HasCode(result.Err, crm.ErrCodePublishFailed))
	assert.Contains(t, result.Message(), "partial success")
	assert.Contains(t, result.Message(), result.TouchpointsID.String())
}

func TestWorkflowService_Run_NextActionsAreFixed(t *testing.T) {
	customers := new(MockCustomerRepository)
	touchpoints := new(MockTouchpointsRepository)
	publisher := new(MockEventPublisher)

	customer := newTestCustomer("Some Other Corp")
	customer.SubscriptionTier = "basic"
	customers.On("FindByName", mock.Anything, "Some Other Corp").Return(customer, nil)
	touchpoints.On("Create", mock.Anything, mock.Anything).Return(nil, nil)

	var published *crm.TouchpointsCreatedEvent
	publisher.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(*crm.TouchpointsCreatedEvent)
		}).
		Return(nil)

	result := newWorkflow(customers, touchpoints, publisher).Run(context.Background(), "Some Other Corp")

	require.True(t, result.Succeeded())
	require.NotNil(t, published)
	assert.Equal(t, crm.NextActions, published.NextActions)
}
