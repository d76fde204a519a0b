package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockShadowRepository is a mock implementation of CustomerShadowRepository
type MockShadowRepository struct {
	mock.Mock
}

func (m *MockShadowRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CustomerShadow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerShadow), args.Error(1)
}

func (m *MockShadowRepository) FindByExternalID(ctx context.Context, externalID string) (*crm.CustomerShadow, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerShadow), args.Error(1)
}

func (m *MockShadowRepository) FindByEmail(ctx context.Context, email string) (*crm.CustomerShadow, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerShadow), args.Error(1)
}

func (m *MockShadowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.CustomerShadow, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.CustomerShadow), args.Get(1).(int64), args.Error(2)
}

func (m *MockShadowRepository) Save(ctx context.Context, shadow *crm.CustomerShadow) error {
	args := m.Called(ctx, shadow)
	return args.Error(0)
}

func (m *MockShadowRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSellerRepository is a mock implementation of SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindByCode(ctx context.Context, code string) (*crm.Seller, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Seller, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Seller), args.Get(1).(int64), args.Error(2)
}

func (m *MockSellerRepository) Save(ctx context.Context, seller *crm.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of SellerAssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindOpenByCustomerID(ctx context.Context, customerID uuid.UUID) (*crm.SellerAssignment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SellerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]crm.SellerAssignment, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]crm.SellerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountOpenBySellerID(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *crm.SellerAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// MockEventRepository is a mock implementation of DomainEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Append(ctx context.Context, event *crm.DomainEventRecord) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]crm.DomainEventRecord, error) {
	args := m.Called(ctx, entityType, entityID)
	return args.Get(0).([]crm.DomainEventRecord), args.Error(1)
}

// MockRegistryClient is a mock implementation of RegistryClient
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) FetchCustomers(ctx context.Context) ([]crm.CustomerRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.CustomerRecord), args.Error(1)
}

// passthroughTxManager runs the unit of work directly against the mocks.
type passthroughTxManager struct {
	repos crm.Repos
}

func (p *passthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos crm.Repos) error) error {
	return fn(ctx, p.repos)
}

type testEnv struct {
	shadows     *MockShadowRepository
	sellers     *MockSellerRepository
	assignments *MockAssignmentRepository
	events      *MockEventRepository
	registry    *MockRegistryClient
	txm         *passthroughTxManager
}

func newTestEnv() *testEnv {
	env := &testEnv{
		shadows:     new(MockShadowRepository),
		sellers:     new(MockSellerRepository),
		assignments: new(MockAssignmentRepository),
		events:      new(MockEventRepository),
		registry:    new(MockRegistryClient),
	}
	env.txm = &passthroughTxManager{repos: crm.Repos{
		Shadows:     env.shadows,
		Sellers:     env.sellers,
		Assignments: env.assignments,
		Events:      env.events,
	}}
	return env
}

func (e *testEnv) syncService() *SyncService {
	return NewSyncService(e.txm, e.registry, zap.NewNop())
}

func (e *testEnv) assignmentService() *AssignmentService {
	return NewAssignmentService(e.txm, e.shadows, e.assignments, e.sellers, zap.NewNop())
}

// =============================================================================
// SyncService Tests
// =============================================================================

func TestSyncServiceSyncCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new shadow", func(t *testing.T) {
		env := newTestEnv()
		env.shadows.On("FindByExternalID", ctx, "ext-1").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "jane@example.com").Return(nil, shared.ErrNotFound)
		env.shadows.On("Save", ctx, mock.AnythingOfType("*crm.CustomerShadow")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{
			ExternalID: "ext-1",
			Email:      "jane@example.com",
			FirstName:  "Jane",
		})

		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, "ext-1", resp.Customer.ExternalCustomerID)
		assert.Equal(t, "jane@example.com", resp.Customer.Email)
		assert.Equal(t, crm.SourceWebsiteForm, resp.Customer.Source)
		assert.Nil(t, resp.Customer.CurrentSeller)
		env.shadows.AssertExpectations(t)
		env.events.AssertExpectations(t)
	})

	t.Run("updates an existing shadow found by external id", func(t *testing.T) {
		env := newTestEnv()
		existing, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)

		env.shadows.On("FindByExternalID", ctx, "ext-1").Return(existing, nil)
		env.shadows.On("Save", ctx, existing).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.assignments.On("FindOpenByCustomerID", ctx, existing.ID).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{
			ExternalID: "ext-1",
			Email:      "jane@example.com",
			FirstName:  "Jane",
		})

		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, "Jane", resp.Customer.FirstName)
		env.shadows.AssertNotCalled(t, "FindByEmail", ctx, mock.Anything)
	})

	t.Run("falls back to email lookup", func(t *testing.T) {
		env := newTestEnv()
		existing, err := crm.NewCustomerShadow("ext-old", "jane@example.com")
		require.NoError(t, err)

		env.shadows.On("FindByExternalID", ctx, "ext-new").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "jane@example.com").Return(existing, nil)
		env.shadows.On("Save", ctx, existing).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.assignments.On("FindOpenByCustomerID", ctx, existing.ID).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{
			ExternalID: "ext-new",
			Email:      "jane@example.com",
			LastName:   "Doe",
		})

		require.NoError(t, err)
		assert.False(t, resp.Created)
		// external id stays bound to its first value
		assert.Equal(t, "ext-old", resp.Customer.ExternalCustomerID)
	})

	t.Run("assigns seller by code from payload", func(t *testing.T) {
		env := newTestEnv()
		seller, err := crm.NewSeller("S-001", "Piet", "Jansen")
		require.NoError(t, err)

		env.shadows.On("FindByExternalID", ctx, "ext-1").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "jane@example.com").Return(nil, shared.ErrNotFound)
		env.shadows.On("Save", ctx, mock.AnythingOfType("*crm.CustomerShadow")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.sellers.On("FindByCode", ctx, "S-001").Return(seller, nil)
		env.sellers.On("FindByID", ctx, seller.ID).Return(seller, nil)
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(nil, shared.ErrNotFound).Once()
		env.assignments.On("Save", ctx, mock.MatchedBy(func(a *crm.SellerAssignment) bool {
			return a.AssignedBy == crm.AssignedBySync
		})).Return(nil)

		opened := crm.NewSellerAssignment(uuid.New(), seller.ID, crm.AssignedBySync, time.Now())
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(opened, nil)

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{
			ExternalID: "ext-1",
			Email:      "jane@example.com",
			SellerCode: "S-001",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Customer.CurrentSeller)
		assert.Equal(t, "S-001", resp.Customer.CurrentSeller.Code)
		assert.Equal(t, "Piet Jansen", resp.Customer.CurrentSeller.Name)
		env.assignments.AssertExpectations(t)
	})

	t.Run("unknown seller code is a soft fail", func(t *testing.T) {
		env := newTestEnv()
		env.shadows.On("FindByExternalID", ctx, "ext-1").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "jane@example.com").Return(nil, shared.ErrNotFound)
		env.shadows.On("Save", ctx, mock.AnythingOfType("*crm.CustomerShadow")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.sellers.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{
			ExternalID: "ext-1",
			Email:      "jane@example.com",
			SellerCode: "NOPE",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.Customer.CurrentSeller)
		env.assignments.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("fails without external id", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.syncService().SyncCustomer(ctx, CustomerSyncPayload{Email: "jane@example.com"})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestSyncServicePullFromRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("counts created, updated and skipped records", func(t *testing.T) {
		env := newTestEnv()
		existing, err := crm.NewCustomerShadow("ext-2", "known@example.com")
		require.NoError(t, err)

		env.registry.On("FetchCustomers", ctx).Return([]crm.CustomerRecord{
			{ExternalID: "ext-1", Email: "new@example.com", FirstName: "New"},
			{ExternalID: "ext-2", Email: "known@example.com", FirstName: "Known"},
			{ExternalID: "ext-3"}, // no email, skipped
		}, nil)

		env.shadows.On("FindByExternalID", ctx, "ext-1").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "new@example.com").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByExternalID", ctx, "ext-2").Return(existing, nil)
		env.shadows.On("Save", ctx, mock.AnythingOfType("*crm.CustomerShadow")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().PullFromRegistry(ctx)

		require.NoError(t, err)
		// Total counts processed records, not skipped ones
		assert.Equal(t, 2, resp.Summary.Total)
		assert.Equal(t, 1, resp.Summary.Created)
		assert.Equal(t, 1, resp.Summary.Updated)
		assert.Equal(t, 1, resp.Summary.Skipped)
		assert.Len(t, resp.Customers, 2)
		assert.Equal(t, crm.SourceRegistrySync, resp.Customers[0].Source)
	})

	t.Run("one failing record does not abort the batch", func(t *testing.T) {
		env := newTestEnv()
		env.registry.On("FetchCustomers", ctx).Return([]crm.CustomerRecord{
			{ExternalID: "ext-bad", Email: "bad@example.com"},
			{ExternalID: "ext-good", Email: "good@example.com"},
		}, nil)

		env.shadows.On("FindByExternalID", ctx, "ext-bad").Return(nil, errors.New("connection reset"))
		env.shadows.On("FindByExternalID", ctx, "ext-good").Return(nil, shared.ErrNotFound)
		env.shadows.On("FindByEmail", ctx, "good@example.com").Return(nil, shared.ErrNotFound)
		env.shadows.On("Save", ctx, mock.AnythingOfType("*crm.CustomerShadow")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)
		env.assignments.On("FindOpenByCustomerID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		resp, err := env.syncService().PullFromRegistry(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Summary.Created)
		assert.Equal(t, 1, resp.Summary.Skipped)
	})

	t.Run("registry failure aborts before any writes", func(t *testing.T) {
		env := newTestEnv()
		env.registry.On("FetchCustomers", ctx).Return(nil, shared.ErrUpstreamUnavailable)

		resp, err := env.syncService().PullFromRegistry(ctx)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
		env.shadows.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}

// =============================================================================
// AssignmentService Tests
// =============================================================================

func TestAssignmentServiceAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("fails when neither seller id nor code given", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.assignmentService().Assign(ctx, uuid.New(), AssignSellerRequest{}, "admin@verkoop.nl")

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("fails for unknown customer", func(t *testing.T) {
		env := newTestEnv()
		customerID := uuid.New()
		env.shadows.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		resp, err := env.assignmentService().Assign(ctx, customerID, AssignSellerRequest{SellerCode: "S-001"}, "admin@verkoop.nl")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("fails hard for unresolvable seller", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)
		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.sellers.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)

		resp, err := env.assignmentService().Assign(ctx, shadow.ID, AssignSellerRequest{SellerCode: "NOPE"}, "admin@verkoop.nl")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("closes the previous assignment and opens a new one", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)
		oldSeller, err := crm.NewSeller("S-001", "Piet", "Jansen")
		require.NoError(t, err)
		newSeller, err := crm.NewSeller("S-002", "Anna", "de Vries")
		require.NoError(t, err)
		open := crm.NewSellerAssignment(shadow.ID, oldSeller.ID, crm.AssignedBySync, time.Now().Add(-time.Hour))

		var saved []*crm.SellerAssignment
		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.sellers.On("FindByID", ctx, newSeller.ID).Return(newSeller, nil)
		env.assignments.On("FindOpenByCustomerID", ctx, shadow.ID).Return(open, nil)
		env.assignments.On("Save", ctx, mock.AnythingOfType("*crm.SellerAssignment")).Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(*crm.SellerAssignment))
		}).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)

		resp, err := env.assignmentService().Assign(ctx, shadow.ID, AssignSellerRequest{SellerID: &newSeller.ID}, "admin@verkoop.nl")

		require.NoError(t, err)
		require.NotNil(t, resp.CurrentSeller)
		assert.Equal(t, "S-002", resp.CurrentSeller.Code)
		assert.False(t, open.IsOpen())
		require.Len(t, saved, 2)
		// New row carries the acting subject, the closed one keeps its own
		assert.Equal(t, "admin@verkoop.nl", saved[1].AssignedBy)
		assert.Equal(t, crm.AssignedBySync, saved[0].AssignedBy)
	})

	t.Run("same seller is closed and reopened", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)
		seller, err := crm.NewSeller("S-001", "Piet", "Jansen")
		require.NoError(t, err)
		open := crm.NewSellerAssignment(shadow.ID, seller.ID, crm.AssignedBySync, time.Now().Add(-time.Hour))

		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.sellers.On("FindByCode", ctx, "S-001").Return(seller, nil)
		env.assignments.On("FindOpenByCustomerID", ctx, shadow.ID).Return(open, nil)
		env.assignments.On("Save", ctx, mock.AnythingOfType("*crm.SellerAssignment")).Return(nil)
		env.events.On("Append", ctx, mock.AnythingOfType("*crm.DomainEventRecord")).Return(nil)

		_, err = env.assignmentService().Assign(ctx, shadow.ID, AssignSellerRequest{SellerCode: "S-001"}, "admin@verkoop.nl")

		require.NoError(t, err)
		assert.False(t, open.IsOpen())
		env.assignments.AssertNumberOfCalls(t, "Save", 2)
	})
}

func TestAssignmentServiceHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns history with seller names", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)
		seller, err := crm.NewSeller("S-001", "Piet", "Jansen")
		require.NoError(t, err)

		closed := crm.NewSellerAssignment(shadow.ID, seller.ID, crm.AssignedBySync, time.Now().Add(-2*time.Hour))
		require.NoError(t, closed.Close(time.Now().Add(-time.Hour)))
		open := crm.NewSellerAssignment(shadow.ID, seller.ID, "admin@verkoop.nl", time.Now().Add(-time.Hour))

		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.assignments.On("FindByCustomerID", ctx, shadow.ID).Return([]crm.SellerAssignment{*closed, *open}, nil)
		env.sellers.On("FindByID", ctx, seller.ID).Return(seller, nil)

		items, err := env.assignmentService().History(ctx, shadow.ID)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.NotNil(t, items[0].UnassignedAt)
		assert.Nil(t, items[1].UnassignedAt)
		assert.Equal(t, "Piet Jansen", items[0].SellerName)
		assert.Equal(t, crm.AssignedBySync, items[0].AssignedBy)
		assert.Equal(t, "admin@verkoop.nl", items[1].AssignedBy)
		// seller lookup is cached per call
		env.sellers.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("fails for unknown customer", func(t *testing.T) {
		env := newTestEnv()
		customerID := uuid.New()
		env.shadows.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		items, err := env.assignmentService().History(ctx, customerID)

		assert.Nil(t, items)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// =============================================================================
// CustomerService / SellerService Tests
// =============================================================================

func TestCustomerServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("includes the current seller projection", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)
		seller, err := crm.NewSeller("S-001", "Piet", "Jansen")
		require.NoError(t, err)
		open := crm.NewSellerAssignment(shadow.ID, seller.ID, crm.AssignedBySync, time.Now())

		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.assignments.On("FindOpenByCustomerID", ctx, shadow.ID).Return(open, nil)
		env.sellers.On("FindByID", ctx, seller.ID).Return(seller, nil)

		svc := NewCustomerService(env.shadows, env.assignments, env.sellers)
		resp, err := svc.GetByID(ctx, shadow.ID)

		require.NoError(t, err)
		require.NotNil(t, resp.CurrentSeller)
		assert.Equal(t, seller.ID, resp.CurrentSeller.ID)
	})

	t.Run("no open assignment yields no seller", func(t *testing.T) {
		env := newTestEnv()
		shadow, err := crm.NewCustomerShadow("ext-1", "jane@example.com")
		require.NoError(t, err)

		env.shadows.On("FindByID", ctx, shadow.ID).Return(shadow, nil)
		env.assignments.On("FindOpenByCustomerID", ctx, shadow.ID).Return(nil, shared.ErrNotFound)

		svc := NewCustomerService(env.shadows, env.assignments, env.sellers)
		resp, err := svc.GetByID(ctx, shadow.ID)

		require.NoError(t, err)
		assert.Nil(t, resp.CurrentSeller)
	})
}

func TestSellerServiceGetByCode(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	seller, err := crm.NewSeller("S-001", "Piet", "Jansen")
	require.NoError(t, err)

	env.sellers.On("FindByCode", ctx, "S-001").Return(seller, nil)
	env.assignments.On("CountOpenBySellerID", ctx, seller.ID).Return(int64(3), nil)

	svc := NewSellerService(env.sellers, env.assignments)
	resp, err := svc.GetByCode(ctx, "S-001")

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.AssignedCustomers)
	assert.Equal(t, "Piet Jansen", resp.DisplayName)
}
