package workflowengine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/workflowengine"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log/slog"
)

// memoryStore is a minimal in-memory stand-in for the postgres adapters so
// the engine can be driven end to end without a database.
type memoryStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	records []*stagerecord.Record

	failCompletions bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: make(map[string]*order.Order)}
}

func (s *memoryStore) orderStatus(key kernel.OrderKey) (order.WorkflowStatus, order.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	aggregate := s.orders[key.String()]
	if aggregate == nil {
		return order.WorkflowUnknown, order.StageUnknown
	}
	return aggregate.Status(), aggregate.CurrentStage()
}

func (s *memoryStore) completedRecords() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, record := range s.records {
		if record.Status() == stagerecord.Completed {
			count++
		}
	}
	return count
}

// memoryUoW implements commands.UoW over the shared store. Transactions are
// a formality here; every write lands directly.
type memoryUoW struct{ store *memoryStore }

func (u *memoryUoW) Begin(context.Context) error    { return nil }
func (u *memoryUoW) Commit(context.Context) error   { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return &memoryOrderRepo{store: u.store}
}

func (u *memoryUoW) StageRecordRepository() ports.StageRecordRepository {
	return &memoryRecordRepo{store: u.store}
}

type memoryUoWFactory struct{ store *memoryStore }

func (f *memoryUoWFactory) Create() commands.UoW { return &memoryUoW{store: f.store} }

type memoryOrderRepo struct{ store *memoryStore }

func (r *memoryOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[aggregate.Key().String()]; ok {
		return errs.NewObjectAlreadyExistsError("order", aggregate.Key().String())
	}
	r.store.orders[aggregate.Key().String()] = aggregate
	return nil
}

func (r *memoryOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[aggregate.Key().String()] = aggregate
	return nil
}

func (r *memoryOrderRepo) Get(_ context.Context, key kernel.OrderKey) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	aggregate, ok := r.store.orders[key.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", key.String())
	}
	return aggregate, nil
}

func (r *memoryOrderRepo) GetAllInWorkflowStartedStatus(context.Context) ([]*order.Order, error) {
	return nil, nil
}

type memoryRecordRepo struct{ store *memoryStore }

func (r *memoryRecordRepo) Add(_ context.Context, record *stagerecord.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, record)
	return nil
}

func (r *memoryRecordRepo) Complete(_ context.Context, record *stagerecord.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failCompletions {
		return errors.New("storage unavailable")
	}
	return nil
}

func (r *memoryRecordRepo) GetLatest(
	_ context.Context, key kernel.OrderKey, stage order.Stage,
) (*stagerecord.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest *stagerecord.Record
	for _, record := range r.store.records {
		if !record.Key().IsEqual(key) || record.Stage() != stage {
			continue
		}
		if latest == nil || record.StartedAt().After(latest.StartedAt()) {
			latest = record
		}
	}
	if latest == nil {
		return nil, errs.NewObjectNotFoundError("stageRecord", stage.String())
	}
	return latest, nil
}

func (r *memoryRecordRepo) HasInProgress(
	_ context.Context, key kernel.OrderKey, stage order.Stage,
) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, record := range r.store.records {
		if record.Key().IsEqual(key) && record.Stage() == stage && record.Status() == stagerecord.InProgress {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRecordRepo) GetHistory(_ context.Context, key kernel.OrderKey) ([]*stagerecord.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	history := make([]*stagerecord.Record, 0)
	for _, record := range r.store.records {
		if record.Key().IsEqual(key) {
			history = append(history, record)
		}
	}
	return history, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, string, any) error { return nil }

func newEngine(store *memoryStore, dwell time.Duration) *workflowengine.LocalEngine {
	factory := &memoryUoWFactory{store: store}
	logger := slog.New(slog.DiscardHandler)
	publisher := noopPublisher{}

	return workflowengine.NewLocalEngine(
		commands.NewStartStageCommandHandler(factory, publisher, logger),
		commands.NewRunStageCommandHandler(publisher, logger),
		commands.NewCompleteStageCommandHandler(factory, publisher, logger),
		commands.NewFinishWorkflowCommandHandler(factory),
		dwell,
		logger,
	)
}

func startedOrder(t *testing.T, store *memoryStore) kernel.OrderKey {
	t.Helper()
	key, err := kernel.NewOrderKey("pardos", "O-1001")
	require.NoError(t, err)

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(key, "C-42", nil, now)
	require.NoError(t, err)
	require.NoError(t, aggregate.StartWorkflow("pardos-O-1001-deadbeef", now))
	require.NoError(t, aggregate.AdvanceStage(order.StageCooking, now))
	store.orders[key.String()] = aggregate

	record, err := stagerecord.NewRecord(key, order.StageCooking, "", now)
	require.NoError(t, err)
	store.records = append(store.records, record)

	return key
}

func TestLocalEngine_DrivesExecutionToCompletion(t *testing.T) {
	store := newMemoryStore()
	key := startedOrder(t, store)

	engine := newEngine(store, 0)
	defer engine.Stop()

	err := engine.StartExecution(t.Context(), ports.Execution{
		Ref:          "pardos-O-1001-deadbeef",
		Key:          key,
		CustomerID:   "C-42",
		InitialStage: order.StageCooking,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, _ := store.orderStatus(key)
		return status == order.WorkflowCompleted
	}, 5*time.Second, 10*time.Millisecond)

	_, stage := store.orderStatus(key)
	assert.Equal(t, order.StageCompleted, stage)
	assert.Equal(t, 3, store.completedRecords())
}

func TestLocalEngine_StageFailureMarksWorkflowFailed(t *testing.T) {
	store := newMemoryStore()
	store.failCompletions = true
	key := startedOrder(t, store)

	engine := newEngine(store, 0)
	defer engine.Stop()

	err := engine.StartExecution(t.Context(), ports.Execution{
		Ref:          "pardos-O-1001-deadbeef",
		Key:          key,
		InitialStage: order.StageCooking,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, _ := store.orderStatus(key)
		return status == order.WorkflowFailed
	}, 5*time.Second, 10*time.Millisecond)

	// The pointer keeps the stage where the failure happened.
	_, stage := store.orderStatus(key)
	assert.Equal(t, order.StageCooking, stage)
}

func TestLocalEngine_RejectsExecutionsAfterStop(t *testing.T) {
	store := newMemoryStore()
	key := startedOrder(t, store)

	engine := newEngine(store, time.Minute)
	engine.Stop()

	err := engine.StartExecution(t.Context(), ports.Execution{
		Ref:          "pardos-O-1001-deadbeef",
		Key:          key,
		InitialStage: order.StageCooking,
	})
	require.Error(t, err)
}
