package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, key kernel.OrderKey) (*order.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInWorkflowStartedStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStageRecordRepository struct{ mock.Mock }

func (m *MockStageRecordRepository) Add(ctx context.Context, record *stagerecord.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStageRecordRepository) Complete(ctx context.Context, record *stagerecord.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStageRecordRepository) GetLatest(
	ctx context.Context, key kernel.OrderKey, stage order.Stage,
) (*stagerecord.Record, error) {
	args := m.Called(ctx, key, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stagerecord.Record), args.Error(1)
}

func (m *MockStageRecordRepository) HasInProgress(
	ctx context.Context, key kernel.OrderKey, stage order.Stage,
) (bool, error) {
	args := m.Called(ctx, key, stage)
	return args.Bool(0), args.Error(1)
}

func (m *MockStageRecordRepository) GetHistory(
	ctx context.Context, key kernel.OrderKey,
) ([]*stagerecord.Record, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stagerecord.Record), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StageRecordRepository() ports.StageRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.StageRecordRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, source, eventType string, payload any) error {
	args := m.Called(ctx, source, eventType, payload)
	return args.Error(0)
}

type MockWorkflowEngine struct{ mock.Mock }

func (m *MockWorkflowEngine) StartExecution(ctx context.Context, execution ports.Execution) error {
	args := m.Called(ctx, execution)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustKey(t *testing.T, tenantID, orderID string) kernel.OrderKey {
	t.Helper()
	key, err := kernel.NewOrderKey(tenantID, orderID)
	require.NoError(t, err)
	return key
}

func restoredOrder(t *testing.T, key kernel.OrderKey, stage order.Stage, status order.WorkflowStatus) *order.Order {
	t.Helper()
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	aggregate, err := order.RestoreOrder(key, "C-42", nil, stage, status, "", created, created)
	require.NoError(t, err)
	return aggregate
}
