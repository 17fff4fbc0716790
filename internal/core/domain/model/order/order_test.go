package order_test

import (
	"testing"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, tenant, id string) kernel.OrderKey {
	t.Helper()
	key, err := kernel.NewOrderKey(tenant, id)
	require.NoError(t, err)
	return key
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid_order", func(t *testing.T) {
		item, err := order.NewItem("Pollo a la Brasa", 2)
		require.NoError(t, err)

		o, err := order.NewOrder(mustKey(t, "pardos", "O-1"), "C-77", []order.Item{item}, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.WorkflowNotStarted, o.Status())
		assert.Equal(t, order.StageUnknown, o.CurrentStage())
		assert.Empty(t, o.ExecutionRef())
		assert.Equal(t, "C-77", o.CustomerID())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("invalid_key_is_rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.OrderKey{}, "", nil, now)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_StartWorkflow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records_status_and_execution_ref", func(t *testing.T) {
		o, err := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, err)

		later := now.Add(time.Minute)
		require.NoError(t, o.StartWorkflow("pardos-O-1-a1b2c3d4", later))

		assert.Equal(t, order.WorkflowStarted, o.Status())
		assert.Equal(t, "pardos-O-1-a1b2c3d4", o.ExecutionRef())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("retried_start_replaces_execution_ref", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, o.StartWorkflow("ref-1", now))
		require.NoError(t, o.StartWorkflow("ref-2", now))

		assert.Equal(t, "ref-2", o.ExecutionRef())
		assert.Equal(t, order.WorkflowStarted, o.Status())
	})

	t.Run("empty_execution_ref_is_rejected", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.Error(t, o.StartWorkflow("", now))
	})

	t.Run("completed_workflow_cannot_restart", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, o.StartWorkflow("ref", now))
		require.NoError(t, o.CompleteWorkflow(now))

		require.Error(t, o.StartWorkflow("ref-2", now))
	})
}

func TestOrder_AdvanceStage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("moves_pointer_and_touches_updated_at", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, o.StartWorkflow("ref", now))

		later := now.Add(time.Minute)
		require.NoError(t, o.AdvanceStage(order.StageCooking, later))

		assert.Equal(t, order.StageCooking, o.CurrentStage())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("invalid_stage_is_rejected", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.Error(t, o.AdvanceStage(order.StageUnknown, now))
	})
}

func TestOrder_CompleteWorkflow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("moves_to_terminal_state", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, o.StartWorkflow("ref", now))
		require.NoError(t, o.AdvanceStage(order.StageDelivery, now))

		require.NoError(t, o.CompleteWorkflow(now))

		assert.Equal(t, order.WorkflowCompleted, o.Status())
		assert.Equal(t, order.StageCompleted, o.CurrentStage())
	})

	t.Run("not_started_cannot_complete", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.Error(t, o.CompleteWorkflow(now))
	})
}

func TestOrder_FailWorkflow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("keeps_last_stage_pointer", func(t *testing.T) {
		o, _ := order.NewOrder(mustKey(t, "pardos", "O-1"), "", nil, now)
		require.NoError(t, o.StartWorkflow("ref", now))
		require.NoError(t, o.AdvanceStage(order.StagePackaging, now))

		require.NoError(t, o.FailWorkflow(now))

		assert.Equal(t, order.WorkflowFailed, o.Status())
		assert.Equal(t, order.StagePackaging, o.CurrentStage())
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round_trip", func(t *testing.T) {
		o, err := order.RestoreOrder(
			mustKey(t, "pardos", "O-9"), "C-1", nil,
			order.StageDelivery, order.WorkflowStarted, "ref-9",
			now, now.Add(time.Hour),
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StageDelivery, o.CurrentStage())
		assert.Equal(t, order.WorkflowStarted, o.Status())
		assert.Equal(t, "ref-9", o.ExecutionRef())
	})

	t.Run("invalid_status_is_rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			mustKey(t, "pardos", "O-9"), "", nil,
			order.StageUnknown, order.WorkflowStatus(42), "",
			now, now,
		)
		require.Error(t, err)
	})

	t.Run("unknown_stage_allowed_before_first_stage", func(t *testing.T) {
		o, err := order.RestoreOrder(
			mustKey(t, "pardos", "O-9"), "", nil,
			order.StageUnknown, order.WorkflowNotStarted, "",
			now, now,
		)
		require.NoError(t, err)
		assert.Equal(t, order.StageUnknown, o.CurrentStage())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("valid_item", func(t *testing.T) {
		item, err := order.NewItem("Chicha Morada", 3)
		require.NoError(t, err)
		assert.Equal(t, "Chicha Morada", item.ProductName())
		assert.Equal(t, 3, item.Quantity())
	})

	t.Run("empty_product_name_is_rejected", func(t *testing.T) {
		_, err := order.NewItem("", 1)
		require.Error(t, err)
	})

	t.Run("non_positive_quantity_is_rejected", func(t *testing.T) {
		_, err := order.NewItem("Ensalada Fresca", 0)
		require.Error(t, err)
	})
}
