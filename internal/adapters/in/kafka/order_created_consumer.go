// Package kafka contains the inbound adapter listening for OrderCreated
// events from the order-intake system. Each event registers the order and
// starts its workflow.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/events"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// OrderCreatedConsumer reads the order-intake topic and drives order
// registration and workflow start. Delivery is at-least-once: offsets commit
// only after the message was handled, and handlers tolerate redelivery.
type OrderCreatedConsumer struct {
	reader        *kafka.Reader
	createOrder   commands.CreateOrderCommandHandler
	startWorkflow commands.StartWorkflowCommandHandler
	logger        *slog.Logger
	wg            sync.WaitGroup
}

// NewOrderCreatedConsumer creates the consumer over the given reader.
func NewOrderCreatedConsumer(
	reader *kafka.Reader,
	createOrder commands.CreateOrderCommandHandler,
	startWorkflow commands.StartWorkflowCommandHandler,
	logger *slog.Logger,
) *OrderCreatedConsumer {
	return &OrderCreatedConsumer{
		reader:        reader,
		createOrder:   createOrder,
		startWorkflow: startWorkflow,
		logger:        logger.With("component", "order_created_consumer"),
	}
}

// Start begins the consume loop in a background goroutine. The loop runs
// until the context is cancelled or Stop is called.
func (c *OrderCreatedConsumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.InfoContext(ctx, "Order intake consumer started", "topic", c.reader.Config().Topic)

		for {
			message, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, kafka.ErrGroupClosed) {
					c.logger.InfoContext(ctx, "Order intake consumer shutting down")
					return
				}
				c.logger.ErrorContext(ctx, "Failed to fetch message", "error", err)
				time.Sleep(time.Second)
				continue
			}

			c.processMessage(ctx, message)

			if err = c.reader.CommitMessages(ctx, message); err != nil {
				c.logger.ErrorContext(ctx, "Failed to commit offset", "error", err)
			}
		}
	}()
}

// Stop closes the reader and waits for the consume loop to drain.
func (c *OrderCreatedConsumer) Stop() {
	_ = c.reader.Close()
	c.wg.Wait()
}

// processMessage handles one intake event. Malformed payloads are logged and
// skipped; their offsets still commit so they never wedge the partition.
func (c *OrderCreatedConsumer) processMessage(ctx context.Context, message kafka.Message) {
	var event events.OrderCreated
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.logger.ErrorContext(ctx, "Skipping malformed OrderCreated payload",
			"offset", message.Offset, "error", err)
		return
	}

	if err := c.registerOrder(ctx, event); err != nil {
		c.logger.ErrorContext(ctx, "Failed to register order",
			"tenant", event.TenantID, "order", event.OrderID, "error", err)
		return
	}

	cmd, err := commands.NewStartWorkflowCommand(event.TenantID, event.OrderID, event.CustomerID)
	if err != nil {
		c.logger.ErrorContext(ctx, "Skipping OrderCreated event with invalid identity",
			"tenant", event.TenantID, "order", event.OrderID, "error", err)
		return
	}

	executionRef, err := c.startWorkflow.Handle(ctx, cmd)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to start workflow",
			"tenant", event.TenantID, "order", event.OrderID, "error", err)
		return
	}

	c.logger.InfoContext(ctx, "Workflow started from intake event",
		"tenant", event.TenantID, "order", event.OrderID, "executionRef", executionRef)
}

// registerOrder creates the order row. Redelivered events find the order
// already present; that is not an error.
func (c *OrderCreatedConsumer) registerOrder(ctx context.Context, event events.OrderCreated) error {
	items := make([]commands.OrderItemInput, 0, len(event.Items))
	for _, item := range event.Items {
		items = append(items, commands.OrderItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(event.TenantID, event.OrderID, event.CustomerID, items)
	if err != nil {
		return err
	}

	if err = c.createOrder.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil
		}
		return err
	}

	return nil
}
