// Package workflowengine provides the in-process workflow execution engine.
// It stands in for an external state-machine runner: each execution is a
// goroutine stepping the order's stages with a configurable dwell between
// start and completion.
package workflowengine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/ports"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// LocalEngine implements ports.WorkflowEngine by driving executions
// in-process. Per stage it invokes the run-stage unit, ensures a stage
// record exists, waits out the dwell and completes the stage, repeating
// until the terminal marker. Stage failures mark the workflow FAILED and
// stop the execution; the engine never panics an execution goroutine.
type LocalEngine struct {
	startStage     commands.StartStageCommandHandler
	runStage       commands.RunStageCommandHandler
	completeStage  commands.CompleteStageCommandHandler
	finishWorkflow commands.FinishWorkflowCommandHandler
	dwell          time.Duration
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLocalEngine creates an engine. dwell is the simulated work time per
// stage; executions run until Stop.
func NewLocalEngine(
	startStage commands.StartStageCommandHandler,
	runStage commands.RunStageCommandHandler,
	completeStage commands.CompleteStageCommandHandler,
	finishWorkflow commands.FinishWorkflowCommandHandler,
	dwell time.Duration,
	logger *slog.Logger,
) *LocalEngine {
	ctx, cancel := context.WithCancel(context.Background())
	return &LocalEngine{
		startStage:     startStage,
		runStage:       runStage,
		completeStage:  completeStage,
		finishWorkflow: finishWorkflow,
		dwell:          dwell,
		logger:         logger.With("component", "local_workflow_engine"),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// StartExecution launches the execution in a background goroutine. The
// execution outlives the caller's context; it stops with the engine.
func (e *LocalEngine) StartExecution(_ context.Context, execution ports.Execution) error {
	if err := execution.Key.Validate(); err != nil {
		return err
	}
	if e.ctx.Err() != nil {
		return e.ctx.Err()
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.drive(execution)
	}()

	return nil
}

// Stop cancels all running executions and waits for their goroutines.
// In-flight orders stay WORKFLOW_STARTED; the reconciliation sweep and a
// restarted engine pick them up from their stage history.
func (e *LocalEngine) Stop() {
	e.cancel()
	e.wg.Wait()
}

// drive steps one execution from its initial stage to the terminal marker.
func (e *LocalEngine) drive(execution ports.Execution) {
	logger := e.logger.With("executionRef", execution.Ref, "order", execution.Key.String())
	logger.InfoContext(e.ctx, "Execution started", "initialStage", execution.InitialStage.String())

	stage := execution.InitialStage
	for {
		cmd, err := commands.NewRunStageCommand(
			execution.Key.TenantID().String(),
			execution.Key.OrderID().String(),
			stage.String(),
		)
		if err != nil {
			e.finish(logger, execution, commands.RunStatusFailed)
			return
		}

		result := e.runStage.Handle(e.ctx, cmd)
		switch result.Status {
		case commands.RunStatusCompleted:
			e.finish(logger, execution, commands.RunStatusCompleted)
			return
		case commands.RunStatusFailed:
			logger.ErrorContext(e.ctx, "Stage invocation failed", "stage", stage.String(), "error", result.Err)
			e.finish(logger, execution, commands.RunStatusFailed)
			return
		}

		if err = e.ensureStarted(execution, stage); err != nil {
			logger.ErrorContext(e.ctx, "Failed to record stage start", "stage", stage.String(), "error", err)
			e.finish(logger, execution, commands.RunStatusFailed)
			return
		}

		if !e.sleep() {
			logger.InfoContext(e.ctx, "Execution interrupted by engine shutdown", "stage", stage.String())
			return
		}

		if err = e.completeCurrent(execution, stage); err != nil {
			logger.ErrorContext(e.ctx, "Failed to complete stage", "stage", stage.String(), "error", err)
			e.finish(logger, execution, commands.RunStatusFailed)
			return
		}

		stage = result.NextStage
	}
}

// ensureStarted makes sure an IN_PROGRESS record exists for the stage. The
// first stage was already started by the workflow-start command, so an
// already-in-progress rejection is the expected path there.
func (e *LocalEngine) ensureStarted(execution ports.Execution, stage order.Stage) error {
	cmd, err := commands.NewStartStageCommand(
		execution.Key.TenantID().String(),
		execution.Key.OrderID().String(),
		stage.String(),
		"",
	)
	if err != nil {
		return err
	}

	if _, err = e.startStage.Handle(e.ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil
		}
		return err
	}

	return nil
}

func (e *LocalEngine) completeCurrent(execution ports.Execution, stage order.Stage) error {
	cmd, err := commands.NewCompleteStageCommand(
		execution.Key.TenantID().String(),
		execution.Key.OrderID().String(),
		stage.String(),
	)
	if err != nil {
		return err
	}

	_, err = e.completeStage.Handle(e.ctx, cmd)
	return err
}

// finish records the terminal outcome on the order.
func (e *LocalEngine) finish(logger *slog.Logger, execution ports.Execution, outcome commands.RunStatus) {
	cmd, err := commands.NewFinishWorkflowCommand(
		execution.Key.TenantID().String(),
		execution.Key.OrderID().String(),
		outcome,
	)
	if err != nil {
		logger.ErrorContext(e.ctx, "Failed to build finish command", "error", err)
		return
	}

	if err = e.finishWorkflow.Handle(e.ctx, cmd); err != nil {
		logger.ErrorContext(e.ctx, "Failed to record workflow outcome", "outcome", string(outcome), "error", err)
		return
	}

	logger.InfoContext(e.ctx, "Execution finished", "outcome", string(outcome))
}

// sleep waits out the dwell, returning false when the engine stops first.
func (e *LocalEngine) sleep() bool {
	if e.dwell <= 0 {
		return true
	}

	timer := time.NewTimer(e.dwell)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-e.ctx.Done():
		return false
	}
}
