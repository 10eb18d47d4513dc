package automation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// maxExecutionTime is the hard limit for a single automation run. It
// bounds goroutines left behind by long delay chains.
const maxExecutionTime = 5 * time.Minute

// Broadcaster is the interface for pushing execution events to clients.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Observer is called with every finished execution.
type Observer func(exec *Execution)

// Engine runs automations.
//
// Actions run sequentially; the first failing action stops the run.
// Dispatch runs each execution on its own goroutine so a trigger never
// blocks the code that fired it.
//
// Thread Safety: all methods are safe for concurrent use.
type Engine struct {
	repo   ExecutionRepository
	hub    Broadcaster
	logger Logger

	mu        sync.RWMutex
	observers []Observer

	wg sync.WaitGroup
}

// NewEngine creates a new automation engine.
//
// Parameters:
//   - repo: Execution history store (may be nil)
//   - hub: WebSocket hub for execution events (may be nil)
//   - logger: Logger instance (nil discards)
func NewEngine(repo ExecutionRepository, hub Broadcaster, logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{repo: repo, hub: hub, logger: logger}
}

// AddObserver registers fn to be called after every execution.
func (e *Engine) AddObserver(fn Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Dispatch runs a asynchronously. The run is detached from ctx
// cancellation so a finished HTTP request does not abort it.
func (e *Engine) Dispatch(ctx context.Context, a *Automation, vars Vars) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.Run(context.WithoutCancel(ctx), a, vars)
	}()
}

// Wait blocks until every dispatched execution has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Run plays the actions of a in order and returns the execution record.
func (e *Engine) Run(ctx context.Context, a *Automation, vars Vars) *Execution {
	ctx, cancel := context.WithTimeout(ctx, maxExecutionTime)
	defer cancel()

	exec := &Execution{
		ID:           GenerateID(),
		AutomationID: a.ID,
		TriggerID:    a.TriggerID,
		TriggerValue: firstArg(a, vars),
		Status:       StatusRunning,
		ActionsTotal: len(a.Actions),
		StartedAt:    time.Now().UTC(),
	}

	if e.repo != nil {
		if err := e.repo.CreateExecution(ctx, exec); err != nil {
			// Running the automation matters more than recording it.
			e.logger.Error("failed to create execution record", "error", err)
		}
	}

	e.logger.Debug("automation started",
		"automation_id", a.ID,
		"execution_id", exec.ID,
		"actions", len(a.Actions),
	)

	for i, action := range a.Actions {
		if ctx.Err() != nil {
			exec.Status = StatusCancelled
			exec.Error = ctx.Err().Error()
			break
		}
		if err := action.Play(ctx, vars); err != nil {
			exec.Status = StatusFailed
			exec.Error = fmt.Sprintf("action %d (%s): %v", i, action.Name(), err)
			break
		}
		exec.ActionsCompleted++
	}
	if exec.Status == StatusRunning {
		exec.Status = StatusCompleted
	}

	completed := time.Now().UTC()
	exec.CompletedAt = &completed

	e.finish(exec)
	return exec
}

func (e *Engine) finish(exec *Execution) {
	if e.repo != nil {
		// The run context may have expired; the record should still land.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.repo.UpdateExecution(ctx, exec); err != nil {
			e.logger.Error("failed to update execution record", "error", err)
		}
	}

	if exec.Status == StatusCompleted {
		e.logger.Debug("automation complete",
			"automation_id", exec.AutomationID,
			"execution_id", exec.ID,
			"duration_ms", exec.Duration().Milliseconds(),
		)
	} else {
		e.logger.Warn("automation did not complete",
			"automation_id", exec.AutomationID,
			"execution_id", exec.ID,
			"status", exec.Status,
			"error", exec.Error,
		)
	}

	if e.hub != nil {
		e.hub.Broadcast("automation.executed", map[string]any{
			"automation_id": exec.AutomationID,
			"trigger_id":    exec.TriggerID,
			"execution_id":  exec.ID,
			"status":        string(exec.Status),
			"duration_ms":   exec.Duration().Milliseconds(),
		})
	}

	e.mu.RLock()
	observers := append([]Observer(nil), e.observers...)
	e.mu.RUnlock()
	for _, fn := range observers {
		fn(exec)
	}
}

func firstArg(a *Automation, vars Vars) string {
	if len(a.Args) == 0 {
		return ""
	}
	v, ok := vars[a.Args[0].Name]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}
