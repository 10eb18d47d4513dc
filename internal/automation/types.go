package automation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ArgType names the type of a trigger argument.
type ArgType string

// ArgString is a textual trigger argument.
const ArgString ArgType = "string"

// Arg is one named, typed argument a trigger passes to its automations.
type Arg struct {
	Type ArgType `json:"type"`
	Name string  `json:"name"`
}

// Vars holds trigger arguments by name for one execution.
type Vars map[string]any

// Action is one step of an automation.
type Action interface {
	// Name returns the catalog name, e.g. "delay".
	Name() string

	// Play runs the action. A returned error stops the automation.
	Play(ctx context.Context, vars Vars) error
}

// Automation is an ordered action list bound to a trigger.
type Automation struct {
	ID        string
	TriggerID string
	Args      []Arg
	Actions   []Action
}

// bind maps positional trigger values onto the automation's named args.
// Missing values are left unset; extra values are dropped.
func (a *Automation) bind(values []any) Vars {
	vars := make(Vars, len(a.Args))
	for i, arg := range a.Args {
		if i < len(values) {
			vars[arg.Name] = values[i]
		}
	}
	return vars
}

// ExecutionStatus represents the state of an automation run.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
	StatusCancelled ExecutionStatus = "cancelled"
)

// Execution records a single run of an automation.
type Execution struct {
	ID               string          `json:"id"`
	AutomationID     string          `json:"automation_id"`
	TriggerID        string          `json:"trigger_id"`
	TriggerValue     string          `json:"trigger_value"`
	Status           ExecutionStatus `json:"status"`
	ActionsTotal     int             `json:"actions_total"`
	ActionsCompleted int             `json:"actions_completed"`
	Error            string          `json:"error,omitempty"`
	StartedAt        time.Time       `json:"started_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}

// Duration returns how long the execution ran, or zero while running.
func (e *Execution) Duration() time.Duration {
	if e.CompletedAt == nil {
		return 0
	}
	return e.CompletedAt.Sub(e.StartedAt)
}

// GenerateID returns a new execution identifier.
func GenerateID() string {
	return uuid.NewString()
}
