package automation

import (
	"context"
	"sync"
)

// Runner executes an automation with bound arguments.
// *Engine is the production Runner.
type Runner interface {
	Dispatch(ctx context.Context, a *Automation, vars Vars)
}

// Trigger is anything automations can be attached to.
type Trigger interface {
	TriggerID() string
	Attach(a *Automation, runner Runner)
}

type binding struct {
	automation *Automation
	runner     Runner
}

// TriggerBase implements Trigger. Entity triggers embed it and call Fire
// when their event occurs.
type TriggerBase struct {
	id string

	mu       sync.RWMutex
	bindings []binding
}

// NewTriggerBase returns a trigger with the given identifier.
func NewTriggerBase(id string) *TriggerBase {
	return &TriggerBase{id: id}
}

// TriggerID returns the trigger's identifier.
func (t *TriggerBase) TriggerID() string {
	return t.id
}

// Attach adds an automation. Automations fire in attach order.
func (t *TriggerBase) Attach(a *Automation, runner Runner) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings = append(t.bindings, binding{automation: a, runner: runner})
}

// Automations returns the attached automations in attach order.
func (t *TriggerBase) Automations() []*Automation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Automation, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.automation
	}
	return out
}

// Fire hands values to every attached automation.
func (t *TriggerBase) Fire(ctx context.Context, values ...any) {
	t.mu.RLock()
	bindings := append([]binding(nil), t.bindings...)
	t.mu.RUnlock()

	for _, b := range bindings {
		b.runner.Dispatch(ctx, b.automation, b.automation.bind(values))
	}
}
