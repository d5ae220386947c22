package automation

import (
	"sync"
	"time"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
)

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// Condition is a side-effect-free predicate over the device registry.
type Condition interface {
	Evaluate(devs []devices.Device) bool
}

// Action mutates zero or more devices in the registry. Actions are the only
// place the rule layer touches device state.
type Action interface {
	Execute(devs []devices.Device)
}

// ConditionFunc adapts a plain function to the Condition interface.
type ConditionFunc func(devs []devices.Device) bool

func (f ConditionFunc) Evaluate(devs []devices.Device) bool { return f(devs) }

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(devs []devices.Device)

func (f ActionFunc) Execute(devs []devices.Device) { f(devs) }

// Rule is a named, independently toggleable condition/action pair with
// trigger bookkeeping.
type Rule struct {
	mu            sync.Mutex
	name          string
	condition     Condition
	action        Action
	enabled       bool
	lastTriggered *time.Time
	runCount      int64
}

// NewRule creates an enabled rule.
func NewRule(name string, condition Condition, action Action) *Rule {
	return &Rule{
		name:      name,
		condition: condition,
		action:    action,
		enabled:   true,
	}
}

func (r *Rule) Name() string { return r.name }

func (r *Rule) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Toggle flips the enabled flag and returns the new value.
func (r *Rule) Toggle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = !r.enabled
	return r.enabled
}

func (r *Rule) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// LastTriggered reports when the rule last fired, or nil if it never has.
func (r *Rule) LastTriggered() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastTriggered == nil {
		return nil
	}
	t := *r.lastTriggered
	return &t
}

// RunCount reports how many times the rule has fired.
func (r *Rule) RunCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runCount
}

// Apply evaluates the rule against the registry. A disabled rule returns
// false with no side effect. When the condition holds, the action runs, the
// trigger time is recorded and Apply returns true.
func (r *Rule) Apply(devs []devices.Device) bool {
	r.mu.Lock()
	enabled := r.enabled
	r.mu.Unlock()
	if !enabled {
		return false
	}

	if !r.condition.Evaluate(devs) {
		return false
	}

	r.action.Execute(devs)

	now := timeNow()
	r.mu.Lock()
	r.lastTriggered = &now
	r.runCount++
	r.mu.Unlock()
	return true
}
