package devices

import (
	"fmt"
	"sync"
)

// Type identifies a device kind.
type Type string

const (
	TypeLight      Type = "light"
	TypeThermostat Type = "thermostat"
	TypeCamera     Type = "camera"
	TypeDoor       Type = "door"
	TypeWindow     Type = "window"
	TypeFan        Type = "fan"
)

// Display color tokens shared by all device kinds.
const (
	colorDefault   = "#cccccc"
	colorStatusOn  = "#4CAF50"
	colorStatusOff = "#F44336"
)

// Device is the capability surface every simulated device implements.
// All methods are safe for concurrent use; each device carries its own lock.
type Device interface {
	ID() string
	Room() string
	Type() Type

	On() bool
	SetOn(on bool)
	Toggle() bool

	// Color is a display token derived from type-specific state.
	Color() string
	// StatusColor is the on/off indicator token.
	StatusColor() string
	// StatusText reports "ON" or "OFF".
	StatusText() string
	// Describe produces a one-line human-readable summary. A device that is
	// off always describes itself with the fixed off summary, regardless of
	// its other attributes.
	Describe() string
}

// baseDevice carries the identity and state common to every device kind.
// The id is immutable after construction. The mutex guards all state,
// including the variant-specific fields of the embedding type.
type baseDevice struct {
	mu    sync.Mutex
	id    string
	room  string
	kind  Type
	on    bool
	color string
}

func newBaseDevice(id, room string, kind Type) baseDevice {
	return baseDevice{
		id:    id,
		room:  room,
		kind:  kind,
		color: colorDefault,
	}
}

func (d *baseDevice) ID() string   { return d.id }
func (d *baseDevice) Room() string { return d.room }
func (d *baseDevice) Type() Type   { return d.kind }

func (d *baseDevice) On() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on
}

func (d *baseDevice) SetOn(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = on
}

// Toggle flips the on/off flag and returns the new value.
func (d *baseDevice) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = !d.on
	return d.on
}

func (d *baseDevice) Color() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.color
}

func (d *baseDevice) StatusColor() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.on {
		return colorStatusOn
	}
	return colorStatusOff
}

func (d *baseDevice) StatusText() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusText()
}

// statusText assumes the lock is held.
func (d *baseDevice) statusText() string {
	if d.on {
		return "ON"
	}
	return "OFF"
}

func (d *baseDevice) Describe() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("%s (%s): %s", d.id, d.room, d.statusText())
}

// offSummary is the fixed summary used by variants while off.
func (d *baseDevice) offSummary() string {
	return fmt.Sprintf("%s (%s): OFF", d.id, d.room)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
