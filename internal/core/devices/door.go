package devices

import "fmt"

// Door is a lockable smart door. A locked door refuses to open; the refusal
// is reported through the boolean result, never an error.
type Door struct {
	baseDevice
	locked bool
	open   bool
}

func NewDoor(id, room string) *Door {
	return &Door{
		baseDevice: newBaseDevice(id, room, TypeDoor),
		locked:     true,
	}
}

func (d *Door) Locked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

func (d *Door) Lock() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locked = true
}

func (d *Door) Unlock() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locked = false
}

// ToggleLock flips the lock and returns the new locked state.
func (d *Door) ToggleLock() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locked = !d.locked
	return d.locked
}

// Open succeeds only while unlocked. On refusal the door state is unchanged
// and the caller must check the result.
func (d *Door) Open() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return false
	}
	d.open = true
	return true
}

// Close always succeeds.
func (d *Door) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

func (d *Door) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// LockColor is the display token for the lock indicator.
func (d *Door) LockColor() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return colorStatusOn
	}
	return colorStatusOff
}

func (d *Door) Describe() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.on {
		return d.offSummary()
	}
	doorState := "Closed"
	if d.open {
		doorState = "Open"
	}
	lockState := "Unlocked"
	if d.locked {
		lockState = "Locked"
	}
	return fmt.Sprintf("%s (%s): %s - %s", d.id, d.room, doorState, lockState)
}
