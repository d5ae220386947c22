package devices

import "fmt"

// Window is a smart window with motorized blinds. The light level is derived
// from how far the window and blinds are open.
type Window struct {
	baseDevice
	openPct    int
	blindsPct  int
	lightLevel float64
}

func NewWindow(id, room string) *Window {
	return &Window{
		baseDevice: newBaseDevice(id, room, TypeWindow),
	}
}

// SetOpenPercentage clamps to [0,100] and couples the on flag: a fully
// closed window is off.
func (w *Window) SetOpenPercentage(pct int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.openPct = clampInt(pct, 0, 100)
	w.on = w.openPct > 0
	w.recalcLightLevel()
}

func (w *Window) OpenPercentage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.openPct
}

// SetBlindsPercentage clamps to [0,100].
func (w *Window) SetBlindsPercentage(pct int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blindsPct = clampInt(pct, 0, 100)
	w.recalcLightLevel()
}

func (w *Window) BlindsPercentage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blindsPct
}

// LightLevel is the percentage of outside light passing through.
func (w *Window) LightLevel() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lightLevel
}

// recalcLightLevel assumes the lock is held.
func (w *Window) recalcLightLevel() {
	w.lightLevel = float64(w.openPct) * float64(100-w.blindsPct) / 100
}

func (w *Window) Describe() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.on {
		return fmt.Sprintf("%s (%s): CLOSED", w.id, w.room)
	}
	return fmt.Sprintf("%s (%s): %d%% Open - Blinds: %d%% - Light: %g%%",
		w.id, w.room, w.openPct, w.blindsPct, w.lightLevel)
}
