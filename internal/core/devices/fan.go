package devices

import (
	"fmt"
	"math"
	"time"
)

// MaxFanSpeed is the highest fan speed setting.
const MaxFanSpeed = 3

var fanSpeedLabels = map[int]string{1: "Low", 2: "Medium", 3: "High"}

// Fan is a multi-speed fan with oscillation and an auto-off countdown timer.
type Fan struct {
	baseDevice
	speed       int
	oscillating bool
	remaining   time.Duration // countdown until auto-off, zero means no timer
}

func NewFan(id, room string) *Fan {
	return &Fan{
		baseDevice: newBaseDevice(id, room, TypeFan),
	}
}

// SetSpeed clamps to [0,MaxFanSpeed] and couples the on flag: speed zero
// turns the fan off.
func (f *Fan) SetSpeed(speed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setSpeed(speed)
}

// setSpeed assumes the lock is held.
func (f *Fan) setSpeed(speed int) {
	f.speed = clampInt(speed, 0, MaxFanSpeed)
	f.on = f.speed > 0
}

func (f *Fan) Speed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speed
}

// ToggleOscillation flips oscillation while the fan is on and returns the
// resulting state.
func (f *Fan) ToggleOscillation() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.on {
		f.oscillating = !f.oscillating
	}
	return f.oscillating
}

func (f *Fan) Oscillating() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.oscillating
}

// SetTimer arms the auto-off countdown. Negative values clear the timer.
func (f *Fan) SetTimer(minutes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if minutes < 0 {
		minutes = 0
	}
	f.remaining = time.Duration(minutes) * time.Minute
}

// TimerMinutes reports the remaining countdown, rounded up to whole minutes.
func (f *Fan) TimerMinutes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(math.Ceil(f.remaining.Minutes()))
}

// Countdown advances the auto-off timer by elapsed wall time. When the timer
// expires the speed drops to zero and the fan turns off. Nothing happens
// while the fan is off or no timer is armed.
func (f *Fan) Countdown(elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.on || f.remaining <= 0 {
		return
	}
	f.remaining -= elapsed
	if f.remaining <= 0 {
		f.remaining = 0
		f.setSpeed(0)
	}
}

func (f *Fan) Describe() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.on || f.speed == 0 {
		return f.offSummary()
	}
	oscillation := "Fixed"
	if f.oscillating {
		oscillation = "Oscillating"
	}
	timer := "No Timer"
	if f.remaining > 0 {
		timer = fmt.Sprintf("Timer: %dmin", int(math.Ceil(f.remaining.Minutes())))
	}
	return fmt.Sprintf("%s (%s): %s - %s - %s", f.id, f.room, fanSpeedLabels[f.speed], oscillation, timer)
}
