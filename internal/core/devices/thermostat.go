package devices

import (
	"fmt"
	"strings"
)

// Thermostat operating modes.
const (
	ModeHeat = "heat"
	ModeCool = "cool"
	ModeAuto = "auto"
)

// tempStep is how far the current temperature moves toward the target on a
// single simulation tick.
const tempStep = 0.5

// Thermostat simulates a heating/cooling unit whose current temperature
// drifts toward the target one step per tick.
type Thermostat struct {
	baseDevice
	temperature float64
	target      float64
	mode        string
	humidity    int
}

func NewThermostat(id, room string) *Thermostat {
	t := &Thermostat{
		baseDevice:  newBaseDevice(id, room, TypeThermostat),
		temperature: 20,
		target:      20,
		mode:        ModeHeat,
		humidity:    50,
	}
	t.color = tempColor(t.temperature)
	return t
}

// SetTarget sets the target temperature and turns the unit on.
func (t *Thermostat) SetTarget(temp float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.target = temp
	t.on = true
}

func (t *Thermostat) Target() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

func (t *Thermostat) Temperature() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.temperature
}

// SetMode accepts heat, cool or auto; anything else is ignored.
func (t *Thermostat) SetMode(mode string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch mode {
	case ModeHeat, ModeCool, ModeAuto:
		t.mode = mode
	}
}

func (t *Thermostat) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// SetHumidity clamps to [0,100] percent.
func (t *Thermostat) SetHumidity(humidity int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.humidity = clampInt(humidity, 0, 100)
}

func (t *Thermostat) Humidity() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.humidity
}

// AdvanceTowardTarget moves the current temperature one step toward the
// target without overshooting, then refreshes the temperature color band.
func (t *Thermostat) AdvanceTowardTarget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.temperature < t.target:
		t.temperature += tempStep
		if t.temperature > t.target {
			t.temperature = t.target
		}
	case t.temperature > t.target:
		t.temperature -= tempStep
		if t.temperature < t.target {
			t.temperature = t.target
		}
	}
	t.color = tempColor(t.temperature)
}

func (t *Thermostat) Describe() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.on {
		return t.offSummary()
	}
	return fmt.Sprintf("%s (%s): %g°C - Mode: %s", t.id, t.room, t.temperature, titleCase(t.mode))
}

// tempColor selects the display band for a temperature.
func tempColor(temp float64) string {
	switch {
	case temp < 16:
		return "#81D4FA" // cold
	case temp < 19:
		return "#B3E5FC" // cool
	case temp < 23:
		return "#E1F5FE" // neutral
	case temp < 26:
		return "#FFE0B2" // warm
	default:
		return "#FFCCBC" // hot
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
