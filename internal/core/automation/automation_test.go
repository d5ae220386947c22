package automation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
)

// pinClock fixes the package clock for the duration of a test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestRule_Apply(t *testing.T) {
	fired := 0
	rule := NewRule("test",
		ConditionFunc(func([]devices.Device) bool { return true }),
		ActionFunc(func([]devices.Device) { fired++ }),
	)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pinClock(t, now)

	assert.True(t, rule.Apply(nil))
	assert.Equal(t, 1, fired)
	require.NotNil(t, rule.LastTriggered())
	assert.Equal(t, now, *rule.LastTriggered())
	assert.Equal(t, int64(1), rule.RunCount())
}

func TestRule_ApplyDisabled(t *testing.T) {
	fired := 0
	rule := NewRule("test",
		ConditionFunc(func([]devices.Device) bool { return true }),
		ActionFunc(func([]devices.Device) { fired++ }),
	)

	rule.SetEnabled(false)
	assert.False(t, rule.Apply(nil))
	assert.Equal(t, 0, fired, "disabled rule has no side effects")
	assert.Nil(t, rule.LastTriggered())
}

func TestRule_ApplyConditionFalse(t *testing.T) {
	fired := 0
	rule := NewRule("test",
		ConditionFunc(func([]devices.Device) bool { return false }),
		ActionFunc(func([]devices.Device) { fired++ }),
	)

	assert.False(t, rule.Apply(nil))
	assert.Equal(t, 0, fired)
	assert.Nil(t, rule.LastTriggered())
}

func TestRule_IdempotentAfterFiring(t *testing.T) {
	// Condition holds until the action has run once
	light := devices.NewLight("Light", "Living Room", 4000)
	rule := NewRule("light on once",
		ConditionFunc(func([]devices.Device) bool { return light.Brightness() == 0 }),
		ActionFunc(func([]devices.Device) { light.SetBrightness(100) }),
	)

	assert.True(t, rule.Apply(nil))
	assert.False(t, rule.Apply(nil), "condition no longer holds after the action")
	assert.Equal(t, int64(1), rule.RunCount())
}

func TestRule_Toggle(t *testing.T) {
	rule := NewRule("test", ConditionFunc(func([]devices.Device) bool { return false }), ActionFunc(func([]devices.Device) {}))

	assert.True(t, rule.Enabled())
	assert.False(t, rule.Toggle())
	assert.True(t, rule.Toggle())
}

func TestMotionLightingRule(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetOn(true)
	cam.SetMotion(true)

	offLight := devices.NewLight("Off Light", "Living Room", 4000)
	onLight := devices.NewLight("On Light", "Living Room", 4000)
	onLight.SetBrightness(30)

	devs := []devices.Device{cam, offLight, onLight}
	rule := NewMotionLightingRule()

	now := time.Date(2024, 3, 1, 21, 15, 0, 0, time.UTC)
	pinClock(t, now)

	require.True(t, rule.Apply(devs))

	assert.True(t, offLight.On())
	assert.Equal(t, 100, offLight.Brightness())
	assert.True(t, onLight.On())
	assert.Equal(t, 100, onLight.Brightness())
	require.NotNil(t, rule.LastTriggered())
	assert.Equal(t, now, *rule.LastTriggered())
}

func TestMotionLightingRule_IgnoresDisabledCamera(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetMotion(true) // motion on a camera that is off

	light := devices.NewLight("Light", "Living Room", 4000)
	rule := NewMotionLightingRule()

	assert.False(t, rule.Apply([]devices.Device{cam, light}))
	assert.Equal(t, 0, light.Brightness())
}

func TestTemperatureControlRule(t *testing.T) {
	th := devices.NewThermostat("Thermostat", "Living Room")
	th.SetOn(true) // current 20, deviation from 22 is 2

	rule := NewTemperatureControlRule(22)
	require.True(t, rule.Apply([]devices.Device{th}))
	assert.Equal(t, 22.0, th.Target())
}

func TestTemperatureControlRule_WithinBand(t *testing.T) {
	th := devices.NewThermostat("Thermostat", "Living Room")
	th.SetOn(true)
	th.SetTarget(21)
	for th.Temperature() != 21 {
		th.AdvanceTowardTarget()
	}

	// Deviation of exactly one degree does not trip the rule
	rule := NewTemperatureControlRule(22)
	assert.False(t, rule.Apply([]devices.Device{th}))
}

func TestAutoLockRule(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetOn(true)
	cam.SetMotion(false)

	door := devices.NewDoor("Front Door", "Entrance")
	door.SetOn(true)
	door.Unlock()

	rule := NewAutoLockRule()
	require.True(t, rule.Apply([]devices.Device{cam, door}))
	assert.True(t, door.Locked())
}

func TestAutoLockRule_RequiresCamera(t *testing.T) {
	door := devices.NewDoor("Front Door", "Entrance")
	door.SetOn(true)
	door.Unlock()

	rule := NewAutoLockRule()
	assert.False(t, rule.Apply([]devices.Device{door}), "no enabled camera means no lock")
	assert.False(t, door.Locked())
}

func TestAutoLockRule_MotionBlocksLock(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetOn(true)
	cam.SetMotion(true)

	door := devices.NewDoor("Front Door", "Entrance")
	door.SetOn(true)
	door.Unlock()

	rule := NewAutoLockRule()
	assert.False(t, rule.Apply([]devices.Device{cam, door}))
	assert.False(t, door.Locked())
}

func TestEnergySavingRule(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetOn(true)
	cam.SetMotion(false)

	light := devices.NewLight("Light", "Living Room", 4000)
	light.SetBrightness(80)
	fan := devices.NewFan("Fan", "Bedroom")
	fan.SetSpeed(3)

	rule := NewEnergySavingRule()
	require.True(t, rule.Apply([]devices.Device{cam, light, fan}))

	assert.Equal(t, 0, light.Brightness())
	assert.False(t, light.On())
	assert.Equal(t, 0, fan.Speed())
	assert.False(t, fan.On())
}

func TestMorningRoutineRule(t *testing.T) {
	pinClock(t, time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC))

	light := devices.NewLight("Light", "Bedroom", 3000)
	th := devices.NewThermostat("Thermostat", "Bedroom")
	window := devices.NewWindow("Window", "Bedroom")
	devs := []devices.Device{light, th, window}

	rule := NewMorningRoutineRule(7)
	require.True(t, rule.Apply(devs))

	assert.Equal(t, 70, light.Brightness())
	assert.Equal(t, 5000, light.ColorTemp())
	assert.True(t, th.On())
	assert.Equal(t, 22.0, th.Target())
	assert.Equal(t, 30, window.BlindsPercentage())
}

func TestMorningRoutineRule_WrongHour(t *testing.T) {
	pinClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	light := devices.NewLight("Light", "Bedroom", 3000)
	rule := NewMorningRoutineRule(7)
	assert.False(t, rule.Apply([]devices.Device{light}))
	assert.Equal(t, 0, light.Brightness())
}

func TestEveningRoutineRule(t *testing.T) {
	pinClock(t, time.Date(2024, 3, 1, 19, 5, 0, 0, time.UTC))

	light := devices.NewLight("Light", "Living Room", 5000)
	th := devices.NewThermostat("Thermostat", "Living Room")
	window := devices.NewWindow("Window", "Living Room")
	devs := []devices.Device{light, th, window}

	rule := NewEveningRoutineRule(19)
	require.True(t, rule.Apply(devs))

	assert.Equal(t, 50, light.Brightness())
	assert.Equal(t, 3000, light.ColorTemp())
	assert.Equal(t, 21.0, th.Target())
	assert.Equal(t, 100, window.BlindsPercentage())
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules(22, 7, 19)
	require.Len(t, rules, 6)

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name())
		assert.True(t, r.Enabled())
	}
	assert.Equal(t, []string{
		RuleMotionLighting,
		RuleTemperatureControl,
		RuleAutoLock,
		RuleEnergySaving,
		RuleMorningRoutine,
		RuleEveningRoutine,
	}, names)
}

// Auto Lock and Energy Saving intentionally share the no-motion condition
// and fire on the same pass.
func TestAutoLockAndEnergySavingCoFire(t *testing.T) {
	cam := devices.NewCamera("Camera", "Entrance")
	cam.SetOn(true)
	cam.SetMotion(false)

	door := devices.NewDoor("Door", "Entrance")
	door.SetOn(true)
	door.Unlock()
	light := devices.NewLight("Light", "Living Room", 4000)
	light.SetBrightness(60)

	devs := []devices.Device{cam, door, light}

	assert.True(t, NewAutoLockRule().Apply(devs))
	assert.True(t, NewEnergySavingRule().Apply(devs))
	assert.True(t, door.Locked())
	assert.Equal(t, 0, light.Brightness())
}
