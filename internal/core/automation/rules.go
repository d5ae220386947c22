package automation

import (
	"math"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
)

// Names of the reference rules.
const (
	RuleMotionLighting     = "Motion Lighting"
	RuleTemperatureControl = "Temperature Control"
	RuleAutoLock           = "Auto Lock"
	RuleEnergySaving       = "Energy Saving"
	RuleMorningRoutine     = "Morning Routine"
	RuleEveningRoutine     = "Evening Routine"
)

// noMotionOnAnyCamera holds when at least one enabled camera exists and none
// of them report motion. Shared by the Auto Lock and Energy Saving rules,
// which are meant to co-fire.
func noMotionOnAnyCamera(devs []devices.Device) bool {
	cameras := 0
	for _, d := range devs {
		cam, ok := d.(*devices.Camera)
		if !ok || !cam.On() {
			continue
		}
		cameras++
		if cam.Motion() {
			return false
		}
	}
	return cameras > 0
}

// NewMotionLightingRule turns every light on at full brightness when any
// enabled camera reports motion.
func NewMotionLightingRule() *Rule {
	condition := ConditionFunc(func(devs []devices.Device) bool {
		for _, d := range devs {
			if cam, ok := d.(*devices.Camera); ok && cam.On() && cam.Motion() {
				return true
			}
		}
		return false
	})
	action := ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			if light, ok := d.(*devices.Light); ok {
				light.SetBrightness(100)
			}
		}
	})
	return NewRule(RuleMotionLighting, condition, action)
}

// NewTemperatureControlRule steers every enabled thermostat back to the
// target whenever one drifts more than a degree away from it.
func NewTemperatureControlRule(target float64) *Rule {
	condition := ConditionFunc(func(devs []devices.Device) bool {
		for _, d := range devs {
			if th, ok := d.(*devices.Thermostat); ok && th.On() && math.Abs(th.Temperature()-target) > 1 {
				return true
			}
		}
		return false
	})
	action := ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			if th, ok := d.(*devices.Thermostat); ok && th.On() {
				th.SetTarget(target)
			}
		}
	})
	return NewRule(RuleTemperatureControl, condition, action)
}

// NewAutoLockRule locks every enabled door while no enabled camera reports
// motion.
func NewAutoLockRule() *Rule {
	action := ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			if door, ok := d.(*devices.Door); ok && door.On() {
				door.Lock()
			}
		}
	})
	return NewRule(RuleAutoLock, ConditionFunc(noMotionOnAnyCamera), action)
}

// NewEnergySavingRule zeroes light brightness and fan speed while no enabled
// camera reports motion.
func NewEnergySavingRule() *Rule {
	action := ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			switch dev := d.(type) {
			case *devices.Light:
				if dev.On() {
					dev.SetBrightness(0)
				}
			case *devices.Fan:
				if dev.On() {
					dev.SetSpeed(0)
				}
			}
		}
	})
	return NewRule(RuleEnergySaving, ConditionFunc(noMotionOnAnyCamera), action)
}

// NewMorningRoutineRule wakes the home up at the given hour: lights to 70%
// daylight, thermostats to 22° and blinds opened to 30%.
func NewMorningRoutineRule(hour int) *Rule {
	return NewRule(RuleMorningRoutine, hourCondition(hour), ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			switch dev := d.(type) {
			case *devices.Light:
				dev.SetBrightness(70)
				dev.SetColorTemp(5000)
			case *devices.Thermostat:
				dev.SetTarget(22)
			case *devices.Window:
				dev.SetBlindsPercentage(30)
			}
		}
	}))
}

// NewEveningRoutineRule winds the home down at the given hour: lights to 50%
// warm white, thermostats to 21° and blinds fully closed.
func NewEveningRoutineRule(hour int) *Rule {
	return NewRule(RuleEveningRoutine, hourCondition(hour), ActionFunc(func(devs []devices.Device) {
		for _, d := range devs {
			switch dev := d.(type) {
			case *devices.Light:
				dev.SetBrightness(50)
				dev.SetColorTemp(3000)
			case *devices.Thermostat:
				dev.SetTarget(21)
			case *devices.Window:
				dev.SetBlindsPercentage(100)
			}
		}
	}))
}

// hourCondition holds during the named wall-clock hour.
func hourCondition(hour int) ConditionFunc {
	return func([]devices.Device) bool {
		return timeNow().Hour() == hour
	}
}

// DefaultRules builds the six reference rules in their evaluation order.
func DefaultRules(targetTemp float64, morningHour, eveningHour int) []*Rule {
	return []*Rule{
		NewMotionLightingRule(),
		NewTemperatureControlRule(targetTemp),
		NewAutoLockRule(),
		NewEnergySavingRule(),
		NewMorningRoutineRule(morningHour),
		NewEveningRoutineRule(eveningHour),
	}
}
