package automation

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/metrics"
	"github.com/2001J/Smart-Home-IoT-Simulator/pkg/errors"
)

// System owns the device registry and the rule list. Devices and rules keep
// their insertion order; insertion order is evaluation order. The system
// lock covers a full rule-evaluation pass, so rules never interleave with
// registry changes, and later rules observe mutations made by earlier rules
// in the same pass.
type System struct {
	mu            sync.Mutex
	devices       []devices.Device
	rules         []*Rule
	enabled       bool
	lastExecution time.Time

	logger  *logrus.Logger
	metrics *metrics.Collector
}

// NewSystem creates an enabled automation system. The collector may be nil.
func NewSystem(logger *logrus.Logger, collector *metrics.Collector) *System {
	if logger == nil {
		logger = logrus.New()
	}
	return &System{
		enabled: true,
		logger:  logger,
		metrics: collector,
	}
}

// AddDevice registers a device. Device ids are unique across the registry.
func (s *System) AddDevice(dev devices.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.devices {
		if d.ID() == dev.ID() {
			return errors.ErrDuplicateDevice
		}
	}
	s.devices = append(s.devices, dev)
	s.metrics.SetRegistrySize(len(s.devices))

	s.logger.WithFields(logrus.Fields{
		"device_id": dev.ID(),
		"type":      dev.Type(),
		"room":      dev.Room(),
	}).Debug("Device registered")
	return nil
}

// RemoveDevice drops a device by id.
func (s *System) RemoveDevice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.devices {
		if d.ID() == id {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			s.metrics.SetRegistrySize(len(s.devices))
			s.logger.WithField("device_id", id).Debug("Device removed")
			return nil
		}
	}
	return errors.ErrDeviceNotFound
}

// AddRule appends a rule to the evaluation order. Rule names are unique.
func (s *System) AddRule(rule *Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.Name() == rule.Name() {
			return errors.ErrDuplicateRule
		}
	}
	s.rules = append(s.rules, rule)
	s.logger.WithField("rule", rule.Name()).Debug("Automation rule added")
	return nil
}

// RemoveRule drops a rule by name.
func (s *System) RemoveRule(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rules {
		if r.Name() == name {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			s.logger.WithField("rule", name).Debug("Automation rule removed")
			return nil
		}
	}
	return errors.ErrRuleNotFound
}

// Toggle flips the global enabled flag and returns the new value.
func (s *System) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	s.logger.WithField("enabled", s.enabled).Info("Automation system toggled")
	return s.enabled
}

func (s *System) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// LastExecution reports when the last rule pass ran. Zero if none has.
func (s *System) LastExecution() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastExecution
}

// ExecuteRules runs one full evaluation pass: every rule in insertion order,
// regardless of whether earlier rules fired. A disabled system does nothing
// and leaves LastExecution untouched.
func (s *System) ExecuteRules() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	s.lastExecution = timeNow()
	s.metrics.RulePass()

	for _, rule := range s.rules {
		if rule.Apply(s.devices) {
			s.metrics.RuleFired(rule.Name())
			s.logger.WithFields(logrus.Fields{
				"rule":      rule.Name(),
				"run_count": rule.RunCount(),
			}).Info("Automation rule fired")
		}
	}

	on := 0
	for _, d := range s.devices {
		if d.On() {
			on++
		}
	}
	s.metrics.SetDevicesOn(on)
}

// GetDeviceByID returns the first device with the given id.
func (s *System) GetDeviceByID(id string) (devices.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.devices {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, errors.ErrDeviceNotFound
}

// GetDevicesByType returns devices of one kind, registry order preserved.
func (s *System) GetDevicesByType(t devices.Type) []devices.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []devices.Device
	for _, d := range s.devices {
		if d.Type() == t {
			out = append(out, d)
		}
	}
	return out
}

// GetDevicesByRoom returns devices in one room, registry order preserved.
func (s *System) GetDevicesByRoom(room string) []devices.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []devices.Device
	for _, d := range s.devices {
		if d.Room() == room {
			out = append(out, d)
		}
	}
	return out
}

// GetRule returns a rule by name.
func (s *System) GetRule(name string) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.Name() == name {
			return r, nil
		}
	}
	return nil, errors.ErrRuleNotFound
}

// Devices returns a snapshot of the registry in insertion order.
func (s *System) Devices() []devices.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]devices.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// Rules returns a snapshot of the rule list in evaluation order.
func (s *System) Rules() []*Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rooms returns the distinct rooms in first-seen order.
func (s *System) Rooms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var rooms []string
	for _, d := range s.devices {
		if !seen[d.Room()] {
			seen[d.Room()] = true
			rooms = append(rooms, d.Room())
		}
	}
	return rooms
}
