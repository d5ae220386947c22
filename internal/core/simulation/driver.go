package simulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/metrics"
)

// DefaultInterval is the reference tick cadence.
const DefaultInterval = 2 * time.Second

// TickEvent describes one completed simulation tick. Listeners receive it
// after the rule pass, outside the registry lock.
type TickEvent struct {
	ID       string        `json:"id"`
	At       time.Time     `json:"at"`
	Duration time.Duration `json:"duration"`
	Sequence uint64        `json:"sequence"`
}

// Listener is a UI-refresh style callback invoked after every tick.
type Listener func(TickEvent)

// Driver advances the simulation on a fixed cadence: while the system is
// enabled it runs the rule pass, drifts thermostats toward their targets and
// counts down fan timers. It never touches listener state from inside the registry
// lock; listeners are invoked after the pass completes.
type Driver struct {
	system   *automation.System
	interval time.Duration
	logger   *logrus.Logger
	metrics  *metrics.Collector

	cron    *cron.Cron
	entryID cron.EntryID

	mu        sync.Mutex
	running   bool
	sequence  uint64
	lastTick  time.Time
	listeners []Listener
}

// NewDriver creates a driver for the given system. A non-positive interval
// falls back to DefaultInterval. The collector may be nil.
func NewDriver(system *automation.System, interval time.Duration, logger *logrus.Logger, collector *metrics.Collector) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Driver{
		system:   system,
		interval: interval,
		logger:   logger,
		metrics:  collector,
		cron: cron.New(
			cron.WithChain(
				cron.SkipIfStillRunning(cron.DiscardLogger),
				cron.Recover(cron.DefaultLogger),
			),
		),
	}
}

// OnTick registers a listener invoked after every tick.
func (d *Driver) OnTick(fn Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Start begins ticking. The context only bounds Start itself; use Stop for
// shutdown.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("simulation driver is already running")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Drop the entry left behind by a previous Start/Stop cycle so a
	// restarted driver ticks once per interval.
	if d.entryID != 0 {
		d.cron.Remove(d.entryID)
	}

	spec := fmt.Sprintf("@every %s", d.interval)
	entryID, err := d.cron.AddFunc(spec, d.tick)
	if err != nil {
		return fmt.Errorf("failed to schedule simulation tick: %w", err)
	}
	d.entryID = entryID
	d.lastTick = time.Now()
	d.cron.Start()
	d.running = true

	d.logger.WithField("interval", d.interval.String()).Info("Simulation driver started")
	return nil
}

// Stop halts the tick loop and waits for an in-flight tick to finish.
func (d *Driver) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("simulation driver is not running")
	}
	d.running = false
	d.mu.Unlock()

	ctx := d.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		d.logger.Warn("Timeout waiting for in-flight tick to complete")
	}

	d.logger.Info("Simulation driver stopped")
	return nil
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Tick runs a single simulation step immediately. Exposed so callers and
// tests can advance the simulation without waiting for the cadence.
func (d *Driver) Tick() TickEvent {
	return d.tickOnce()
}

func (d *Driver) tick() {
	d.tickOnce()
}

func (d *Driver) tickOnce() TickEvent {
	start := time.Now()

	d.mu.Lock()
	d.sequence++
	seq := d.sequence
	var elapsed time.Duration
	if !d.lastTick.IsZero() {
		elapsed = start.Sub(d.lastTick)
	}
	d.lastTick = start
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()

	event := TickEvent{
		ID:       uuid.New().String(),
		At:       start,
		Sequence: seq,
	}

	d.system.ExecuteRules()
	if d.system.Enabled() {
		d.advanceDevices(elapsed)
	}

	event.Duration = time.Since(start)
	d.metrics.ObserveTick(event.Duration)

	d.logger.WithFields(logrus.Fields{
		"tick_id":  event.ID,
		"sequence": seq,
		"duration": event.Duration.String(),
	}).Debug("Simulation tick completed")

	for _, fn := range listeners {
		fn(event)
	}
	return event
}

// advanceDevices applies autonomous per-tick state changes: thermostat drift
// and fan timer countdown.
func (d *Driver) advanceDevices(elapsed time.Duration) {
	for _, dev := range d.system.Devices() {
		switch dev := dev.(type) {
		case *devices.Thermostat:
			if dev.On() {
				dev.AdvanceTowardTarget()
			}
		case *devices.Fan:
			dev.Countdown(elapsed)
		}
	}
}
