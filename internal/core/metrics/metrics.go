package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the simulator's Prometheus instruments. A nil Collector is
// valid and records nothing, so callers never need to guard.
type Collector struct {
	registry     *prometheus.Registry
	ruleFirings  *prometheus.CounterVec
	rulePasses   prometheus.Counter
	tickDuration prometheus.Histogram
	devicesOn    prometheus.Gauge
	registrySize prometheus.Gauge
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ruleFirings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smarthome",
			Name:      "rule_firings_total",
			Help:      "Number of times each automation rule fired.",
		}, []string{"rule"}),
		rulePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smarthome",
			Name:      "rule_passes_total",
			Help:      "Number of full rule evaluation passes.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smarthome",
			Name:      "tick_duration_seconds",
			Help:      "Duration of simulation ticks.",
			Buckets:   prometheus.DefBuckets,
		}),
		devicesOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smarthome",
			Name:      "devices_on",
			Help:      "Number of devices currently on.",
		}),
		registrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smarthome",
			Name:      "devices_registered",
			Help:      "Number of devices in the registry.",
		}),
	}
	c.registry.MustRegister(c.ruleFirings, c.rulePasses, c.tickDuration, c.devicesOn, c.registrySize)
	return c
}

// Registry exposes the underlying registry for HTTP exposition.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) RuleFired(rule string) {
	if c == nil {
		return
	}
	c.ruleFirings.WithLabelValues(rule).Inc()
}

func (c *Collector) RulePass() {
	if c == nil {
		return
	}
	c.rulePasses.Inc()
}

func (c *Collector) ObserveTick(d time.Duration) {
	if c == nil {
		return
	}
	c.tickDuration.Observe(d.Seconds())
}

func (c *Collector) SetDevicesOn(n int) {
	if c == nil {
		return
	}
	c.devicesOn.Set(float64(n))
}

func (c *Collector) SetRegistrySize(n int) {
	if c == nil {
		return
	}
	c.registrySize.Set(float64(n))
}
