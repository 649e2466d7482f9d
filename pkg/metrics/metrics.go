// pkg/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records simulation timings and counters on its own registry.
type Collector struct {
	registry         *prometheus.Registry
	tickDuration     prometheus.Histogram
	forecastDuration prometheus.Histogram
	ticksTotal       prometheus.Counter
	skippedPoints    prometheus.Counter
	zoom             prometheus.Gauge
	probeSpeed       prometheus.Gauge
}

// NewCollector creates and registers the simulation metrics
func NewCollector() *Collector {
	buckets := prometheus.ExponentialBuckets(0.0001, 2, 12)
	m := &Collector{
		registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orbiter",
			Name:      "tick_duration_seconds",
			Help:      "Time spent on one full simulation tick",
			Buckets:   buckets,
		}),
		forecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orbiter",
			Name:      "forecast_duration_seconds",
			Help:      "Time spent predicting the probe trajectory",
			Buckets:   buckets,
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbiter",
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks",
		}),
		skippedPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbiter",
			Name:      "skipped_points_total",
			Help:      "Points not drawn because their coordinates were not finite",
		}),
		zoom: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orbiter",
			Name:      "camera_zoom",
			Help:      "Current camera zoom",
		}),
		probeSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orbiter",
			Name:      "probe_speed",
			Help:      "Probe speed in world units per tick",
		}),
	}

	m.registry.MustRegister(
		m.tickDuration,
		m.forecastDuration,
		m.ticksTotal,
		m.skippedPoints,
		m.zoom,
		m.probeSpeed,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Collector) RecordTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
	m.ticksTotal.Inc()
}

func (m *Collector) RecordForecast(d time.Duration) {
	m.forecastDuration.Observe(d.Seconds())
}

func (m *Collector) AddSkippedPoints(n int) {
	if n > 0 {
		m.skippedPoints.Add(float64(n))
	}
}

func (m *Collector) SetZoom(z float64) {
	m.zoom.Set(z)
}

func (m *Collector) SetProbeSpeed(s float64) {
	m.probeSpeed.Set(s)
}

// Summary is a snapshot of the collected values for logging at exit.
type Summary struct {
	Ticks         uint64
	SkippedPoints uint64
	MeanTick      time.Duration
	MeanForecast  time.Duration
	Zoom          float64
	ProbeSpeed    float64
}

// Summarize gathers the registry into a Summary.
func (m *Collector) Summarize() (Summary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, f := range families {
		if len(f.GetMetric()) == 0 {
			continue
		}
		metric := f.GetMetric()[0]
		switch f.GetName() {
		case "orbiter_ticks_total":
			s.Ticks = uint64(metric.GetCounter().GetValue())
		case "orbiter_skipped_points_total":
			s.SkippedPoints = uint64(metric.GetCounter().GetValue())
		case "orbiter_tick_duration_seconds":
			s.MeanTick = mean(metric.GetHistogram().GetSampleSum(), metric.GetHistogram().GetSampleCount())
		case "orbiter_forecast_duration_seconds":
			s.MeanForecast = mean(metric.GetHistogram().GetSampleSum(), metric.GetHistogram().GetSampleCount())
		case "orbiter_camera_zoom":
			s.Zoom = metric.GetGauge().GetValue()
		case "orbiter_probe_speed":
			s.ProbeSpeed = metric.GetGauge().GetValue()
		}
	}
	return s, nil
}

func mean(sum float64, count uint64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(sum / float64(count) * float64(time.Second))
}
