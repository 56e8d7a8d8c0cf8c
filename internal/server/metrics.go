package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// Collector bundles the Prometheus metrics for the API surface and the
// scene gauges it reports on.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec

	SceneArrays   prometheus.Gauge
	SceneElements prometheus.Gauge
}

// NewCollector registers the API metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil. Re-registration
// reuses the existing collectors, so repeated construction in one process
// is safe.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "beamsim_requests_total",
		Help: "Total number of handled API requests, labeled by method, route, and status code.",
	}, []string{"method", "route", "code"})
	requests, err := registerCounterVec(reg, requests)
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "beamsim_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})
	durations, err = registerHistogramVec(reg, durations)
	if err != nil {
		return nil, err
	}

	arrays, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "beamsim_scene_arrays",
		Help: "Current number of arrays in the scene.",
	}))
	if err != nil {
		return nil, err
	}
	elements, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "beamsim_scene_elements",
		Help: "Current number of enabled elements across the scene.",
	}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Requests:      requests,
		Durations:     durations,
		SceneArrays:   arrays,
		SceneElements: elements,
	}, nil
}

// ObserveScene refreshes the scene gauges from a snapshot.
func (c *Collector) ObserveScene(snap scene.Snapshot) {
	if c == nil {
		return
	}
	elements := 0
	for _, as := range snap.Arrays {
		elements += len(as.Elements)
	}
	c.SceneArrays.Set(float64(len(snap.Arrays)))
	c.SceneElements.Set(float64(elements))
}

// Handler exposes the collector's gatherer in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if asAlreadyRegistered(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return cv, nil
}

func registerHistogramVec(reg prometheus.Registerer, hv *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(hv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if asAlreadyRegistered(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return hv, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if asAlreadyRegistered(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return g, nil
}

func asAlreadyRegistered(err error, target *prometheus.AlreadyRegisteredError) bool {
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return false
	}
	*target = are
	return true
}
