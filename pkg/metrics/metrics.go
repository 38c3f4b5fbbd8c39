// Package metrics records circuit builds and simulation runs as Prometheus
// metrics.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
)

const namespace = "circuitsim"

// Recorder holds the simulator metrics. The zero value is not usable; create
// one with NewRecorder.
type Recorder struct {
	registry *prometheus.Registry

	builds       *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	gateEvals    prometheus.Counter
	circuitGates prometheus.Gauge
	circuitDepth prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Circuit builds by result (ok or error kind).",
		}, []string{"result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Simulation runs by result (ok or error kind).",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of single simulation runs.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		gateEvals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_evaluations_total",
			Help:      "Gates evaluated across all successful runs.",
		}),
		circuitGates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_gates",
			Help:      "Gate count of the most recently built circuit.",
		}),
		circuitDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_depth",
			Help:      "Logic depth of the most recently built circuit.",
		}),
	}
	r.registry.MustRegister(r.builds, r.runs, r.runDuration, r.gateEvals, r.circuitGates, r.circuitDepth)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveBuild records the outcome of building v.
func (r *Recorder) ObserveBuild(v *circuit.Validated, err error) {
	r.builds.WithLabelValues(result(err)).Inc()
	if err == nil {
		r.circuitGates.Set(float64(v.NumGates()))
		r.circuitDepth.Set(float64(v.Topology().MaxLevel))
	}
}

// ObserveRun records one simulation run.
func (r *Recorder) ObserveRun(d time.Duration, err error) {
	r.runs.WithLabelValues(result(err)).Inc()
	r.runDuration.Observe(d.Seconds())
}

// ObserveGates adds n gate evaluations.
func (r *Recorder) ObserveGates(n int) {
	r.gateEvals.Add(float64(n))
}

// Run evaluates v with a and records the run.
func (r *Recorder) Run(v *circuit.Validated, a map[string]circuit.LogicValue) (circuit.Values, error) {
	start := time.Now()
	vals, err := v.Run(a)
	r.ObserveRun(time.Since(start), err)
	if err == nil {
		r.ObserveGates(v.NumGates())
	}
	return vals, err
}

// WriteTextfile dumps the metrics in the Prometheus text format, suitable for
// the node exporter textfile collector.
func (r *Recorder) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", filename)
	}
	return nil
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := circuit.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "error"
}
