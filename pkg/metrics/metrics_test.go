package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/metrics"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

func TestRecorderRuns(t *testing.T) {
	v, err := utils.ParseNetlist(strings.NewReader("INPUT a b\nOUTPUT y\nAND t a b\nNOT y t\n"), utils.ParseOptions{})
	require.NoError(t, err)

	rec := metrics.NewRecorder()
	rec.ObserveBuild(v, nil)

	_, err = rec.Run(v, map[string]circuit.LogicValue{"a": circuit.One, "b": circuit.One})
	require.NoError(t, err)
	_, err = rec.Run(v, map[string]circuit.LogicValue{"a": circuit.One})
	require.Error(t, err)

	expected := `
# HELP circuitsim_runs_total Simulation runs by result (ok or error kind).
# TYPE circuitsim_runs_total counter
circuitsim_runs_total{result="MissingInput"} 1
circuitsim_runs_total{result="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "circuitsim_runs_total"))

	expected = `
# HELP circuitsim_circuit_depth Logic depth of the most recently built circuit.
# TYPE circuitsim_circuit_depth gauge
circuitsim_circuit_depth 2
# HELP circuitsim_gate_evaluations_total Gates evaluated across all successful runs.
# TYPE circuitsim_gate_evaluations_total counter
circuitsim_gate_evaluations_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
		"circuitsim_gate_evaluations_total", "circuitsim_circuit_depth"))
}

func TestRecorderBuildErrors(t *testing.T) {
	_, err := utils.ParseNetlist(strings.NewReader("INPUT a\nOUTPUT y\nAND y a b\n"), utils.ParseOptions{})
	require.Error(t, err)

	rec := metrics.NewRecorder()
	rec.ObserveBuild(nil, err)
	expected := `
# HELP circuitsim_builds_total Circuit builds by result (ok or error kind).
# TYPE circuitsim_builds_total counter
circuitsim_builds_total{result="DanglingInput"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "circuitsim_builds_total"))
}

func TestWriteTextfile(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.ObserveGates(3)
	path := filepath.Join(t.TempDir(), "circuitsim.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "circuitsim_gate_evaluations_total 3")
}
