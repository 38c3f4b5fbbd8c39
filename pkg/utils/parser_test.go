package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

const halfAdder = `# half adder
CIRCUIT half_adder
INPUT A B
OUTPUT S C
xor S A B
AND C A B
END
AND ignored A B
`

func TestParseCommandNetlist(t *testing.T) {
	v, err := utils.ParseNetlist(strings.NewReader(halfAdder), utils.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "half_adder", v.Name)
	assert.Equal(t, []string{"A", "B"}, v.InputNames())
	assert.Equal(t, []string{"S", "C"}, v.OutputNames())
	require.Len(t, v.Gates(), 2, "lines after END are ignored")
	assert.Equal(t, circuit.XOR, v.Gates()[0].Type)

	vals, err := v.Run(map[string]circuit.LogicValue{"A": circuit.One, "B": circuit.One})
	require.NoError(t, err)
	assert.Equal(t, circuit.Zero, vals["S"])
	assert.Equal(t, circuit.One, vals["C"])
}

func TestParseBenchFile(t *testing.T) {
	benchFile := filepath.Join(t.TempDir(), "test_circuit.bench")
	benchContent := `# Simple test circuit
INPUT(a)
INPUT(b)
OUTPUT(f)
d = AND(a, b)
e = INV(b)
f = OR(d, e)
`
	require.NoError(t, os.WriteFile(benchFile, []byte(benchContent), 0644))

	v, err := utils.ParseNetlistFile(benchFile, utils.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "test_circuit", v.Name)
	assert.Len(t, v.Gates(), 3)
	assert.Len(t, v.Lines(), 5)
	assert.Equal(t, circuit.NOT, v.Line("e").InputGate.Type)
	assert.Equal(t, []string{"d", "e"}, v.Line("f").InputGate.InputNames())
}

func TestParseNetlistErrors(t *testing.T) {
	tests := []struct {
		name    string
		netlist string
		kind    circuit.ErrorKind
		line    string
	}{
		{"unknown kind", "INPUT a\nOUTPUT y\nBUF y a\n", circuit.UnknownGateKind, "line 3"},
		{"arity", "INPUT a b\nOUTPUT y\nNOT y a b\n", circuit.ArityMismatch, "line 3"},
		{"missing output", "INPUT a\nAND\n", circuit.InvalidName, "line 2"},
		{"multiple drivers", "INPUT a\nOUTPUT y\nNOT y a\nNOT y a\n", circuit.MultipleDrivers, "line 4"},
		{"driven input", "INPUT a b\nAND a a b\n", circuit.DrivenPrimaryInput, "line 2"},
		{"dangling", "INPUT a\nOUTPUT y\nAND y a typo\n", circuit.DanglingInput, "circuit"},
		{"empty", "INPUT a\nOUTPUT y\n", circuit.EmptyCircuit, "circuit"},
		{"cycle", "INPUT a\nOUTPUT y\nAND y a z\nNOT z y\n", circuit.CombinationalCycle, "circuit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utils.ParseNetlist(strings.NewReader(tt.netlist), utils.ParseOptions{Format: utils.FormatCommands})
			require.Error(t, err)
			assert.Equal(t, tt.kind, circuit.KindOf(err))
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestParseNetlistLenient(t *testing.T) {
	netlist := "INPUT A B\nOUTPUT Z\nAND Z A\nFOO Z A B\nAND Z A B\nOR Z A B\n"
	v, err := utils.ParseNetlist(strings.NewReader(netlist), utils.ParseOptions{Lenient: true})
	require.NoError(t, err)
	require.Len(t, v.Gates(), 1)
	assert.Equal(t, circuit.AND, v.Gates()[0].Type)
	assert.Equal(t, circuit.DefaultName, v.Name)
}

func TestParseBenchRejectsGarbage(t *testing.T) {
	_, err := utils.ParseNetlist(strings.NewReader("INPUT(a)\nthis is not bench\n"), utils.ParseOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]utils.Format{"": utils.FormatAuto, "bench": utils.FormatBench, "commands": utils.FormatCommands} {
		got, err := utils.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := utils.ParseFormat("verilog")
	assert.Error(t, err)
}

func TestParseAssignment(t *testing.T) {
	inputs := []string{"a", "b", "c"}

	got, err := utils.ParseAssignment("1 0 1", inputs)
	require.NoError(t, err)
	assert.Equal(t, map[string]circuit.LogicValue{"a": circuit.One, "b": circuit.Zero, "c": circuit.One}, got)

	got, err = utils.ParseAssignment("c=0, a=1 b=1", inputs)
	require.NoError(t, err)
	assert.Equal(t, map[string]circuit.LogicValue{"a": circuit.One, "b": circuit.One, "c": circuit.Zero}, got)

	tests := []struct {
		line  string
		kind  circuit.ErrorKind
		names []string
	}{
		{"1 0", circuit.MissingInput, []string{"c"}},
		{"1 0 1 1", circuit.UnknownInput, []string{"1"}},
		{"1 2 0", circuit.InvalidValue, []string{"b"}},
		{"a=1 a=0", circuit.DuplicateDeclaration, []string{"a"}},
		{"a=x", circuit.InvalidValue, []string{"a"}},
	}
	for _, tt := range tests {
		_, err := utils.ParseAssignment(tt.line, inputs)
		var cerr *circuit.Error
		require.True(t, errors.As(err, &cerr), tt.line)
		assert.Equal(t, tt.kind, cerr.Kind, tt.line)
		assert.Equal(t, tt.names, cerr.Names, tt.line)
	}
}
