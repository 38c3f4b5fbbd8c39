package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/export"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

func halfAdder(t *testing.T) *circuit.Validated {
	t.Helper()
	netlist := "CIRCUIT ha\nINPUT A B\nOUTPUT S C\nXOR S A B\nAND C A B\n"
	v, err := utils.ParseNetlist(strings.NewReader(netlist), utils.ParseOptions{})
	require.NoError(t, err)
	return v
}

func TestDescribeOrdering(t *testing.T) {
	d := export.Describe(halfAdder(t))

	assert.Equal(t, "ha", d.Name)
	assert.Equal(t, []export.Node{
		{ID: "A", Label: "A", Kind: export.InputNode},
		{ID: "B", Label: "B", Kind: export.InputNode},
		{ID: "S", Label: "S", Kind: export.OutputNode},
		{ID: "C", Label: "C", Kind: export.OutputNode},
		{ID: "gate_0_XOR", Label: "XOR", Kind: export.GateNode},
		{ID: "gate_1_AND", Label: "AND", Kind: export.GateNode},
	}, d.Nodes)
	assert.Equal(t, []export.Edge{
		{From: "A", To: "gate_0_XOR"},
		{From: "B", To: "gate_0_XOR"},
		{From: "gate_0_XOR", To: "S"},
		{From: "A", To: "gate_1_AND"},
		{From: "B", To: "gate_1_AND"},
		{From: "gate_1_AND", To: "C"},
	}, d.Edges)

	// Deterministic across calls.
	assert.Equal(t, d, export.Describe(halfAdder(t)))
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteDOT(&buf, export.Describe(halfAdder(t))))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph ha {\n    rankdir=LR;\n"))
	assert.Contains(t, out, `A [color=lightgreen, label="A\nIN"];`)
	assert.Contains(t, out, `S [color=lightcoral, label="S\nOUT"];`)
	assert.Contains(t, out, `gate_0_XOR [label="XOR", color=lightyellow];`)
	assert.Contains(t, out, "    gate_1_AND -> C;\n")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestWriteDOTQuotesOddNames(t *testing.T) {
	d := &export.Description{
		Name:  "my circuit",
		Nodes: []export.Node{{ID: "n.1", Label: "n.1", Kind: export.InputNode}},
		Edges: []export.Edge{{From: "n.1", To: "gate_0_NOT"}},
	}
	var buf bytes.Buffer
	require.NoError(t, export.WriteDOT(&buf, d))
	assert.Contains(t, buf.String(), `digraph "my circuit" {`)
	assert.Contains(t, buf.String(), `"n.1" -> gate_0_NOT;`)
}

func TestWriteMermaid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteMermaid(&buf, export.Describe(halfAdder(t))))
	out := buf.String()

	assert.Equal(t, `graph LR
    n0[/"A"/]
    n1[/"B"/]
    n2(["S"])
    n3(["C"])
    n4["XOR"]
    n5["AND"]
    n0 --> n4
    n1 --> n4
    n4 --> n2
    n0 --> n5
    n1 --> n5
    n5 --> n3
`, out)
}

func TestWriteMermaidDistinctNodes(t *testing.T) {
	netlist := "INPUT a.b a_b\nOUTPUT end\nXOR t a.b a_b\nNOT end t\n"
	v, err := utils.ParseNetlist(strings.NewReader(netlist), utils.ParseOptions{Name: "m"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteMermaid(&buf, export.Describe(v)))
	out := buf.String()

	assert.Contains(t, out, `n0[/"a.b"/]`)
	assert.Contains(t, out, `n1[/"a_b"/]`)
	assert.Contains(t, out, `n2(["end"])`)
	assert.Contains(t, out, `n5("t")`)
	assert.Contains(t, out, "    n0 --> n3\n    n1 --> n3\n    n3 --> n5\n")
	assert.Contains(t, out, "    n4 --> n2\n")
	assert.NotContains(t, out, " end\n")
}

func TestWriteDOTQuotesKeywords(t *testing.T) {
	netlist := "INPUT node b\nOUTPUT Edge\nAND Edge node b\n"
	v, err := utils.ParseNetlist(strings.NewReader(netlist), utils.ParseOptions{Name: "graph"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteDOT(&buf, export.Describe(v)))
	out := buf.String()

	assert.Contains(t, out, `digraph "graph" {`)
	assert.Contains(t, out, `    "node" [color=lightgreen, label="node\nIN"];`)
	assert.Contains(t, out, `    "Edge" [color=lightcoral, label="Edge\nOUT"];`)
	assert.Contains(t, out, "    \"node\" -> gate_0_AND;\n")
	assert.Contains(t, out, "    gate_0_AND -> \"Edge\";\n")
}

func TestDescribeGateIDAvoidsNetNames(t *testing.T) {
	netlist := "INPUT gate_0_NOT\nOUTPUT y\nNOT y gate_0_NOT\n"
	v, err := utils.ParseNetlist(strings.NewReader(netlist), utils.ParseOptions{Name: "c"})
	require.NoError(t, err)

	d := export.Describe(v)
	require.Len(t, d.Nodes, 3)
	assert.Equal(t, "gate_0_NOT_", d.Nodes[2].ID)
	assert.Equal(t, []export.Edge{
		{From: "gate_0_NOT", To: "gate_0_NOT_"},
		{From: "gate_0_NOT_", To: "y"},
	}, d.Edges)
}

func TestYAMLRoundTrip(t *testing.T) {
	d := export.Describe(halfAdder(t))
	var buf bytes.Buffer
	require.NoError(t, export.WriteYAML(&buf, d))
	assert.Contains(t, buf.String(), "kind: gate")

	back, err := export.ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := export.WriteFile(dir, halfAdder(t), export.FormatMermaid)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ha.mmd"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graph LR")
}

func TestWriteFileStaysInDir(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"../../escape", "escape.dot"},
		{"/abs/path", "path.dot"},
		{"..", circuit.DefaultName + ".dot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := utils.ParseNetlist(strings.NewReader("INPUT a\nOUTPUT y\nNOT y a\n"),
				utils.ParseOptions{Name: tt.name})
			require.NoError(t, err)

			dir := t.TempDir()
			path, err := export.WriteFile(dir, v, export.FormatDOT)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), path)
			assert.FileExists(t, path)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, export.FormatDOT, f)

	f, err = export.ParseFormat("Mermaid")
	require.NoError(t, err)
	assert.Equal(t, export.FormatMermaid, f)

	_, err = export.ParseFormat("png")
	assert.Error(t, err)
}

func TestRenderMissingBinary(t *testing.T) {
	_, err := export.Render(context.Background(), "definitely-not-graphviz-binary", "x.dot")
	assert.True(t, errors.Is(err, export.ErrRendererNotFound))
}
