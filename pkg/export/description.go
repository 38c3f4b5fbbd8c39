// Package export turns a validated circuit into a node/edge description and
// writes it as Graphviz DOT, Mermaid or YAML.
package export

import (
	"fmt"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
)

// NodeKind tags a node of the description.
type NodeKind string

const (
	InputNode  NodeKind = "input"
	OutputNode NodeKind = "output"
	GateNode   NodeKind = "gate"
)

// Node is a primary input, a primary output or a gate.
type Node struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Kind  NodeKind `yaml:"kind"`
}

// Edge connects a net to a gate or a gate to a net. Net endpoints use the net
// name; gate endpoints use the gate node id.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Description is a renderer-independent view of a circuit.
type Description struct {
	Name  string `yaml:"name"`
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// GateNodeID returns the node id used for gate index i of type gt.
func GateNodeID(i int, gt circuit.GateType) string {
	return fmt.Sprintf("gate_%d_%s", i, gt)
}

// Describe builds the description of v. Nodes are the primary inputs, then
// the primary outputs, then one node per gate, each in declaration order.
// Each gate contributes its input edges in operand order followed by its
// output edge. A gate id that would clash with a net name gets "_" appended
// until it is unique.
func Describe(v *circuit.Validated) *Description {
	taken := make(map[string]bool, len(v.Lines()))
	for _, l := range v.Lines() {
		taken[l.Name] = true
	}
	d := &Description{
		Name:  v.Name,
		Nodes: make([]Node, 0, len(v.Inputs())+len(v.Outputs())+len(v.Gates())),
	}
	for _, in := range v.Inputs() {
		d.Nodes = append(d.Nodes, Node{ID: in.Name, Label: in.Name, Kind: InputNode})
	}
	for _, out := range v.Outputs() {
		d.Nodes = append(d.Nodes, Node{ID: out.Name, Label: out.Name, Kind: OutputNode})
	}
	for i, g := range v.Gates() {
		id := GateNodeID(i, g.Type)
		for taken[id] {
			id += "_"
		}
		taken[id] = true
		d.Nodes = append(d.Nodes, Node{ID: id, Label: g.Type.String(), Kind: GateNode})
		for _, in := range g.Inputs {
			d.Edges = append(d.Edges, Edge{From: in.Name, To: id})
		}
		d.Edges = append(d.Edges, Edge{From: id, To: g.Output.Name})
	}
	return d
}
