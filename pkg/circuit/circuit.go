package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultName is used for circuits built without an explicit name.
const DefaultName = "MyCircuit"

// Circuit is a circuit under construction. It accumulates declarations and
// gates; Finalize validates it and produces an immutable Validated circuit.
// Every method either succeeds completely or leaves the circuit unchanged.
type Circuit struct {
	Name     string
	registry *Registry
	gates    []*Gate
	inputs   []*Line
	outputs  []*Line
}

// NewCircuit creates a new circuit with the given name
func NewCircuit(name string) *Circuit {
	if name == "" {
		name = DefaultName
	}
	return &Circuit{
		Name:     name,
		registry: NewRegistry(),
		gates:    make([]*Gate, 0),
		inputs:   make([]*Line, 0),
		outputs:  make([]*Line, 0),
	}
}

// DeclareInputs marks the named nets as primary inputs. Redeclaring an input
// is a no-op.
func (c *Circuit) DeclareInputs(names ...string) error {
	for _, name := range names {
		if !ValidName(name) {
			return NewError(InvalidName, fmt.Sprintf("invalid net name %q", name), name)
		}
		l := c.registry.Lookup(name)
		if l == nil {
			continue
		}
		if l.Type == PrimaryOutput {
			return NewError(DuplicateDeclaration,
				fmt.Sprintf("net %q is already declared as a primary output", name), name)
		}
		if l.IsDriven() {
			return NewError(DrivenPrimaryInput,
				fmt.Sprintf("net %q is driven by gate %s", name, l.InputGate), name)
		}
	}
	for _, name := range names {
		l := c.registry.Intern(name)
		if l.Type != PrimaryInput {
			l.Type = PrimaryInput
			c.inputs = append(c.inputs, l)
		}
	}
	return nil
}

// DeclareOutputs marks the named nets as primary outputs. An output may be
// driven by a gate or left undriven.
func (c *Circuit) DeclareOutputs(names ...string) error {
	for _, name := range names {
		if !ValidName(name) {
			return NewError(InvalidName, fmt.Sprintf("invalid net name %q", name), name)
		}
		if l := c.registry.Lookup(name); l != nil && l.Type == PrimaryInput {
			return NewError(DuplicateDeclaration,
				fmt.Sprintf("net %q is already declared as a primary input", name), name)
		}
	}
	for _, name := range names {
		l := c.registry.Intern(name)
		if l.Type != PrimaryOutput {
			l.Type = PrimaryOutput
			c.outputs = append(c.outputs, l)
		}
	}
	return nil
}

// AddGate adds a gate of type gt driving output from the given input nets.
// Nets not seen before are registered as internal.
func (c *Circuit) AddGate(gt GateType, output string, inputs ...string) (*Gate, error) {
	if !gt.Valid() {
		return nil, NewError(UnknownGateKind, fmt.Sprintf("unknown gate type %d", int(gt)))
	}
	if !ValidName(output) {
		return nil, NewError(InvalidName, fmt.Sprintf("invalid output net name %q", output), output)
	}
	for _, in := range inputs {
		if !ValidName(in) {
			return nil, NewError(InvalidName, fmt.Sprintf("invalid input net name %q", in), in)
		}
	}
	if len(inputs) != gt.Arity() {
		return nil, NewError(ArityMismatch,
			fmt.Sprintf("%s gate requires exactly %d input(s), got %d", gt, gt.Arity(), len(inputs)),
			inputs...)
	}
	if l := c.registry.Lookup(output); l != nil {
		if l.IsDriven() {
			return nil, NewError(MultipleDrivers,
				fmt.Sprintf("net %q is already driven by gate %s", output, l.InputGate), output)
		}
		if l.Type == PrimaryInput {
			return nil, NewError(DrivenPrimaryInput,
				fmt.Sprintf("primary input %q cannot be a gate output", output), output)
		}
	}

	gate := &Gate{
		ID:     len(c.gates),
		Name:   fmt.Sprintf("g%d", len(c.gates)),
		Type:   gt,
		Inputs: make([]*Line, 0, len(inputs)),
	}
	gate.Output = c.registry.Intern(output)
	gate.Output.InputGate = gate
	for _, name := range inputs {
		l := c.registry.Intern(name)
		gate.Inputs = append(gate.Inputs, l)
		l.OutputGates = append(l.OutputGates, gate)
	}
	c.gates = append(c.gates, gate)
	return gate, nil
}

// Gates returns the gates added so far, in declaration order.
func (c *Circuit) Gates() []*Gate {
	return c.gates
}

// Registry returns the circuit's net registry.
func (c *Circuit) Registry() *Registry {
	return c.registry
}

// Finalize validates the circuit and returns an immutable snapshot of it.
// The circuit may keep being built afterwards; the snapshot is unaffected.
func (c *Circuit) Finalize() (*Validated, error) {
	if len(c.gates) == 0 {
		return nil, NewError(EmptyCircuit, "circuit has no gates")
	}

	var dangling []string
	seen := make(map[*Line]bool)
	for _, g := range c.gates {
		for _, in := range g.Inputs {
			if seen[in] {
				continue
			}
			seen[in] = true
			if in.Type != PrimaryInput && !in.IsDriven() {
				dangling = append(dangling, in.Name)
			}
		}
	}
	if len(dangling) > 0 {
		return nil, NewError(DanglingInput,
			fmt.Sprintf("nets never driven nor declared as inputs: %s", strings.Join(dangling, ", ")),
			dangling...)
	}

	v := c.snapshot()
	topo := NewTopology(v.gates, v.registry.Lines())
	if err := topo.Analyze(); err != nil {
		return nil, err
	}
	v.topology = topo
	v.order = topo.Order
	return v, nil
}

// snapshot deep-copies the circuit's nets and gates.
func (c *Circuit) snapshot() *Validated {
	v := &Validated{
		Name:     c.Name,
		registry: NewRegistry(),
		gates:    make([]*Gate, len(c.gates)),
		inputs:   make([]*Line, len(c.inputs)),
		outputs:  make([]*Line, len(c.outputs)),
	}
	for _, l := range c.registry.Lines() {
		v.registry.Intern(l.Name).Type = l.Type
	}
	lookup := func(l *Line) *Line { return v.registry.lines[l.ID] }
	for i, g := range c.gates {
		ng := &Gate{ID: g.ID, Name: g.Name, Type: g.Type, Inputs: make([]*Line, len(g.Inputs))}
		ng.Output = lookup(g.Output)
		ng.Output.InputGate = ng
		for j, in := range g.Inputs {
			nl := lookup(in)
			ng.Inputs[j] = nl
			nl.OutputGates = append(nl.OutputGates, ng)
		}
		v.gates[i] = ng
	}
	for i, l := range c.inputs {
		v.inputs[i] = lookup(l)
	}
	for i, l := range c.outputs {
		v.outputs[i] = lookup(l)
	}
	return v
}

// Validated is a structurally sound, acyclic circuit. It is immutable and may
// be evaluated by concurrent Run calls. Accessors return fresh slices; the
// Line and Gate records they point to are shared and must not be modified.
type Validated struct {
	Name     string
	registry *Registry
	gates    []*Gate
	inputs   []*Line
	outputs  []*Line
	topology *Topology
	order    []*Gate // Evaluation schedule used by Run
}

// Gates returns the gates in declaration order.
func (v *Validated) Gates() []*Gate { return slices.Clone(v.gates) }

// NumGates returns the number of gates.
func (v *Validated) NumGates() int { return len(v.gates) }

// Inputs returns the primary inputs in declaration order.
func (v *Validated) Inputs() []*Line { return slices.Clone(v.inputs) }

// Outputs returns the primary outputs in declaration order.
func (v *Validated) Outputs() []*Line { return slices.Clone(v.outputs) }

// Lines returns every net in registration order.
func (v *Validated) Lines() []*Line { return slices.Clone(v.registry.Lines()) }

// Line returns the net with the given name, or nil.
func (v *Validated) Line(name string) *Line { return v.registry.Lookup(name) }

// Topology returns a copy of the levelisation computed at Finalize time.
func (v *Validated) Topology() *Topology { return v.topology.clone() }

// InputNames returns the primary input names in declaration order.
func (v *Validated) InputNames() []string { return lineNames(v.inputs) }

// OutputNames returns the primary output names in declaration order.
func (v *Validated) OutputNames() []string { return lineNames(v.outputs) }

func lineNames(lines []*Line) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return names
}

// String returns a summary of the circuit
func (v *Validated) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", v.Name))
	builder.WriteString(fmt.Sprintf("Gates: %d\n", len(v.gates)))
	builder.WriteString(fmt.Sprintf("Inputs (%d): %s\n", len(v.inputs), strings.Join(v.InputNames(), " ")))
	builder.WriteString(fmt.Sprintf("Outputs (%d): %s", len(v.outputs), strings.Join(v.OutputNames(), " ")))

	return builder.String()
}
