package circuit

import (
	"fmt"
	"sort"
	"strings"
)

// Values maps every net name to its value after a run.
type Values map[string]LogicValue

// Names returns the net names in lexical order.
func (vs Values) Names() []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run evaluates the circuit for one assignment of primary input values and
// returns the value of every net. Each call uses its own value storage, so
// Run is safe for concurrent use. An undriven primary output is reported as X.
func (v *Validated) Run(assignment map[string]LogicValue) (Values, error) {
	if err := v.checkAssignment(assignment); err != nil {
		return nil, err
	}

	values := make([]LogicValue, v.registry.Len())
	for _, in := range v.inputs {
		values[in.ID] = assignment[in.Name]
	}

	operands := make([]LogicValue, 0, 2)
	for _, g := range v.order {
		operands = operands[:0]
		for _, in := range g.Inputs {
			val := values[in.ID]
			if !val.IsDefined() {
				panic(fmt.Sprintf("circuit: gate %s scheduled before input %s was resolved", g, in.Name))
			}
			operands = append(operands, val)
		}
		values[g.Output.ID] = eval(g.Type, operands)
	}

	result := make(Values, len(values))
	for _, l := range v.registry.Lines() {
		result[l.Name] = values[l.ID]
	}
	return result, nil
}

func (v *Validated) checkAssignment(assignment map[string]LogicValue) error {
	var unknown, invalid, missing []string
	for name, val := range assignment {
		l := v.registry.Lookup(name)
		if l == nil || l.Type != PrimaryInput {
			unknown = append(unknown, name)
			continue
		}
		if !val.IsDefined() {
			invalid = append(invalid, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return NewError(UnknownInput,
			fmt.Sprintf("not declared as primary inputs: %s", strings.Join(unknown, ", ")), unknown...)
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return NewError(InvalidValue,
			fmt.Sprintf("values must be 0 or 1 for: %s", strings.Join(invalid, ", ")), invalid...)
	}
	for _, in := range v.inputs {
		if _, ok := assignment[in.Name]; !ok {
			missing = append(missing, in.Name)
		}
	}
	if len(missing) > 0 {
		return NewError(MissingInput,
			fmt.Sprintf("no value for primary inputs: %s", strings.Join(missing, ", ")), missing...)
	}
	return nil
}

// OutputValues returns the primary output values of a run, in declaration
// order.
func (v *Validated) OutputValues(vs Values) []LogicValue {
	out := make([]LogicValue, len(v.outputs))
	for i, l := range v.outputs {
		out[i] = vs[l.Name]
	}
	return out
}
