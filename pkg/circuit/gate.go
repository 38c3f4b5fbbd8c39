package circuit

import (
	"fmt"
	"strings"
)

// GateType represents the type of logic gate
type GateType int

const (
	AND GateType = iota
	OR
	NOT
	NAND
	NOR
	XOR
	XNOR
)

// GateTypes lists every supported gate kind in catalog order.
var GateTypes = []GateType{AND, OR, NOT, NAND, NOR, XOR, XNOR}

// String returns a string representation of the gate type
func (gt GateType) String() string {
	switch gt {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case NAND:
		return "NAND"
	case NOR:
		return "NOR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true if gt is one of the supported gate kinds.
func (gt GateType) Valid() bool {
	return gt >= AND && gt <= XNOR
}

// Arity returns the number of inputs required by the gate type, or -1 for an
// unknown kind.
func (gt GateType) Arity() int {
	switch gt {
	case NOT:
		return 1
	case AND, OR, NAND, NOR, XOR, XNOR:
		return 2
	default:
		return -1
	}
}

// ParseGateType converts a gate keyword to a GateType. Matching is
// case-insensitive; INV is accepted as an alias of NOT.
func ParseGateType(s string) (GateType, error) {
	switch strings.ToUpper(s) {
	case "AND":
		return AND, nil
	case "OR":
		return OR, nil
	case "NOT", "INV":
		return NOT, nil
	case "NAND":
		return NAND, nil
	case "NOR":
		return NOR, nil
	case "XOR":
		return XOR, nil
	case "XNOR":
		return XNOR, nil
	default:
		return 0, NewError(UnknownGateKind, fmt.Sprintf("unknown gate type %q", s), s)
	}
}

// Evaluate computes the output of a gate of type gt over operands. Operands
// must be defined values and their count must match the gate arity.
func Evaluate(gt GateType, operands ...LogicValue) (LogicValue, error) {
	if !gt.Valid() {
		return X, NewError(UnknownGateKind, fmt.Sprintf("unknown gate type %d", int(gt)))
	}
	if len(operands) != gt.Arity() {
		return X, NewError(InvalidArity,
			fmt.Sprintf("%s gate requires exactly %d input(s), got %d", gt, gt.Arity(), len(operands)))
	}
	for _, v := range operands {
		if !v.IsDefined() {
			return X, NewError(InvalidValue, fmt.Sprintf("operand value %s is not 0 or 1", v))
		}
	}
	return eval(gt, operands), nil
}

// eval assumes the operands were checked by the caller.
func eval(gt GateType, in []LogicValue) LogicValue {
	switch gt {
	case NOT:
		return Bool(in[0] == Zero)
	case AND:
		return Bool(in[0] == One && in[1] == One)
	case OR:
		return Bool(in[0] == One || in[1] == One)
	case NAND:
		return Bool(!(in[0] == One && in[1] == One))
	case NOR:
		return Bool(!(in[0] == One || in[1] == One))
	case XOR:
		return Bool(in[0] != in[1])
	case XNOR:
		return Bool(in[0] == in[1])
	}
	panic(fmt.Sprintf("circuit: eval called with invalid gate type %d", int(gt)))
}

// Gate represents a logic gate in the circuit. Gates are immutable once added.
type Gate struct {
	ID     int      // Declaration index
	Name   string   // Name of the gate
	Type   GateType // Type of the gate
	Inputs []*Line  // Input nets, in operand order
	Output *Line    // Output net
}

// String returns a string representation of the gate
func (g *Gate) String() string {
	return fmt.Sprintf("%s(%s)", g.Name, g.Type.String())
}

// InputNames returns the names of the gate's input nets in operand order.
func (g *Gate) InputNames() []string {
	names := make([]string, len(g.Inputs))
	for i, in := range g.Inputs {
		names[i] = in.Name
	}
	return names
}
