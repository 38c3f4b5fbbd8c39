package circuit

import (
	"fmt"
	"strings"
	"unicode"
)

// LogicValue represents the possible values for a net
type LogicValue int

const (
	X    LogicValue = iota // Undefined/unassigned
	Zero                   // Logic 0
	One                    // Logic 1
)

// String returns a string representation of the logic value
func (v LogicValue) String() string {
	switch v {
	case X:
		return "undefined"
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// IsDefined returns true if the value is 0 or 1
func (v LogicValue) IsDefined() bool {
	return v == Zero || v == One
}

// Bool converts a boolean into a LogicValue
func Bool(b bool) LogicValue {
	if b {
		return One
	}
	return Zero
}

// LineType represents the declared role of a net
type LineType int

const (
	Internal LineType = iota
	PrimaryInput
	PrimaryOutput
)

func (t LineType) String() string {
	switch t {
	case Internal:
		return "internal"
	case PrimaryInput:
		return "input"
	case PrimaryOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Line represents a named net in the circuit
type Line struct {
	ID          int      // Index into per-run value storage
	Name        string   // Name of the net
	Type        LineType // Declared role
	InputGate   *Gate    // Gate driving this net (nil when undriven)
	OutputGates []*Gate  // Gates to which this net is an input
}

// NewLine creates a new Line with the given name and ID
func NewLine(id int, name string, lineType LineType) *Line {
	return &Line{
		ID:          id,
		Name:        name,
		Type:        lineType,
		OutputGates: make([]*Gate, 0),
	}
}

// String returns a string representation of the line
func (l *Line) String() string {
	return fmt.Sprintf("%s(%s)", l.Name, l.Type)
}

// IsDriven returns true if a gate drives this net
func (l *Line) IsDriven() bool {
	return l.InputGate != nil
}

// ValidName reports whether name is a usable net name: non-empty and free of
// whitespace.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	return strings.IndexFunc(name, unicode.IsSpace) < 0
}

// Registry holds the set of named nets. Nets are created the first time their
// name is referenced and keep their ID for the life of the registry.
type Registry struct {
	lines  []*Line
	byName map[string]*Line
}

// NewRegistry creates an empty net registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Line)}
}

// Lookup returns the net with the given name, or nil.
func (r *Registry) Lookup(name string) *Line {
	return r.byName[name]
}

// Intern returns the net named name, creating it as Internal if needed.
func (r *Registry) Intern(name string) *Line {
	if l, ok := r.byName[name]; ok {
		return l
	}
	l := NewLine(len(r.lines), name, Internal)
	r.lines = append(r.lines, l)
	r.byName[name] = l
	return l
}

// Lines returns the nets in creation order.
func (r *Registry) Lines() []*Line {
	return r.lines
}

// Len returns the number of registered nets.
func (r *Registry) Len() int {
	return len(r.lines)
}
