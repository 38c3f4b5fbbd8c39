package circuit

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies construction, structural and evaluation failures.
type ErrorKind int

const (
	// Construction errors.
	ArityMismatch ErrorKind = iota + 1
	MultipleDrivers
	DrivenPrimaryInput
	DuplicateDeclaration
	InvalidName
	DanglingInput
	EmptyCircuit
	UnknownGateKind

	// Structural error.
	CombinationalCycle

	// Assignment errors, reported per run.
	MissingInput
	UnknownInput
	InvalidValue

	// Evaluate called with the wrong operand count.
	InvalidArity
)

var kindNames = map[ErrorKind]string{
	ArityMismatch:        "ArityMismatch",
	MultipleDrivers:      "MultipleDrivers",
	DrivenPrimaryInput:   "DrivenPrimaryInput",
	DuplicateDeclaration: "DuplicateDeclaration",
	InvalidName:          "InvalidName",
	DanglingInput:        "DanglingInput",
	EmptyCircuit:         "EmptyCircuit",
	UnknownGateKind:      "UnknownGateKind",
	CombinationalCycle:   "CombinationalCycle",
	MissingInput:         "MissingInput",
	UnknownInput:         "UnknownInput",
	InvalidValue:         "InvalidValue",
	InvalidArity:         "InvalidArity",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownError"
}

// Sentinel errors for use with errors.Is. They match any *Error of the same
// kind, whatever names it carries.
var (
	ErrArityMismatch        = &Error{Kind: ArityMismatch}
	ErrMultipleDrivers      = &Error{Kind: MultipleDrivers}
	ErrDrivenPrimaryInput   = &Error{Kind: DrivenPrimaryInput}
	ErrDuplicateDeclaration = &Error{Kind: DuplicateDeclaration}
	ErrInvalidName          = &Error{Kind: InvalidName}
	ErrDanglingInput        = &Error{Kind: DanglingInput}
	ErrEmptyCircuit         = &Error{Kind: EmptyCircuit}
	ErrUnknownGateKind      = &Error{Kind: UnknownGateKind}
	ErrCombinationalCycle   = &Error{Kind: CombinationalCycle}
	ErrMissingInput         = &Error{Kind: MissingInput}
	ErrUnknownInput         = &Error{Kind: UnknownInput}
	ErrInvalidValue         = &Error{Kind: InvalidValue}
	ErrInvalidArity         = &Error{Kind: InvalidArity}
)

// Error is a tagged circuit error. Names lists the offending nets or tokens.
type Error struct {
	Kind   ErrorKind
	Names  []string
	Detail string
}

// NewError returns an *Error of the given kind.
func NewError(kind ErrorKind, detail string, names ...string) *Error {
	return &Error{Kind: kind, Names: names, Detail: detail}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	} else if len(e.Names) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Names, ", "))
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
