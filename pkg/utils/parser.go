package utils

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
)

// Format selects the netlist syntax.
type Format int

const (
	FormatAuto     Format = iota // Detect from the first significant line
	FormatCommands               // KIND OUTPUT INPUT... and INPUT/OUTPUT declarations
	FormatBench                  // ISCAS BENCH: INPUT(a), f = AND(a, b)
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatCommands:
		return "commands"
	case FormatBench:
		return "bench"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "commands", "cmd":
		return FormatCommands, nil
	case "bench":
		return FormatBench, nil
	default:
		return FormatAuto, errors.Errorf("unknown netlist format %q", s)
	}
}

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\(\s*([^\s()]+)\s*\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\(\s*([^\s()]+)\s*\)$`)
	gateRegex   = regexp.MustCompile(`^([^\s=()]+)\s*=\s*(\w+)\((.*)\)$`)
)

// ParseOptions controls netlist parsing.
type ParseOptions struct {
	Format Format
	// Name is the circuit name. A CIRCUIT command overrides it.
	Name string
	// Lenient skips rejected definitions with a warning instead of failing,
	// the way an interactive session lets the user retry.
	Lenient bool
	Logger  *Logger
}

// ParseNetlistFile reads a netlist file. The circuit name defaults to the
// file name without its extension.
func ParseNetlistFile(filename string, opts ParseOptions) (*circuit.Validated, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open netlist")
	}
	defer file.Close()

	if opts.Name == "" {
		base := filepath.Base(filename)
		opts.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	v, err := ParseNetlist(file, opts)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return v, nil
}

// ParseNetlist reads a netlist and returns the validated circuit.
func ParseNetlist(r io.Reader, opts ParseOptions) (*circuit.Validated, error) {
	log := opts.Logger
	if log == nil {
		log = NewNopLogger()
	}

	type sourceLine struct {
		num  int
		text string
	}
	var lines []sourceLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}
		lines = append(lines, sourceLine{n, text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading netlist")
	}

	format := opts.Format
	if format == FormatAuto {
		format = FormatCommands
		if len(lines) > 0 && strings.ContainsRune(lines[0].text, '(') {
			format = FormatBench
		}
	}
	log.Parser("parsing netlist", "format", format, "lines", len(lines))

	c := circuit.NewCircuit(opts.Name)
	parse := parseCommandLine
	if format == FormatBench {
		parse = parseBenchLine
	}

	for _, l := range lines {
		done, err := parse(c, l.text)
		if err != nil {
			err = errors.Wrapf(err, "line %d", l.num)
			if !opts.Lenient {
				return nil, err
			}
			log.Warning("definition rejected", "error", err)
			continue
		}
		log.Parser("accepted", "line", l.num, "text", l.text)
		if done {
			break
		}
	}

	v, err := c.Finalize()
	if err != nil {
		return nil, errors.Wrapf(err, "circuit %s", c.Name)
	}
	log.Circuit("circuit built", "name", v.Name, "gates", len(v.Gates()),
		"inputs", len(v.Inputs()), "outputs", len(v.Outputs()), "depth", v.Topology().MaxLevel)
	return v, nil
}

// parseCommandLine handles one line of the command format. It reports done
// when the END keyword is reached.
func parseCommandLine(c *circuit.Circuit, text string) (bool, error) {
	fields := strings.Fields(text)
	keyword := strings.ToUpper(fields[0])
	switch keyword {
	case "END":
		return true, nil
	case "CIRCUIT", "NAME":
		if len(fields) != 2 {
			return false, errors.New("CIRCUIT takes exactly one name")
		}
		c.Name = fields[1]
		return false, nil
	case "INPUT", "INPUTS":
		return false, c.DeclareInputs(fields[1:]...)
	case "OUTPUT", "OUTPUTS":
		return false, c.DeclareOutputs(fields[1:]...)
	}

	gt, err := circuit.ParseGateType(keyword)
	if err != nil {
		return false, err
	}
	if len(fields) < 2 {
		return false, circuit.NewError(circuit.InvalidName, "output name required")
	}
	_, err = c.AddGate(gt, fields[1], fields[2:]...)
	return false, err
}

// parseBenchLine handles one line of BENCH format.
func parseBenchLine(c *circuit.Circuit, text string) (bool, error) {
	if matches := inputRegex.FindStringSubmatch(text); matches != nil {
		return false, c.DeclareInputs(matches[1])
	}
	if matches := outputRegex.FindStringSubmatch(text); matches != nil {
		return false, c.DeclareOutputs(matches[1])
	}
	if matches := gateRegex.FindStringSubmatch(text); matches != nil {
		gt, err := circuit.ParseGateType(matches[2])
		if err != nil {
			return false, err
		}
		var inputs []string
		for _, name := range strings.Split(matches[3], ",") {
			inputs = append(inputs, strings.TrimSpace(name))
		}
		_, err = c.AddGate(gt, matches[1], inputs...)
		return false, err
	}
	return false, errors.Errorf("unrecognised BENCH statement %q", text)
}

// ParseValue converts a literal "0" or "1" to a logic value.
func ParseValue(s string) (circuit.LogicValue, bool) {
	switch s {
	case "0":
		return circuit.Zero, true
	case "1":
		return circuit.One, true
	default:
		return circuit.X, false
	}
}

// ParseAssignment parses one simulation round. The line holds either
// positional values for inputs, in order ("1 0 1"), or name=value pairs
// ("a=1 b=0"). Commas are treated as separators.
func ParseAssignment(line string, inputs []string) (map[string]circuit.LogicValue, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	assignment := make(map[string]circuit.LogicValue, len(fields))

	if len(fields) > 0 && strings.ContainsRune(fields[0], '=') {
		for _, f := range fields {
			name, lit, ok := strings.Cut(f, "=")
			if !ok {
				return nil, errors.Errorf("expected name=value, got %q", f)
			}
			if _, dup := assignment[name]; dup {
				return nil, circuit.NewError(circuit.DuplicateDeclaration,
					"input "+name+" assigned more than once", name)
			}
			val, ok := ParseValue(lit)
			if !ok {
				return nil, circuit.NewError(circuit.InvalidValue,
					"invalid value "+lit+" for "+name+", must be 0 or 1", name)
			}
			assignment[name] = val
		}
		return assignment, nil
	}

	if len(fields) > len(inputs) {
		return nil, circuit.NewError(circuit.UnknownInput, "too many input values", fields[len(inputs):]...)
	}
	for i, lit := range fields {
		val, ok := ParseValue(lit)
		if !ok {
			return nil, circuit.NewError(circuit.InvalidValue,
				"invalid value "+lit+" for "+inputs[i]+", must be 0 or 1", inputs[i])
		}
		assignment[inputs[i]] = val
	}
	if len(fields) < len(inputs) {
		return nil, circuit.NewError(circuit.MissingInput, "not enough input values", inputs[len(fields):]...)
	}
	return assignment, nil
}
