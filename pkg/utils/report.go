package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
)

// WriteSummary writes the circuit summary block.
func WriteSummary(w io.Writer, v *circuit.Validated) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Circuit Name: %s\n", v.Name))
	b.WriteString(fmt.Sprintf("Total Gates: %d\n", len(v.Gates())))
	b.WriteString(fmt.Sprintf("Depth: %d\n", v.Topology().MaxLevel))
	b.WriteString(fmt.Sprintf("Primary Inputs (%d): %s\n", len(v.Inputs()), strings.Join(v.InputNames(), " ")))
	b.WriteString(fmt.Sprintf("Primary Outputs (%d): %s\n", len(v.Outputs()), strings.Join(v.OutputNames(), " ")))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReport writes the result of one run: inputs and outputs in declaration
// order, then every net sorted by name.
func WriteReport(w io.Writer, v *circuit.Validated, values circuit.Values) error {
	var b strings.Builder
	b.WriteString("Inputs:\n")
	for _, name := range v.InputNames() {
		b.WriteString(fmt.Sprintf("  %s = %s\n", name, values[name]))
	}
	b.WriteString("\nOutputs:\n")
	for _, name := range v.OutputNames() {
		b.WriteString(fmt.Sprintf("  %s = %s\n", name, values[name]))
	}
	b.WriteString("\nAll Nets:\n")
	for _, name := range values.Names() {
		b.WriteString(fmt.Sprintf("  %s = %s\n", name, values[name]))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteVectors writes vectors as a whitespace separated table with one column
// per name. Undefined values are written as X.
func WriteVectors(w io.Writer, title string, columns []string, vectors []map[string]circuit.LogicValue) error {
	writer := bufio.NewWriter(w)

	// Write header
	writer.WriteString(fmt.Sprintf("# %s\n", title))
	writer.WriteString("# Format: " + strings.Join(columns, " ") + "\n")

	// Write each vector
	for _, vector := range vectors {
		cells := make([]string, len(columns))
		for i, name := range columns {
			switch vector[name] {
			case circuit.Zero:
				cells[i] = "0"
			case circuit.One:
				cells[i] = "1"
			default:
				cells[i] = "X"
			}
		}
		writer.WriteString(strings.Join(cells, " ") + "\n")
	}

	return writer.Flush()
}

// WriteVectorsFile writes vectors to a file
func WriteVectorsFile(filename, title string, columns []string, vectors []map[string]circuit.LogicValue) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	if err := WriteVectors(file, title, columns, vectors); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return file.Close()
}
