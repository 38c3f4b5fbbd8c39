package export

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
)

// Format selects the textual output of Write.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatYAML    Format = "yaml"
)

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatMermaid:
		return ".mmd"
	case FormatYAML:
		return ".yaml"
	default:
		return ".dot"
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatMermaid, FormatYAML:
		return f, nil
	case "":
		return FormatDOT, nil
	default:
		return "", errors.Errorf("unknown export format %q", s)
	}
}

// Write writes d in format f.
func Write(w io.Writer, d *Description, f Format) error {
	switch f {
	case FormatDOT:
		return WriteDOT(w, d)
	case FormatMermaid:
		return WriteMermaid(w, d)
	case FormatYAML:
		return WriteYAML(w, d)
	default:
		return errors.Errorf("unknown export format %q", f)
	}
}

// WriteFile describes v and writes it to dir/<circuit name><ext>. It returns
// the path written. Only the last element of the circuit name is used, so the
// file always lands in dir.
func WriteFile(dir string, v *circuit.Validated, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, Describe(v), f); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileStem(v.Name)+f.Extension())
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", errors.Wrapf(err, "could not create %s", path)
	}
	return path, nil
}

func fileStem(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	switch base {
	case ".", "..", "/":
		return circuit.DefaultName
	}
	return base
}

// ErrRendererNotFound is returned by Render when the Graphviz binary is not
// installed. The DOT file remains usable.
var ErrRendererNotFound = errors.New("graphviz dot command not found")

// Render runs the Graphviz binary to turn dotFile into a PNG next to it and
// returns the image path.
func Render(ctx context.Context, binary, dotFile string) (string, error) {
	if binary == "" {
		binary = "dot"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", errors.WithStack(ErrRendererNotFound)
	}
	png := strings.TrimSuffix(dotFile, filepath.Ext(dotFile)) + ".png"

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-Tpng", dotFile, "-o", png)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "%s: %s", binary, strings.TrimSpace(stderr.String()))
	}
	return png, nil
}
