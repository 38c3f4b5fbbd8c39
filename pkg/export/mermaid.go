package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteMermaid writes d as a left-to-right Mermaid flowchart. Inputs are
// drawn as parallelograms, outputs as stadiums, gates as rectangles and
// internal nets as rounded boxes. Every node gets a positional id (n0, n1,
// ...) and keeps its name only in the label, so any net name is safe.
func WriteMermaid(w io.Writer, d *Description) error {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[string]string, len(d.Nodes))
	declare := func(id, label, opener, closer string) {
		mid := fmt.Sprintf("n%d", len(ids))
		ids[id] = mid
		label = strings.ReplaceAll(label, "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", mid, opener, label, closer))
	}

	for _, n := range d.Nodes {
		switch n.Kind {
		case InputNode:
			declare(n.ID, n.Label, "[/", "/]")
		case OutputNode:
			declare(n.ID, n.Label, "([", "])")
		default:
			declare(n.ID, n.Label, "[", "]")
		}
	}
	for _, e := range d.Edges {
		for _, end := range []string{e.From, e.To} {
			if _, ok := ids[end]; !ok {
				declare(end, end, "(", ")")
			}
		}
	}
	for _, e := range d.Edges {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[e.From], ids[e.To]))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
