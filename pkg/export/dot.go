package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes d as a Graphviz digraph laid out left to right.
func WriteDOT(w io.Writer, d *Description) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("digraph %s {\n", dotID(d.Name)))
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box, style=filled, color=lightblue];\n")

	section := NodeKind("")
	for _, n := range d.Nodes {
		if n.Kind != section {
			section = n.Kind
			sb.WriteString("\n")
		}
		switch n.Kind {
		case InputNode:
			sb.WriteString(fmt.Sprintf("    %s [color=lightgreen, label=\"%s\\nIN\"];\n", dotID(n.ID), escape(n.Label)))
		case OutputNode:
			sb.WriteString(fmt.Sprintf("    %s [color=lightcoral, label=\"%s\\nOUT\"];\n", dotID(n.ID), escape(n.Label)))
		default:
			sb.WriteString(fmt.Sprintf("    %s [label=\"%s\", color=lightyellow];\n", dotID(n.ID), escape(n.Label)))
		}
	}

	sb.WriteString("\n")
	for _, e := range d.Edges {
		sb.WriteString(fmt.Sprintf("    %s -> %s;\n", dotID(e.From), dotID(e.To)))
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// dotKeywords are reserved by the DOT grammar in any letter case.
var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true,
}

// dotID quotes id unless it is a plain DOT identifier.
func dotID(id string) string {
	plain := id != "" && !dotKeywords[strings.ToLower(id)]
	for i, r := range id {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || i > 0 && r >= '0' && r <= '9') {
			plain = false
			break
		}
	}
	if plain {
		return id
	}
	return "\"" + escape(id) + "\""
}

func escape(s string) string {
	return strings.NewReplacer("\\", "\\\\", "\"", "\\\"").Replace(s)
}
