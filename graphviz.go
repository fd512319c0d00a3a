package blockhuffman

import (
	"fmt"
	"strings"
)

// Graphviz renders the tree in the DOT language.  Every vertex is named
// after the path leading to it, "_" being the root, "_0" its left child,
// and so on.
func (t *Tree) Graphviz() string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	t.graphviz(&sb, "_")
	sb.WriteString("}\n")
	return sb.String()
}

func (t *Tree) graphviz(sb *strings.Builder, name string) {
	switch t.kind {
	case EmptyKind:
		// Empty has no vertex
	case LeafKind:
		fmt.Fprintf(sb, "%s [label=\"%s (%d)\"]\n", name, dotEscape(symbolLabel(t.symbol)), t.count)
	case NodeKind:
		fmt.Fprintf(sb, "%s [label=\"(%d)\"]\n", name, t.count)
		fmt.Fprintf(sb, "%s -> %s0 [label=\"0\"]\n", name, name)
		fmt.Fprintf(sb, "%s -> %s1 [label=\"1\"]\n", name, name)
		t.left.graphviz(sb, name+"0")
		t.right.graphviz(sb, name+"1")
	}
}

// symbolLabel renders printable ASCII as a quoted character and everything
// else as its decimal value.
func symbolLabel(sym Symbol) string {
	if sym >= 0x20 && sym <= 0x7e {
		return "'" + string(rune(sym)) + "'"
	}
	return fmt.Sprintf("%d", sym)
}

func dotEscape(str string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(str)
}
