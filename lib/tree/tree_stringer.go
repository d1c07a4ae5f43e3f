package tree

import (
	"fmt"
	"strings"
)

// Sprint renders the tree sideways, the right subtree on top.
// Should not be used to print out large trees.
func Sprint[E any](tree BinaryTree[E]) string {
	if tree == nil || tree.IsEmpty() {
		return "────┤ empty"
	}
	builder := &strings.Builder{}
	sprint(builder, tree, tree.Root(), "", false, true)
	return builder.String()
}

func sprint[E any](builder *strings.Builder, tree BinaryTree[E], p Position[E], prefix string, tail, isRoot bool) {
	if r, _ := tree.Right(p); !r.IsNil() {
		next := prefix + "\t"
		if tail {
			next = prefix + "│\t"
		}
		sprint(builder, tree, r, next, false, false)
	}

	e, _ := tree.Element(p)
	switch {
	case isRoot:
		builder.WriteString(prefix + "───")
	case tail:
		builder.WriteString(prefix + "└──")
	default:
		builder.WriteString(prefix + "┌──")
	}
	builder.WriteString(fmt.Sprintf("─┤ %v\n", e))

	if l, _ := tree.Left(p); !l.IsNil() {
		next := prefix + "│\t"
		if tail || isRoot {
			next = prefix + "\t"
		}
		sprint(builder, tree, l, next, true, false)
	}
}
