package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// owner identifies the tree a node lives in.
// Splicing a whole tree into another one forwards the donor's owner to the
// host's owner, so the spliced nodes change hands without being visited.
type owner struct {
	forward *owner
}

// resolve follows the forward chain and compresses it.
func (o *owner) resolve() *owner {
	root := o
	for root.forward != nil {
		root = root.forward
	}
	for o != root {
		next := o.forward
		o.forward = root
		o = next
	}
	return root
}

type node[E any] struct {
	parent *node[E]
	left   *node[E]
	right  *node[E]
	owner  *owner
	gen    uint64
	elem   E
}

func (n *node[E]) direction() Direction {
	if n.parent == nil {
		return Root
	}
	if n == n.parent.left {
		return Left
	}
	return Right
}

func (n *node[E]) numChildren() int {
	count := 0
	if n.left != nil {
		count++
	}
	if n.right != nil {
		count++
	}
	return count
}

func (n *node[E]) minimum() *node[E] {
	aux := n
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (n *node[E]) maximum() *node[E] {
	aux := n
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// detach bumps the generation, so every position issued for this node
// before is stale from now on.
func (n *node[E]) detach() {
	var zero E
	n.parent, n.left, n.right = nil, nil, nil
	n.owner = nil
	n.elem = zero
	n.gen++
}

func (n *node[E]) position() Position[E] {
	if n == nil {
		return Position[E]{}
	}
	return Position[E]{node: n, gen: n.gen}
}

// Position is an opaque handle to a node's slot in a tree.
// The zero value is the absent position.
// A position stays valid until its node is removed from the tree, it is
// comparable and may be used as a map key.
type Position[E any] struct {
	node *node[E]
	gen  uint64
}

func (p Position[E]) IsNil() bool {
	return p.node == nil
}

func (p Position[E]) isDetached() bool {
	return p.node == nil || p.node.owner == nil || p.node.gen != p.gen
}

// Element returns the element held by the position.
func (p Position[E]) Element() (E, error) {
	if p.isDetached() {
		var zero E
		return zero, infra.WrapErrorStackWithMessage(ErrInvalidPosition, "[tree] position is detached")
	}
	return p.node.elem, nil
}
