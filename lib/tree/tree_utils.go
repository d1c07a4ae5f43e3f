package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities. Each validator reports every violation
// it finds, combined into one error.

// LinkValidate checks the parent/child round trip of every reachable node
// and that the count equals the number of reachable nodes.
func LinkValidate[E any](tree *LinkedBinaryTree[E]) error {
	var merr error
	aux := tree.root
	if aux == nil {
		if tree.count != 0 {
			merr = multierr.Append(merr, fmt.Errorf("[tree] empty tree with count %d", tree.count))
		}
		return merr
	}
	if aux.parent != nil {
		merr = multierr.Append(merr, fmt.Errorf("[tree] root %v has a parent", aux.elem))
	}

	reachable := int64(0)
	stack := make([]*node[E], 0, tree.count>>1+1)
	defer func() {
		clear(stack)
	}()

	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		reachable++
		if aux.owner == nil || aux.owner.resolve() != tree.owner {
			merr = multierr.Append(merr, fmt.Errorf("[tree] node %v is not owned by the tree", aux.elem))
		}
		for _, child := range []*node[E]{aux.left, aux.right} {
			if child == nil {
				continue
			}
			if child.parent != aux {
				merr = multierr.Append(merr, fmt.Errorf("[tree] node %v does not point back to parent %v", child.elem, aux.elem))
			}
			stack = append(stack, child)
		}
	}
	if reachable != tree.count {
		merr = multierr.Append(merr, fmt.Errorf("[tree] count %d, reachable %d", tree.count, reachable))
	}
	return merr
}

// BalanceValidate checks every recorded height against the real one and
// the AVL balance rule |h(left) - h(right)| <= 1.
func BalanceValidate[K any, V any](tree *AVLTree[K, V]) error {
	var merr error
	if tree.root == nil {
		return nil
	}
	var walk func(n *node[Entry[K, V]]) int
	walk = func(n *node[Entry[K, V]]) int {
		if n == nil {
			return -1
		}
		hl, hr := walk(n.left), walk(n.right)
		h := 1 + max(hl, hr)
		if recorded, ok := tree.heights[n]; !ok {
			merr = multierr.Append(merr, fmt.Errorf("[avl] node %v has no height", n.elem))
		} else if recorded != h {
			merr = multierr.Append(merr, fmt.Errorf("[avl] node %v height %d, expected %d", n.elem, recorded, h))
		}
		if diff := hl - hr; diff < -1 || diff > 1 {
			merr = multierr.Append(merr, fmt.Errorf("[avl] node %v unbalanced, left %d right %d", n.elem, hl, hr))
		}
		return h
	}
	walk(tree.root)
	return merr
}

// OrderValidate checks that the inorder keys are strictly increasing in
// the tree's order.
func OrderValidate[K any, V any](tree *AVLTree[K, V]) error {
	var (
		merr error
		prev *Entry[K, V]
	)
	for _, e := range tree.Entries() {
		if prev != nil {
			res, err := tree.keyCompare(prev.key, e.key)
			if err != nil {
				return infra.WrapErrorStack(err)
			}
			if res >= 0 {
				merr = multierr.Append(merr, fmt.Errorf("[avl] key %v is not less than %v", prev.key, e.key))
			}
		}
		e := e
		prev = &e
	}
	return merr
}
