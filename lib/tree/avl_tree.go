package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

var (
	_ BinaryTree[Entry[int, int]]        = (*AVLTree[int, int])(nil)
	_ BinaryTreeBuilder[Entry[int, int]] = (*AVLTree[int, int])(nil)
)

// AVLTree is a key/value search tree layered on LinkedBinaryTree.
// The heights are kept in a map parallel to the linked nodes.
//
// The structural primitives (AddRoot, AddLeft, AddRight, Attach, Remove,
// Rotate, Restructure) never refresh heights by themselves, the caller
// decides when to call SetHeight or RefreshHeights. The map operations
// (Put, Delete, Load) keep the AVL balance invariant on their own.
//
// Mutating the embedded LinkedBinaryTree directly creates nodes without a
// height, the height accessors reject them with ErrTypeMismatch.
type AVLTree[K any, V any] struct {
	*LinkedBinaryTree[Entry[K, V]]
	heights map[*node[Entry[K, V]]]int
	kcmp    infra.KeyComparator[K]
	stats   *avlStats
	isDesc  bool
}

func (tree *AVLTree[K, V]) keyCompare(k1, k2 K) (int64, error) {
	var res int64
	if tree.kcmp != nil {
		res = tree.kcmp(k1, k2)
	} else {
		var ok bool
		if res, ok = infra.NaturalCompare(k1, k2); !ok {
			return 0, infra.WrapErrorStack(ErrIncomparableKey)
		}
	}
	if tree.isDesc {
		return -res, nil
	}
	return res, nil
}

func (tree *AVLTree[K, V]) height(n *node[Entry[K, V]]) int {
	if n == nil {
		return -1
	}
	return tree.heights[n]
}

func (tree *AVLTree[K, V]) recomputeHeight(n *node[Entry[K, V]]) {
	if n == nil {
		return
	}
	tree.heights[n] = 1 + max(tree.height(n.left), tree.height(n.right))
}

func (tree *AVLTree[K, V]) isBalanced(n *node[Entry[K, V]]) bool {
	diff := tree.height(n.left) - tree.height(n.right)
	return -1 <= diff && diff <= 1
}

// tallerChild breaks ties by the orientation of n itself, which favors a
// single rotation over a double one.
func (tree *AVLTree[K, V]) tallerChild(n *node[Entry[K, V]]) *node[Entry[K, V]] {
	hl, hr := tree.height(n.left), tree.height(n.right)
	if hl > hr {
		return n.left
	} else if hl < hr {
		return n.right
	}
	if n.direction() == Right {
		return n.right
	}
	return n.left
}

// GetHeight returns the height recorded for p.
// A nil, detached or foreign position fails with ErrInvalidPosition. A
// position of this tree whose node carries no height, i.e. one added
// through the embedded LinkedBinaryTree, fails with ErrTypeMismatch.
func (tree *AVLTree[K, V]) GetHeight(p Position[Entry[K, V]]) (int, error) {
	n, err := tree.validate(p)
	if err != nil {
		return 0, err
	}
	h, ok := tree.heights[n]
	if !ok {
		return 0, infra.WrapErrorStackWithMessage(ErrTypeMismatch, "[avl] position is not an avl node")
	}
	return h, nil
}

// SetHeight records h for p, with the same position checks as GetHeight.
func (tree *AVLTree[K, V]) SetHeight(p Position[Entry[K, V]], h int) error {
	n, err := tree.validate(p)
	if err != nil {
		return err
	}
	if _, ok := tree.heights[n]; !ok {
		return infra.WrapErrorStackWithMessage(ErrTypeMismatch, "[avl] position is not an avl node")
	}
	tree.heights[n] = h
	return nil
}

// RefreshHeights recomputes every height bottom-up and adopts nodes that
// have none.
func (tree *AVLTree[K, V]) RefreshHeights() {
	for _, p := range Postorder[Entry[K, V]](tree) {
		tree.recomputeHeight(p.node)
	}
}

func (tree *AVLTree[K, V]) AddRoot(e Entry[K, V]) (Position[Entry[K, V]], error) {
	p, err := tree.LinkedBinaryTree.AddRoot(e)
	if err != nil {
		return p, err
	}
	tree.heights[p.node] = 0
	tree.stats.RecordEntryCount(1)
	return p, nil
}

func (tree *AVLTree[K, V]) AddLeft(p Position[Entry[K, V]], e Entry[K, V]) (Position[Entry[K, V]], error) {
	c, err := tree.LinkedBinaryTree.AddLeft(p, e)
	if err != nil {
		return c, err
	}
	tree.heights[c.node] = 0
	tree.stats.RecordEntryCount(1)
	return c, nil
}

func (tree *AVLTree[K, V]) AddRight(p Position[Entry[K, V]], e Entry[K, V]) (Position[Entry[K, V]], error) {
	c, err := tree.LinkedBinaryTree.AddRight(p, e)
	if err != nil {
		return c, err
	}
	tree.heights[c.node] = 0
	tree.stats.RecordEntryCount(1)
	return c, nil
}

// Attach splices t1 and t2 under the leaf p. Their recorded heights come
// along, p's height is left to the caller.
func (tree *AVLTree[K, V]) Attach(p Position[Entry[K, V]], t1, t2 *AVLTree[K, V]) error {
	var l1, l2 *LinkedBinaryTree[Entry[K, V]]
	donors := make(map[*AVLTree[K, V]]int64, 2)
	if t1 != nil {
		l1 = t1.LinkedBinaryTree
		donors[t1] = t1.Len()
	}
	if t2 != nil {
		l2 = t2.LinkedBinaryTree
		donors[t2] = t2.Len()
	}
	if err := tree.LinkedBinaryTree.Attach(p, l1, l2); err != nil {
		return err
	}
	// Every spliced node counts as an entry, with or without a recorded height.
	var total int64
	for donor, moved := range donors {
		for n, h := range donor.heights {
			tree.heights[n] = h
		}
		clear(donor.heights)
		donor.stats.RecordEntryCount(-moved)
		total += moved
	}
	tree.stats.RecordEntryCount(total)
	return nil
}

func (tree *AVLTree[K, V]) Remove(p Position[Entry[K, V]]) (Entry[K, V], error) {
	n, err := tree.validate(p)
	if err != nil {
		return Entry[K, V]{}, err
	}
	e, err := tree.LinkedBinaryTree.Remove(p)
	if err != nil {
		return e, err
	}
	delete(tree.heights, n)
	tree.stats.RecordEntryCount(-1)
	return e, nil
}

func (tree *AVLTree[K, V]) Release() {
	size := tree.Len()
	tree.LinkedBinaryTree.Release()
	clear(tree.heights)
	tree.stats.RecordEntryCount(-size)
}

func relink[E any](parent, child *node[E], makeLeftChild bool) {
	if child != nil {
		child.parent = parent
	}
	if makeLeftChild {
		parent.left = child
	} else {
		parent.right = child
	}
}

/*
rotate lifts x above its parent y and keeps the inorder sequence.

	      |                         |
	      Y                         X
	     / \     rotate(X)         / \
	    X   C    ==========>      A   Y
	   / \                           / \
	  A   B                         B   C
*/
func (tree *AVLTree[K, V]) rotate(x *node[Entry[K, V]]) {
	y := x.parent
	z := y.parent
	if z == nil {
		tree.root = x
		x.parent = nil
	} else {
		relink(z, x, y == z.left)
	}

	if x == y.left {
		relink(y, x.right, true)
		relink(x, y, false)
	} else {
		relink(y, x.left, false)
		relink(x, y, true)
	}
	tree.stats.IncreaseRotationCount()
}

/*
restructure repairs the trinode x (child), y (parent), z (grandparent).

Aligned (x and y on the same side), single rotation of y:

	      Z                  Y
	     /                  / \
	    Y      ======>     X   Z
	   /
	  X

Zig-zag, x is rotated twice:

	    Z                  X
	   /                  / \
	  Y        ======>   Y   Z
	   \
	    X

Returns the new root of the trinode.
*/
func (tree *AVLTree[K, V]) restructure(x *node[Entry[K, V]]) *node[Entry[K, V]] {
	y := x.parent
	z := y.parent
	if (x == y.right) == (y == z.right) {
		tree.rotate(y)
		tree.stats.IncreaseRestructureCount(false)
		return y
	}
	tree.rotate(x)
	tree.rotate(x)
	tree.stats.IncreaseRestructureCount(true)
	return x
}

// Rotate lifts p above its parent. Heights are not refreshed.
func (tree *AVLTree[K, V]) Rotate(p Position[Entry[K, V]]) error {
	x, err := tree.validate(p)
	if err != nil {
		return err
	}
	if x.parent == nil {
		return infra.WrapErrorStackWithMessage(ErrMissingAncestor, "[avl] rotate root")
	}
	tree.rotate(x)
	return nil
}

// Restructure performs the trinode restructuring of p, its parent and its
// grandparent, returns the new local root. Heights are not refreshed.
func (tree *AVLTree[K, V]) Restructure(p Position[Entry[K, V]]) (Position[Entry[K, V]], error) {
	x, err := tree.validate(p)
	if err != nil {
		return Position[Entry[K, V]]{}, err
	}
	if x.parent == nil || x.parent.parent == nil {
		return Position[Entry[K, V]]{}, infra.WrapErrorStackWithMessage(ErrMissingAncestor, "[avl] restructure without grandparent")
	}
	return tree.restructure(x).position(), nil
}

// rebalance walks up from n, restores the balance and refreshes heights.
// It stops as soon as a subtree height is unchanged.
func (tree *AVLTree[K, V]) rebalance(n *node[Entry[K, V]]) {
	for n != nil {
		oldHeight := tree.height(n)
		if !tree.isBalanced(n) {
			n = tree.restructure(tree.tallerChild(tree.tallerChild(n)))
			tree.recomputeHeight(n.left)
			tree.recomputeHeight(n.right)
		}
		tree.recomputeHeight(n)
		if tree.height(n) == oldHeight {
			return
		}
		n = n.parent
	}
}

type AVLTreeOpt[K any, V any] func(*AVLTree[K, V])

// WithAVLTreeComparator replaces the natural key order.
func WithAVLTreeComparator[K any, V any](cmp infra.KeyComparator[K]) AVLTreeOpt[K, V] {
	return func(tree *AVLTree[K, V]) {
		tree.kcmp = cmp
	}
}

func WithAVLTreeDesc[K any, V any]() AVLTreeOpt[K, V] {
	return func(tree *AVLTree[K, V]) {
		tree.isDesc = true
	}
}

// WithAVLTreeStats records rotations and sizes through the global otel
// meter provider.
func WithAVLTreeStats[K any, V any](name string) AVLTreeOpt[K, V] {
	return func(tree *AVLTree[K, V]) {
		tree.stats = newAVLStats(name)
	}
}

func WithAVLTreeRecycleCap[K any, V any](capacity int) AVLTreeOpt[K, V] {
	return func(tree *AVLTree[K, V]) {
		WithLinkedBinaryTreeRecycleCap[Entry[K, V]](capacity)(tree.LinkedBinaryTree)
	}
}

func NewAVLTree[K any, V any](opts ...AVLTreeOpt[K, V]) *AVLTree[K, V] {
	tree := &AVLTree[K, V]{
		LinkedBinaryTree: NewLinkedBinaryTree[Entry[K, V]](),
		heights:          make(map[*node[Entry[K, V]]]int),
	}
	for _, o := range opts {
		o(tree)
	}
	return tree
}

// NewOrderedAVLTree skips the reflection based natural order.
func NewOrderedAVLTree[K infra.OrderedKey, V any](opts ...AVLTreeOpt[K, V]) *AVLTree[K, V] {
	opts = append([]AVLTreeOpt[K, V]{WithAVLTreeComparator[K, V](infra.OrderedKeyCompare[K])}, opts...)
	return NewAVLTree[K, V](opts...)
}
