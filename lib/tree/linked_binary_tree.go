package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

var (
	_ BinaryTree[int]        = (*LinkedBinaryTree[int])(nil)
	_ BinaryTreeBuilder[int] = (*LinkedBinaryTree[int])(nil)
)

const defaultRecycleCap = 64

// LinkedBinaryTree is a node based binary tree. Every node holds a back
// reference to its parent.
//
// Mutations are not safe for concurrent use, callers must serialize them.
// Removed nodes are recycled for later insertions; positions of removed
// nodes never alias the recycled ones.
type LinkedBinaryTree[E any] struct {
	root       *node[E]
	owner      *owner
	recycled   []*node[E]
	recycleCap int
	count      int64
}

func (tree *LinkedBinaryTree[E]) newNode(e E, parent *node[E]) *node[E] {
	var n *node[E]
	if l := len(tree.recycled); l > 0 {
		n = tree.recycled[l-1]
		tree.recycled[l-1] = nil
		tree.recycled = tree.recycled[:l-1]
	} else {
		n = &node[E]{}
	}
	if tree.owner == nil {
		tree.owner = &owner{}
	}
	n.parent = parent
	n.owner = tree.owner
	n.elem = e
	return n
}

func (tree *LinkedBinaryTree[E]) recycle(n *node[E]) {
	n.detach()
	if len(tree.recycled) < tree.recycleCap {
		tree.recycled = append(tree.recycled, n)
	}
}

// validate unwraps a position into its node.
func (tree *LinkedBinaryTree[E]) validate(p Position[E]) (*node[E], error) {
	if p.IsNil() {
		return nil, infra.WrapErrorStackWithMessage(ErrInvalidPosition, "[tree] absent position")
	}
	if p.isDetached() {
		return nil, infra.WrapErrorStackWithMessage(ErrInvalidPosition, "[tree] position is detached")
	}
	n := p.node
	if o := n.owner.resolve(); o != tree.owner {
		return nil, infra.WrapErrorStackWithMessage(ErrInvalidPosition, "[tree] position belongs to another tree")
	}
	n.owner = tree.owner
	return n, nil
}

func (tree *LinkedBinaryTree[E]) Len() int64 {
	return tree.count
}

func (tree *LinkedBinaryTree[E]) IsEmpty() bool {
	return tree.count == 0
}

func (tree *LinkedBinaryTree[E]) Root() Position[E] {
	return tree.root.position()
}

func (tree *LinkedBinaryTree[E]) Element(p Position[E]) (E, error) {
	n, err := tree.validate(p)
	if err != nil {
		var zero E
		return zero, err
	}
	return n.elem, nil
}

func (tree *LinkedBinaryTree[E]) Parent(p Position[E]) (Position[E], error) {
	n, err := tree.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return n.parent.position(), nil
}

func (tree *LinkedBinaryTree[E]) Left(p Position[E]) (Position[E], error) {
	n, err := tree.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return n.left.position(), nil
}

func (tree *LinkedBinaryTree[E]) Right(p Position[E]) (Position[E], error) {
	n, err := tree.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return n.right.position(), nil
}

func (tree *LinkedBinaryTree[E]) Sibling(p Position[E]) (Position[E], error) {
	n, err := tree.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	switch n.direction() {
	case Left:
		return n.parent.right.position(), nil
	case Right:
		return n.parent.left.position(), nil
	default:
	}
	return Position[E]{}, nil
}

func (tree *LinkedBinaryTree[E]) Children(p Position[E]) ([]Position[E], error) {
	n, err := tree.validate(p)
	if err != nil {
		return nil, err
	}
	snapshot := make([]Position[E], 0, 2)
	if n.left != nil {
		snapshot = append(snapshot, n.left.position())
	}
	if n.right != nil {
		snapshot = append(snapshot, n.right.position())
	}
	return snapshot, nil
}

func (tree *LinkedBinaryTree[E]) NumChildren(p Position[E]) (int, error) {
	n, err := tree.validate(p)
	if err != nil {
		return 0, err
	}
	return n.numChildren(), nil
}

func (tree *LinkedBinaryTree[E]) IsInternal(p Position[E]) (bool, error) {
	num, err := tree.NumChildren(p)
	return num > 0, err
}

func (tree *LinkedBinaryTree[E]) IsExternal(p Position[E]) (bool, error) {
	n, err := tree.validate(p)
	if err != nil {
		return false, err
	}
	return n.numChildren() == 0, nil
}

func (tree *LinkedBinaryTree[E]) IsRoot(p Position[E]) (bool, error) {
	n, err := tree.validate(p)
	if err != nil {
		return false, err
	}
	return n == tree.root, nil
}

func (tree *LinkedBinaryTree[E]) Depth(p Position[E]) (int, error) {
	if _, err := tree.validate(p); err != nil {
		return 0, err
	}
	return depth[E](tree, p), nil
}

func (tree *LinkedBinaryTree[E]) Height(p Position[E]) (int, error) {
	if _, err := tree.validate(p); err != nil {
		return 0, err
	}
	return height[E](tree, p), nil
}

func (tree *LinkedBinaryTree[E]) Preorder() []Position[E] {
	return Preorder[E](tree)
}

func (tree *LinkedBinaryTree[E]) Postorder() []Position[E] {
	return Postorder[E](tree)
}

func (tree *LinkedBinaryTree[E]) Inorder() []Position[E] {
	return Inorder[E](tree)
}

func (tree *LinkedBinaryTree[E]) BreadthFirst() []Position[E] {
	return BreadthFirst[E](tree)
}

func (tree *LinkedBinaryTree[E]) Positions() []Position[E] {
	return Inorder[E](tree)
}

func (tree *LinkedBinaryTree[E]) Elements() []E {
	return Elements[E](tree)
}

func (tree *LinkedBinaryTree[E]) AddRoot(e E) (Position[E], error) {
	if !tree.IsEmpty() {
		return Position[E]{}, infra.WrapErrorStack(ErrTreeNotEmpty)
	}
	tree.root = tree.newNode(e, nil)
	tree.count = 1
	return tree.root.position(), nil
}

func (tree *LinkedBinaryTree[E]) AddLeft(p Position[E], e E) (Position[E], error) {
	return tree.addChild(p, e, Left)
}

func (tree *LinkedBinaryTree[E]) AddRight(p Position[E], e E) (Position[E], error) {
	return tree.addChild(p, e, Right)
}

func (tree *LinkedBinaryTree[E]) addChild(p Position[E], e E, dir Direction) (Position[E], error) {
	parent, err := tree.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	var child *node[E]
	switch dir {
	case Left:
		if parent.left != nil {
			return Position[E]{}, infra.WrapErrorStackWithMessage(ErrSlotOccupied, "[tree] left child exists")
		}
		child = tree.newNode(e, parent)
		parent.left = child
	case Right:
		if parent.right != nil {
			return Position[E]{}, infra.WrapErrorStackWithMessage(ErrSlotOccupied, "[tree] right child exists")
		}
		child = tree.newNode(e, parent)
		parent.right = child
	default:
		// impossible run to here
		panic( /* debug assertion */ "[tree] add child to unknown direction")
	}
	tree.count++
	return child.position(), nil
}

// Set replaces the element and returns the previous one.
func (tree *LinkedBinaryTree[E]) Set(p Position[E], e E) (E, error) {
	n, err := tree.validate(p)
	if err != nil {
		var zero E
		return zero, err
	}
	prev := n.elem
	n.elem = e
	return prev, nil
}

/*
Attach splices the roots of t1 and t2 as the left and right subtrees of the
leaf p. Nodes are not copied, positions issued by t1 and t2 stay valid and
belong to this tree afterward. t1 and t2 are left empty.

	  |                   |
	  P    attach(P)      P
	       ========>     / \
	 T1  T2            T1   T2
*/
func (tree *LinkedBinaryTree[E]) Attach(p Position[E], t1, t2 *LinkedBinaryTree[E]) error {
	n, err := tree.validate(p)
	if err != nil {
		return err
	}
	if n.numChildren() > 0 {
		return infra.WrapErrorStack(ErrNotLeaf)
	}
	if t1 == tree || t2 == tree || (t1 == t2 && t1 != nil && !t1.IsEmpty()) {
		return infra.WrapErrorStack(ErrSelfAttach)
	}

	if t1 != nil && !t1.IsEmpty() {
		tree.count += t1.count
		t1.root.parent = n
		n.left = t1.root
		t1.handOver(tree)
	}
	if t2 != nil && !t2.IsEmpty() {
		tree.count += t2.count
		t2.root.parent = n
		n.right = t2.root
		t2.handOver(tree)
	}
	return nil
}

// handOver moves the ownership of every node to the host in O(1) and
// leaves this tree empty with a fresh identity.
func (tree *LinkedBinaryTree[E]) handOver(host *LinkedBinaryTree[E]) {
	tree.owner.forward = host.owner
	tree.owner = &owner{}
	tree.root = nil
	tree.count = 0
}

// Remove removes the node at p and replaces it with its child, if any.
// Nodes with two children are rejected.
func (tree *LinkedBinaryTree[E]) Remove(p Position[E]) (E, error) {
	n, err := tree.validate(p)
	if err != nil {
		var zero E
		return zero, err
	}
	if n.numChildren() == 2 {
		var zero E
		return zero, infra.WrapErrorStack(ErrTwoChildren)
	}

	child := n.left
	if child == nil {
		child = n.right
	}
	if child != nil {
		child.parent = n.parent
	}
	switch n.direction() {
	case Root:
		tree.root = child
	case Left:
		n.parent.left = child
	case Right:
		n.parent.right = child
	default:
		// impossible run to here
		panic( /* debug assertion */ "[tree] remove node with unknown direction")
	}
	tree.count--

	e := n.elem
	tree.recycle(n)
	return e, nil
}

// Release detaches all nodes. Every outstanding position becomes invalid.
func (tree *LinkedBinaryTree[E]) Release() {
	aux := tree.root
	tree.root = nil
	if aux == nil {
		return
	}

	stack := make([]*node[E], 0, tree.count>>1+1)
	defer func() {
		clear(stack)
	}()

	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		tree.recycle(aux)
		tree.count--
	}
}

type LinkedBinaryTreeOpt[E any] func(*LinkedBinaryTree[E])

// WithLinkedBinaryTreeRecycleCap bounds the recycled node pool.
// Zero disables recycling.
func WithLinkedBinaryTreeRecycleCap[E any](capacity int) LinkedBinaryTreeOpt[E] {
	return func(tree *LinkedBinaryTree[E]) {
		if capacity < 0 {
			capacity = 0
		}
		tree.recycleCap = capacity
	}
}

func NewLinkedBinaryTree[E any](opts ...LinkedBinaryTreeOpt[E]) *LinkedBinaryTree[E] {
	tree := &LinkedBinaryTree[E]{
		owner:      &owner{},
		recycleCap: defaultRecycleCap,
	}
	for _, o := range opts {
		o(tree)
	}
	tree.recycled = make([]*node[E], 0, min(tree.recycleCap, defaultRecycleCap))
	return tree
}
