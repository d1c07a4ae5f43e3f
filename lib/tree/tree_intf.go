package tree

//go:generate stringer -type=Direction
type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

// Tree is the read-only positional contract of a tree.
// Every method taking a position fails with ErrInvalidPosition if the
// position is absent, detached or issued by another tree.
type Tree[E any] interface {
	Len() int64
	IsEmpty() bool
	// Root returns the absent position if the tree is empty.
	Root() Position[E]
	Element(p Position[E]) (E, error)
	// Parent returns the absent position for the root.
	Parent(p Position[E]) (Position[E], error)
	Children(p Position[E]) ([]Position[E], error)
	NumChildren(p Position[E]) (int, error)
	IsInternal(p Position[E]) (bool, error)
	IsExternal(p Position[E]) (bool, error)
	IsRoot(p Position[E]) (bool, error)
	// Depth is the distance to the root, O(depth).
	Depth(p Position[E]) (int, error)
	// Height is the longest downward path, 0 for a leaf, O(subtree).
	Height(p Position[E]) (int, error)

	// Traversals return snapshots taken at call time.

	Preorder() []Position[E]
	Postorder() []Position[E]
	BreadthFirst() []Position[E]
	Positions() []Position[E]
	Elements() []E
}

type BinaryTree[E any] interface {
	Tree[E]
	Left(p Position[E]) (Position[E], error)
	Right(p Position[E]) (Position[E], error)
	// Sibling returns the absent position for the root or an only child.
	Sibling(p Position[E]) (Position[E], error)
	Inorder() []Position[E]
}

// BinaryTreeBuilder is the minimal mutation surface used to grow a tree
// top-down.
type BinaryTreeBuilder[E any] interface {
	AddRoot(e E) (Position[E], error)
	AddLeft(p Position[E], e E) (Position[E], error)
	AddRight(p Position[E], e E) (Position[E], error)
}
