package tree

import (
	"github.com/samber/lo"
)

// Traversals over any BinaryTree. Positions handed to the tree come from
// the tree itself, so the lookup errors are impossible and ignored.

func Preorder[E any](tree BinaryTree[E]) []Position[E] {
	snapshot := make([]Position[E], 0, tree.Len())
	if tree.IsEmpty() {
		return snapshot
	}
	return preorderSubtree(tree, tree.Root(), snapshot)
}

func preorderSubtree[E any](tree BinaryTree[E], p Position[E], snapshot []Position[E]) []Position[E] {
	snapshot = append(snapshot, p)
	children, _ := tree.Children(p)
	for _, c := range children {
		snapshot = preorderSubtree(tree, c, snapshot)
	}
	return snapshot
}

func Postorder[E any](tree BinaryTree[E]) []Position[E] {
	snapshot := make([]Position[E], 0, tree.Len())
	if tree.IsEmpty() {
		return snapshot
	}
	return postorderSubtree(tree, tree.Root(), snapshot)
}

func postorderSubtree[E any](tree BinaryTree[E], p Position[E], snapshot []Position[E]) []Position[E] {
	children, _ := tree.Children(p)
	for _, c := range children {
		snapshot = postorderSubtree(tree, c, snapshot)
	}
	return append(snapshot, p)
}

func Inorder[E any](tree BinaryTree[E]) []Position[E] {
	snapshot := make([]Position[E], 0, tree.Len())
	if tree.IsEmpty() {
		return snapshot
	}
	return inorderSubtree(tree, tree.Root(), snapshot)
}

func inorderSubtree[E any](tree BinaryTree[E], p Position[E], snapshot []Position[E]) []Position[E] {
	if l, _ := tree.Left(p); !l.IsNil() {
		snapshot = inorderSubtree(tree, l, snapshot)
	}
	snapshot = append(snapshot, p)
	if r, _ := tree.Right(p); !r.IsNil() {
		snapshot = inorderSubtree(tree, r, snapshot)
	}
	return snapshot
}

// BreadthFirst visits level by level, left to right.
func BreadthFirst[E any](tree BinaryTree[E]) []Position[E] {
	snapshot := make([]Position[E], 0, tree.Len())
	if tree.IsEmpty() {
		return snapshot
	}
	fringe := make([]Position[E], 0, tree.Len()>>1+1)
	fringe = append(fringe, tree.Root())
	for len(fringe) > 0 {
		p := fringe[0]
		fringe = fringe[1:]
		snapshot = append(snapshot, p)
		children, _ := tree.Children(p)
		fringe = append(fringe, children...)
	}
	return snapshot
}

// Elements maps the inorder snapshot to the held elements.
func Elements[E any](tree BinaryTree[E]) []E {
	return lo.Map(Inorder(tree), func(p Position[E], _ int) E {
		e, _ := tree.Element(p)
		return e
	})
}

func depth[E any](tree Tree[E], p Position[E]) int {
	d := 0
	for parent, _ := tree.Parent(p); !parent.IsNil(); parent, _ = tree.Parent(parent) {
		d++
	}
	return d
}

func height[E any](tree Tree[E], p Position[E]) int {
	h := 0
	children, _ := tree.Children(p)
	for _, c := range children {
		h = max(h, 1+height(tree, c))
	}
	return h
}
