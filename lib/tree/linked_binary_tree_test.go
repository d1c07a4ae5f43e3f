package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func elementsOf[E any](t *testing.T, tree Tree[E], positions []Position[E]) []E {
	res := make([]E, 0, len(positions))
	for _, p := range positions {
		e, err := tree.Element(p)
		require.NoError(t, err)
		res = append(res, e)
	}
	return res
}

/*
	    1
	   / \
	  2   3
	 /
	4
*/
func newSampleTree(t *testing.T) (*LinkedBinaryTree[int], []Position[int]) {
	tree := NewLinkedBinaryTree[int]()
	p1, err := tree.AddRoot(1)
	require.NoError(t, err)
	p2, err := tree.AddLeft(p1, 2)
	require.NoError(t, err)
	p3, err := tree.AddRight(p1, 3)
	require.NoError(t, err)
	p4, err := tree.AddLeft(p2, 4)
	require.NoError(t, err)
	return tree, []Position[int]{p1, p2, p3, p4}
}

func TestLinkedBinaryTree_Navigate(t *testing.T) {
	tree, ps := newSampleTree(t)
	p1, p2, p3, p4 := ps[0], ps[1], ps[2], ps[3]

	require.Equal(t, int64(4), tree.Len())
	require.False(t, tree.IsEmpty())
	require.Equal(t, p1, tree.Root())
	require.NoError(t, LinkValidate(tree))

	parent, err := tree.Parent(p1)
	require.NoError(t, err)
	require.True(t, parent.IsNil())
	parent, err = tree.Parent(p4)
	require.NoError(t, err)
	require.Equal(t, p2, parent)

	left, err := tree.Left(p1)
	require.NoError(t, err)
	require.Equal(t, p2, left)
	right, err := tree.Right(p2)
	require.NoError(t, err)
	require.True(t, right.IsNil())

	sibling, err := tree.Sibling(p2)
	require.NoError(t, err)
	require.Equal(t, p3, sibling)
	sibling, err = tree.Sibling(p3)
	require.NoError(t, err)
	require.Equal(t, p2, sibling)
	sibling, err = tree.Sibling(p4)
	require.NoError(t, err)
	require.True(t, sibling.IsNil())
	sibling, err = tree.Sibling(p1)
	require.NoError(t, err)
	require.True(t, sibling.IsNil())

	testcases := []struct {
		name       string
		p          Position[int]
		children   int
		isRoot     bool
		isInternal bool
		depth      int
		height     int
	}{
		{"root", p1, 2, true, true, 0, 2},
		{"left", p2, 1, false, true, 1, 1},
		{"right leaf", p3, 0, false, false, 1, 0},
		{"deep leaf", p4, 0, false, false, 2, 0},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			num, err := tree.NumChildren(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, tc.children, num)
			isRoot, err := tree.IsRoot(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, tc.isRoot, isRoot)
			isInternal, err := tree.IsInternal(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, tc.isInternal, isInternal)
			isExternal, err := tree.IsExternal(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, !tc.isInternal, isExternal)
			depth, err := tree.Depth(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, tc.depth, depth)
			height, err := tree.Height(tc.p)
			require.NoError(tt, err)
			require.Equal(tt, tc.height, height)
		})
	}
}

func TestLinkedBinaryTree_Traversals(t *testing.T) {
	tree, _ := newSampleTree(t)
	require.Equal(t, []int{1, 2, 4, 3}, elementsOf[int](t, tree, tree.Preorder()))
	require.Equal(t, []int{4, 2, 3, 1}, elementsOf[int](t, tree, tree.Postorder()))
	require.Equal(t, []int{4, 2, 1, 3}, elementsOf[int](t, tree, tree.Inorder()))
	require.Equal(t, []int{1, 2, 3, 4}, elementsOf[int](t, tree, tree.BreadthFirst()))
	require.Equal(t, tree.Inorder(), tree.Positions())
	require.Equal(t, []int{4, 2, 1, 3}, tree.Elements())

	empty := NewLinkedBinaryTree[int]()
	require.True(t, empty.Root().IsNil())
	require.Empty(t, empty.Preorder())
	require.Empty(t, empty.Postorder())
	require.Empty(t, empty.Inorder())
	require.Empty(t, empty.BreadthFirst())
	require.Empty(t, empty.Elements())
}

func TestLinkedBinaryTree_TraversalIsSnapshot(t *testing.T) {
	tree, ps := newSampleTree(t)
	snapshot := tree.Preorder()
	_, err := tree.Remove(ps[3])
	require.NoError(t, err)
	_, err = tree.AddRight(ps[2], 5)
	require.NoError(t, err)

	require.Len(t, snapshot, 4)
	_, err = tree.Element(snapshot[2])
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Equal(t, []int{1, 2, 3, 5}, elementsOf[int](t, tree, tree.Preorder()))
}

func TestLinkedBinaryTree_StructuralPreconditions(t *testing.T) {
	tree, ps := newSampleTree(t)
	p1, p2, p3, p4 := ps[0], ps[1], ps[2], ps[3]

	_, err := tree.AddRoot(9)
	require.ErrorIs(t, err, ErrTreeNotEmpty)
	require.ErrorIs(t, err, ErrStructuralPrecondition)

	_, err = tree.AddLeft(p1, 9)
	require.ErrorIs(t, err, ErrSlotOccupied)
	_, err = tree.AddRight(p1, 9)
	require.ErrorIs(t, err, ErrSlotOccupied)

	_, err = tree.Remove(p1)
	require.ErrorIs(t, err, ErrTwoChildren)
	require.ErrorIs(t, err, ErrStructuralPrecondition)

	err = tree.Attach(p2, NewLinkedBinaryTree[int](), NewLinkedBinaryTree[int]())
	require.ErrorIs(t, err, ErrNotLeaf)

	err = tree.Attach(p3, tree, nil)
	require.ErrorIs(t, err, ErrSelfAttach)
	donor := NewLinkedBinaryTree[int]()
	_, err = donor.AddRoot(7)
	require.NoError(t, err)
	err = tree.Attach(p4, donor, donor)
	require.ErrorIs(t, err, ErrSelfAttach)

	// Rejected calls leave the tree untouched.
	require.Equal(t, int64(4), tree.Len())
	require.Equal(t, int64(1), donor.Len())
	require.Equal(t, []int{4, 2, 1, 3}, tree.Elements())
	require.NoError(t, LinkValidate(tree))
}

func TestLinkedBinaryTree_Set(t *testing.T) {
	tree, ps := newSampleTree(t)
	prev, err := tree.Set(ps[2], 30)
	require.NoError(t, err)
	require.Equal(t, 3, prev)
	e, err := ps[2].Element()
	require.NoError(t, err)
	require.Equal(t, 30, e)
}

func TestLinkedBinaryTree_Remove(t *testing.T) {
	tree, ps := newSampleTree(t)
	p1, p2, p3, p4 := ps[0], ps[1], ps[2], ps[3]

	// p2 has the single child p4, which is spliced up.
	e, err := tree.Remove(p2)
	require.NoError(t, err)
	require.Equal(t, 2, e)
	require.Equal(t, int64(3), tree.Len())
	left, err := tree.Left(p1)
	require.NoError(t, err)
	require.Equal(t, p4, left)
	parent, err := tree.Parent(p4)
	require.NoError(t, err)
	require.Equal(t, p1, parent)
	require.NoError(t, LinkValidate(tree))

	// Remove the root with a single child.
	_, err = tree.Remove(p3)
	require.NoError(t, err)
	e, err = tree.Remove(p1)
	require.NoError(t, err)
	require.Equal(t, 1, e)
	require.Equal(t, p4, tree.Root())
	isRoot, err := tree.IsRoot(p4)
	require.NoError(t, err)
	require.True(t, isRoot)
	require.NoError(t, LinkValidate(tree))

	_, err = tree.Remove(p4)
	require.NoError(t, err)
	require.True(t, tree.IsEmpty())
	require.True(t, tree.Root().IsNil())
	require.NoError(t, LinkValidate(tree))
}

func TestLinkedBinaryTree_DetachedPositionRejected(t *testing.T) {
	tree, ps := newSampleTree(t)
	p4 := ps[3]
	_, err := tree.Remove(p4)
	require.NoError(t, err)

	ops := map[string]func() error{
		"element":     func() error { _, err := tree.Element(p4); return err },
		"parent":      func() error { _, err := tree.Parent(p4); return err },
		"left":        func() error { _, err := tree.Left(p4); return err },
		"right":       func() error { _, err := tree.Right(p4); return err },
		"sibling":     func() error { _, err := tree.Sibling(p4); return err },
		"children":    func() error { _, err := tree.Children(p4); return err },
		"numChildren": func() error { _, err := tree.NumChildren(p4); return err },
		"isInternal":  func() error { _, err := tree.IsInternal(p4); return err },
		"isExternal":  func() error { _, err := tree.IsExternal(p4); return err },
		"isRoot":      func() error { _, err := tree.IsRoot(p4); return err },
		"depth":       func() error { _, err := tree.Depth(p4); return err },
		"height":      func() error { _, err := tree.Height(p4); return err },
		"addLeft":     func() error { _, err := tree.AddLeft(p4, 0); return err },
		"addRight":    func() error { _, err := tree.AddRight(p4, 0); return err },
		"set":         func() error { _, err := tree.Set(p4, 0); return err },
		"remove":      func() error { _, err := tree.Remove(p4); return err },
		"attach":      func() error { return tree.Attach(p4, nil, nil) },
		"position":    func() error { _, err := p4.Element(); return err },
	}
	for name, op := range ops {
		require.ErrorIsf(t, op(), ErrInvalidPosition, "operation %s", name)
	}
	require.Equal(t, int64(3), tree.Len())

	_, err = tree.Element(Position[int]{})
	require.ErrorIs(t, err, ErrInvalidPosition)
}

func TestLinkedBinaryTree_RecycledNodeDoesNotAlias(t *testing.T) {
	tree, ps := newSampleTree(t)
	stale := ps[3]
	_, err := tree.Remove(stale)
	require.NoError(t, err)

	// The recycled node is handed out again.
	fresh, err := tree.AddRight(ps[2], 5)
	require.NoError(t, err)
	require.Same(t, stale.node, fresh.node)
	require.NotEqual(t, stale, fresh)

	_, err = tree.Element(stale)
	require.ErrorIs(t, err, ErrInvalidPosition)
	e, err := tree.Element(fresh)
	require.NoError(t, err)
	require.Equal(t, 5, e)

	noRecycle := NewLinkedBinaryTree[int](WithLinkedBinaryTreeRecycleCap[int](0))
	root, err := noRecycle.AddRoot(1)
	require.NoError(t, err)
	_, err = noRecycle.Remove(root)
	require.NoError(t, err)
	require.Empty(t, noRecycle.recycled)
}

func TestLinkedBinaryTree_ForeignPositionRejected(t *testing.T) {
	tree, _ := newSampleTree(t)
	other, ps := newSampleTree(t)
	_, err := tree.Element(ps[0])
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = tree.AddLeft(ps[2], 9)
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Equal(t, int64(4), other.Len())

	var zero LinkedBinaryTree[int]
	_, err = zero.Parent(ps[0])
	require.ErrorIs(t, err, ErrInvalidPosition)
	root, err := zero.AddRoot(1)
	require.NoError(t, err)
	require.Equal(t, root, zero.Root())
}

func TestLinkedBinaryTree_Attach(t *testing.T) {
	tree, ps := newSampleTree(t)
	p3 := ps[2]

	t1, t1ps := newSampleTree(t)
	t2 := NewLinkedBinaryTree[int]()
	p20, err := t2.AddRoot(20)
	require.NoError(t, err)
	p21, err := t2.AddRight(p20, 21)
	require.NoError(t, err)

	require.NoError(t, tree.Attach(p3, t1, t2))
	require.Equal(t, int64(10), tree.Len())
	require.True(t, t1.IsEmpty())
	require.True(t, t2.IsEmpty())
	require.True(t, t1.Root().IsNil())
	require.NoError(t, LinkValidate(tree))
	require.NoError(t, LinkValidate(t1))
	require.Equal(t, []int{4, 2, 1, 4, 2, 1, 3, 3, 20, 21}, tree.Elements())

	// Donor positions are spliced, not copied.
	left, err := tree.Left(p3)
	require.NoError(t, err)
	require.Equal(t, t1ps[0], left)
	parent, err := tree.Parent(p21)
	require.NoError(t, err)
	require.Equal(t, p20, parent)
	depth, err := tree.Depth(p21)
	require.NoError(t, err)
	require.Equal(t, 3, depth)

	// The donors belong to nobody now and can be reused.
	_, err = t1.Element(t1ps[0])
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = t1.AddRoot(100)
	require.NoError(t, err)

	// A chained splice still resolves to the final host.
	host := NewLinkedBinaryTree[int]()
	hostRoot, err := host.AddRoot(0)
	require.NoError(t, err)
	require.NoError(t, host.Attach(hostRoot, tree, nil))
	e, err := host.Element(p21)
	require.NoError(t, err)
	require.Equal(t, 21, e)
	_, err = tree.Element(p21)
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.NoError(t, LinkValidate(host))

	// Attaching empty trees to a leaf is a no-op.
	require.NoError(t, host.Attach(p21, NewLinkedBinaryTree[int](), nil))
	require.Equal(t, int64(11), host.Len())
}

func TestLinkedBinaryTree_RemoveLeavesRoundTrip(t *testing.T) {
	tree := NewLinkedBinaryTree[int]()
	require.NoError(t, ConstructTree[int](tree, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}))

	for !tree.IsEmpty() {
		for _, p := range tree.Inorder() {
			isLeaf, err := tree.IsExternal(p)
			require.NoError(t, err)
			if !isLeaf {
				continue
			}
			_, err = tree.Remove(p)
			require.NoError(t, err)
			require.NoError(t, LinkValidate(tree))
		}
	}
	require.Equal(t, int64(0), tree.Len())
	require.True(t, tree.Root().IsNil())
}

func TestLinkedBinaryTree_Release(t *testing.T) {
	tree, ps := newSampleTree(t)
	tree.Release()
	require.True(t, tree.IsEmpty())
	require.Equal(t, int64(0), tree.Len())
	for _, p := range ps {
		_, err := tree.Element(p)
		require.True(t, errors.Is(err, ErrInvalidPosition))
	}
	_, err := tree.AddRoot(1)
	require.NoError(t, err)
	require.NoError(t, LinkValidate(tree))
}
