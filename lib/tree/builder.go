package tree

/*
ConstructTree builds a minimum height tree from data, which must already be
sorted in strictly increasing order. The order is not verified.

The median of every range becomes the subtree root. For even length ranges
the median index rounds down, so the extra element goes to the right
subtree. The height of the result is ceil(log2(n+1)) - 1.

	data: [0 3 5 8 10 50 60 75]

	          8
	        /   \
	       3     50
	      / \   /  \
	     0   5 10   60
	                  \
	                   75

Each element costs exactly one AddRoot, AddLeft or AddRight call.
*/
func ConstructTree[E any](tree BinaryTreeBuilder[E], data []E) error {
	if len(data) == 0 {
		return nil
	}
	mid := (len(data) - 1) / 2
	root, err := tree.AddRoot(data[mid])
	if err != nil {
		return err
	}
	if err = constructSubtree(tree, root, 0, mid-1, Left, data); err != nil {
		return err
	}
	return constructSubtree(tree, root, mid+1, len(data)-1, Right, data)
}

// constructSubtree hangs data[start..end] under parent on the dir side.
func constructSubtree[E any](
	tree BinaryTreeBuilder[E],
	parent Position[E],
	start, end int,
	dir Direction,
	data []E,
) error {
	if start > end {
		return nil
	}

	var (
		mid  = start + (end-start)/2
		root Position[E]
		err  error
	)
	switch dir {
	case Left:
		root, err = tree.AddLeft(parent, data[mid])
	case Right:
		root, err = tree.AddRight(parent, data[mid])
	default:
		// impossible run to here
		panic( /* debug assertion */ "[tree] construct subtree with unknown direction")
	}
	if err != nil {
		return err
	}
	if err = constructSubtree(tree, root, start, mid-1, Left, data); err != nil {
		return err
	}
	return constructSubtree(tree, root, mid+1, end, Right, data)
}
