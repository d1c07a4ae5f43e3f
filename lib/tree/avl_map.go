package tree

import (
	"github.com/samber/lo"

	"github.com/benz9527/xtree/lib/infra"
)

// search returns the node holding key, or the last node visited and the
// comparison result against it.
func (tree *AVLTree[K, V]) search(key K) (found, last *node[Entry[K, V]], res int64, err error) {
	for aux := tree.root; aux != nil; {
		last = aux
		if res, err = tree.keyCompare(key, aux.elem.key); err != nil {
			return nil, nil, 0, err
		}
		if /* equal */ res == 0 {
			return aux, last, 0, nil
		} else /* less */ if res < 0 {
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}
	return nil, last, res, nil
}

// Put inserts or replaces the value of key and rebalances the tree.
// Returns the replaced value if the key was present.
func (tree *AVLTree[K, V]) Put(key K, val V) (old V, replaced bool, err error) {
	if tree.IsEmpty() {
		// Reject keys without a total order even for the first entry.
		if _, err = tree.keyCompare(key, key); err != nil {
			return old, false, err
		}
		_, err = tree.AddRoot(NewEntry(key, val))
		return old, false, err
	}

	found, last, res, err := tree.search(key)
	if err != nil {
		return old, false, err
	}
	if found != nil {
		old = found.elem.val
		found.elem = NewEntry(found.elem.key, val)
		return old, true, nil
	}

	if res < 0 {
		_, err = tree.AddLeft(last.position(), NewEntry(key, val))
	} else {
		_, err = tree.AddRight(last.position(), NewEntry(key, val))
	}
	if err != nil {
		return old, false, err
	}
	tree.rebalance(last)
	return old, false, nil
}

func (tree *AVLTree[K, V]) Get(key K) (val V, ok bool, err error) {
	found, _, _, err := tree.search(key)
	if err != nil || found == nil {
		return val, false, err
	}
	return found.elem.val, true, nil
}

// Position returns the position of key, or the absent position.
func (tree *AVLTree[K, V]) Position(key K) (Position[Entry[K, V]], error) {
	found, _, _, err := tree.search(key)
	if err != nil {
		return Position[Entry[K, V]]{}, err
	}
	return found.position(), nil
}

/*
Delete removes key and rebalances the tree.

A node with two children is not removed directly. Its inorder predecessor
(rightmost node of the left subtree, at most one child) is copied into it
and the predecessor node is removed instead. The position of the
predecessor becomes detached, the position of the deleted key now holds
the predecessor entry.
*/
func (tree *AVLTree[K, V]) Delete(key K) (val V, ok bool, err error) {
	found, _, _, err := tree.search(key)
	if err != nil || found == nil {
		return val, false, err
	}

	val = found.elem.val
	target := found
	if found.left != nil && found.right != nil {
		target = found.left.maximum()
		found.elem = target.elem
	}
	parent := target.parent
	if _, err = tree.Remove(target.position()); err != nil {
		// impossible run to here
		panic( /* debug assertion */ "[avl] remove a node with at most one child failed: " + err.Error())
	}
	tree.rebalance(parent)
	return val, true, nil
}

// Contains reports whether key is present.
func (tree *AVLTree[K, V]) Contains(key K) (bool, error) {
	_, ok, err := tree.Get(key)
	return ok, err
}

func (tree *AVLTree[K, V]) Min() (Entry[K, V], bool) {
	if tree.IsEmpty() {
		return Entry[K, V]{}, false
	}
	return tree.root.minimum().elem, true
}

func (tree *AVLTree[K, V]) Max() (Entry[K, V], bool) {
	if tree.IsEmpty() {
		return Entry[K, V]{}, false
	}
	return tree.root.maximum().elem, true
}

// Floor returns the entry with the greatest key less than or equal to key.
func (tree *AVLTree[K, V]) Floor(key K) (Entry[K, V], bool, error) {
	var best *node[Entry[K, V]]
	for aux := tree.root; aux != nil; {
		res, err := tree.keyCompare(key, aux.elem.key)
		if err != nil {
			return Entry[K, V]{}, false, err
		}
		if res == 0 {
			return aux.elem, true, nil
		} else if res < 0 {
			aux = aux.left
		} else {
			best = aux
			aux = aux.right
		}
	}
	if best == nil {
		return Entry[K, V]{}, false, nil
	}
	return best.elem, true, nil
}

// Ceiling returns the entry with the least key greater than or equal to key.
func (tree *AVLTree[K, V]) Ceiling(key K) (Entry[K, V], bool, error) {
	var best *node[Entry[K, V]]
	for aux := tree.root; aux != nil; {
		res, err := tree.keyCompare(key, aux.elem.key)
		if err != nil {
			return Entry[K, V]{}, false, err
		}
		if res == 0 {
			return aux.elem, true, nil
		} else if res > 0 {
			aux = aux.right
		} else {
			best = aux
			aux = aux.left
		}
	}
	if best == nil {
		return Entry[K, V]{}, false, nil
	}
	return best.elem, true, nil
}

// Entries returns the entries in key order.
func (tree *AVLTree[K, V]) Entries() []Entry[K, V] {
	return tree.Elements()
}

// Keys returns the keys in key order.
func (tree *AVLTree[K, V]) Keys() []K {
	return lo.Map(tree.Elements(), func(e Entry[K, V], _ int) K {
		return e.key
	})
}

// Foreach is an inorder traversal, stops once action returns false.
func (tree *AVLTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	aux := tree.root
	if aux == nil {
		return
	}

	stack := make([]*node[Entry[K, V]], 0, tree.Len()>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.elem.key, aux.elem.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// Load bulk loads sorted entries into an empty tree with the minimum
// height. Keys must be strictly increasing in the tree's order.
func (tree *AVLTree[K, V]) Load(sorted []Entry[K, V]) error {
	if !tree.IsEmpty() {
		return infra.WrapErrorStack(ErrTreeNotEmpty)
	}
	if len(sorted) == 1 {
		if _, err := tree.keyCompare(sorted[0].key, sorted[0].key); err != nil {
			return err
		}
	}
	for i := 1; i < len(sorted); i++ {
		res, err := tree.keyCompare(sorted[i-1].key, sorted[i].key)
		if err != nil {
			return err
		}
		if res >= 0 {
			return infra.WrapErrorStack(ErrUnsortedKeys)
		}
	}

	if err := ConstructTree[Entry[K, V]](tree, sorted); err != nil {
		return err
	}
	tree.RefreshHeights()
	return nil
}
