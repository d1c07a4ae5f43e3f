package tree

import "fmt"

// Entry pairs an immutable key with a value.
type Entry[K any, V any] struct {
	key K
	val V
}

func NewEntry[K any, V any](key K, val V) Entry[K, V] {
	return Entry[K, V]{key: key, val: val}
}

func (e Entry[K, V]) Key() K {
	return e.key
}

func (e Entry[K, V]) Val() V {
	return e.val
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v:%v", e.key, e.val)
}
