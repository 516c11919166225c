package grid

import "iter"

type quickNode[T comparable] struct {
	value      T
	prev, next *quickNode[T]
}

// QuickList is an insertion-ordered set with O(1) add, remove and contains.
// The zero value is an empty list ready to use.
type QuickList[T comparable] struct {
	head, tail *quickNode[T]
	index      map[T]*quickNode[T]
}

// Len returns the number of elements.
func (l *QuickList[T]) Len() int {
	return len(l.index)
}

// Add appends v. No-op if v is already present.
func (l *QuickList[T]) Add(v T) {
	if l.index == nil {
		l.index = make(map[T]*quickNode[T])
	}
	if _, ok := l.index[v]; ok {
		return
	}

	n := &quickNode[T]{value: v, prev: l.tail}
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.index[v] = n
}

// Remove unlinks v and reports whether it was present.
func (l *QuickList[T]) Remove(v T) bool {
	n, ok := l.index[v]
	if !ok {
		return false
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	delete(l.index, v)
	return true
}

// Contains reports whether v is in the list.
func (l *QuickList[T]) Contains(v T) bool {
	_, ok := l.index[v]
	return ok
}

// Clear removes all elements.
func (l *QuickList[T]) Clear() {
	l.head, l.tail = nil, nil
	clear(l.index)
}

// All yields elements in insertion order.
// Removing the element currently being visited is safe.
func (l *QuickList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; {
			next := n.next
			if !yield(n.value) {
				return
			}
			n = next
		}
	}
}

// Slice returns a snapshot of the elements in insertion order.
func (l *QuickList[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}
