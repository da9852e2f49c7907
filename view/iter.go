package view

import (
	"iter"
	"unsafe"
)

// All returns a sequence of (index, element) pairs in view order.
// The sequence is restartable; each range over it starts again at element 0.
func (v View[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		p := v.base
		for i := 0; i < v.length; i++ {
			if !yield(i, (*T)(p)) {
				return
			}
			// Never form an address past the last element.
			if i+1 < v.length {
				p = unsafe.Add(p, v.stride)
			}
		}
	}
}

// Values returns a sequence of elements in view order.
func (v View[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, e := range v.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Backward returns a sequence of (index, element) pairs from the last element to the first.
func (v View[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if v.length == 0 {
			return
		}
		for j, e := range v.Reverse().All() {
			if !yield(v.length-1-j, e) {
				return
			}
		}
	}
}
