// Package view provides View, a typed, non-owning window over memory that is
// addressed by element count and byte stride.
//
// A View describes length elements of type T starting at a base address, with
// element i living at
//
//	base + stride*i
//
// The stride is a signed byte offset. When it equals the element size the view is
// packed and traversal visits the same bytes as a plain slice; larger strides
// describe padded, interleaved or single-field layouts over the same memory, and
// negative strides describe reversed traversal.
//
// # Ownership
//
// A View never owns its memory. It borrows from whatever produced it, typically a
// memory-mapped or buffered record source. A View (and every Cursor or derived
// view obtained from it) is valid only while that producer is alive; using it after
// the producer has been closed is undefined behavior. This is a precondition of
// the type and is not checked.
//
// # Indexing
//
// At and Lookup accept negative indices, which count from the end: index i < 0
// refers to element length+i. Any index that is still outside [0, length) after
// normalisation is a bounds error. At panics with an *IndexError, Lookup returns it.
// Out-of-range access is never clamped.
//
// # Traversal
//
// Views are traversed either with range-over-func sequences:
//
//	for i, rec := range v.All() {
//	    ...
//	}
//
// or with a Cursor, which supports forward, backward and random-access movement:
//
//	for c := v.Begin(); c.Valid(); c.Next() {
//	    rec := c.Get()
//	    ...
//	}
//
// Fill, Sum and Dot are generic helpers written purely in terms of this
// addressing contract; they work the same on mapped and heap-backed views.
package view
