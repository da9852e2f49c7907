package view

import (
	"fmt"
	"unsafe"
)

// View is a typed window of Len elements spaced Stride bytes apart.
// The zero value is an empty view.
type View[T any] struct {
	base   unsafe.Pointer
	length int
	stride int
}

// SizeOf returns the size in bytes of one T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func alignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// Make builds a view of length elements at base, stride bytes apart.
// base must stay valid for as long as the view is used.
func Make[T any](base unsafe.Pointer, length, stride int) (View[T], error) {
	if length < 0 {
		return View[T]{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if length == 0 {
		return View[T]{stride: stride}, nil
	}
	if base == nil {
		return View[T]{}, ErrNilBase
	}
	if uintptr(base)%alignOf[T]() != 0 {
		return View[T]{}, ErrMisaligned
	}
	if length > 1 {
		if size := SizeOf[T](); abs(stride) < size {
			return View[T]{}, fmt.Errorf("%w: stride %d, element size %d", ErrInvalidStride, stride, size)
		}
		if uintptr(abs(stride))%alignOf[T]() != 0 {
			return View[T]{}, fmt.Errorf("%w: stride %d", ErrMisaligned, stride)
		}
	}
	return View[T]{base: base, length: length, stride: stride}, nil
}

// Packed builds a view of length contiguous elements at base.
func Packed[T any](base unsafe.Pointer, length int) (View[T], error) {
	return Make[T](base, length, SizeOf[T]())
}

// FromSlice returns a packed view over the elements of s.
func FromSlice[T any](s []T) View[T] {
	return View[T]{
		base:   unsafe.Pointer(unsafe.SliceData(s)),
		length: len(s),
		stride: SizeOf[T](),
	}
}

// FromBytes reinterprets b as elements of T spaced stride bytes apart.
// len(b) must be a whole number of strides and b must be aligned for T.
// The caller is responsible for the bytes having T's in-memory representation.
func FromBytes[T any](b []byte, stride int) (View[T], error) {
	size := SizeOf[T]()
	if stride < size || stride <= 0 {
		return View[T]{}, fmt.Errorf("%w: stride %d, element size %d", ErrInvalidStride, stride, size)
	}
	if len(b)%stride != 0 {
		return View[T]{}, fmt.Errorf("%w: %d bytes, stride %d", ErrPartialElement, len(b), stride)
	}
	if len(b) == 0 {
		return View[T]{stride: stride}, nil
	}
	return Make[T](unsafe.Pointer(unsafe.SliceData(b)), len(b)/stride, stride)
}

// Len returns the number of elements.
func (v View[T]) Len() int { return v.length }

// Stride returns the byte offset between successive elements.
func (v View[T]) Stride() int { return v.stride }

// Base returns the address of element 0 (nil for an empty view).
func (v View[T]) Base() unsafe.Pointer { return v.base }

// Packed reports whether elements are contiguous and in ascending order.
func (v View[T]) Packed() bool { return v.stride == SizeOf[T]() }

// index normalises i and checks it against [0, length).
func (v View[T]) index(i int) (int, error) {
	j := i
	if j < 0 {
		j += v.length
	}
	if j < 0 || j >= v.length {
		return 0, &IndexError{Index: i, Length: v.length}
	}
	return j, nil
}

// addr must only be called with 0 <= i < length.
func (v View[T]) addr(i int) unsafe.Pointer {
	return unsafe.Add(v.base, v.stride*i)
}

// Addr returns the address of element i (negative i counts from the end).
// It panics with an *IndexError when i is out of range.
func (v View[T]) Addr(i int) unsafe.Pointer {
	j, err := v.index(i)
	if err != nil {
		panic(err)
	}
	return v.addr(j)
}

// At returns a pointer to element i (negative i counts from the end).
// It panics with an *IndexError when i is out of range.
func (v View[T]) At(i int) *T {
	return (*T)(v.Addr(i))
}

// Lookup is At with an error instead of a panic.
func (v View[T]) Lookup(i int) (*T, error) {
	j, err := v.index(i)
	if err != nil {
		return nil, err
	}
	return (*T)(v.addr(j)), nil
}

// Slice returns the sub-view of elements [lo, hi). It panics with an *IndexError
// unless 0 <= lo <= hi <= Len.
func (v View[T]) Slice(lo, hi int) View[T] {
	if lo < 0 || lo > v.length {
		panic(&IndexError{Index: lo, Length: v.length})
	}
	if hi < lo || hi > v.length {
		panic(&IndexError{Index: hi, Length: v.length})
	}
	if lo == hi {
		return View[T]{stride: v.stride}
	}
	return View[T]{base: v.addr(lo), length: hi - lo, stride: v.stride}
}

// Step returns a view of every k-th element starting with element 0.
// It panics if k < 1.
func (v View[T]) Step(k int) View[T] {
	if k < 1 {
		panic(fmt.Sprintf("view: step %d must be positive", k))
	}
	if v.length == 0 {
		return View[T]{stride: v.stride * k}
	}
	return View[T]{base: v.base, length: (v.length + k - 1) / k, stride: v.stride * k}
}

// Reverse returns a view of the same elements in reverse order.
func (v View[T]) Reverse() View[T] {
	if v.length == 0 {
		return View[T]{stride: -v.stride}
	}
	return View[T]{base: v.addr(v.length - 1), length: v.length, stride: -v.stride}
}

// Project returns a view of the field of type F found offset bytes into each
// element of v. The result keeps v's stride, so it is strided whenever F is
// smaller than T. Use unsafe.Offsetof to obtain offset.
func Project[T, F any](v View[T], offset uintptr) (View[F], error) {
	if offset+uintptr(SizeOf[F]()) > uintptr(SizeOf[T]()) {
		return View[F]{}, fmt.Errorf("%w: offset %d, field size %d, element size %d",
			ErrInvalidField, offset, SizeOf[F](), SizeOf[T]())
	}
	if offset%alignOf[F]() != 0 {
		return View[F]{}, fmt.Errorf("%w: field offset %d", ErrMisaligned, offset)
	}
	if v.length == 0 {
		return View[F]{stride: v.stride}, nil
	}
	return View[F]{base: unsafe.Add(v.base, offset), length: v.length, stride: v.stride}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
