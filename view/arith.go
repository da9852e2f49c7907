package view

import (
	"fmt"
	"io"
	"strings"
)

// Number is the element constraint for the arithmetic helpers.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Fill stores val into every element of v.
// The memory behind v must be writable; views over read-only mappings fault.
func Fill[T any](v View[T], val T) {
	for _, e := range v.All() {
		*e = val
	}
}

// Sum adds every element of v to init.
func Sum[T Number](v View[T], init T) T {
	sum := init
	for _, e := range v.All() {
		sum += *e
	}
	return sum
}

// Dot returns init plus the pairwise products of a and b.
func Dot[T Number](a, b View[T], init T) (T, error) {
	if a.Len() != b.Len() {
		return init, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.Len(), b.Len())
	}
	dot := init
	ca, cb := a.Begin(), b.Begin()
	for ; ca.Valid(); ca.Next() {
		dot += *ca.Get() * *cb.Get()
		cb.Next()
	}
	return dot, nil
}

// Format writes v as "[e0, e1, ...]" using the default fmt verb for T.
func Format[T any](w io.Writer, v View[T]) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, e := range v.All() {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, *e); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// String implements fmt.Stringer.
func (v View[T]) String() string {
	var sb strings.Builder
	_ = Format(&sb, v)
	return sb.String()
}
