package effectrt

import (
	"fmt"
)

// RenderBufferSize bounds the output of [Array.Render]. At most
// RenderBufferSize-1 bytes are produced, the closing bracket included: a
// rendering of up to RenderBufferSize-2 bytes before the bracket is complete,
// and anything longer is cut to RenderBufferSize-1 bytes, without the
// bracket.
const RenderBufferSize = 512

// Array is the dynamic array used by generated code: an ordered sequence
// with explicit length and capacity. When full, capacity grows to 2*cap+1,
// and the contents move to a new handle.
type Array[T any] struct {
	elements []T
}

// NewArray returns an array with the given capacity, holding values (which
// may exceed the capacity).
func NewArray[T any](capacity int, values ...T) *Array[T] {
	elements := make([]T, len(values), max(capacity, len(values)))
	copy(elements, values)
	return &Array[T]{elements: elements}
}

// Append adds v to the end of the array, and returns the array handle, which
// is a new handle if the capacity had to grow. Callers must use the returned
// handle. Appending to a nil array allocates one.
func (x *Array[T]) Append(v T) *Array[T] {
	if x == nil {
		x = NewArray[T](0)
	}
	if len(x.elements) == cap(x.elements) {
		grown := make([]T, len(x.elements), 2*cap(x.elements)+1)
		copy(grown, x.elements)
		x = &Array[T]{elements: grown}
	}
	x.elements = append(x.elements, v)
	return x
}

// Len returns the number of elements.
func (x *Array[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.elements)
}

// Cap returns the capacity.
func (x *Array[T]) Cap() int {
	if x == nil {
		return 0
	}
	return cap(x.elements)
}

// At returns the element at index i.
func (x *Array[T]) At(i int) T {
	return x.elements[i]
}

// Values returns a copy of the elements.
func (x *Array[T]) Values() []T {
	if x == nil {
		return nil
	}
	return append([]T(nil), x.elements...)
}

// Render formats the contents as "[v0, v1, ...]", in a new buffer of at most
// [RenderBufferSize]-1 bytes.
func (x *Array[T]) Render() []byte {
	const limit = RenderBufferSize - 1
	buf := make([]byte, 1, 64)
	buf[0] = '['
	for i, v := range x.Values() {
		if i != 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "%v", v)
		if len(buf) >= limit {
			return buf[:limit:limit]
		}
	}
	return append(buf, ']')
}
