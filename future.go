package effectrt

// Future is a single-assignment result cell. It is written once, by the
// operation producing the result, and read by the continuation waiting on it.
//
// The zero value is an unresolved future, ready for use.
type Future[T any] struct {
	value     T
	ready     bool
	cancelled bool
}

// Resolve sets the value and marks the future ready. It returns
// [ErrFutureResolved], leaving the stored value untouched, if the future was
// already ready.
func (x *Future[T]) Resolve(value T) error {
	if x.ready {
		return ErrFutureResolved
	}
	x.value = value
	x.ready = true
	return nil
}

// Ready reports whether the future has been resolved.
func (x *Future[T]) Ready() bool {
	return x != nil && x.ready
}

// Value returns the resolved value, and whether the future is ready. The
// zero value is returned for unresolved futures.
func (x *Future[T]) Value() (value T, ok bool) {
	if x == nil || !x.ready {
		return
	}
	return x.value, true
}

// Cancelled is reserved. Nothing in this package sets it.
func (x *Future[T]) Cancelled() bool {
	return x != nil && x.cancelled
}
