package store

// Result is the outcome of a read against the persistence port: either a
// value, or an unavailable marker carrying the storage error. Callers
// choose their fallback explicitly with OrElse.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successfully read value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Unavailable marks a read that failed because storage could not serve it.
func Unavailable[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnavailable
	}
	return Result[T]{err: err}
}

// Available reports whether the read succeeded.
func (r Result[T]) Available() bool {
	return r.err == nil
}

// Get returns the value and the storage error, if any.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Err returns the storage error, or nil when the value is available.
func (r Result[T]) Err() error {
	return r.err
}

// OrElse returns the value, or fallback when storage was unavailable.
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}
