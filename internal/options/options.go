// Package options implements the functional option pattern shared by mandv packages.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

type funcOption[T any] func(T) error

func (f funcOption[T]) apply(target T) error {
	return f(target)
}

// New wraps fn as an Option. An error returned by fn aborts Apply.
func New[T any](fn func(T) error) Option[T] {
	return funcOption[T](fn)
}

// NoError wraps a setter that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return funcOption[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order, skipping nil options.
// It stops at the first failing option and returns its error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
