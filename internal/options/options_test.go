package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type solverSettings struct {
	MaxEvaluations int
	Tolerance      float64
	calls          []string
}

func withMaxEvaluations(n int) Option[*solverSettings] {
	return New(func(s *solverSettings) error {
		if n <= 0 {
			return errors.New("max evaluations must be positive")
		}
		s.MaxEvaluations = n
		s.calls = append(s.calls, "max")

		return nil
	})
}

func withTolerance(tol float64) Option[*solverSettings] {
	return NoError(func(s *solverSettings) {
		s.Tolerance = tol
		s.calls = append(s.calls, "tol")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		s := &solverSettings{}
		err := Apply(s, withTolerance(1e-6), withMaxEvaluations(100))
		require.NoError(t, err)
		require.Equal(t, 100, s.MaxEvaluations)
		require.InDelta(t, 1e-6, s.Tolerance, 0)
		require.Equal(t, []string{"tol", "max"}, s.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		s := &solverSettings{}
		err := Apply(s, withMaxEvaluations(-1), withTolerance(1))
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be positive")
		require.Empty(t, s.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		s := &solverSettings{}
		require.NoError(t, Apply(s, nil, withTolerance(2)))
		require.InDelta(t, 2.0, s.Tolerance, 0)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		s := &solverSettings{MaxEvaluations: 7}
		require.NoError(t, Apply(s))
		require.Equal(t, 7, s.MaxEvaluations)
	})
}
