package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/errs"
)

var inf = math.Inf(1)

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop

	return out
}

func requireBounds(t *testing.T, want, got Bounds) {
	t.Helper()
	require.Len(t, got.Lower, len(want.Lower))
	require.Len(t, got.Upper, len(want.Upper))
	for i := range want.Lower {
		requireLimit(t, want.Lower[i], got.Lower[i])
		requireLimit(t, want.Upper[i], got.Upper[i])
	}
}

func requireLimit(t *testing.T, want, got float64) {
	t.Helper()
	if math.IsInf(want, 0) {
		require.Equal(t, want, got)
		return
	}
	require.InDelta(t, want, got, 1e-12)
}

func TestDailyBounds(t *testing.T) {
	x := linspace(1, 10, 50)

	tests := []struct {
		name string
		fn   Func
		want Bounds
	}{
		{
			"2P", TwoP,
			Bounds{Lower: []float64{-inf, -inf}, Upper: []float64{inf, inf}},
		},
		{
			"3PC", ThreePC,
			Bounds{Lower: []float64{0, 0, 1.3673469387755102}, Upper: []float64{inf, inf, 9.63265306122449}},
		},
		{
			"3PH", ThreePH,
			Bounds{Lower: []float64{0, -inf, 1.3673469387755102}, Upper: []float64{inf, 0, 9.63265306122449}},
		},
		{
			"4P", FourP,
			Bounds{
				Lower: []float64{0, -inf, 0, 1.3673469387755102},
				Upper: []float64{inf, 0, inf, 9.63265306122449},
			},
		},
		{
			"5P", FiveP,
			Bounds{
				Lower: []float64{0, -inf, 0, 1.3673469387755102, 1.9183673469387754},
				Upper: []float64{inf, 0, inf, 9.081632653061225, 9.63265306122449},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(x)
			requireBounds(t, tt.want, got)
			require.NoError(t, got.Validate(len(tt.want.Lower)))
		})
	}
}

func TestPolicy(t *testing.T) {
	t.Run("non-negative 2P intercept", func(t *testing.T) {
		p := DefaultPolicy
		p.NonNegativeIntercept2P = true
		requireBounds(t, Bounds{Lower: []float64{0, -inf}, Upper: []float64{inf, inf}}, p.TwoP(nil))
	})

	t.Run("zero trim spans full range", func(t *testing.T) {
		p := Policy{}
		x := []float64{1, 2, 3, 4}
		b := p.ThreePC(x)
		require.InDelta(t, 1.0, b.Lower[2], 0)
		require.InDelta(t, 4.0, b.Upper[2], 0)
	})

	t.Run("single observation", func(t *testing.T) {
		b := DefaultPolicy.FiveP([]float64{7})
		require.InDelta(t, 7.0, b.Lower[3], 0)
		require.InDelta(t, 7.0, b.Upper[4], 0)
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, DefaultPolicy.Validate())
		require.ErrorIs(t, Policy{EdgeTrim: 0.5}.Validate(), errs.ErrInvalidConfiguration)
		require.ErrorIs(t, Policy{InnerTrim: -0.1}.Validate(), errs.ErrInvalidConfiguration)
	})
}

func TestBounds_Helpers(t *testing.T) {
	b := Bounds{Lower: []float64{0, -1}, Upper: []float64{1, 1}}

	require.True(t, b.Contains([]float64{0.5, 0}))
	require.False(t, b.Contains([]float64{2, 0}))
	require.False(t, b.Contains([]float64{0.5}))
	require.Equal(t, []float64{1, -1}, b.Project([]float64{3, -5}))

	require.ErrorIs(t, b.Validate(3), errs.ErrInvalidBounds)
	require.ErrorIs(t, Bounds{Lower: []float64{2}, Upper: []float64{1}}.Validate(1), errs.ErrInvalidBounds)
	require.ErrorIs(t, Bounds{Lower: []float64{math.NaN()}, Upper: []float64{1}}.Validate(1), errs.ErrInvalidBounds)
	require.ErrorIs(t, Bounds{Lower: []float64{0}, Upper: nil}.Validate(-1), errs.ErrInvalidBounds)
}

func TestSpec(t *testing.T) {
	var zero Spec
	require.True(t, zero.IsZero())
	requireBounds(t, Unbounded(3), zero.Resolve(nil, 3))

	fixedBounds := Bounds{Lower: []float64{0}, Upper: []float64{1}}
	fixed := Fixed(fixedBounds)
	fixedBounds.Lower[0] = -5
	require.True(t, fixed.IsFixed())
	require.Equal(t, 1, fixed.Len())
	require.InDelta(t, 0.0, fixed.Resolve(nil, 1).Lower[0], 0)

	var seen [][]float64
	computed := Computed(func(x []float64) Bounds {
		seen = append(seen, x)
		return Unbounded(1)
	})
	require.True(t, computed.IsComputed())
	require.Equal(t, -1, computed.Len())
	computed.Resolve([]float64{1, 2}, 1)
	require.Equal(t, [][]float64{{1, 2}}, seen)
}
