package sum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-bigfloat/bigsum/bigfloat"
)

func TestLegacySumMatchesSimpleCase(t *testing.T) {
	inputs := make([]*bigfloat.Float, 0, 4)
	for _, v := range []float64{1, 2, 3, 4} {
		x := bigfloat.New(53)
		x.SetFloat64(v, 53, bigfloat.RNDN)
		inputs = append(inputs, x)
	}
	z, ternary := LegacySum(inputs, 53, bigfloat.RNDN)
	require.Equal(t, 0, ternary)
	f, _ := z.Float64()
	require.Equal(t, 10.0, f)
}

func TestCanRoundAmbiguousWhenMarginUniform(t *testing.T) {
	x := bigfloat.New(64)
	x.SetFloat64(1.0, 64, bigfloat.RNDN)
	// 1.0's mantissa is all-zero below its leading bit, so the margin
	// between the rounding boundary and the claimed error bound is a
	// uniform run of zeros: a small perturbation within the error bound
	// could still flip the rounding decision, so this must report false.
	require.False(t, CanRound(x, 64, 32, bigfloat.RNDN))
}

func TestCanRoundUnambiguousWhenMarginMixed(t *testing.T) {
	x, _, err := bigfloat.Parse("1.3", 64, bigfloat.RNDN)
	require.NoError(t, err)
	require.True(t, CanRound(x, 64, 32, bigfloat.RNDN))
}

func TestCanRoundFailsWhenErrPrecTooSmall(t *testing.T) {
	x := bigfloat.New(64)
	x.SetFloat64(1.0, 64, bigfloat.RNDN)
	require.False(t, CanRound(x, 16, 32, bigfloat.RNDN))
}
