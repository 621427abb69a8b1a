package bigfloat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDivSimple(t *testing.T) {
	var x, y, z Float
	x.SetFloat64(6, 53, RNDN)
	y.SetFloat64(2, 53, RNDN)
	ternary := z.Div(&x, &y, 53, RNDN)
	require.Equal(t, 0, ternary)
	f, _ := z.Float64()
	require.Equal(t, 3.0, f)
}

func TestDivByZeroIsInf(t *testing.T) {
	var x, y, z Float
	x.SetFloat64(1, 53, RNDN)
	y.SetZero(1)
	z.Div(&x, &y, 53, RNDN)
	require.True(t, z.IsInf())
}

func TestSqrtFour(t *testing.T) {
	var x, z Float
	x.SetFloat64(4, 53, RNDN)
	ternary := z.Sqrt(&x, 53, RNDN)
	require.Equal(t, 0, ternary)
	f, _ := z.Float64()
	require.Equal(t, 2.0, f)
}

func TestSqrtTwoApprox(t *testing.T) {
	var x, z Float
	x.SetFloat64(2, 53, RNDN)
	z.Sqrt(&x, 53, RNDN)
	f, _ := z.Float64()
	require.InDelta(t, 1.4142135623730951, f, 1e-12)
}

func TestSqrtNegativeIsNaN(t *testing.T) {
	var x, z Float
	x.SetFloat64(-4, 53, RNDN)
	z.Sqrt(&x, 53, RNDN)
	require.True(t, z.IsNaN())
}
