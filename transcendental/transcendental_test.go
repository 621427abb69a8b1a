package transcendental

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-bigfloat/bigsum/bigfloat"
)

func float64Of(t *testing.T, x *bigfloat.Float) float64 {
	t.Helper()
	f, _ := x.Float64()
	return f
}

func TestExpZero(t *testing.T) {
	z := bigfloat.New(53)
	z.SetFloat64(0, 53, bigfloat.RNDN)
	got, _ := Exp(z, 53, bigfloat.RNDN)
	require.Equal(t, 1.0, float64Of(t, got))
}

func TestExpOneMatchesMathExp(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(1, 53, bigfloat.RNDN)
	got, _ := Exp(x, 53, bigfloat.RNDN)
	require.InDelta(t, math.E, float64Of(t, got), 1e-9)
}

func TestLnOneIsZero(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(1, 53, bigfloat.RNDN)
	got, ternary := Ln(x, 53, bigfloat.RNDN)
	require.Equal(t, 0, ternary)
	require.True(t, got.IsZero())
}

func TestLnMatchesMathLog(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(2, 53, bigfloat.RNDN)
	got, _ := Ln(x, 53, bigfloat.RNDN)
	require.InDelta(t, math.Log(2), float64Of(t, got), 1e-9)
}

func TestLog10OfTenIsOne(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(10, 53, bigfloat.RNDN)
	got, _ := Log10(x, 53, bigfloat.RNDN)
	require.InDelta(t, 1.0, float64Of(t, got), 1e-9)
}

func TestLog10OfNegativeIsNaN(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(-1, 53, bigfloat.RNDN)
	got, _ := Log10(x, 53, bigfloat.RNDN)
	require.True(t, got.IsNaN())
}

func TestSinhZero(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(0, 53, bigfloat.RNDN)
	got, _ := Sinh(x, 53, bigfloat.RNDN)
	require.True(t, got.IsZero())
}

func TestCoshZeroIsOne(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(0, 53, bigfloat.RNDN)
	got, _ := Cosh(x, 53, bigfloat.RNDN)
	require.InDelta(t, 1.0, float64Of(t, got), 1e-9)
}

func TestSinhCoshMatchMath(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(0.5, 53, bigfloat.RNDN)
	s, _ := Sinh(x, 53, bigfloat.RNDN)
	c, _ := Cosh(x, 53, bigfloat.RNDN)
	require.InDelta(t, math.Sinh(0.5), float64Of(t, s), 1e-9)
	require.InDelta(t, math.Cosh(0.5), float64Of(t, c), 1e-9)
}

func TestAcosOneIsZero(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(1, 53, bigfloat.RNDN)
	got, _ := Acos(x, 53, bigfloat.RNDN)
	require.True(t, got.IsZero())
}

func TestAcosNegOneIsPi(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(-1, 53, bigfloat.RNDN)
	got, _ := Acos(x, 53, bigfloat.RNDN)
	require.InDelta(t, math.Pi, float64Of(t, got), 1e-9)
}

func TestAcosOutOfRangeIsNaN(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(2, 53, bigfloat.RNDN)
	got, _ := Acos(x, 53, bigfloat.RNDN)
	require.True(t, got.IsNaN())
}

func TestAcosMatchesMath(t *testing.T) {
	x := bigfloat.New(53)
	x.SetFloat64(0.5, 53, bigfloat.RNDN)
	got, _ := Acos(x, 53, bigfloat.RNDN)
	require.InDelta(t, math.Acos(0.5), float64Of(t, got), 1e-9)
}

func TestPiMatchesMath(t *testing.T) {
	got, _ := Pi(53, bigfloat.RNDN)
	require.InDelta(t, math.Pi, float64Of(t, got), 1e-9)
}
