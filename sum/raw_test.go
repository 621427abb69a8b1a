package sum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/internal/limb"
)

func TestCountCancelledAllZero(t *testing.T) {
	acc := make([]limb.Word, 3)
	cancel, isZero := countCancelled(acc)
	require.True(t, isZero)
	require.Equal(t, int64(0), cancel)
}

func TestCountCancelledAllOnes(t *testing.T) {
	acc := []limb.Word{limb.Max, limb.Max}
	cancel, isZero := countCancelled(acc)
	require.False(t, isZero)
	require.Equal(t, int64(len(acc))*int64(limb.Bits), cancel)
}

func TestCountCancelledMixed(t *testing.T) {
	acc := make([]limb.Word, 2)
	acc[1] = 1 // top limb: 0...01, one leading cancelled bit less than all-zero
	cancel, isZero := countCancelled(acc)
	require.False(t, isZero)
	require.Equal(t, int64(limb.Bits-1), cancel)
}

func TestSumRawAccumulatesPositiveInputs(t *testing.T) {
	w := newWindowSize(4, 53)
	acc := make([]limb.Word, w.ws)

	a := bigfloat.New(53)
	a.SetFloat64(3, 53, bigfloat.RNDN)
	b := bigfloat.New(53)
	b.SetFloat64(4, 53, bigfloat.RNDN)

	maxexp0 := a.Exponent()
	if b.Exponent() > maxexp0 {
		maxexp0 = b.Exponent()
	}
	minexp := maxexp0 - (w.wq - int64(w.cq))

	res := sumRaw(acc, w.wq, []*bigfloat.Float{a, b}, minexp, maxexp0, w.logn, w.cq, int64(53)+3)
	require.NotZero(t, res.cancel)
	require.False(t, res.neg)
}

func TestSumRawNegativeInput(t *testing.T) {
	w := newWindowSize(4, 53)
	acc := make([]limb.Word, w.ws)

	a := bigfloat.New(53)
	a.SetFloat64(-5, 53, bigfloat.RNDN)

	maxexp0 := a.Exponent()
	minexp := maxexp0 - (w.wq - int64(w.cq))

	res := sumRaw(acc, w.wq, []*bigfloat.Float{a}, minexp, maxexp0, w.logn, w.cq, int64(53)+3)
	require.True(t, res.neg)
}
