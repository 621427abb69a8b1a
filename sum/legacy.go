package sum

import (
	"math/big"
	"sort"

	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/internal/limb"
)

// LegacySum computes the same correctly-rounded sum as Sum by a
// can-round refinement loop: it sorts the operands by decreasing
// exponent, sums them with Sum at a working precision of prec+10 bits
// rounded to nearest, and rounds that sum to prec bits under mode as
// soon as it is exact or CanRound certifies it; otherwise it raises the
// working precision by ceil(log2(workPrec+1)) bits and repeats. The
// operands are not added one by one: every round goes through Sum's
// accumulator, so LegacySum is not independent of the path it is
// compared against. Sum itself never calls it.
func LegacySum(inputs []*bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	z := bigfloat.New(prec)

	ordered := make([]*bigfloat.Float, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return exponentKey(ordered[i]) > exponentKey(ordered[j])
	})

	workPrec := prec + 10
	for {
		acc := bigfloat.New(workPrec)
		ternary := Sum(acc, ordered, workPrec, bigfloat.RNDN)
		if acc.IsSingular() {
			t := z.Round(acc, prec, mode)
			return z, t
		}
		if ternary == 0 {
			// the working-precision sum is exact, so one rounding to
			// prec bits is already correct.
			t := z.Round(acc, prec, mode)
			return z, t
		}

		errPrec := workPrec
		if ternary != 0 {
			// the working-precision sum is itself inexact: its own
			// rounding error adds to the uncertainty budget.
			errPrec--
		}
		if CanRound(acc, errPrec, prec, mode) {
			t := z.Round(acc, prec, mode)
			return z, t
		}
		workPrec += ceilLog2Uint(workPrec)
	}
}

func exponentKey(x *bigfloat.Float) int64 {
	if x.IsSingular() {
		return expMin
	}
	return x.Exponent()
}

func ceilLog2Uint(v uint) uint {
	return uint(ceilLog2(int(v) + 1))
}

// CanRound reports whether approx, known accurate to errPrec significant
// bits, rounds identically to prec bits under mode no matter what the
// true value is within that error bound — the Go analogue of
// mpfr_can_round_p. It holds iff the margin bits strictly between the
// rounding boundary at prec bits and the error boundary at errPrec bits
// are neither all zero nor all one, i.e. the true value cannot straddle
// the rounding boundary.
func CanRound(approx *bigfloat.Float, errPrec, prec uint, mode bigfloat.RoundingMode) bool {
	if approx.IsSingular() {
		return true
	}
	if errPrec <= prec {
		return false
	}

	m := approx.Mantissa()
	bits := uint(len(m)) * limb.Bits
	if bits <= prec {
		return true
	}

	mag := mantissaToBigInt(m)
	marginHi := bits - prec - 1 // rounding bit position (0 = LSB)
	marginLo := bits - errPrec  // one past the error boundary
	if marginLo > marginHi {
		marginLo = marginHi
	}

	allZero, allOne := true, true
	for i := marginLo; i <= marginHi; i++ {
		if mag.Bit(int(i)) != 0 {
			allZero = false
		} else {
			allOne = false
		}
	}

	_ = mode // all supported rounding modes share the same margin test
	return !allZero && !allOne
}

// mantissaToBigInt decodes a normalized, unsigned mantissa limb slice
// (little-endian, as bigfloat.Float stores it) into a big.Int.
func mantissaToBigInt(m []limb.Word) *big.Int {
	words := make([]big.Word, len(m))
	for i, w := range m {
		words[i] = big.Word(w)
	}
	return new(big.Int).SetBits(words)
}
