// Package transcendental implements a handful of BigFloat transcendental
// functions — Exp, Ln, Log10, Sinh, Cosh, Atan, Acos — that spec.md lists
// as "BigFloat transcendentals" out of scope for the summation core
// itself. They exist so bigfloat.Mul/bigfft have a caller besides Sum's
// internal bookkeeping, and so the library is a complete, runnable
// numeric package rather than a pure summation stub.
//
// Each function follows the precision-doubling discipline
// original_source/acos.c and original_source/log_base_10.c use: evaluate
// at a working precision comfortably above the target, check whether the
// result can be rounded unambiguously with sum.CanRound (the Go analogue
// of mpfr_can_round_p both files call), and bump the working precision by
// ceil(log2(workPrec)) and retry otherwise.
package transcendental

import (
	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/sum"
)

// refine runs compute at successively larger working precisions until
// its result can be rounded to prec bits unambiguously, then rounds and
// returns the final value and ternary.
func refine(prec uint, mode bigfloat.RoundingMode, compute func(workPrec uint) *bigfloat.Float) (*bigfloat.Float, int) {
	workPrec := prec + 16
	for {
		approx := compute(workPrec)
		z := bigfloat.New(prec)
		if approx.IsSingular() {
			t := z.Round(approx, prec, mode)
			return z, t
		}

		errPrec := workPrec - 4 // matches log_base_10.c's err = Nt - 4 budget
		if sum.CanRound(approx, errPrec, prec, mode) {
			t := z.Round(approx, prec, mode)
			return z, t
		}
		workPrec += ceilLog2(workPrec)
	}
}

// ceilLog2 returns ceil(log2(v)) for v >= 1.
func ceilLog2(v uint) uint {
	n := uint(0)
	for (uint(1) << n) < v {
		n++
	}
	return n
}

func cloneFloat(x *bigfloat.Float) *bigfloat.Float {
	z := bigfloat.New(x.Precision())
	z.Set(x)
	return z
}

func constInt64(v int64, prec uint) *bigfloat.Float {
	z := bigfloat.New(prec)
	z.SetInt64(v, prec, bigfloat.RNDN)
	return z
}

func constRat(num, den int64, prec uint) *bigfloat.Float {
	n := constInt64(num, prec)
	d := constInt64(den, prec)
	z := bigfloat.New(prec)
	z.Div(n, d, prec, bigfloat.RNDN)
	return z
}

// sumTerms combines a Taylor series' accumulated terms into z via
// sum.Sum rather than a left-to-right running total, so the series
// evaluators exercise the same correctly-rounded accumulator the rest of
// this module is built around instead of reintroducing the
// order-dependent rounding error Sum exists to avoid.
func sumTerms(z *bigfloat.Float, terms []*bigfloat.Float, prec uint) {
	sum.Sum(z, terms, prec, bigfloat.RNDN)
}
