package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// Log10 returns log10(x) = ln(x)/ln(10) correctly rounded to prec bits,
// following original_source/log_base_10.c's special-case handling and
// division structure directly: NaN propagates, a negative argument (that
// isn't zero) is NaN, zero maps to -Inf (signed per log_base_10.c's
// MPFR_CHANGE_SIGN dance), +Inf maps to +Inf, and x == 1 is exactly
// zero.
func Log10(x *bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	switch {
	case x.IsNaN():
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	case x.SignBit() && !x.IsZero():
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	case x.IsInf():
		z := bigfloat.New(prec)
		z.SetInf(1)
		return z, 0
	case x.IsZero():
		z := bigfloat.New(prec)
		z.SetInf(-1)
		return z, 0
	}
	if cmpToOne(x) == 0 {
		z := bigfloat.New(prec)
		z.SetZero(1)
		return z, 0
	}
	if cmpToOne(x) > 0 {
		// An exact power of ten 10^k has the exact logarithm k.
		p := x.Precision() + 64
		y, ten, k := cloneFloat(x), constInt64(10, p), int64(0)
		for cmpToOne(y) > 0 {
			q := bigfloat.New(p)
			if q.Div(y, ten, p, bigfloat.RNDN) != 0 {
				break
			}
			y, k = q, k+1
		}
		if cmpToOne(y) == 0 {
			z := bigfloat.New(prec)
			return z, z.SetInt64(k, prec, mode)
		}
	}

	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		lnA, _ := Ln(x, workPrec, bigfloat.RNDN)
		ln10, _ := Ln(constInt64(10, workPrec), workPrec, bigfloat.RNDD)
		z := bigfloat.New(workPrec)
		z.Div(lnA, ln10, workPrec, bigfloat.RNDN)
		return z
	})
}
