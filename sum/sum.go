// Package sum implements the correctly-rounded summation of an arbitrary
// list of BigFloat values (see package bigfloat), a direct generalization
// of two-operand Add to n operands in a single rounding, following the
// pre-scan / block-accumulate / final-rounding structure of MPFR's
// mpfr_sum.
package sum

import "github.com/go-bigfloat/bigsum/bigfloat"

// Sum sets z to the correctly rounded value of the sum of inputs at prec
// bits according to mode, and returns the ternary value (negative, zero,
// or positive according to whether the rounded result is less than,
// equal to, or greater than the exact sum). It mirrors mpfr_sum's top-level
// dispatch: a pre-scan classifies special values and locates the n<=2 /
// rn<=2 fast paths, falling back to sumAux (the generic, cancellation-safe
// accumulation path) only when at least 3 regular operands remain.
func Sum(z *bigfloat.Float, inputs []*bigfloat.Float, prec uint, mode bigfloat.RoundingMode) int {
	if len(inputs) == 0 {
		z.SetZero(1)
		return 0
	}

	sawInf := false
	infNeg := false
	mixedInfSigns := false
	sawZero, sawPosZero, sawNegZero := false, false, false
	maxexp := int64(expMin)
	regular := make([]*bigfloat.Float, 0, len(inputs))

	for _, x := range inputs {
		switch {
		case x.IsNaN():
			z.SetNaN()
			return 0
		case x.IsInf():
			if sawInf && x.SignBit() != infNeg {
				mixedInfSigns = true
			}
			sawInf = true
			infNeg = x.SignBit()
		case x.IsZero():
			sawZero = true
			if x.SignBit() {
				sawNegZero = true
			} else {
				sawPosZero = true
			}
		default:
			regular = append(regular, x)
			if e := x.Exponent(); e > maxexp {
				maxexp = e
			}
		}
	}

	if mixedInfSigns {
		z.SetNaN()
		return 0
	}
	if sawInf {
		z.SetInf(signOf(infNeg))
		return 0
	}

	rn := len(regular)
	if rn == 0 {
		// All operands are zeros (or there are no operands, handled
		// above). +0 unless every zero is -0, or the signs are mixed
		// and mode rounds toward -Inf, matching mpfr_sum/IEEE 754.
		sign := 1
		switch {
		case sawNegZero && !sawPosZero:
			sign = -1
		case sawNegZero && sawPosZero && mode == bigfloat.RNDD:
			sign = -1
		case !sawZero:
			sign = 1
		}
		z.SetZero(sign)
		return 0
	}
	if rn == 1 {
		return z.Round(regular[0], prec, mode)
	}
	if rn == 2 {
		return z.Add(regular[0], regular[1], prec, mode)
	}

	return sumAux(z, regular, prec, mode, maxexp, rn)
}

func signOf(neg bool) int {
	if neg {
		return -1
	}
	return 1
}
