package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// Acos returns arccos(x) correctly rounded to prec bits, following
// original_source/acos.c's structure: |x| > 1 is NaN, x == -1 is pi,
// x == 1 is exactly zero, and otherwise
//
//	arcc = atan(x / sqrt(1 - x^2))
//	acos(x) = pi/2 - arcc
//
// exactly as acos.c's general case computes it (its precision-doubling
// supplement term, which only tunes the working precision for a
// known-hard region near x == +-1, is folded here into refine's generic
// growth instead of being special-cased).
func Acos(x *bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	if x.IsNaN() || absGreaterThanOne(x) {
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	}
	if cmpToOne(x) == 0 {
		z := bigfloat.New(prec)
		z.SetZero(1)
		return z, 0
	}
	if cmpToNegOne(x) == 0 {
		return Pi(prec, mode)
	}

	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		xw := bigfloat.New(workPrec)
		xw.Round(x, workPrec, bigfloat.RNDN)

		x2 := bigfloat.New(workPrec)
		x2.Mul(xw, xw, workPrec, bigfloat.RNDN)
		negX2 := cloneFloat(x2)
		negX2.SetSign(!x2.SignBit())
		oneMinusX2 := bigfloat.New(workPrec)
		oneMinusX2.Add(constInt64(1, workPrec), negX2, workPrec, bigfloat.RNDN)

		root := bigfloat.New(workPrec)
		root.Sqrt(oneMinusX2, workPrec, bigfloat.RNDN)

		ratio := bigfloat.New(workPrec)
		ratio.Div(xw, root, workPrec, bigfloat.RNDN)

		arcc, _ := Atan(ratio, workPrec, bigfloat.RNDN)

		pi, _ := Pi(workPrec, bigfloat.RNDN)
		pi.SetExponent(pi.Exponent() - 1) // pi/2

		negArcc := cloneFloat(arcc)
		negArcc.SetSign(!arcc.SignBit())

		z := bigfloat.New(workPrec)
		z.Add(pi, negArcc, workPrec, bigfloat.RNDN)
		return z
	})
}

func cmpToNegOne(x *bigfloat.Float) int {
	negOne := bigfloat.New(x.Precision())
	negOne.SetInt64(-1, x.Precision(), bigfloat.RNDN)
	return x.Cmp(negOne)
}
