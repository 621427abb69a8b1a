package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// atanReduced evaluates atan(x) at workPrec bits for an x already known
// to satisfy |x| <= 1, by halving the argument with
// atan(x) = 2*atan(x/(1+sqrt(1+x^2))) until it is small enough for the
// Taylor series atan(y) = y - y^3/3 + y^5/5 - ... to converge quickly,
// then doubling back.
func atanReduced(x *bigfloat.Float, workPrec uint) *bigfloat.Float {
	const halvings = 4

	y := cloneFloat(x)
	y.Round(x, workPrec, bigfloat.RNDN)
	for i := 0; i < halvings; i++ {
		x2 := bigfloat.New(workPrec)
		x2.Mul(y, y, workPrec, bigfloat.RNDN)
		onePlus := bigfloat.New(workPrec)
		onePlus.Add(constInt64(1, workPrec), x2, workPrec, bigfloat.RNDN)
		root := bigfloat.New(workPrec)
		root.Sqrt(onePlus, workPrec, bigfloat.RNDN)
		denom := bigfloat.New(workPrec)
		denom.Add(constInt64(1, workPrec), root, workPrec, bigfloat.RNDN)
		next := bigfloat.New(workPrec)
		next.Div(y, denom, workPrec, bigfloat.RNDN)
		y = next
	}

	y2 := bigfloat.New(workPrec)
	y2.Mul(y, y, workPrec, bigfloat.RNDN)

	terms := []*bigfloat.Float{cloneFloat(y)}
	power := cloneFloat(y)
	neg := false
	for k := int64(3); k <= int64(workPrec)*2+64; k += 2 {
		next := bigfloat.New(workPrec)
		next.Mul(power, y2, workPrec, bigfloat.RNDN)
		power = next
		kf := constInt64(k, workPrec)
		term := bigfloat.New(workPrec)
		term.Div(power, kf, workPrec, bigfloat.RNDN)
		neg = !neg
		if neg {
			term.SetSign(!term.SignBit())
		}
		terms = append(terms, term)
		if term.IsZero() || term.Exponent() < -int64(workPrec) {
			break
		}
	}

	z := bigfloat.New(workPrec)
	sumTerms(z, terms, workPrec)

	for i := 0; i < halvings; i++ {
		z.SetExponent(z.Exponent() + 1)
	}
	return z
}

// Atan returns atan(x) correctly rounded to prec bits. Arguments with
// |x| > 1 are reduced via atan(x) = sign(x)*(pi/2 - atan(1/|x|)).
func Atan(x *bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	switch {
	case x.IsNaN():
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	case x.IsZero():
		z := bigfloat.New(prec)
		z.SetZero(signOfFloat(x))
		return z, 0
	case x.IsInf():
		half, _ := Pi(prec, bigfloat.RNDN)
		half.SetExponent(half.Exponent() - 1)
		half.SetSign(x.SignBit())
		return half, 0
	}

	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		if absGreaterThanOne(x) {
			absX := cloneFloat(x)
			absX.SetSign(false)
			recip := bigfloat.New(workPrec)
			recip.Div(constInt64(1, workPrec), absX, workPrec, bigfloat.RNDN)
			a := atanReduced(recip, workPrec)
			pi, _ := Pi(workPrec, bigfloat.RNDN)
			pi.SetExponent(pi.Exponent() - 1)
			z := bigfloat.New(workPrec)
			negA := cloneFloat(a)
			negA.SetSign(!a.SignBit())
			z.Add(pi, negA, workPrec, bigfloat.RNDN)
			if x.SignBit() {
				z.SetSign(true)
			}
			return z
		}
		return atanReduced(x, workPrec)
	})
}

func absGreaterThanOne(x *bigfloat.Float) bool {
	abs := cloneFloat(x)
	abs.SetSign(false)
	return cmpToOne(abs) > 0
}
