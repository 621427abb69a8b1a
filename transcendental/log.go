package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// Ln returns the natural logarithm of x correctly rounded to prec bits.
// It range-reduces x = m * 2^e with m in [1, 2) and uses
// ln(x) = e*ln(2) + ln(m), evaluating ln(m) via the atanh series
// ln(m) = 2*atanh(y), y = (m-1)/(m+1), which converges quickly since
// |y| <= 1/3 after reduction. ln(2) itself is obtained the same way, at
// y = 1/3 directly (m=2).
func Ln(x *bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	switch {
	case x.IsNaN() || x.SignBit() && !x.IsZero():
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	case x.IsZero():
		z := bigfloat.New(prec)
		z.SetInf(-1)
		return z, 0
	case x.IsInf():
		z := bigfloat.New(prec)
		z.SetInf(1)
		return z, 0
	}
	if cmpToOne(x) == 0 {
		z := bigfloat.New(prec)
		z.SetZero(1)
		return z, 0
	}

	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		return lnSeries(x, workPrec)
	})
}

// cmpToOne compares a Regular, positive x against 1.
func cmpToOne(x *bigfloat.Float) int {
	one := bigfloat.New(x.Precision())
	one.SetInt64(1, x.Precision(), bigfloat.RNDN)
	return x.Cmp(one)
}

func lnSeries(x *bigfloat.Float, workPrec uint) *bigfloat.Float {
	e := x.Exponent() - 1 // x = m * 2^e, m in [1,2)
	m := cloneFloat(x)
	m.Round(x, workPrec, bigfloat.RNDN)
	m.SetExponent(m.Exponent() - e)

	lnM := atanhSeries(yFromM(m, workPrec), workPrec)
	lnM.SetExponent(lnM.Exponent() + 1) // *2

	if e == 0 {
		return lnM
	}

	ln2 := atanhSeries(constRat(1, 3, workPrec), workPrec)
	ln2.SetExponent(ln2.Exponent() + 1)

	eTerm := bigfloat.New(workPrec)
	eTerm.SetInt64(e, workPrec, bigfloat.RNDN)
	scaled := bigfloat.New(workPrec)
	scaled.Mul(eTerm, ln2, workPrec, bigfloat.RNDN)

	z := bigfloat.New(workPrec)
	z.Add(scaled, lnM, workPrec, bigfloat.RNDN)
	return z
}

// yFromM computes y = (m-1)/(m+1) for the atanh reduction.
func yFromM(m *bigfloat.Float, workPrec uint) *bigfloat.Float {
	one := constInt64(1, workPrec)
	num := bigfloat.New(workPrec)
	negOne := cloneFloat(one)
	negOne.SetSign(true)
	num.Add(m, negOne, workPrec, bigfloat.RNDN)
	den := bigfloat.New(workPrec)
	den.Add(m, one, workPrec, bigfloat.RNDN)
	y := bigfloat.New(workPrec)
	y.Div(num, den, workPrec, bigfloat.RNDN)
	return y
}

// atanhSeries evaluates atanh(y) = y + y^3/3 + y^5/5 + ... via sum.Sum
// over the accumulated terms, for |y| < 1.
func atanhSeries(y *bigfloat.Float, workPrec uint) *bigfloat.Float {
	y2 := bigfloat.New(workPrec)
	y2.Mul(y, y, workPrec, bigfloat.RNDN)

	terms := []*bigfloat.Float{cloneFloat(y)}
	power := cloneFloat(y)
	for k := int64(3); k <= int64(workPrec)*2+64; k += 2 {
		next := bigfloat.New(workPrec)
		next.Mul(power, y2, workPrec, bigfloat.RNDN)
		power = next
		kf := constInt64(k, workPrec)
		term := bigfloat.New(workPrec)
		term.Div(power, kf, workPrec, bigfloat.RNDN)
		terms = append(terms, term)
		if term.IsZero() || term.Exponent() < -int64(workPrec) {
			break
		}
	}

	z := bigfloat.New(workPrec)
	sumTerms(z, terms, workPrec)
	return z
}
