package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// Exp returns e^x correctly rounded to prec bits, via range reduction
// (exp(x) = exp(x/2^s)^(2^s), halving until the reduced argument is
// comfortably below 1) followed by a Taylor series on the reduced
// argument. No original_source/exp.c shipped with this pack; the
// halve-and-square shape mirrors how mpfr_exp itself is documented to
// work, evaluated here under the same precision-doubling/CanRound
// discipline as acos.c and log_base_10.c (see refine in
// transcendental.go).
func Exp(x *bigfloat.Float, prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	switch {
	case x.IsNaN():
		z := bigfloat.New(prec)
		z.SetNaN()
		return z, 0
	case x.IsInf():
		z := bigfloat.New(prec)
		if x.SignBit() {
			z.SetZero(1)
		} else {
			z.SetInf(1)
		}
		return z, 0
	case x.IsZero():
		return constInt64(1, prec), 0
	}

	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		return expSeries(x, workPrec)
	})
}

// expSeries evaluates exp(x) at workPrec bits of working precision.
func expSeries(x *bigfloat.Float, workPrec uint) *bigfloat.Float {
	s := 0
	if e := x.Exponent(); e > 0 {
		s = int(e) + 2
	}

	y := bigfloat.New(workPrec)
	y.Round(x, workPrec, bigfloat.RNDN)
	if s > 0 {
		y.SetExponent(y.Exponent() - int64(s))
	}

	terms := []*bigfloat.Float{constInt64(1, workPrec)}
	term := constInt64(1, workPrec)
	for k := int64(1); k <= int64(workPrec)+64; k++ {
		next := bigfloat.New(workPrec)
		next.Mul(term, y, workPrec, bigfloat.RNDN)
		kf := constInt64(k, workPrec)
		divided := bigfloat.New(workPrec)
		divided.Div(next, kf, workPrec, bigfloat.RNDN)
		term = divided
		terms = append(terms, cloneFloat(term))
		if term.IsZero() || term.Exponent() < -int64(workPrec) {
			break
		}
	}

	z := bigfloat.New(workPrec)
	sumTerms(z, terms, workPrec)

	for i := 0; i < s; i++ {
		sq := bigfloat.New(workPrec)
		sq.Mul(z, z, workPrec, bigfloat.RNDN)
		z = sq
	}
	return z
}
