package transcendental

import "github.com/go-bigfloat/bigsum/bigfloat"

// Pi returns the constant pi correctly rounded to prec bits, via
// Machin's formula pi = 16*atan(1/5) - 4*atan(1/239), the same
// arctangent machinery Atan/Acos already need, evaluated under the same
// precision-doubling discipline as the rest of this package.
func Pi(prec uint, mode bigfloat.RoundingMode) (*bigfloat.Float, int) {
	return refine(prec, mode, func(workPrec uint) *bigfloat.Float {
		a5 := atanReduced(constRat(1, 5, workPrec), workPrec)
		a239 := atanReduced(constRat(1, 239, workPrec), workPrec)

		t1 := bigfloat.New(workPrec)
		t1.Mul(constInt64(16, workPrec), a5, workPrec, bigfloat.RNDN)
		t2 := bigfloat.New(workPrec)
		t2.Mul(constInt64(4, workPrec), a239, workPrec, bigfloat.RNDN)
		negT2 := cloneFloat(t2)
		negT2.SetSign(!t2.SignBit())

		z := bigfloat.New(workPrec)
		z.Add(t1, negT2, workPrec, bigfloat.RNDN)
		return z
	})
}
