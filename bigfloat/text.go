package bigfloat

import (
	"fmt"
	"math/big"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

// String renders x in decimal with the shortest 'g' format (exponent
// notation only for large or small exponents), for diagnostics and for
// the cmd/bigsum CLI. The decimal conversion itself goes through a
// math/big.Float at a few guard bits above x's own precision; x itself is
// unaffected.
func (x *Float) String() string {
	switch x.kind {
	case NaN:
		return "NaN"
	case Inf:
		if x.neg {
			return "-Inf"
		}
		return "Inf"
	case Zero:
		if x.neg {
			return "-0"
		}
		return "0"
	}
	return toStdBigFloat(x, x.Precision()+8).Text('g', -1)
}

func toStdBigFloat(x *Float, prec uint) *big.Float {
	bf := new(big.Float).SetPrec(prec)
	m := new(big.Int)
	words := make([]big.Word, len(x.mant))
	for i, w := range x.mant {
		words[i] = big.Word(w)
	}
	m.SetBits(words)
	bf.SetInt(m)
	bf.SetMantExp(bf, int(x.exp)-len(x.mant)*limb.Bits)
	if x.neg {
		bf.Neg(bf)
	}
	return bf
}

// Parse parses the decimal literal s (as accepted by math/big.Rat.SetString:
// optional sign, integer or decimal-point form, optional decimal exponent),
// rounds it to prec bits according to mode, and returns the resulting Float
// together with the ternary value.
//
// The numerator and denominator of the exact rational value are obtained
// from math/big.Rat — stdlib's correctly-exact decimal parser, which
// nothing in the pack replaces — and then divided out to prec-plus-guard
// bits of binary precision with an explicit remainder (sticky bit) using
// plain big.Int division, so the actual rounding decision is made by this
// package's own roundMantissa, exactly as every other Float constructor
// uses it.
func Parse(s string, prec uint, mode RoundingMode) (*Float, int, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, 0, fmt.Errorf("bigfloat: invalid number %q", s)
	}

	z := New(prec)
	if r.Sign() == 0 {
		z.SetZero(1)
		return z, 0, nil
	}

	neg := r.Sign() < 0
	num := new(big.Int).Abs(r.Num())
	den := r.Denom()

	shift := uint(prec) + 64 + uint(den.BitLen()) + 2
	numShifted := new(big.Int).Lsh(num, shift)
	q, rem := new(big.Int).QuoRem(numShifted, den, new(big.Int))

	sbit := uint(0)
	if rem.Sign() != 0 {
		sbit = 1
	}

	qwords := q.Bits()
	raw := make([]limb.Word, len(qwords))
	for i, w := range qwords {
		raw[i] = limb.Word(w)
	}

	s2 := fnorm(raw)
	rawExp := int64(len(raw))*limb.Bits - int64(shift) - int64(s2)

	dst, expAdj, ternary := roundMantissa(raw, prec, sbit, mode, neg)
	z.kind = Regular
	z.neg = neg
	z.prec = uint32(prec)
	z.exp = rawExp + expAdj
	z.mant = dst
	z.validate()
	ternary = CheckRange(z, ternary, mode)
	return z, ternary, nil
}
