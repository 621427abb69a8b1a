package bigfloat

import (
	"math/big"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

// Div sets z to the rounded quotient x/y at prec bits and returns the
// ternary value. Not part of the summation core; package transcendental
// needs it for argument reduction and series evaluation (e.g. Log10's
// ln(a)/ln(10)), the same role mpfr_div plays in log_base_10.c.
//
// The quotient's mantissa is computed via math/big's division on the
// normalized operand magnitudes rather than a hand-rolled long-division
// loop: division doesn't benefit from bigfft the way multiplication does
// (see mul_bigfft.go), and the pack doesn't offer a dedicated
// arbitrary-precision division library beyond math/big itself, so this
// is one of the few places BigFloat leans on the standard library for
// more than a narrow final step (see DESIGN.md).
func (z *Float) Div(x, y *Float, prec uint, mode RoundingMode) int {
	if x.kind == NaN || y.kind == NaN {
		z.SetNaN()
		return 0
	}
	if y.kind == Zero {
		if x.kind == Zero {
			z.SetNaN()
			return 0
		}
		z.SetInf(signOf(x.neg != y.neg))
		return 0
	}
	if x.kind == Inf && y.kind == Inf {
		z.SetNaN()
		return 0
	}
	if x.kind == Inf {
		z.SetInf(signOf(x.neg != y.neg))
		return 0
	}
	if y.kind == Inf {
		z.SetZero(signOf(x.neg != y.neg))
		return 0
	}
	if x.kind == Zero {
		z.SetZero(signOf(x.neg != y.neg))
		return 0
	}

	neg := x.neg != y.neg
	xi := natToBigInt(x.mant)
	yi := natToBigInt(y.mant)

	// Scale the dividend left so the truncated quotient carries at
	// least prec+2 significant bits beyond yi's own width.
	shift := prec + 2 + uint(yi.BitLen())
	num := new(big.Int).Lsh(xi, shift)
	q, r := new(big.Int).QuoRem(num, yi, new(big.Int))

	qLimbs := bigIntToNat(q, PrecToLimbs(uint(q.BitLen())))
	s := fnorm(qLimbs)
	qBase := int64(len(qLimbs)) * int64(limb.Bits)

	sbit := uint(0)
	if r.Sign() != 0 {
		sbit = 1
	}

	dst, expAdj, ternary := roundMantissa(qLimbs, prec, sbit, mode, neg)

	// x.value/y.value = (xi/yi) * 2^(x.exp-Lx*W - y.exp+Ly*W), and
	// q ~= xi*2^shift/yi, so x.value/y.value ~= q * 2^(baseExp) with
	// baseExp counted relative to q's own (unnormalized) bit width.
	baseExp := x.exp - int64(len(x.mant))*int64(limb.Bits) -
		y.exp + int64(len(y.mant))*int64(limb.Bits) - int64(shift) +
		qBase - int64(s)

	z.kind = Regular
	z.neg = neg
	z.prec = uint32(prec)
	z.exp = baseExp + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}

// Sqrt sets z to the rounded square root of x at prec bits and returns
// the ternary value. Grounded the same way as Div: math/big's Sqrt on
// the mantissa magnitude, scaled to an even power of two first so the
// exponent halves exactly (see DESIGN.md).
func (z *Float) Sqrt(x *Float, prec uint, mode RoundingMode) int {
	if x.kind == NaN || (x.kind == Regular && x.neg) {
		z.SetNaN()
		return 0
	}
	if x.kind == Zero {
		z.SetZero(signOf(x.neg))
		return 0
	}
	if x.kind == Inf {
		z.SetInf(1)
		return 0
	}

	xi := natToBigInt(x.mant)
	e := x.exp - int64(len(x.mant))*int64(limb.Bits) // x.value = xi * 2^e
	if e%2 != 0 {
		xi = new(big.Int).Lsh(xi, 1)
		e--
	}

	guard := int64(2 * (prec + 4))
	n := new(big.Int).Lsh(xi, uint(guard))
	root := new(big.Int).Sqrt(n)
	rem := new(big.Int).Sub(n, new(big.Int).Mul(root, root))
	half := (e - guard) / 2

	rootLimbs := bigIntToNat(root, PrecToLimbs(uint(root.BitLen())))
	s := fnorm(rootLimbs)
	baseExp := half - int64(s) + int64(len(rootLimbs))*int64(limb.Bits)

	sbit := uint(0)
	if rem.Sign() != 0 {
		sbit = 1
	}

	dst, expAdj, ternary := roundMantissa(rootLimbs, prec, sbit, mode, false)
	z.kind = Regular
	z.neg = false
	z.prec = uint32(prec)
	z.exp = baseExp + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}
