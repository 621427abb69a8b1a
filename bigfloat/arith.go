package bigfloat

import (
	"math"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

// SetFloat64 sets z to x rounded to prec bits and returns the ternary
// value. It is used for literal construction; sum's n==1 fast path does
// not go through it but calls Round directly.
func (z *Float) SetFloat64(x float64, prec uint, mode RoundingMode) int {
	if math.IsNaN(x) {
		z.SetNaN()
		return 0
	}
	if math.IsInf(x, 0) {
		sign := 1
		if x < 0 {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	}
	if x == 0 {
		sign := 1
		if math.Signbit(x) {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}

	neg := math.Signbit(x)
	ax := math.Abs(x)
	fmant, exp := math.Frexp(ax) // 0.5 <= fmant < 1
	raw := []limb.Word{limb.Word(math.Float64bits(fmant)<<11 | 1<<63)}
	// On a 32-bit build limb.Word is 32 bits; widen.
	if limb.Bits == 32 {
		bits := math.Float64bits(fmant)<<11 | 1<<63
		raw = []limb.Word{limb.Word(bits), limb.Word(bits >> 32)}
	}

	dst, expAdj, ternary := roundMantissa(raw, prec, 0, mode, neg)
	z.kind = Regular
	z.neg = neg
	z.prec = uint32(prec)
	z.exp = int64(exp) + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}

// SetInt64 sets z to x rounded to prec bits and returns the ternary value.
func (z *Float) SetInt64(x int64, prec uint, mode RoundingMode) int {
	if x == 0 {
		z.SetZero(1)
		return 0
	}
	neg := x < 0
	u := uint64(x)
	if neg {
		u = uint64(-x)
	}
	return z.setUint64(u, neg, prec, mode)
}

func (z *Float) setUint64(u uint64, neg bool, prec uint, mode RoundingMode) int {
	s := nlz64(u)
	shifted := u << s
	var raw []limb.Word
	if limb.Bits == 64 {
		raw = []limb.Word{limb.Word(shifted)}
	} else {
		raw = []limb.Word{limb.Word(shifted), limb.Word(shifted >> 32)}
	}
	dst, expAdj, ternary := roundMantissa(raw, prec, 0, mode, neg)
	z.kind = Regular
	z.neg = neg
	z.prec = uint32(prec)
	z.exp = int64(64-s) + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}

func nlz64(x uint64) uint {
	n := uint(0)
	for x != 0 && x < 1<<63 {
		x <<= 1
		n++
	}
	if x == 0 {
		return 64
	}
	return n
}

// ucmp compares the magnitudes of two Regular, non-zero x and y.
func (x *Float) ucmp(y *Float) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return 1
	}
	i, j := len(x.mant), len(y.mant)
	for i > 0 || j > 0 {
		var xm, ym limb.Word
		if i > 0 {
			i--
			xm = x.mant[i]
		}
		if j > 0 {
			j--
			ym = y.mant[j]
		}
		switch {
		case xm < ym:
			return -1
		case xm > ym:
			return 1
		}
	}
	return 0
}

// Cmp compares x and y: -1 if x < y, 0 if x == y, +1 if x > y. NaN operands
// make Cmp panic, as the summation core never compares against a NaN (NaN
// propagation is handled before any Cmp is reached).
func (x *Float) Cmp(y *Float) int {
	if x.kind == NaN || y.kind == NaN {
		panic("bigfloat: Cmp of NaN")
	}
	xz, yz := x.kind == Zero, y.kind == Zero
	switch {
	case xz && yz:
		return 0
	case xz:
		return -y.Sign()
	case yz:
		return x.Sign()
	}
	if x.kind == Inf || y.kind == Inf {
		xs, ys := signOf(x.neg), signOf(y.neg)
		if x.kind == Inf && y.kind == Inf {
			if xs == ys {
				return 0
			}
			return xs
		}
		if x.kind == Inf {
			return xs
		}
		return -ys
	}
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	r := x.ucmp(y)
	if x.neg {
		r = -r
	}
	return r
}

// uaddAligned adds the magnitudes of x and y (both Regular, non-zero) into
// a freshly allocated, normalized limb slice, returning it together with
// the exponent of its msb. This generalizes float.go's uadd to report an
// exponent instead of mutating a Float directly, so callers can round with
// an explicit target precision.
func uaddAligned(x, y *Float) (mant []limb.Word, exp int64) {
	ex := x.exp - int64(len(x.mant))*limb.Bits
	ey := y.exp - int64(len(y.mant))*limb.Bits

	var a, b []limb.Word
	switch {
	case ex == ey:
		a, b = x.mant, y.mant
		mant = addMagnitudes(a, b)
		exp = ex
	case ex < ey:
		shifted := shiftLeftNat(y.mant, uint(ey-ex))
		mant = addMagnitudes(x.mant, shifted)
		exp = ex
	default:
		shifted := shiftLeftNat(x.mant, uint(ex-ey))
		mant = addMagnitudes(shifted, y.mant)
		exp = ey
	}
	s := fnorm(mant)
	exp += int64(len(mant)) * limb.Bits
	exp -= int64(s)
	return mant, exp
}

// usubAligned subtracts |y| from |x| (x and y both Regular, non-zero,
// |x| >= |y|), returning the result and its msb exponent, or a nil mant if
// the result is exactly zero.
func usubAligned(x, y *Float) (mant []limb.Word, exp int64) {
	ex := x.exp - int64(len(x.mant))*limb.Bits
	ey := y.exp - int64(len(y.mant))*limb.Bits

	switch {
	case ex == ey:
		mant = subMagnitudes(x.mant, y.mant)
		exp = ex
	case ex < ey:
		shifted := shiftLeftNat(y.mant, uint(ey-ex))
		mant = subMagnitudes(x.mant, shifted)
		exp = ex
	default:
		shifted := shiftLeftNat(x.mant, uint(ex-ey))
		mant = subMagnitudes(shifted, y.mant)
		exp = ey
	}
	if limb.IsZero(mant) {
		return nil, 0
	}
	s := fnorm(mant)
	exp += int64(len(mant)) * limb.Bits
	exp -= int64(s)
	return mant, exp
}

func addMagnitudes(x, y []limb.Word) []limb.Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]limb.Word, len(x)+1)
	c := limb.AddN(z[:len(y)], x[:len(y)], y)
	if len(x) > len(y) {
		c = limb.Add1(z[len(y):len(x)], x[len(y):], c)
	}
	z[len(x)] = c
	for len(z) > 1 && z[len(z)-1] == 0 {
		z = z[:len(z)-1]
	}
	return z
}

func subMagnitudes(x, y []limb.Word) []limb.Word {
	// precondition: x (as an integer) >= y
	z := make([]limb.Word, len(x))
	c := limb.SubN(z[:len(y)], x[:len(y)], y)
	if len(x) > len(y) {
		limb.Sub1(z[len(y):], x[len(y):], c)
	}
	for len(z) > 1 && z[len(z)-1] == 0 {
		z = z[:len(z)-1]
	}
	return z
}

func shiftLeftNat(x []limb.Word, s uint) []limb.Word {
	if s == 0 {
		return append([]limb.Word(nil), x...)
	}
	words := s / limb.Bits
	bits := s % limb.Bits
	z := make([]limb.Word, uint(len(x))+words+1)
	if bits == 0 {
		copy(z[words:], x)
		return z
	}
	c := limb.Lshift(z[words:words+uint(len(x))], x, bits)
	z[words+uint(len(x))] = c
	return z
}

// Add sets z to the rounded sum x+y at prec bits and returns the ternary
// value, generalizing float.go's Float.Add (which stores precision and
// mode on the receiver) to the explicit-parameter MPFR style this module
// uses throughout. It implements the rn==2 fast path of sum.Sum (§4.1).
func (z *Float) Add(x, y *Float, prec uint, mode RoundingMode) int {
	if x.kind == NaN || y.kind == NaN {
		z.SetNaN()
		return 0
	}
	if x.kind == Inf || y.kind == Inf {
		switch {
		case x.kind == Inf && y.kind == Inf:
			if x.neg != y.neg {
				z.SetNaN()
				return 0
			}
			z.SetInf(signOf(x.neg))
			return 0
		case x.kind == Inf:
			z.SetInf(signOf(x.neg))
			return 0
		default:
			z.SetInf(signOf(y.neg))
			return 0
		}
	}
	if x.kind == Zero && y.kind == Zero {
		sign := 1
		if x.neg && y.neg {
			sign = -1
		} else if x.neg != y.neg && mode == RNDD {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}
	if x.kind == Zero {
		return z.Round(y, prec, mode)
	}
	if y.kind == Zero {
		return z.Round(x, prec, mode)
	}

	// x, y Regular and non-zero.
	var mant []limb.Word
	var exp int64
	var neg bool
	if x.neg == y.neg {
		mant, exp = uaddAligned(x, y)
		neg = x.neg
	} else if x.ucmp(y) >= 0 {
		mant, exp = usubAligned(x, y)
		neg = x.neg
	} else {
		mant, exp = usubAligned(y, x)
		neg = y.neg
	}

	if mant == nil {
		// exact cancellation
		sign := 1
		if mode == RNDD {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}

	dst, expAdj, ternary := roundMantissa(mant, prec, 0, mode, neg)
	z.kind = Regular
	z.neg = neg
	z.prec = uint32(prec)
	z.exp = exp + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}

// Mul sets z to the rounded product x*y at prec bits and returns the
// ternary value. It is not part of the summation core (which never
// multiplies), but BigFloat is a complete numeric type and package
// transcendental needs it for Taylor-series evaluation; see float.go's
// umul for the schoolbook version this generalizes. Above a size threshold
// the mantissa product is computed with bigfft instead (see mul_bigfft.go).
func (z *Float) Mul(x, y *Float, prec uint, mode RoundingMode) int {
	if x.kind == NaN || y.kind == NaN {
		z.SetNaN()
		return 0
	}
	resultNeg := x.neg != y.neg
	if x.kind == Zero || y.kind == Zero {
		if x.kind == Inf || y.kind == Inf {
			z.SetNaN()
			return 0
		}
		z.SetZero(signOf(resultNeg))
		return 0
	}
	if x.kind == Inf || y.kind == Inf {
		z.SetInf(signOf(resultNeg))
		return 0
	}

	mant := mulMagnitudes(x.mant, y.mant)
	exp := x.exp + y.exp
	s := fnorm(mant)
	exp -= int64(s)

	dst, expAdj, ternary := roundMantissa(mant, prec, 0, mode, resultNeg)
	z.kind = Regular
	z.neg = resultNeg
	z.prec = uint32(prec)
	z.exp = exp + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}
