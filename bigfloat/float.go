// Package bigfloat implements the BigFloat contract consumed by package
// sum (see §6.1 of the summation specification): an arbitrary-precision
// binary floating-point number with sign, exponent, precision and a
// little-endian mantissa limb array, plus NaN/Inf/Zero singular kinds.
//
// It is modeled directly on the pre-NaN draft of Go's math/big.Float
// (mantissa as a normalized Word slice, round-with-sticky-bit, setExp
// overflow-to-Inf), generalized to carry an explicit Kind so NaN and
// signed infinities — which MPFR has and that draft does not — are
// representable, and to take the rounding mode as a call parameter
// instead of stored operand state, since callers like sum need to pick
// the rounding mode per call.
package bigfloat

import (
	"fmt"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

const debug = false // enable invariant checks during development, as float.go's debugFloat does

// Kind classifies the value a Float holds.
type Kind uint8

const (
	Regular Kind = iota
	Zero
	Inf
	NaN
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Zero:
		return "zero"
	case Inf:
		return "inf"
	case NaN:
		return "nan"
	default:
		return "invalid"
	}
}

// RoundingMode selects how an inexact result is rounded, named after the
// MPFR rounding modes the summation specification is stated in terms of.
type RoundingMode uint8

const (
	RNDN RoundingMode = iota // round to nearest, ties to even
	RNDZ                     // round toward zero
	RNDU                     // round toward +Inf
	RNDD                     // round toward -Inf
	RNDA                     // round away from zero
)

func (r RoundingMode) String() string {
	switch r {
	case RNDN:
		return "RNDN"
	case RNDZ:
		return "RNDZ"
	case RNDU:
		return "RNDU"
	case RNDD:
		return "RNDD"
	case RNDA:
		return "RNDA"
	default:
		return "RND?"
	}
}

// Exponent range the library supports. A rounded result whose exponent
// falls outside [MinExp, MaxExp] is brought back into range by CheckRange
// according to the rounding mode (see CheckRange).
const (
	MaxExp = 1<<30 - 1
	MinExp = -MaxExp
)

// Float is a multi-precision floating point number of the form
//
//	sign * 0.mant * 2**exp
//
// with the msb of mant set (mant normalized) for Regular values, and an
// empty mant for Zero, Inf and NaN.
type Float struct {
	kind Kind
	neg  bool
	prec uint32
	exp  int64
	mant []limb.Word
}

// New returns a zero-valued Float with the given precision.
func New(prec uint) *Float {
	return &Float{kind: Zero, prec: uint32(prec)}
}

// Sign returns -1, 0, or +1 according to whether x is negative, zero
// (either sign), or positive. NaN has no defined sign and Sign panics on it,
// matching the fact that the summation core never calls Sign on a NaN.
func (x *Float) Sign() int {
	if x.kind == NaN {
		panic("bigfloat: Sign of NaN")
	}
	if x.kind == Zero {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// SignBit reports the sign bit of x, meaningful even for Zero and Inf
// (where Sign() alone cannot distinguish +0 from -0).
func (x *Float) SignBit() bool { return x.neg }

// Exponent returns the binary exponent of a Regular x.
func (x *Float) Exponent() int64 { return x.exp }

// Precision returns the mantissa precision of x in bits.
func (x *Float) Precision() uint { return uint(x.prec) }

// Mantissa returns the read-only little-endian limb slice backing a
// Regular x. Its length is PrecToLimbs(x.Precision()).
func (x *Float) Mantissa() []limb.Word { return x.mant }

// Kind reports the singular-value kind of x.
func (x *Float) Kind() Kind { return x.kind }

func (x *Float) IsNaN() bool  { return x.kind == NaN }
func (x *Float) IsInf() bool  { return x.kind == Inf }
func (x *Float) IsZero() bool { return x.kind == Zero }

// IsSingular reports whether x is NaN, Inf, or Zero (i.e. not Regular).
func (x *Float) IsSingular() bool { return x.kind != Regular }

// IsPure reports whether x is exactly representable without trailing
// garbage bits, i.e. it is singular or its precision is a multiple of the
// limb width.
func (x *Float) IsPure() bool {
	return x.kind != Regular || x.prec%limb.Bits == 0
}

// PrecToLimbs returns the number of limbs needed to hold prec bits.
func PrecToLimbs(prec uint) int {
	return int((prec + limb.Bits - 1) / limb.Bits)
}

// SetNaN sets z to NaN.
func (z *Float) SetNaN() {
	z.kind = NaN
	z.neg = false
	z.exp = 0
	z.mant = z.mant[:0]
}

// SetInf sets z to an infinity with the given sign (sign < 0 for -Inf).
func (z *Float) SetInf(sign int) {
	z.kind = Inf
	z.neg = sign < 0
	z.exp = 0
	z.mant = z.mant[:0]
}

// SetZero sets z to a zero with the given sign (sign < 0 for -0).
func (z *Float) SetZero(sign int) {
	z.kind = Zero
	z.neg = sign < 0
	z.exp = 0
	z.mant = z.mant[:0]
}

// SetSign sets the sign bit of z without otherwise changing its value.
func (z *Float) SetSign(neg bool) { z.neg = neg }

// SetExponent sets the binary exponent of a Regular z. Callers are
// responsible for calling CheckRange afterwards if the new exponent might
// be out of [MinExp, MaxExp].
func (z *Float) SetExponent(e int64) { z.exp = e }

// SetPrecision sets the precision of z. It does not reallocate or
// renormalize the mantissa; callers that change precision on a Regular
// value must also provide the correctly sized, normalized mantissa (see
// MantissaForWrite).
func (z *Float) SetPrecision(prec uint) { z.prec = uint32(prec) }

// MantissaForWrite returns a writable mantissa buffer of
// PrecToLimbs(prec) limbs, marks z Regular at that precision, and zeros
// the buffer. The caller must normalize (msb set) before z is used.
func (z *Float) MantissaForWrite(prec uint) []limb.Word {
	z.kind = Regular
	z.prec = uint32(prec)
	n := PrecToLimbs(prec)
	if cap(z.mant) < n {
		z.mant = make([]limb.Word, n)
	} else {
		z.mant = z.mant[:n]
		limb.Zero(z.mant)
	}
	return z.mant
}

// validate checks the Float invariants; it is a no-op unless debug is set,
// mirroring float.go's debugFloat-gated validate().
func (x *Float) validate() {
	if !debug {
		return
	}
	switch x.kind {
	case Zero, Inf, NaN:
		if len(x.mant) != 0 {
			panic("bigfloat: singular value with non-empty mantissa")
		}
	case Regular:
		if len(x.mant) == 0 {
			panic("bigfloat: Regular value with empty mantissa")
		}
		if x.mant[len(x.mant)-1]&(limb.Word(1)<<(limb.Bits-1)) == 0 {
			panic(fmt.Sprintf("bigfloat: msb not set in %#x", x.mant[len(x.mant)-1]))
		}
		if x.prec == 0 {
			panic("bigfloat: Regular value with 0 precision")
		}
	}
}

// CheckRange clamps z's exponent to [MinExp, MaxExp] and adjusts the
// ternary value accordingly. An overflow becomes a correctly-signed
// infinity, or the largest finite value of z's precision and sign when
// the mode rounds toward zero. An underflow becomes a correctly-signed
// zero, or, when the mode rounds away from zero, keeps z's mantissa with
// the exponent set to MinExp. It is the Go analogue of
// mpfr_check_range, the one piece of the BigFloat contract every rounding
// operation (including sum.Sum) must call on its result before returning.
func CheckRange(z *Float, ternary int, rnd RoundingMode) int {
	if z.kind != Regular {
		return ternary
	}
	if z.exp > MaxExp {
		sign := 1
		if z.neg {
			sign = -1
		}
		overflowToInf := rnd == RNDN || rnd == RNDA ||
			(rnd == RNDU && sign > 0) || (rnd == RNDD && sign < 0)
		if overflowToInf {
			z.SetInf(sign)
			return sign
		}
		// round toward zero: saturate to the largest representable value
		for i := range z.mant {
			z.mant[i] = limb.Max
		}
		z.mant[0] &^= limb.Word(1)<<(uint(len(z.mant))*limb.Bits-uint(z.prec)) - 1
		z.exp = MaxExp
		return -sign
	}
	if z.exp < MinExp {
		sign := 1
		if z.neg {
			sign = -1
		}
		underflowToZero := rnd == RNDN || rnd == RNDZ ||
			(rnd == RNDU && sign < 0) || (rnd == RNDD && sign > 0)
		if underflowToZero {
			z.SetZero(sign)
			return -sign
		}
		z.exp = MinExp
		return sign
	}
	return ternary
}

// Set copies x into z (same kind, sign, exponent, precision, mantissa).
func (z *Float) Set(x *Float) *Float {
	if z == x {
		return z
	}
	z.kind = x.kind
	z.neg = x.neg
	z.prec = x.prec
	z.exp = x.exp
	z.mant = append(z.mant[:0], x.mant...)
	return z
}

// fnorm left-shifts m so the msb of its most significant limb is 1, and
// returns the shift amount. len(m) must be > 0 and m must not be all zero.
func fnorm(m []limb.Word) uint {
	s := limb.LeadingZeros(m[len(m)-1])
	if s > 0 {
		limb.Lshift(m, m, s)
	}
	return s
}
