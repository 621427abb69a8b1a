package bigfloat

import (
	"github.com/go-bigfloat/bigsum/internal/limb"
)

// roundMantissa rounds a normalized source mantissa src (bits = len(src)*W
// significant bits, msb of src[len(src)-1] set) to prec bits according to
// mode, given an extra sbit ("sticky bit") summarizing any discarded bits
// the caller already knows about (0 or 1, e.g. a non-zero remainder from a
// division). It returns a freshly allocated, normalized mantissa of
// PrecToLimbs(prec) limbs, the exponent adjustment to apply (0 normally, +1
// if rounding up overflowed into the next binade), and the ternary value
// of the signed result (already negated for neg operands, as float.go's
// round does with z.acc).
//
// This is math/big.Float.round generalized to return a ternary value
// instead of an Accuracy and to allocate its own result buffer instead of
// mutating z.mant in place.
func roundMantissa(src []limb.Word, prec uint, sbit uint, mode RoundingMode, neg bool) (dst []limb.Word, expAdj int64, ternary int) {
	bits := uint(len(src)) * limb.Bits
	n := PrecToLimbs(prec)

	if bits <= prec {
		// Source fits (possibly with room to spare); zero-extend on the low
		// end and note inexactness only via the caller-supplied sbit.
		dst = make([]limb.Word, n)
		copy(dst[n-len(src):], src)
		if sbit != 0 {
			ternary = signTernary(neg, below)
		}
		return dst, 0, ternary
	}

	// bits > prec: need to round.
	r := bits - prec - 1 // rounding-bit position, counting from the LSB of src
	rbit := bitAt(src, r)
	if sbit == 0 {
		sbit = stickyBelow(src, r)
	}

	roundMode := resolveDirected(mode, neg)

	// cut to the high n limbs
	dst = make([]limb.Word, n)
	copy(dst, src[len(src)-n:])

	t := uint(n)*limb.Bits - prec // trailing bits to clear, 0 <= t < limb.Bits
	lsb := limb.Word(1) << t

	switch roundMode {
	case modeToZero:
		// truncate
	case modeNearest:
		if rbit == 0 {
			roundMode = modeToZero
		} else if sbit == 1 {
			roundMode = modeAwayFromZero
		} else if dst[0]&lsb == 0 {
			// exact halfway, round to even: LSB already 0 -> truncate
			roundMode = modeToZero
		} else {
			roundMode = modeAwayFromZero
		}
	case modeAwayFromZero:
		if rbit|sbit == 0 {
			roundMode = modeToZero
		}
	}

	switch roundMode {
	case modeToZero:
		if rbit|sbit != 0 {
			ternary = below
		}
	case modeAwayFromZero:
		if limb.Add1(dst, dst, lsb) != 0 {
			limb.Rshift(dst, dst, 1)
			dst[n-1] |= limb.Word(1) << (limb.Bits - 1)
			expAdj = 1
		}
		ternary = above
	}

	dst[0] &^= lsb - 1
	return dst, expAdj, signTernary(neg, ternary)
}

const (
	below = -1
	above = +1
)

func signTernary(neg bool, t int) int {
	if neg {
		return -t
	}
	return t
}

// internal directed-rounding modes used once ToNegativeInf/ToPositiveInf
// (RNDD/RNDU) have been resolved against the operand's sign.
type directedMode uint8

const (
	modeToZero directedMode = iota
	modeAwayFromZero
	modeNearest
)

func resolveDirected(mode RoundingMode, neg bool) directedMode {
	switch mode {
	case RNDZ:
		return modeToZero
	case RNDA:
		return modeAwayFromZero
	case RNDN:
		return modeNearest
	case RNDU:
		if neg {
			return modeToZero
		}
		return modeAwayFromZero
	case RNDD:
		if neg {
			return modeAwayFromZero
		}
		return modeToZero
	default:
		panic("bigfloat: invalid RoundingMode")
	}
}

// bitAt returns bit position p (0 = LSB of the whole mantissa) of m.
func bitAt(m []limb.Word, p uint) uint {
	i := p / limb.Bits
	j := p % limb.Bits
	if int(i) >= len(m) {
		return 0
	}
	return uint((m[i] >> j) & 1)
}

// stickyBelow reports (as 0 or 1) whether any bit strictly below position p
// is set.
func stickyBelow(m []limb.Word, p uint) uint {
	i := p / limb.Bits
	j := p % limb.Bits
	if j != 0 && int(i) < len(m) && m[i]&((limb.Word(1)<<j)-1) != 0 {
		return 1
	}
	for k := uint(0); k < i && int(k) < len(m); k++ {
		if m[k] != 0 {
			return 1
		}
	}
	return 0
}

// Round sets z to x rounded to prec bits according to mode, and returns the
// ternary value.
func (z *Float) Round(x *Float, prec uint, mode RoundingMode) int {
	switch x.kind {
	case NaN:
		z.SetNaN()
		return 0
	case Inf:
		z.SetInf(signOf(x.neg))
		return 0
	case Zero:
		z.SetZero(signOf(x.neg))
		return 0
	}

	dst, expAdj, ternary := roundMantissa(x.mant, prec, 0, mode, x.neg)
	z.kind = Regular
	z.neg = x.neg
	z.prec = uint32(prec)
	z.exp = x.exp + expAdj
	z.mant = dst
	z.validate()
	return CheckRange(z, ternary, mode)
}

func signOf(neg bool) int {
	if neg {
		return -1
	}
	return 1
}
