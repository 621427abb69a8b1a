package bigfloat

import (
	"math"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

// high64 returns the top 64 mantissa bits of m as an integer with its msb
// at bit 63, zero-padding if m is shorter than 64 bits. Ground on float.go's
// high64 helper.
func high64(m []limb.Word) uint64 {
	if len(m) == 0 {
		return 0
	}
	if limb.Bits == 64 {
		v := uint64(m[len(m)-1])
		return v
	}
	// limb.Bits == 32
	v := uint64(m[len(m)-1]) << 32
	if len(m) > 1 {
		v |= uint64(m[len(m)-2])
	}
	return v
}

// Float64 returns the closest float64 to x, rounded to nearest with 53
// bits of precision, and the ternary value of that rounding. Values
// below the smallest normal float64 are returned as a zero of x's sign;
// subnormal float64 results are not produced.
func (x *Float) Float64() (float64, int) {
	switch x.kind {
	case NaN:
		return math.NaN(), 0
	case Inf:
		if x.neg {
			return math.Inf(-1), 0
		}
		return math.Inf(1), 0
	case Zero:
		if x.neg {
			return math.Copysign(0, -1), 0
		}
		return 0, 0
	}

	dst, expAdj, ternary := roundMantissa(x.mant, 53, 0, RNDN, x.neg)
	e := x.exp + expAdj

	if e > 1024 {
		if x.neg {
			return math.Inf(-1), -1
		}
		return math.Inf(1), 1
	}
	if e < -1021 {
		if x.neg {
			return math.Copysign(0, -1), 1
		}
		return 0, -1
	}

	var s uint64
	if x.neg {
		s = 1 << 63
	}
	biasedExp := uint64(1022+e) & 0x7ff
	m := high64(dst) >> 11 & (1<<52 - 1)
	bits := s | biasedExp<<52 | m
	return math.Float64frombits(bits), ternary
}
