package sum

import (
	"math/big"

	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/internal/limb"
)

// sumAux is the generic path (mpfr_sum's sum_aux): at least 3 regular
// inputs remain after the pre-scan and none of the n<=2 / rn<=2 fast
// paths apply. It accumulates into a correctly sized window, then
// resolves the final rounding, including the Table Maker's Dilemma via
// a second pass over a narrower window (Step 8) that continues from the
// low bits of the first pass's accumulator.
func sumAux(z *bigfloat.Float, inputs []*bigfloat.Float, sq uint, mode bigfloat.RoundingMode, maxexp0 int64, rn int) int {
	w := newWindowSize(rn, sq)
	acc := make([]limb.Word, w.ws)
	minexp := maxexp0 - (w.wq - int64(w.cq))

	res := sumRaw(acc, w.wq, inputs, minexp, maxexp0, w.logn, w.cq, int64(sq)+3)
	if res.cancel == 0 {
		sign := 1
		if mode == bigfloat.RNDD {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}

	mag := accumulatorMagnitude(acc, res.neg)
	bitLen := mag.BitLen()
	e := res.minexp + int64(bitLen)
	u := e - int64(sq)
	pos := !res.neg

	roundedMag, expBump, ternary := roundFromMagnitude(mag, bitLen, sq, mode, res.neg)

	tmd := 0
	if res.maxexp != expMin {
		d := u - res.err
		tmd = detectTMD(mag, bitLen, sq, d, mode)
	}

	if tmd != 0 {
		sst := resolveSecondaryTerm(inputs, acc, res, w, sq, tmd, roundedMag, pos)
		ternary = finalTMDTernary(mode, pos, tmd, sst)
	}

	dst := bigIntToLimbs(roundedMag, bigfloat.PrecToLimbs(sq))
	z.SetSign(res.neg)
	mantissa := z.MantissaForWrite(sq)
	limb.Copy(mantissa, dst)
	z.SetExponent(e + expBump)
	return bigfloat.CheckRange(z, ternary, mode)
}

// accumulatorMagnitude decodes acc (two's-complement, wq bits) as an
// unsigned magnitude, using math/big for the final few-word sign
// correction instead of hand-rolled two's-complement negation — the one
// point in the summation core where stdlib big.Int stands in for a
// dedicated ecosystem library, for the same reason bigfloat.Parse does:
// nothing in the pack offers a better-tested signed-magnitude decode,
// and this runs once per Sum call on a small, fixed-size buffer.
func accumulatorMagnitude(acc []limb.Word, neg bool) *big.Int {
	words := make([]big.Word, len(acc))
	for i, w := range acc {
		words[i] = big.Word(w)
	}
	v := new(big.Int).SetBits(words)
	if !neg {
		return v
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(len(acc))*uint(limb.Bits))
	return mod.Sub(mod, v)
}

// lowBitsAsBigInt returns the low n bits of acc as a plain unsigned
// integer, read directly off acc's raw two's-complement bit pattern
// (not decoded through accumulatorMagnitude's sign correction) — this is
// a relocation of bits the first pass already holds, not a value being
// interpreted, exactly as sum_raw's own mpn_lshift-based reseed treats
// its accumulator as a flat bit vector rather than a signed integer.
func lowBitsAsBigInt(acc []limb.Word, n int64) *big.Int {
	if n <= 0 {
		return new(big.Int)
	}
	nwords := int((n + int64(limb.Bits) - 1) / int64(limb.Bits))
	if nwords > len(acc) {
		nwords = len(acc)
	}
	words := make([]big.Word, nwords)
	for i := 0; i < nwords; i++ {
		words[i] = big.Word(acc[i])
	}
	v := new(big.Int).SetBits(words)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))
	return v.And(v, mask)
}

// placeBigIntInto writes v, assumed to already fit within len(dst)*Bits
// bits, into dst in little-endian limb order, zeroing the rest of dst.
func placeBigIntInto(dst []limb.Word, v *big.Int) {
	limb.Zero(dst)
	bits := v.Bits()
	for i := 0; i < len(bits) && i < len(dst); i++ {
		dst[i] = limb.Word(bits[i])
	}
}

// roundFromMagnitude rounds the exact integer mag (bitLen significant
// bits) to sq bits according to mode, returning the rounded magnitude,
// the exponent bump (0 or 1, on overflow into the next binade) and the
// ternary value. This mirrors bigfloat's roundMantissa bit for bit, but
// operates on a big.Int instead of a limb slice since mag is always a
// handful of words by construction (sq plus a few guard bits).
func roundFromMagnitude(mag *big.Int, bitLen int, sq uint, mode bigfloat.RoundingMode, neg bool) (*big.Int, int64, int) {
	if bitLen <= int(sq) {
		return new(big.Int).Set(mag), 0, 0
	}

	shift := uint(bitLen) - sq
	shifted := new(big.Int).Rsh(mag, shift)
	rbit := mag.Bit(int(shift) - 1)
	sticky := stickyBelowBit(mag, shift-1)

	roundUp := false
	ternary := 0
	switch resolveDirectedMode(mode, neg) {
	case modeToZero:
		if rbit != 0 || sticky {
			ternary = below
		}
	case modeAwayFromZero:
		if rbit != 0 || sticky {
			roundUp = true
			ternary = above
		}
	default: // modeNearest
		switch {
		case rbit == 0:
			if sticky {
				ternary = below
			}
		case sticky:
			roundUp = true
			ternary = above
		case shifted.Bit(0) == 0:
			// exact halfway, already even: truncate.
			ternary = below
		default:
			roundUp = true
			ternary = above
		}
	}

	if roundUp {
		shifted.Add(shifted, big.NewInt(1))
	}

	var expBump int64
	if shifted.BitLen() > int(sq) {
		expBump = 1
		shifted.Rsh(shifted, 1)
	}
	if neg {
		ternary = -ternary
	}
	return shifted, expBump, ternary
}

const (
	below = -1
	above = +1
)

type directedMode uint8

const (
	modeToZero directedMode = iota
	modeAwayFromZero
	modeNearest
)

func resolveDirectedMode(mode bigfloat.RoundingMode, neg bool) directedMode {
	switch mode {
	case bigfloat.RNDZ:
		return modeToZero
	case bigfloat.RNDA:
		return modeAwayFromZero
	case bigfloat.RNDN:
		return modeNearest
	case bigfloat.RNDU:
		if neg {
			return modeToZero
		}
		return modeAwayFromZero
	case bigfloat.RNDD:
		if neg {
			return modeAwayFromZero
		}
		return modeToZero
	default:
		panic("sum: invalid RoundingMode")
	}
}

// stickyBelowBit reports whether mag has any set bit strictly below
// position p.
func stickyBelowBit(mag *big.Int, p uint) bool {
	if p == 0 {
		return false
	}
	mask := new(big.Int).Lsh(big.NewInt(1), p)
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(mag, mask).Sign() != 0
}

// detectTMD reports whether the Table Maker's Dilemma occurs: the d-1
// bits between the rounding bit and the error bound (err = u - d) are
// all identical, making the provisional rounding decision above
// ambiguous given the accumulator's own error bound. Returns 0 (no TMD),
// 1 (TMD at a representable machine number) or 2 (TMD at the midpoint
// between two machine numbers, round-to-nearest only). Margin bits below
// the accumulator (bit positions under 0) are zero; when mag fits in sq
// bits, the rounding bit and the whole margin lie there, which is a TMD
// at a machine number.
func detectTMD(mag *big.Int, bitLen int, sq uint, d int64, mode bigfloat.RoundingMode) int {
	if d < 1 {
		return 0
	}
	if bitLen <= int(sq) {
		return 1
	}
	rPos := bitLen - int(sq) - 1
	lo := rPos - int(d-1)
	if lo < 0 {
		lo = -1 // one position stands for all the zero bits below mag
	}
	hi := rPos
	if hi <= lo {
		return 0
	}

	allZero, allOne := true, true
	for i := lo; i < hi; i++ {
		if i >= 0 && mag.Bit(i) != 0 {
			allZero = false
		} else {
			allOne = false
		}
	}

	rbit := mag.Bit(rPos)
	switch {
	case allZero:
		if rbit == 0 {
			return 1
		}
		if mode == bigfloat.RNDN {
			return 2
		}
	case allOne:
		if rbit != 0 {
			return 1
		}
		if mode == bigfloat.RNDN {
			return 2
		}
	}
	return 0
}

// resolveSecondaryTerm runs a second accumulation (Step 8), seeded with
// bits the first pass left in acc as described below, to determine sst, the sign of the secondary term needed to correct the
// ternary value in a TMD case, following sum_raw's own Step 8 exactly.
//
// The d-1 bits straddling the rounding position that made detectTMD fire
// are, in the typical case (res.err >= res.minexp), bits pass 1 already
// accumulated into the low end of acc — they sit above maxexp1's window
// floor from pass 1's perspective, so reprocessing the raw inputs against
// a window that tops out at res.maxexp can never recover them again.
// Those bits, acc's low (res.err - res.minexp + 2) bits, are therefore
// preserved: extracted from acc and shifted to the top of the new,
// smaller accumulator, which sum_raw then continues accumulating into
// using the same res.maxexp window top. Only when res.err < res.minexp
// (the identical bits extend below everything pass 1 ever captured, so
// they are necessarily all zero and nothing of acc is reusable) does the
// second pass start from a fresh, zeroed window, exactly as sum_raw's
// "else" branch does for the rare case.
func resolveSecondaryTerm(inputs []*bigfloat.Float, acc []limb.Word, res rawResult, w windowSize, sq uint, tmd int, roundedMag *big.Int, pos bool) int {
	ws2 := bigfloat.PrecToLimbs(uint(w.wq) - sq)
	wq2 := int64(ws2) * int64(limb.Bits)
	acc2 := make([]limb.Word, ws2)

	var minexp2 int64
	if res.err >= res.minexp {
		tq := res.err - res.minexp + 2
		preserved := lowBitsAsBigInt(acc, tq)
		if shift := wq2 - tq; shift > 0 {
			preserved.Lsh(preserved, uint(shift))
		}
		placeBigIntInto(acc2, preserved)
		minexp2 = res.err + 2 - wq2
	} else {
		minexp2 = res.maxexp - (wq2 - int64(w.cq))
	}

	res2 := sumRaw(acc2, wq2, inputs, minexp2, res.maxexp, w.logn, w.cq, 0)

	if res2.cancel == 0 {
		if tmd != 2 {
			return 0
		}
		if roundedMag.Bit(0) != 0 {
			if pos {
				return 1
			}
			return -1
		}
		if pos {
			return -1
		}
		return 1
	}
	if res2.neg {
		return -1
	}
	return 1
}

// finalTMDTernary applies MPFR's rounding-mode table to convert (tmd,
// sst) into the correctly-rounded-sum ternary value.
func finalTMDTernary(mode bigfloat.RoundingMode, pos bool, tmd, sst int) int {
	switch {
	case isLikeRNDD(mode, pos):
		if sst != 0 {
			return -1
		}
		return 0
	case isLikeRNDU(mode, pos):
		if sst != 0 {
			return 1
		}
		return 0
	default: // RNDN
		if tmd == 1 {
			return -sst
		}
		return sst
	}
}

func isLikeRNDD(mode bigfloat.RoundingMode, pos bool) bool {
	switch mode {
	case bigfloat.RNDD:
		return true
	case bigfloat.RNDZ:
		return pos
	case bigfloat.RNDA:
		return !pos
	default:
		return false
	}
}

func isLikeRNDU(mode bigfloat.RoundingMode, pos bool) bool {
	switch mode {
	case bigfloat.RNDU:
		return true
	case bigfloat.RNDZ:
		return !pos
	case bigfloat.RNDA:
		return pos
	default:
		return false
	}
}

// bigIntToLimbs converts a non-negative big.Int into a normalized,
// size-limb slice (msb of the top limb set), left-justified exactly as
// a BigFloat mantissa requires.
func bigIntToLimbs(v *big.Int, size int) []limb.Word {
	out := make([]limb.Word, size)
	bits := v.Bits()
	for i, w := range bits {
		if i >= size {
			break
		}
		out[i] = limb.Word(w)
	}
	if len(out) > 0 {
		s := limb.LeadingZeros(out[len(out)-1])
		if s > 0 {
			limb.Lshift(out, out, s)
		}
	}
	return out
}
