package sum

import (
	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/internal/limb"
)

// rawResult is what accumulating a block into the window produces: the
// number of cancelled (redundant sign-extension) bits at the top of the
// accumulator, the exponent e of the truncated result and err of its
// error bound, the sign of the accumulated value, the window's minexp
// when the accumulation settled, and maxexp, the top of the input bits
// still left below the window (the last block's maxexp2, or expMin when
// every input was fully captured). The caller needs these to interpret
// the accumulator's bit positions and to re-seed a further pass.
// cancel == 0 means the accumulator is exactly zero.
type rawResult struct {
	cancel  int64
	e       int64
	err     int64
	neg     bool
	minexp  int64
	maxexp  int64
}

// blockState is sum_raw's inner engine: accumulate a block, classify the
// result, then either return, shift and reiterate, or jump the window
// down and reiterate. Naming the states explicitly replaces the legacy
// bare while(1) with if/else branches, which hides these transitions.
type blockState int

const (
	stateAccumulate blockState = iota
	stateExactZero
	stateGoodPrecision
	stateShift
	stateJump
)

// sumRaw accumulates the regular inputs' contributions to the bit window
// [minexp, maxexp) into acc (a wq-bit two's-complement accumulator),
// shifting the window down and reiterating whenever the cancellation
// left fewer than prec guaranteed bits, exactly as MPFR's sum_raw: the
// accumulation, cancellation count, and shift-and-reiterate loop are
// ported directly, driven here by the blockState transitions above
// instead of sum_raw's own if/else chain; see accumulateBlock for the
// per-input alignment step, which is reimplemented over whole-slice bit
// extraction helpers instead of sum_raw's partial-limb trailing-bit
// bookkeeping (see DESIGN.md).
func sumRaw(acc []limb.Word, wq int64, inputs []*bigfloat.Float, minexp, maxexp int64, logn, cq int, prec int64) rawResult {
	state := stateAccumulate
	var maxexp2, cancel, e, err int64

	for {
		switch state {
		case stateAccumulate:
			maxexp2 = expMin
			for _, xi := range inputs {
				if xi == nil || xi.IsSingular() {
					continue
				}
				accumulateBlock(acc, xi, minexp, maxexp, &maxexp2)
			}

			var isZero bool
			cancel, isZero = countCancelled(acc)
			if isZero {
				state = stateExactZero
				continue
			}

			e = minexp + wq - cancel
			err = maxexp2 + int64(logn)
			if err <= e-prec {
				state = stateGoodPrecision
			} else {
				state = stateShift
			}

		case stateExactZero:
			if maxexp2 == expMin {
				return rawResult{cancel: 0}
			}
			state = stateJump

		case stateGoodPrecision:
			return rawResult{
				cancel: cancel,
				e:      e,
				err:    err,
				neg:    limb.HighBit(acc[len(acc)-1]) != 0,
				minexp: minexp,
				maxexp: maxexp2,
			}

		case stateShift:
			diffexp := err - e
			if diffexp < 0 {
				diffexp = 0
			}
			shiftq := cancel - 2 - diffexp
			shiftAccumulatorLeft(acc, shiftq)
			minexp -= shiftq
			maxexp = maxexp2
			state = stateAccumulate

		case stateJump:
			minexp = maxexp2 - (wq - int64(cq))
			maxexp = maxexp2
			state = stateAccumulate
		}
	}
}

// accumulateBlock adds (or subtracts, for a negative input) the portion
// of xi's value falling within the bit window [minexp, maxexp) into acc,
// and tracks maxexp2, the candidate maxexp for a further pass: the
// largest exponent among inputs entirely below the window, or minexp
// itself if some input has bits below the window that were not fully
// captured.
func accumulateBlock(acc []limb.Word, xi *bigfloat.Float, minexp, maxexp int64, maxexp2 *int64) {
	m := xi.Mantissa()
	L := int64(len(m))
	xe := xi.Exponent()
	xq := int64(xi.Precision())
	lsbExp := xe - L*int64(limb.Bits)

	if xe <= minexp {
		if xe > *maxexp2 {
			*maxexp2 = xe
		}
		return
	}
	if xe-xq < minexp {
		*maxexp2 = minexp
	}

	lo := minexp
	if lsbExp > lo {
		lo = lsbExp
	}
	hi := maxexp
	if xe < hi {
		hi = xe
	}
	if lo >= hi {
		return
	}

	startBit := uint(lo - lsbExp)
	nbits := uint(hi - lo)
	extracted := extractBits(m, startBit, nbits)
	shiftAmt := uint(lo - minexp)

	if xi.Sign() < 0 {
		subShiftedInto(acc, extracted, shiftAmt)
	} else {
		addShiftedInto(acc, extracted, shiftAmt)
	}
}

// extractBits returns bits [start, start+n) of m (bit 0 is the LSB of
// m[0]), right-justified into a freshly allocated slice of
// ceil(n/Bits) limbs, zero-extending past the end of m.
func extractBits(m []limb.Word, start, n uint) []limb.Word {
	if n == 0 {
		return nil
	}
	size := int((n + limb.Bits - 1) / limb.Bits)
	wordShift := int(start / limb.Bits)
	bitShift := start % limb.Bits

	buf := make([]limb.Word, size+1)
	for i := range buf {
		idx := wordShift + i
		if idx < len(m) {
			buf[i] = m[idx]
		}
	}
	if bitShift != 0 {
		limb.Rshift(buf, buf, bitShift)
	}
	out := buf[:size]
	if rem := n % limb.Bits; rem != 0 {
		mask := limb.Word(1)<<rem - 1
		out[size-1] &= mask
	}
	return out
}

// addShiftedInto adds (src << shiftAmt) into dst modulo 2^(len(dst)*Bits).
func addShiftedInto(dst, src []limb.Word, shiftAmt uint) {
	wordShift := int(shiftAmt / limb.Bits)
	if wordShift >= len(dst) {
		return
	}
	shifted := shiftLeftWords(src, shiftAmt%limb.Bits)
	addWordsInto(dst[wordShift:], shifted)
}

// subShiftedInto subtracts (src << shiftAmt) from dst modulo
// 2^(len(dst)*Bits).
func subShiftedInto(dst, src []limb.Word, shiftAmt uint) {
	wordShift := int(shiftAmt / limb.Bits)
	if wordShift >= len(dst) {
		return
	}
	shifted := shiftLeftWords(src, shiftAmt%limb.Bits)
	subWordsInto(dst[wordShift:], shifted)
}

func shiftLeftWords(src []limb.Word, bitShift uint) []limb.Word {
	if bitShift == 0 {
		return src
	}
	shifted := make([]limb.Word, len(src)+1)
	carry := limb.Lshift(shifted[:len(src)], src, bitShift)
	shifted[len(src)] = carry
	return shifted
}

func addWordsInto(dst, src []limb.Word) {
	if len(src) > len(dst) {
		src = src[:len(dst)]
	}
	carry := limb.AddN(dst[:len(src)], dst[:len(src)], src)
	if len(dst) > len(src) {
		limb.Add1(dst[len(src):], dst[len(src):], carry)
	}
}

func subWordsInto(dst, src []limb.Word) {
	if len(src) > len(dst) {
		src = src[:len(dst)]
	}
	borrow := limb.SubN(dst[:len(src)], dst[:len(src)], src)
	if len(dst) > len(src) {
		limb.Sub1(dst[len(src):], dst[len(src):], borrow)
	}
}

// countCancelled scans acc (two's complement) from its most significant
// limb down, counting the bits that merely repeat the sign, exactly as
// sum_raw's cancellation count. isZero reports whether every limb of acc
// is literally 0, with cancel == 0 (the only case the caller treats as
// "exact zero sum" —
// an accumulator of all-one limbs represents -1, not 0, and is reported
// with cancel == len(acc)*Bits instead, per MPFR's "closed on both ends"
// two's-complement convention).
func countCancelled(acc []limb.Word) (cancel int64, isZero bool) {
	n := len(acc)
	signWord := limb.AllOnesIfSet(acc[n-1])
	wi := n - 1
	for wi >= 0 {
		b := acc[wi]
		if b == signWord {
			cancel += int64(limb.Bits)
			wi--
			continue
		}
		diff := b ^ signWord
		cancel += int64(limb.LeadingZeros(diff))
		return cancel, false
	}
	if signWord == 0 {
		return 0, true
	}
	return cancel, false
}

// shiftAccumulatorLeft shifts acc left by shiftq bits in place, zero
// filling the low bits and discarding the bits shifted out of the top
// (which, by construction, are always a subset of the just-counted
// cancelled bits, so discarding them loses no information).
func shiftAccumulatorLeft(acc []limb.Word, shiftq int64) {
	n := len(acc)
	words := int(shiftq / int64(limb.Bits))
	bits := uint(shiftq % int64(limb.Bits))
	if words > 0 {
		for i := n - 1; i >= words; i-- {
			acc[i] = acc[i-words]
		}
		for i := 0; i < words && i < n; i++ {
			acc[i] = 0
		}
	}
	if bits != 0 {
		limb.Lshift(acc, acc, bits)
	}
}
