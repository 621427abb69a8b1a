// Package sum implements correctly-rounded summation of a list of
// arbitrary-precision binary floating-point numbers, following the
// pre-scan / block-accumulate / final-rounding structure of MPFR's
// mpfr_sum (see doc/sum.txt in the MPFR sources for the algorithm proof).
package sum

import (
	"modernc.org/mathutil"

	"github.com/go-bigfloat/bigsum/bigfloat"
	"github.com/go-bigfloat/bigsum/internal/limb"
)

// expMin stands in for MPFR_EXP_MIN: a sentinel low enough that no real
// operand or window boundary ever reaches it, yet with enough headroom
// below bigfloat.MinExp that adding a small guard term (logn, cq) to it
// never risks an int64 overflow the way arithmetic on the true minimum
// int64 would.
const expMin = bigfloat.MinExp - 1<<20

// windowSize is the accumulator geometry that sum_aux's Step 2 derives
// from the number of regular inputs and the target precision: how many
// carry bits absorb the growth of adding rn inputs (cq), how large the
// accumulator is
// (ws limbs / wq bits), and how large a temporary alignment buffer (ts)
// a single input block may need.
type windowSize struct {
	logn int
	cq   int
	sq   uint
	ws   int
	wq   int64
	ts   int
}

// newWindowSize sizes the accumulator for summing rn regular inputs to a
// result precision of sq bits.
func newWindowSize(rn int, sq uint) windowSize {
	logn := ceilLog2(rn)
	cq := logn + 1
	ws := bigfloat.PrecToLimbs(uint(cq) + sq + uint(logn) + 2)
	wq := int64(ws) * int64(limb.Bits)
	ts := bigfloat.PrecToLimbs(uint(wq-int64(cq)) + limb.Bits - 1)
	return windowSize{logn: logn, cq: cq, sq: sq, ws: ws, wq: wq, ts: ts}
}

// ceilLog2 returns ceil(log2(rn)) for rn >= 1. It uses mathutil's
// bit-length helper for the small-integer logarithm the way the rest of
// the domain stack leans on mathutil for bit-counting utilities that
// math/big doesn't expose directly on plain integers.
func ceilLog2(rn int) int {
	if rn <= 1 {
		return 0
	}
	return mathutil.BitLenUint64(uint64(rn - 1))
}
