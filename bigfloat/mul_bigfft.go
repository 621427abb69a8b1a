package bigfloat

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

// bigfftThreshold is the operand size (in limbs) above which multiplying
// through bigfft.Mul (FFT-based) beats schoolbook multiplication. math/big
// itself switches strategies around a few hundred words for Karatsuba and
// a few thousand for its internal Toom/FFT-ish paths; bigfft's README
// reports a crossover versus (*big.Int).Mul in the low thousands of words,
// so the threshold here is conservative relative to that rather than
// tuned against a specific machine.
const bigfftThreshold = 1024

// mulMagnitudes returns the (unnormalized) product of two mantissa limb
// slices, using bigfft.Mul for large operands and schoolbook multiplication
// otherwise. Package transcendental reaches it only through Mul; at
// ordinary working precisions it rarely crosses bigfftThreshold.
func mulMagnitudes(x, y []limb.Word) []limb.Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) < bigfftThreshold {
		return schoolbookMul(x, y)
	}
	xi := natToBigInt(x)
	yi := natToBigInt(y)
	zi := bigfft.Mul(xi, yi)
	return bigIntToNat(zi, len(x)+len(y))
}

func schoolbookMul(x, y []limb.Word) []limb.Word {
	z := make([]limb.Word, len(x)+len(y))
	for i, yi := range y {
		if yi == 0 {
			continue
		}
		var carry limb.Word
		for j, xj := range x {
			hi, lo := mulAddWW(xj, yi, z[i+j])
			sum := lo + carry
			if sum < lo {
				hi++
			}
			z[i+j] = sum
			carry = hi
		}
		k := i + len(x)
		for carry != 0 {
			z[k] += carry
			if z[k] >= carry {
				carry = 0
			} else {
				carry = 1
			}
			k++
		}
	}
	for len(z) > 1 && z[len(z)-1] == 0 {
		z = z[:len(z)-1]
	}
	return z
}

// mulAddWW computes hi:lo = x*y + c.
func mulAddWW(x, y, c limb.Word) (hi, lo limb.Word) {
	const halfBits = limb.Bits / 2
	const halfMask = 1<<halfBits - 1

	x0, x1 := x&halfMask, x>>halfBits
	y0, y1 := y&halfMask, y>>halfBits

	t := x1*y0 + (x0*y0)>>halfBits
	w1 := t & halfMask
	w2 := t >> halfBits
	w1 += x0 * y1
	hi = x1*y1 + w2 + w1>>halfBits
	lo = x*y + c
	if lo < c {
		hi++
	}
	return hi, lo
}

func natToBigInt(x []limb.Word) *big.Int {
	bs := make([]big.Word, len(x))
	for i, w := range x {
		bs[i] = big.Word(w)
	}
	z := new(big.Int)
	z.SetBits(bs)
	return z
}

func bigIntToNat(z *big.Int, size int) []limb.Word {
	bits := z.Bits()
	out := make([]limb.Word, size)
	for i, w := range bits {
		if i >= size {
			break
		}
		out[i] = limb.Word(w)
	}
	for len(out) > 1 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	return out
}
