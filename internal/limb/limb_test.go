package limb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNCarry(t *testing.T) {
	z := make([]Word, 2)
	x := []Word{Max, Max}
	y := []Word{1, 0}
	carry := AddN(z, x, y)
	require.Equal(t, Word(1), carry)
	require.Equal(t, []Word{0, 0}, z)
}

func TestSubNBorrow(t *testing.T) {
	z := make([]Word, 2)
	x := []Word{0, 0}
	y := []Word{1, 0}
	borrow := SubN(z, x, y)
	require.Equal(t, Word(1), borrow)
	require.Equal(t, []Word{Max, Max}, z)
}

func TestLshiftRshiftRoundTrip(t *testing.T) {
	x := []Word{0x1, 0x8000000000000000 & Max}
	z := make([]Word, 2)
	carry := Lshift(z, x, 1)
	back := make([]Word, 2)
	Rshift(back, z, 1)
	require.Equal(t, x[0], back[0])
	_ = carry
}

func TestNeg(t *testing.T) {
	x := []Word{0, 0}
	z := make([]Word, 2)
	borrow := Neg(z, x)
	require.Equal(t, Word(0), borrow)
	require.Equal(t, []Word{0, 0}, z)

	x = []Word{1, 0}
	borrow = Neg(z, x)
	require.Equal(t, Word(1), borrow)
	require.Equal(t, []Word{Max, Max}, z)
}

func TestLeadingZeros(t *testing.T) {
	require.Equal(t, uint(Bits-1), LeadingZeros(1))
	require.Equal(t, uint(0), LeadingZeros(Max))
}

func TestAllOnesIfSet(t *testing.T) {
	require.Equal(t, Max, AllOnesIfSet(highBit))
	require.Equal(t, Word(0), AllOnesIfSet(highBit-1))
}
