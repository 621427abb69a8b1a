package sum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-bigfloat/bigsum/internal/limb"
)

func TestCeilLog2(t *testing.T) {
	cases := map[int]int{
		1: 0,
		2: 1,
		3: 2,
		4: 2,
		5: 3,
		8: 3,
		9: 4,
	}
	for n, want := range cases {
		require.Equal(t, want, ceilLog2(n), "ceilLog2(%d)", n)
	}
}

func TestNewWindowSizeGrowsWithN(t *testing.T) {
	small := newWindowSize(4, 53)
	large := newWindowSize(4096, 53)
	require.Greater(t, large.cq, small.cq)
	require.GreaterOrEqual(t, large.ws, small.ws)
	require.Equal(t, int64(small.ws)*int64(limb.Bits), small.wq)
}
