package kernel

import (
	"context"
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/container"
	"github.com/stretchr/testify/require"
)

// TestOracleBatchedIntersection cross-checks the host kernel's batched
// intersection counts against an independent, compressed-bitmap
// implementation, over randomized containers.
func TestOracleBatchedIntersection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const length = 2048
	const nA, nB = 6, 5

	a := container.New(length, nA)
	b := container.New(length, nB)
	oracleA := make([]*roaring.Bitmap, nA)
	oracleB := make([]*roaring.Bitmap, nB)

	fill := func(c *container.Container, n int) []*roaring.Bitmap {
		oracles := make([]*roaring.Bitmap, n)
		for i := 0; i < n; i++ {
			bs := bitset.New(length)
			ob := roaring.New()
			for k := 0; k < length/10; k++ {
				bit := rng.Intn(length)
				bs.SetBit(bit)
				ob.Add(uint32(bit))
			}
			c.Put(i, bs)
			oracles[i] = ob
		}
		return oracles
	}
	oracleA = fill(a, nA)
	oracleB = fill(b, nB)

	m, err := RunHost(context.Background(), a, b, bitset.OpIntersection, HostOptions{})
	require.NoError(t, err)

	for i := 0; i < nA; i++ {
		for j := 0; j < nB; j++ {
			want := oracleA[i].AndCardinality(oracleB[j])
			require.Equal(t, int32(want), m.At(i, j), "cell (%d,%d)", i, j)
		}
	}
}
