package container

import (
	"testing"

	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/internal/popcount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPut(t *testing.T) {
	c := New(128, 4)
	require.Equal(t, 128, c.Len())
	require.Equal(t, 4, c.NElem())

	b := bitset.New(128)
	b.SetMany([]int{1, 2, 3})
	c.Put(2, b)

	got := c.Get(2)
	assert.Equal(t, uint64(3), got.Count())
	assert.True(t, bitset.Eq(b, got))
}

func TestCountAtAndCountAll(t *testing.T) {
	c := New(64, 3)
	for i := 0; i < 3; i++ {
		b := bitset.New(64)
		b.SetRange(0, i*5)
		c.Put(i, b)
	}

	assert.Equal(t, c.CountAt(0), uint64(1))
	assert.Equal(t, c.CountAll(), []uint64{1, 6, 11})
}

func TestExtractReplaceRoundTrip(t *testing.T) {
	c := New(256, 2)
	b := bitset.New(256)
	b.SetMany([]int{10, 200, 255})
	c.Put(0, b)

	buf := make([]byte, bitset.BufferSize(256))
	c.Extract(0, buf)

	c.Replace(1, buf)
	assert.Equal(t, c.CountAt(0), c.CountAt(1))
	assert.True(t, bitset.Eq(c.Get(0), c.Get(1)))

	// Cross-check the extracted byte view against the independent
	// popcount.Bytes path rather than trusting CountAt alone.
	assert.Equal(t, popcount.Bytes(buf), c.CountAt(0))
}

func TestClearSlotAndClearAll(t *testing.T) {
	c := New(64, 2)
	c.Put(0, mustFilled(64, 0, 63))
	c.Put(1, mustFilled(64, 0, 63))

	c.ClearSlot(0)
	assert.Equal(t, uint64(0), c.CountAt(0))
	assert.Equal(t, uint64(64), c.CountAt(1))

	c.ClearAll()
	assert.Equal(t, []uint64{0, 0}, c.CountAll())
}

func TestContainerConsistency(t *testing.T) {
	c := New(300, 5)
	for i := 0; i < 5; i++ {
		b := bitset.New(300)
		b.SetRange(0, i*20)
		c.Put(i, b)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, c.CountAt(i), c.Get(i).Count())
	}
}

func TestPreconditionPanics(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"bad nelem", func() { New(64, 0) }},
		{"bad length", func() { New(0, 4) }},
		{"slot out of range", func() { New(64, 2).Get(5) }},
		{"put length mismatch", func() { New(64, 2).Put(0, bitset.New(128)) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", c.name)
				}
			}()
			c.fn()
		})
	}
}

func mustFilled(length, lo, hi int) *bitset.Bitset {
	b := bitset.New(length)
	b.SetRange(lo, hi)
	return b
}
