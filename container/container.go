package container

import (
	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/internal/popcount"
)

// Container is a contiguous array of nelem fixed-length bitsets, each
// occupying stride consecutive words.
type Container struct {
	length int
	nelem  int
	stride int
	words  []uint64
}

// New allocates a zeroed container of nelem slots, each of the given
// bit length.
func New(length, nelem int) *Container {
	if length <= 0 {
		panic("container: length must be positive")
	}
	if nelem <= 0 {
		panic("container: nelem must be positive")
	}
	stride, _ := bitset.Sizes(length)
	return &Container{
		length: length,
		nelem:  nelem,
		stride: stride,
		words:  make([]uint64, stride*nelem),
	}
}

func (c *Container) checkHandle() {
	if c == nil {
		panic("container: nil handle")
	}
}

func (c *Container) checkSlot(i int) {
	c.checkHandle()
	if i < 0 || i >= c.nelem {
		panic("container: slot index out of range")
	}
}

func (c *Container) slot(i int) []uint64 {
	start := i * c.stride
	return c.words[start : start+c.stride]
}

// Len returns the bit length of each slot.
func (c *Container) Len() int {
	c.checkHandle()
	return c.length
}

// NElem returns the number of slots.
func (c *Container) NElem() int {
	c.checkHandle()
	return c.nelem
}

// Stride returns the per-slot word count. Used by the batched
// kernels to walk slots without recomputing bitset.Sizes.
func (c *Container) Stride() int {
	c.checkHandle()
	return c.stride
}

// Words returns the container's full backing storage, aliased not
// copied. Slot i occupies Words()[i*Stride() : (i+1)*Stride()].
// Exported for the batched kernels in package kernel.
func (c *Container) Words() []uint64 {
	c.checkHandle()
	return c.words
}

// Get returns a freshly allocated bitset copy of slot i.
func (c *Container) Get(i int) *bitset.Bitset {
	c.checkSlot(i)
	b := bitset.New(c.length)
	copy(b.Words(), c.slot(i))
	return b
}

// Put copies b into slot i. b must have the same length as the
// container's element length.
func (c *Container) Put(i int, b *bitset.Bitset) {
	c.checkSlot(i)
	if b.Len() != c.length {
		panic("container: length mismatch")
	}
	copy(c.slot(i), b.Words())
}

// Extract copies slot i's byte view into dst, which must be at least
// bitset.BufferSize(Len()) bytes, and returns the number of bytes
// written.
func (c *Container) Extract(i int, dst []byte) int {
	c.checkSlot(i)
	_, bytesLen := bitset.Sizes(c.length)
	if len(dst) < bytesLen {
		panic("container: destination buffer too small")
	}
	src := wordsAsBytes(c.slot(i), bytesLen)
	return copy(dst, src)
}

// Replace copies bytes from src into slot i. src must be at least
// bitset.BufferSize(Len()) bytes.
func (c *Container) Replace(i int, src []byte) {
	c.checkSlot(i)
	_, bytesLen := bitset.Sizes(c.length)
	if len(src) < bytesLen {
		panic("container: source buffer too small")
	}
	dst := wordsAsBytes(c.slot(i), bytesLen)
	copy(dst, src)
}

// ClearSlot zeroes slot i.
func (c *Container) ClearSlot(i int) {
	c.checkSlot(i)
	slot := c.slot(i)
	for k := range slot {
		slot[k] = 0
	}
}

// ClearAll zeroes the whole container.
func (c *Container) ClearAll() {
	c.checkHandle()
	for k := range c.words {
		c.words[k] = 0
	}
}

// CountAt returns the population count of slot i.
func (c *Container) CountAt(i int) uint64 {
	c.checkSlot(i)
	return popcount.Words(c.slot(i))
}

// CountAll returns the population count of every slot, in slot order.
func (c *Container) CountAll() []uint64 {
	c.checkHandle()
	counts := make([]uint64, c.nelem)
	for i := 0; i < c.nelem; i++ {
		counts[i] = popcount.Words(c.slot(i))
	}
	return counts
}

// Close releases the container's storage. The handle must not be
// used again afterwards.
func (c *Container) Close() {
	if c == nil {
		return
	}
	c.words = nil
}
