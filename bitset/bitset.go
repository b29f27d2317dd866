package bitset

import (
	"unsafe"

	"github.com/chrisarg/Bit/internal/popcount"
)

const wordBits = 64

// Bitset is a fixed-capacity dense bit array. The zero value is not
// usable; construct one with New or Load.
type Bitset struct {
	length int
	words  []uint64
	owned  bool
	buf    []byte // set only for a non-owned handle from Load; returned by Close
}

// Sizes returns the word count and byte count of the storage a bitset
// of the given length requires: qwords = ceil(length/64), bytes =
// qwords*8.
func Sizes(length int) (qwords, bytes int) {
	qwords = (length + wordBits - 1) / wordBits
	bytes = qwords * 8
	return
}

// BufferSize returns ceil(length/64)*8, the byte count of a bitset of
// the given length: Load requires exactly this many bytes, Extract and
// container Replace at least this many.
func BufferSize(length int) int {
	_, b := Sizes(length)
	return b
}

// New allocates a zeroed, owned bitset of the given length.
func New(length int) *Bitset {
	if length <= 0 {
		panic("bitset: length must be positive")
	}
	qwords, _ := Sizes(length)
	return &Bitset{length: length, words: make([]uint64, qwords), owned: true}
}

// Load adopts buf as the storage for a bitset of the given length.
// buf must be exactly BufferSize(length) bytes; the returned Bitset
// does not own the buffer and must not outlive it. The word view
// aliases buf directly in host byte order, so buf follows the
// little-endian layout only on little-endian hosts.
func Load(length int, buf []byte) *Bitset {
	if length <= 0 {
		panic("bitset: length must be positive")
	}
	qwords, bytesLen := Sizes(length)
	if len(buf) != bytesLen {
		panic("bitset: buffer size mismatch")
	}
	var words []uint64
	if qwords > 0 {
		words = unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), qwords)
	}
	return &Bitset{length: length, words: words, owned: false, buf: buf}
}

// Close releases the bitset's storage. If the handle owns its
// storage, the storage is dropped and Close returns nil. Otherwise it
// returns the original buffer passed to Load, so the caller can
// reclaim it. Either way the handle must not be used again.
func (s *Bitset) Close() []byte {
	if s == nil {
		return nil
	}
	if s.owned {
		s.words = nil
		return nil
	}
	buf := s.buf
	s.words = nil
	s.buf = nil
	return buf
}

func (s *Bitset) checkHandle() {
	if s == nil {
		panic("bitset: nil handle")
	}
}

func (s *Bitset) checkIndex(i int) {
	s.checkHandle()
	if i < 0 || i >= s.length {
		panic("bitset: index out of range")
	}
}

// Get returns the value of bit i as 0 or 1.
func (s *Bitset) Get(i int) int {
	s.checkIndex(i)
	return int((s.words[i/wordBits] >> uint(i%wordBits)) & 1)
}

// SetBit sets bit i to 1.
func (s *Bitset) SetBit(i int) {
	s.checkIndex(i)
	s.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// ClearBit sets bit i to 0.
func (s *Bitset) ClearBit(i int) {
	s.checkIndex(i)
	s.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Put writes v (0 or 1) to bit i and returns the prior value.
func (s *Bitset) Put(i, v int) int {
	prev := s.Get(i)
	if v != 0 {
		s.SetBit(i)
	} else {
		s.ClearBit(i)
	}
	return prev
}

// SetMany sets every bit named in indices.
func (s *Bitset) SetMany(indices []int) {
	for _, i := range indices {
		s.SetBit(i)
	}
}

// ClearMany clears every bit named in indices.
func (s *Bitset) ClearMany(indices []int) {
	for _, i := range indices {
		s.ClearBit(i)
	}
}

// msb[k] has bits k..7 set; lsb[k] has bits 0..k set. Used to mask the
// partial bytes at the ends of a bit range so the interior can be
// touched a whole byte at a time.
var (
	msbMask = [8]byte{0xFF, 0xFE, 0xFC, 0xF8, 0xF0, 0xE0, 0xC0, 0x80}
	lsbMask = [8]byte{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF}
)

func (s *Bitset) checkRange(lo, hi int) {
	s.checkHandle()
	if lo < 0 || lo > hi || hi >= s.length {
		panic("bitset: invalid range")
	}
}

func (s *Bitset) setByte(k int, apply func(cur byte) byte) {
	shift := uint((k % 8) * 8)
	w := &s.words[k/8]
	cur := byte(*w >> shift)
	*w = (*w &^ (0xFF << shift)) | (uint64(apply(cur)) << shift)
}

// rangeOp applies fn to every byte touched by [lo, hi], masking the
// partial bytes at the two ends and leaving untouched bits of those
// bytes unchanged; interior bytes are passed to fn whole.
func (s *Bitset) rangeOp(lo, hi int, fn func(cur, mask byte) byte) {
	s.checkRange(lo, hi)
	byteLo, byteHi := lo/8, hi/8
	loMask, hiMask := msbMask[lo%8], lsbMask[hi%8]

	if byteLo == byteHi {
		mask := loMask & hiMask
		s.setByte(byteLo, func(cur byte) byte { return fn(cur, mask) })
		return
	}
	s.setByte(byteLo, func(cur byte) byte { return fn(cur, loMask) })
	for k := byteLo + 1; k < byteHi; k++ {
		s.setByte(k, func(cur byte) byte { return fn(cur, 0xFF) })
	}
	s.setByte(byteHi, func(cur byte) byte { return fn(cur, hiMask) })
}

// SetRange sets every bit in [lo, hi] (inclusive).
func (s *Bitset) SetRange(lo, hi int) {
	s.rangeOp(lo, hi, func(cur, mask byte) byte { return cur | mask })
}

// ClearRange clears every bit in [lo, hi] (inclusive).
func (s *Bitset) ClearRange(lo, hi int) {
	s.rangeOp(lo, hi, func(cur, mask byte) byte { return cur &^ mask })
}

// FlipRange flips every bit in [lo, hi] (inclusive).
func (s *Bitset) FlipRange(lo, hi int) {
	s.rangeOp(lo, hi, func(cur, mask byte) byte { return cur ^ mask })
}

// Map calls fn(i, bit) for i = 0..Len()-1 in ascending order. fn may
// mutate the bitset; later calls observe the mutation.
func (s *Bitset) Map(fn func(i, bit int)) {
	s.checkHandle()
	for i := 0; i < s.length; i++ {
		fn(i, s.Get(i))
	}
}

// Len returns the bitset's capacity in bits.
func (s *Bitset) Len() int {
	s.checkHandle()
	return s.length
}

// Count returns the population count of the whole bitset.
func (s *Bitset) Count() uint64 {
	s.checkHandle()
	return popcount.Words(s.words)
}

// Words returns the bitset's underlying word storage, aliased not
// copied. Exported for sibling packages (container) that copy bits
// into and out of a bitset without going through the byte view.
func (s *Bitset) Words() []uint64 {
	s.checkHandle()
	return s.words
}

// Bytes returns the byte view of the bitset, aliasing the same storage
// as Words. On little-endian hosts byte k holds bits [8k, 8k+8) of the
// logical bitset, least-significant bit first; on big-endian hosts the
// bytes of each word are in host order.
func (s *Bitset) Bytes() []byte {
	s.checkHandle()
	if len(s.words) == 0 {
		return nil
	}
	_, bytesLen := Sizes(s.length)
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.words[0])), bytesLen)
}

// Extract copies the bitset's byte view into dst, which must be at
// least BufferSize(Len()) bytes, and returns the number of bytes
// written. Unlike Bytes, the result does not alias the bitset.
func (s *Bitset) Extract(dst []byte) int {
	s.checkHandle()
	src := s.Bytes()
	if len(dst) < len(src) {
		panic("bitset: destination buffer too small")
	}
	return copy(dst, src)
}

func (s *Bitset) copyOf() *Bitset {
	r := New(s.length)
	copy(r.words, s.words)
	return r
}

// Eq reports whether s and t have identical contents.
func Eq(s, t *Bitset) bool {
	checkSameLength(s, t)
	for i := range s.words {
		if s.words[i] != t.words[i] {
			return false
		}
	}
	return true
}

// Leq reports whether s is a subset of t (s ⊆ t).
func Leq(s, t *Bitset) bool {
	checkSameLength(s, t)
	for i := range s.words {
		if s.words[i]&^t.words[i] != 0 {
			return false
		}
	}
	return true
}

// Lt reports whether s is a proper subset of t. It preserves the
// source ADT's quirk: an empty s is never reported as strictly less
// than t, because the underlying test also requires some word of
// s & t to be non-zero — which is impossible when s is empty. This
// diverges from a pure proper-subset predicate but is kept for
// compatibility.
func Lt(s, t *Bitset) bool {
	checkSameLength(s, t)
	if !Leq(s, t) {
		return false
	}
	anyOverlap := false
	allEqual := true
	for i := range s.words {
		if s.words[i]&t.words[i] != 0 {
			anyOverlap = true
		}
		if s.words[i] != t.words[i] {
			allEqual = false
		}
	}
	return anyOverlap && !allEqual
}

func checkSameLength(s, t *Bitset) {
	s.checkHandle()
	t.checkHandle()
	if s.length != t.length {
		panic("bitset: length mismatch")
	}
}
