package container

import "unsafe"

// wordsAsBytes returns the byte view of a word slice (little-endian on
// little-endian hosts), aliasing the same storage — the same convention
// bitset.Bitset.Bytes uses, applied here to a single container slot.
func wordsAsBytes(words []uint64, bytesLen int) []byte {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), bytesLen)
}
