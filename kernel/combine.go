package kernel

import (
	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/internal/popcount"
)

// combineCount computes popcount(combinator(a, b)) for two equal-
// length word slices without materializing the combined bitset,
// accumulating into tile (reused across calls by the caller) so the
// bulk-tile popcount path in package popcount can be exercised
// instead of summing word by word.
func combineCount(op bitset.Op, a, b, tile []uint64) uint64 {
	var total uint64
	n := len(a)
	for i := 0; i < n; i += len(tile) {
		end := i + len(tile)
		if end > n {
			end = n
		}
		chunk := tile[:end-i]
		for k := range chunk {
			chunk[k] = bitset.Combine(op, a[i+k], b[i+k])
		}
		total += popcount.SumTile(chunk)
	}
	return total
}
