package kernel

import "sync/atomic"

// guidedCursor hands out shrinking chunks of a flattened iteration
// space, the same tapering shape OpenMP's schedule(guided) uses: each
// claim is roughly half of what remains divided across the workers,
// floored at one item, so early chunks are large (low contention on
// the cursor) and late chunks are small (good load balance at the
// tail).
type guidedCursor struct {
	total   int64
	workers int64
	next    atomic.Int64
}

func newGuidedCursor(total, workers int) *guidedCursor {
	return &guidedCursor{total: int64(total), workers: int64(workers)}
}

// claim returns the next [lo, hi) chunk, or ok=false once the space
// is exhausted.
func (c *guidedCursor) claim() (lo, hi int, ok bool) {
	for {
		cur := c.next.Load()
		if cur >= c.total {
			return 0, 0, false
		}
		remaining := c.total - cur
		chunk := remaining / (2 * c.workers)
		if chunk < 1 {
			chunk = 1
		}
		if chunk > remaining {
			chunk = remaining
		}
		if c.next.CompareAndSwap(cur, cur+chunk) {
			return int(cur), int(cur + chunk), true
		}
	}
}
