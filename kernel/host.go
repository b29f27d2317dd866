package kernel

import (
	"context"
	"runtime"

	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/container"
	"github.com/chrisarg/Bit/internal/popcount"
	"golang.org/x/sync/errgroup"
)

// RunHost computes the batched set-operation-count matrix for op over
// A and B on the host, allocating and returning the result.
func RunHost(ctx context.Context, a, b *container.Container, op bitset.Op, opts HostOptions) (*Matrix, error) {
	m := newMatrix(a.NElem(), b.NElem())
	if err := RunHostInto(ctx, a, b, op, opts, m.Data); err != nil {
		return nil, err
	}
	return m, nil
}

// RunHostInto is RunHost writing into a caller-provided buffer of
// exactly A.NElem()*B.NElem() elements. It never allocates per pair.
func RunHostInto(ctx context.Context, a, b *container.Container, op bitset.Op, opts HostOptions, dst []int32) error {
	if a.Len() != b.Len() {
		panic("kernel: container length mismatch")
	}
	total := a.NElem() * b.NElem()
	if len(dst) != total {
		panic("kernel: destination buffer size mismatch")
	}

	workers := opts.WorkerCount
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > maxWorkers {
		panic("kernel: worker count exceeds hard cap")
	}
	if workers > total {
		workers = total
	}
	if total == 0 {
		return nil
	}

	logger := defaultLogger(opts.Logger)
	logger.Debug("host kernel starting", "workers", workers, "pairs", total)

	cursor := newGuidedCursor(total, workers)
	g, gctx := errgroup.WithContext(ctx)

	aWords, bWords := a.Words(), b.Words()
	aStride, bStride := a.Stride(), b.Stride()
	bn := b.NElem()

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var tile [popcount.TileWords]uint64
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				lo, hi, ok := cursor.claim()
				if !ok {
					return nil
				}
				for idx := lo; idx < hi; idx++ {
					i, j := idx/bn, idx%bn
					sa := aWords[i*aStride : (i+1)*aStride]
					sb := bWords[j*bStride : (j+1)*bStride]
					dst[idx] = int32(combineCount(op, sa, sb, tile[:]))
				}
			}
		})
	}

	err := g.Wait()
	logger.Debug("host kernel finished", "err", err)
	return err
}
