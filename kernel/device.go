package kernel

import (
	"context"
	"sync"
	"unsafe"

	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/container"
	"github.com/chrisarg/Bit/internal/popcount"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// deviceBuffer is one device-resident copy of a host buffer, tracked
// by reference count per the residency protocol in spec section 4.6.
type deviceBuffer[T any] struct {
	data     []T
	refcount int
}

// deviceRegistry holds the residency state for one accelerator. It
// is process-wide and persists across RunDevice calls so that a
// caller can stream operands against a pinned reference set without
// repeated transfers.
type deviceRegistry struct {
	mu       sync.Mutex
	operands map[uintptr]*deviceBuffer[uint64]
	results  map[uintptr]*deviceBuffer[int32]

	semOnce sync.Once
	sem     *semaphore.Weighted
}

var (
	registriesMu sync.Mutex
	registries   = map[int]*deviceRegistry{}
)

func registryFor(deviceID int) *deviceRegistry {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	reg, ok := registries[deviceID]
	if !ok {
		reg = &deviceRegistry{
			operands: map[uintptr]*deviceBuffer[uint64]{},
			results:  map[uintptr]*deviceBuffer[int32]{},
		}
		registries[deviceID] = reg
	}
	return reg
}

// ResetDevice discards all residency state for deviceID. Exposed for
// tests and for callers that want a clean slate.
func ResetDevice(deviceID int) {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	delete(registries, deviceID)
}

func (r *deviceRegistry) transferSemaphore(maxInFlight int64) *semaphore.Weighted {
	r.semOnce.Do(func() {
		if maxInFlight <= 0 {
			maxInFlight = 4
		}
		r.sem = semaphore.NewWeighted(maxInFlight)
	})
	return r.sem
}

func simulateTransfer(ctx context.Context, sem *semaphore.Weighted, limiter *rate.Limiter, nbytes int) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	if limiter == nil || nbytes <= 0 {
		return nil
	}
	burst := limiter.Burst()
	remaining := nbytes
	for remaining > 0 {
		n := remaining
		if n > burst {
			n = burst
		}
		if err := limiter.WaitN(ctx, n); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

func wordsIdentity(words []uint64) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(words)))
}

func int32sIdentity(vals []int32) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(vals)))
}

func (r *deviceRegistry) acquireOperand(ctx context.Context, sem *semaphore.Weighted, limiter *rate.Limiter, host []uint64, update bool) (*deviceBuffer[uint64], error) {
	key := wordsIdentity(host)

	r.mu.Lock()
	buf, resident := r.operands[key]
	r.mu.Unlock()

	switch {
	case !resident:
		if err := simulateTransfer(ctx, sem, limiter, len(host)*8); err != nil {
			return nil, err
		}
		data := make([]uint64, len(host))
		copy(data, host)
		buf = &deviceBuffer[uint64]{data: data, refcount: 1}
		r.mu.Lock()
		r.operands[key] = buf
		r.mu.Unlock()
	case update:
		if err := simulateTransfer(ctx, sem, limiter, len(host)*8); err != nil {
			return nil, err
		}
		r.mu.Lock()
		copy(buf.data, host)
		r.mu.Unlock()
	}
	return buf, nil
}

func (r *deviceRegistry) releaseOperand(host []uint64) {
	key := wordsIdentity(host)
	r.mu.Lock()
	defer r.mu.Unlock()
	buf, ok := r.operands[key]
	if !ok {
		panic("kernel: release of non-resident operand buffer")
	}
	buf.refcount--
	if buf.refcount <= 0 {
		delete(r.operands, key)
	}
}

func (r *deviceRegistry) acquireResult(ctx context.Context, sem *semaphore.Weighted, limiter *rate.Limiter, dst []int32) (*deviceBuffer[int32], error) {
	key := int32sIdentity(dst)

	r.mu.Lock()
	buf, resident := r.results[key]
	r.mu.Unlock()

	if resident && len(buf.data) != len(dst) {
		panic("kernel: result buffer residency mismatch")
	}
	if !resident {
		if err := simulateTransfer(ctx, sem, limiter, len(dst)*4); err != nil {
			return nil, err
		}
		buf = &deviceBuffer[int32]{data: make([]int32, len(dst)), refcount: 1}
		r.mu.Lock()
		r.results[key] = buf
		r.mu.Unlock()
	}
	return buf, nil
}

func (r *deviceRegistry) releaseResult(dst []int32) {
	key := int32sIdentity(dst)
	r.mu.Lock()
	defer r.mu.Unlock()
	buf, ok := r.results[key]
	if !ok {
		panic("kernel: release of non-resident result buffer")
	}
	buf.refcount--
	if buf.refcount <= 0 {
		delete(r.results, key)
	}
}

// RunDevice computes the batched set-operation-count matrix for op
// over A and B on the simulated device backend, allocating and
// returning the result.
func RunDevice(ctx context.Context, a, b *container.Container, op bitset.Op, opts DeviceOptions) (*Matrix, error) {
	m := newMatrix(a.NElem(), b.NElem())
	if err := RunDeviceInto(ctx, a, b, op, opts, m.Data); err != nil {
		return nil, err
	}
	return m, nil
}

// RunDeviceInto is RunDevice writing into a caller-provided buffer of
// exactly A.NElem()*B.NElem() elements, following the buffer-
// residency lifecycle: operands are copied to the device only if not
// already resident (or if their update flag forces a refresh), the
// kernel launches as A.NElem() teams each iterating the B.NElem()
// axis, the result matrix is copied back unconditionally, and each
// release_* flag then decrements the corresponding buffer's device
// reference count.
func RunDeviceInto(ctx context.Context, a, b *container.Container, op bitset.Op, opts DeviceOptions, dst []int32) error {
	if opts.DeviceID < 0 {
		panic("kernel: invalid device id")
	}
	if a.Len() != b.Len() {
		panic("kernel: container length mismatch")
	}
	if len(dst) != a.NElem()*b.NElem() {
		panic("kernel: destination buffer size mismatch")
	}

	logger := defaultLogger(opts.Logger).WithDevice(opts.DeviceID)
	reg := registryFor(opts.DeviceID)
	sem := reg.transferSemaphore(opts.MaxInFlightTransfers)

	var limiter *rate.Limiter
	if opts.TransferBytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.TransferBytesPerSec), int(opts.TransferBytesPerSec))
	}

	aWords, bWords := a.Words(), b.Words()

	aBuf, err := reg.acquireOperand(ctx, sem, limiter, aWords, opts.UpdateFirst)
	if err != nil {
		return err
	}
	bBuf, err := reg.acquireOperand(ctx, sem, limiter, bWords, opts.UpdateSecond)
	if err != nil {
		return err
	}
	resultBuf, err := reg.acquireResult(ctx, sem, limiter, dst)
	if err != nil {
		return err
	}

	logger.Debug("device kernel launch", "teams", a.NElem())
	if err := launchTeams(ctx, a, b, op, aBuf.data, bBuf.data, resultBuf.data); err != nil {
		return err
	}
	logger.Debug("device kernel finished")

	// Post-kernel: copy the result matrix device->host unconditionally.
	copy(dst, resultBuf.data)

	if opts.ReleaseFirst {
		reg.releaseOperand(aWords)
	}
	if opts.ReleaseSecond {
		reg.releaseOperand(bWords)
	}
	if opts.ReleaseCounts {
		reg.releaseResult(dst)
	}
	return nil
}

// launchTeams models the OpenMP target teams distribute / parallel /
// simd reduction nesting from the reference implementation: one team
// per row of A, each team's workers fanning out over the columns of
// B, each worker doing an independent word-loop reduction. No
// inter-pair dependency exists, so every (i, j) cell is written
// exactly once regardless of scheduling.
func launchTeams(ctx context.Context, a, b *container.Container, op bitset.Op, aData, bData []uint64, dst []int32) error {
	g, gctx := errgroup.WithContext(ctx)
	aStride, bStride := a.Stride(), b.Stride()
	bn := b.NElem()

	for i := 0; i < a.NElem(); i++ {
		sa := aData[i*aStride : (i+1)*aStride]
		row := dst[i*bn : (i+1)*bn]
		g.Go(func() error {
			var team errgroup.Group
			for j := 0; j < bn; j++ {
				sb := bData[j*bStride : (j+1)*bStride]
				j := j
				team.Go(func() error {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					var tile [popcount.TileWords]uint64
					row[j] = int32(combineCount(op, sa, sb, tile[:]))
					return nil
				})
			}
			return team.Wait()
		})
	}
	return g.Wait()
}
