package kernel

import (
	bit "github.com/chrisarg/Bit"
)

// maxWorkers is the hard cap on host worker count from spec section
// 4.5. A caller asking for more is a precondition violation.
const maxWorkers = 1024

// Matrix is an A.NElem() x B.NElem() row-major population-count
// result matrix.
type Matrix struct {
	Rows, Cols int
	Data       []int32
}

func newMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]int32, rows*cols)}
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) int32 {
	return m.Data[i*m.Cols+j]
}

// HostOptions configures the host batched kernel.
type HostOptions struct {
	// WorkerCount is the size of the worker pool. <= 0 means
	// runtime.GOMAXPROCS(0). Must not exceed 1024.
	WorkerCount int
	// Logger receives coarse worker-pool lifecycle diagnostics. A
	// nil Logger discards them.
	Logger *bit.Logger
}

// DeviceOptions configures the device batched kernel and its
// buffer-residency lifecycle.
type DeviceOptions struct {
	// DeviceID identifies the target accelerator. Residency state is
	// tracked per DeviceID and persists across calls.
	DeviceID int

	// UpdateFirst / UpdateSecond force a refresh of an already
	// resident operand's device copy from its current host contents.
	UpdateFirst, UpdateSecond bool

	// ReleaseFirst / ReleaseSecond / ReleaseCounts decrement the
	// corresponding buffer's device reference count after the kernel
	// runs, deallocating it on the device once the count reaches zero.
	ReleaseFirst, ReleaseSecond, ReleaseCounts bool

	// MaxInFlightTransfers caps concurrent host<->device transfers
	// for this device. <= 0 defaults to 4. Fixed by the first call
	// that establishes the device's registry.
	MaxInFlightTransfers int64

	// TransferBytesPerSec throttles this call's host<->device
	// transfers. 0 means unlimited.
	TransferBytesPerSec int64

	// Logger receives kernel launch and finish diagnostics, annotated
	// with the device ID via WithDevice. A nil Logger discards them.
	Logger *bit.Logger
}

func defaultLogger(l *bit.Logger) *bit.Logger {
	if l != nil {
		return l
	}
	return bit.NoopLogger()
}
