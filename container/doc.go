// Package container implements the packed container: a contiguous
// array-of-bitsets with uniform per-element length, laid out as
// equal-sized fixed-stride slots in a single backing []uint64. This
// is the memory layout the batched kernels in package kernel iterate
// over — one contiguous block instead of a slice of separately
// allocated bitsets, for cache and device-residency friendliness.
package container
