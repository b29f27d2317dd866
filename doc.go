// Package bit is a dense, uncompressed bitset library with pairwise
// set algebra and a batched container engine for evaluating a
// Cartesian product of set-operation counts between two collections
// of fixed-length bitsets, across a multithreaded host backend and a
// simulated accelerator-offload backend.
//
// The individual bitset and its pairwise operations live in package
// bitset; the contiguous array-of-bitsets layout lives in package
// container; the batched host/device kernels live in package kernel.
// This root package holds only the small pieces every caller needs
// regardless of which of those they use, currently just logger
// construction.
package bit
