// Package popcount implements the popcount primitive: counting set bits
// in a 64-bit word and in a byte span.
//
// Two implementations are available:
//   - a portable Wilkes-Wheeler-Gill SWAR reduction, always correct
//   - a hardware path built on math/bits.OnesCount64, which the Go
//     compiler lowers to a native POPCNT/CNT instruction when the
//     target CPU supports it
//
// The choice between them is made once, at package init, based on a
// CPU-feature probe (capability_amd64.go, capability_arm64.go) unless
// the bitkernel_swar build tag forces the portable path. Callers never
// see the distinction; both paths are bit-identical.
package popcount
