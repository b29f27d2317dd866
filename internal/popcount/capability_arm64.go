//go:build arm64

package popcount

import "golang.org/x/sys/cpu"

func init() {
	// The vector CNT instruction is part of the mandatory ASIMD (NEON)
	// instruction set on ARMv8-A; math/bits.OnesCount64 lowers to it
	// via the RBIT/CLZ-free popcount sequence when ASIMD is present.
	hasCNT = cpu.ARM64.HasASIMD
	selectHardwarePath()
}
