package popcount

// CPU feature flags, set by the platform-specific init function below
// before selectHardwarePath runs. Left false on architectures with no
// capability probe (the portable path is always correct there).
var (
	hasPOPCNT bool // x86-64 POPCNT
	hasCNT    bool // ARM64 CNT (population count instruction)
)

// selectHardwarePath switches wordFn to the hardware implementation
// when the CPU-feature probe found support for it and the
// bitkernel_swar build tag was not set to force the portable path.
// Called from the platform-specific init() below, so it runs exactly
// once, before any Word/Bytes call can observe wordFn.
func selectHardwarePath() {
	if swarForced {
		return
	}
	if hasPOPCNT || hasCNT {
		wordFn = wordHardware
	}
}

// ActiveImplementation reports which popcount path is in effect,
// mainly for diagnostics and tests.
func ActiveImplementation() string {
	if swarForced {
		return "portable"
	}
	if hasPOPCNT || hasCNT {
		return "hardware"
	}
	return "portable"
}
