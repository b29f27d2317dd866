//go:build bitkernel_swar

package popcount

// swarForced implements the compile-time toggle from spec section 6:
// building with -tags bitkernel_swar always uses the portable
// Wilkes-Wheeler-Gill reduction, even on hardware that supports a
// native popcount instruction.
const swarForced = true
