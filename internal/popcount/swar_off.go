//go:build !bitkernel_swar

package popcount

const swarForced = false
