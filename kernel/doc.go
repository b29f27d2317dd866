// Package kernel implements the batched set-operation-count kernel:
// given two packed containers A and B and one of the four pairwise
// combinators, it computes the A.NElem() x B.NElem() row-major matrix
// of popcount(combinator(A[i], B[j])).
//
// Two backends share the same contract. RunHost/RunHostInto
// parallelize across a fixed worker pool using a guided (shrinking
// chunk) schedule over the flattened iteration space. RunDevice/
// RunDeviceInto simulate an accelerator offload with an explicit,
// reference-counted buffer-residency lifecycle, since no real
// accelerator runtime is part of this module's dependency set.
package kernel
