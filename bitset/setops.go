package bitset

import "github.com/chrisarg/Bit/internal/popcount"

// Op tags one of the four pairwise set operations. Dispatch on Op
// happens once per call, outside the inner word loop.
type Op int

const (
	OpUnion Op = iota
	OpIntersection
	OpDiff
	OpMinus
)

// Combine applies op's Boolean combinator to a single pair of words.
// Exported so the batched kernels in package kernel can share the
// same combinator logic instead of re-deriving it per operation.
func Combine(op Op, a, b uint64) uint64 {
	return combine(op, a, b)
}

func combine(op Op, a, b uint64) uint64 {
	switch op {
	case OpUnion:
		return a | b
	case OpIntersection:
		return a & b
	case OpDiff:
		return a ^ b
	case OpMinus:
		return a &^ b
	default:
		panic("bitset: unknown operation")
	}
}

// setOp implements the null-operand table: a null handle denotes the
// empty set of the other operand's length. Both null is a checked
// runtime error.
func setOp(op Op, s, t *Bitset) *Bitset {
	switch {
	case s == nil && t == nil:
		panic("bitset: setop requires at least one non-null operand")
	case t == nil:
		return setOpAgainstEmpty(op, s, true)
	case s == nil:
		return setOpAgainstEmpty(op, t, false)
	default:
		if s.length != t.length {
			panic("bitset: length mismatch")
		}
		r := New(s.length)
		for i := range r.words {
			r.words[i] = combine(op, s.words[i], t.words[i])
		}
		return r
	}
}

// setOpAgainstEmpty computes op(x, empty) when first is true, or
// op(empty, x) when first is false.
func setOpAgainstEmpty(op Op, x *Bitset, first bool) *Bitset {
	switch op {
	case OpUnion:
		return x.copyOf()
	case OpIntersection:
		return New(x.length)
	case OpDiff:
		return x.copyOf()
	case OpMinus:
		if first {
			return x.copyOf() // s \ ∅ = s
		}
		return New(x.length) // ∅ \ t = ∅
	default:
		panic("bitset: unknown operation")
	}
}

func setOpCount(op Op, s, t *Bitset) uint64 {
	switch {
	case s == nil && t == nil:
		panic("bitset: setop requires at least one non-null operand")
	case t == nil:
		return setOpCountAgainstEmpty(op, s, true)
	case s == nil:
		return setOpCountAgainstEmpty(op, t, false)
	default:
		if s.length != t.length {
			panic("bitset: length mismatch")
		}
		var total uint64
		for i := range s.words {
			total += uint64(popcount.Word(combine(op, s.words[i], t.words[i])))
		}
		return total
	}
}

func setOpCountAgainstEmpty(op Op, x *Bitset, first bool) uint64 {
	switch op {
	case OpUnion:
		return x.Count()
	case OpIntersection:
		return 0
	case OpDiff:
		return x.Count()
	case OpMinus:
		if first {
			return x.Count()
		}
		return 0
	default:
		panic("bitset: unknown operation")
	}
}

// Union returns s ∪ t as a new bitset.
func Union(s, t *Bitset) *Bitset { return setOp(OpUnion, s, t) }

// Intersection returns s ∩ t as a new bitset.
func Intersection(s, t *Bitset) *Bitset { return setOp(OpIntersection, s, t) }

// Diff returns the symmetric difference s ⊕ t as a new bitset.
func Diff(s, t *Bitset) *Bitset { return setOp(OpDiff, s, t) }

// Minus returns the relative complement s \ t as a new bitset.
func Minus(s, t *Bitset) *Bitset { return setOp(OpMinus, s, t) }

// UnionCount returns count(Union(s, t)) without materializing it.
func UnionCount(s, t *Bitset) uint64 { return setOpCount(OpUnion, s, t) }

// IntersectionCount returns count(Intersection(s, t)) without materializing it.
func IntersectionCount(s, t *Bitset) uint64 { return setOpCount(OpIntersection, s, t) }

// DiffCount returns count(Diff(s, t)) without materializing it.
func DiffCount(s, t *Bitset) uint64 { return setOpCount(OpDiff, s, t) }

// MinusCount returns count(Minus(s, t)) without materializing it.
func MinusCount(s, t *Bitset) uint64 { return setOpCount(OpMinus, s, t) }
