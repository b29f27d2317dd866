// Package bitset implements a fixed-capacity dense bit array and the
// pairwise set algebra over it: union, intersection, symmetric
// difference ("diff"), and relative complement ("minus"), each in a
// value-producing form and a population-count form.
//
// A Bitset never grows or shrinks after construction. Precondition
// violations (nil handle where one is forbidden, an out-of-range
// index, an inverted range, a length mismatch between two operands)
// are checked runtime errors realized as panics — this library treats
// them as fatal programmer errors, not recoverable conditions.
package bitset
