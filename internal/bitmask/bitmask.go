// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

// Package bitmask implements a fixed-size bit mask on top of
//
//	github.com/bits-and-blooms/bitset
//
// The underlying bitset grows on demand; a Mask never does. Every mutator
// that could touch a bit at or beyond Size panics instead of growing, so a
// stray index can not silently widen the mask and corrupt the population
// queries the tree nodes depend on.
package bitmask

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Mask is a bit mask with a size fixed at construction.
//
// Bits at index >= Size() are never observable: IsEmpty, IsFull, Equal and
// the iteration methods all operate on exactly Size bits.
type Mask struct {
	bits *bitset.BitSet
	size uint
}

// New returns a cleared Mask with the given number of bits.
func New(size uint) *Mask {
	return &Mask{bits: bitset.New(size), size: size}
}

// Size returns the fixed number of bits.
func (m *Mask) Size() uint { return m.size }

// MustSet sets bit i, it panics if i >= Size by intention.
func (m *Mask) MustSet(i uint) {
	if i >= m.size {
		panic(fmt.Sprintf("bitmask: set %d out of range [0,%d)", i, m.size))
	}
	m.bits.Set(i)
}

// MustClear clears bit i, it panics if i >= Size by intention.
func (m *Mask) MustClear(i uint) {
	if i >= m.size {
		panic(fmt.Sprintf("bitmask: clear %d out of range [0,%d)", i, m.size))
	}
	m.bits.Clear(i)
}

// Test reports whether bit i is set. Out-of-range bits read as unset.
func (m *Mask) Test(i uint) bool { return i < m.size && m.bits.Test(i) }

// SetAll sets every bit.
func (m *Mask) SetAll() { m.bits.SetAll() }

// ClearAll clears every bit.
func (m *Mask) ClearAll() { m.bits.ClearAll() }

// IsEmpty reports whether no bit is set.
func (m *Mask) IsEmpty() bool { return m.bits.None() }

// IsFull reports whether every one of the Size bits is set.
func (m *Mask) IsFull() bool { return m.bits.All() }

// Count returns the number of set bits.
func (m *Mask) Count() int { return int(m.bits.Count()) }

// FirstSet returns the lowest set bit along with an ok code.
func (m *Mask) FirstSet() (uint, bool) { return m.bits.NextSet(0) }

// NextSet returns the next set bit at or after i along with an ok code.
func (m *Mask) NextSet(i uint) (uint, bool) { return m.bits.NextSet(i) }

// Or sets m to the bitwise union with o. Both masks must have equal size.
func (m *Mask) Or(o *Mask) {
	m.mustMatch(o)
	m.bits.InPlaceUnion(o.bits)
}

// And sets m to the bitwise intersection with o.
func (m *Mask) And(o *Mask) {
	m.mustMatch(o)
	m.bits.InPlaceIntersection(o.bits)
}

// Xor sets m to the bitwise symmetric difference with o.
func (m *Mask) Xor(o *Mask) {
	m.mustMatch(o)
	m.bits.InPlaceSymmetricDifference(o.bits)
}

// Not flips every bit. The complement respects Size, bits beyond it stay
// clear.
func (m *Mask) Not() { m.bits = m.bits.Complement() }

// ShiftLeft moves every set bit n positions towards higher indexes. Bits
// shifted past Size fall off. Shifting by zero is a no-op, shifting by
// Size or more clears the mask.
func (m *Mask) ShiftLeft(n uint) {
	switch {
	case n == 0:
		return
	case n >= m.size:
		m.bits.ClearAll()
		return
	}

	next := bitset.New(m.size)
	for i, ok := m.bits.NextSet(0); ok; i, ok = m.bits.NextSet(i + 1) {
		if i+n < m.size {
			next.Set(i + n)
		}
	}
	m.bits = next
}

// ShiftRight moves every set bit n positions towards lower indexes. Same
// edge-case behavior as ShiftLeft.
func (m *Mask) ShiftRight(n uint) {
	switch {
	case n == 0:
		return
	case n >= m.size:
		m.bits.ClearAll()
		return
	}

	next := bitset.New(m.size)
	for i, ok := m.bits.NextSet(n); ok; i, ok = m.bits.NextSet(i + 1) {
		next.Set(i - n)
	}
	m.bits = next
}

// Equal reports whether both masks have the same size and the same bits.
func (m *Mask) Equal(o *Mask) bool {
	return m.size == o.size && m.bits.Equal(o.bits)
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	return &Mask{bits: m.bits.Clone(), size: m.size}
}

func (m *Mask) String() string {
	return m.bits.String()
}

func (m *Mask) mustMatch(o *Mask) {
	if m.size != o.size {
		panic(fmt.Sprintf("bitmask: size mismatch %d != %d", m.size, o.size))
	}
}
