// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import "fmt"

// level describes one tree level of a branching configuration.
//
// branching is the log2 slot count per axis at this level, so a node has
// 1<<(3*branching) slots. branchingTotal is the cumulative branching of
// this level and everything below it; it is the bit width a global
// coordinate must be masked to before it addresses this level. The levels
// of a shape form a chain down to the leaf level (child == nil).
//
// A shape is fixed when a tree is created and shared by all of its nodes,
// the Go stand-in for the compile-time branching parameters of a
// statically typed recursive node family.
type level struct {
	branching      uint
	branchingTotal uint
	size           uint // 1 << (3*branching), slots per node
	child          *level
}

// newShape builds the level chain for a branching sequence given from the
// top level down to the leaves, e.g. 5,4,3. It panics on a malformed
// sequence, the shape is a construction-time programming choice, not
// runtime input.
func newShape(branching []uint) *level {
	if len(branching) == 0 {
		panic("voxtree: empty branching sequence")
	}

	var lev *level
	var total uint

	for i := len(branching) - 1; i >= 0; i-- {
		b := branching[i]
		if b == 0 || b > 8 {
			panic(fmt.Sprintf("voxtree: branching factor %d out of range [1,8]", b))
		}
		total += b
		lev = &level{
			branching:      b,
			branchingTotal: total,
			size:           1 << (3 * b),
			child:          lev,
		}
	}

	return lev
}

// isLeaf reports whether this is the terminal level.
func (l *level) isLeaf() bool { return l.child == nil }

// resolution is the edge length in voxels of the cube a node of this
// level covers.
func (l *level) resolution() int { return 1 << l.branchingTotal }

// childTotal is the cumulative branching of the level below, zero at the
// leaf level.
func (l *level) childTotal() uint {
	if l.child == nil {
		return 0
	}
	return l.child.branchingTotal
}

// offset packs the node-local slot index for a global coordinate.
//
// The low branchingTotal bits of every axis are kept, the bits below this
// level are shifted away and the three per-axis quotients are packed with
// x most significant and z least. Fixed-radix packing, not Morton, so
// unpacking is a pair of shifts.
func (l *level) offset(c Coord) uint {
	mask := (1 << l.branchingTotal) - 1
	ct := l.childTotal()

	x := uint(c.X&mask) >> ct
	y := uint(c.Y&mask) >> ct
	z := uint(c.Z&mask) >> ct

	return x<<(2*l.branching) | y<<l.branching | z
}

// slotOrigin is the inverse of offset: the global lattice coordinate of
// slot off's (0,0,0) corner within a node anchored at origin.
func (l *level) slotOrigin(off uint, origin Coord) Coord {
	b := l.branching
	ct := l.childTotal()

	x := off >> (2 * b)
	rem := off & ((1 << (2 * b)) - 1)
	y := rem >> b
	z := rem & ((1 << b) - 1)

	return Coord{
		X: origin.X + int(x<<ct),
		Y: origin.Y + int(y<<ct),
		Z: origin.Z + int(z<<ct),
	}
}

// sameShape reports whether two level chains describe the same branching
// sequence. CSG and cross-grid moves require operands of identical shape.
func sameShape(a, b *level) bool {
	for a != nil && b != nil {
		if a.branching != b.branching {
			return false
		}
		a, b = a.child, b.child
	}
	return a == nil && b == nil
}
