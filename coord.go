// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

// Coord is the address of one voxel in the unbounded 3D integer lattice.
type Coord struct {
	X, Y, Z int
}

// Cd is a shorthand constructor for Coord.
func Cd(x, y, z int) Coord { return Coord{x, y, z} }

// Add returns the componentwise sum of c and o.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// alignDown rounds every axis down to a multiple of 1<<bits.
// Works for negative coordinates, two's complement masking rounds
// towards negative infinity.
func (c Coord) alignDown(bits uint) Coord {
	mask := ^((1 << bits) - 1)
	return Coord{c.X & mask, c.Y & mask, c.Z & mask}
}

// cmpCoord orders coordinates lexicographically by (X, Y, Z), the order
// the root-level flood fill scans chunks in.
func cmpCoord(a, b Coord) int {
	switch {
	case a.X != b.X:
		return cmpInt(a.X, b.X)
	case a.Y != b.Y:
		return cmpInt(a.Y, b.Y)
	default:
		return cmpInt(a.Z, b.Z)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
