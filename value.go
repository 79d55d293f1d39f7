// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import "math"

// Float constrains the payloads that carry a sign, the signed-distance
// grids. Flood fill and the CSG combinators are defined for these only.
type Float interface {
	~float32 | ~float64
}

// Sign classifies a coordinate as outside (positive distance) or inside
// (negative) a surface.
type Sign int8

// Sign values. Untouched space reads as Positive, absence of data means
// known-outside.
const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

// far is the sentinel magnitude written into voxels that carry only a
// propagated sign, far away from any stored surface sample.
func far[V Float]() V {
	return V(math.MaxFloat32)
}

// signOf reads the sign bit, so -0.0 counts as Negative like any other
// negative value.
func signOf[V Float](v V) Sign {
	if math.Signbit(float64(v)) {
		return Negative
	}
	return Positive
}

// applySign returns v carrying the given sign. Copysign keeps zeroes
// honest, a propagated negative sign on 0.0 must still read as inside.
func applySign[V Float](v V, s Sign) V {
	if s == Negative {
		return V(math.Copysign(float64(v), -1))
	}
	return V(math.Copysign(float64(v), 1))
}

// Tolerance builds an equality predicate for [Tree.Prune] and
// [Leaf.IsConstant] from an absolute tolerance.
func Tolerance[V Float](tol V) func(V, V) bool {
	return func(a, b V) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d <= tol
	}
}

// Exact returns the exact-equality predicate, tolerance zero.
func Exact[V comparable]() func(V, V) bool {
	return func(a, b V) bool { return a == b }
}
