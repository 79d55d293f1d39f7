// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

// CSG combinators for signed-distance trees.
//
// All three boolean operations require both operands to be flood filled
// ([FloodFill]) first; this precondition is not checked, combining
// un-filled grids silently produces wrong results at tile boundaries.
// The second operand is consumed: its nodes are moved into the first
// where profitable and it must not be used afterward. Operands must share
// a branching configuration.

// Union combines b into a as the boolean union: per voxel the signed
// minimum, with the active masks OR-ed together.
func Union[V Float](a, b *Tree[V]) {
	mustSameShape(a, b)

	for key, bn := range b.root {
		if an, ok := a.root[key]; ok {
			nodeUnion(an, bn)
		} else {
			a.root[key] = bn
		}
	}
}

// Subtract removes b from a: per voxel max(a, -b).
func Subtract[V Float](a, b *Tree[V]) {
	mustSameShape(a, b)

	for key, bn := range b.root {
		if an, ok := a.root[key]; ok {
			nodeSubtract(an, bn)
		}
	}
}

// Intersect keeps the common interior: per voxel the signed maximum.
// Chunks present in only one operand are outside the other and drop out.
func Intersect[V Float](a, b *Tree[V]) {
	mustSameShape(a, b)

	for key := range a.root {
		if _, ok := b.root[key]; !ok {
			delete(a.root, key)
		}
	}
	for key, an := range a.root {
		nodeIntersect(an, b.root[key])
	}
}

// FlipSigns negates every stored value and sign hint, turning the volume
// into its complement.
func FlipSigns[V Float](t *Tree[V]) {
	for _, n := range t.root {
		nodeFlip(n)
	}
}

func mustSameShape[V Float](a, b *Tree[V]) {
	if !sameShape(a.shape, b.shape) {
		panic("voxtree: CSG operands must share a branching configuration")
	}
}

// tile-state probes; valid only after flood fill, when every non-child
// slot's value carries a meaningful sign whether or not it is masked.

func isInsideTile[V Float](n *branchNode[V], off uint) bool {
	return !n.childMask.Test(off) && signOf(n.values[off]) == Negative
}

func isOutsideTile[V Float](n *branchNode[V], off uint) bool {
	return !n.childMask.Test(off) && signOf(n.values[off]) == Positive
}

// makeSlotInside replaces whatever the slot holds with a far-inside tile
// sign hint.
func makeSlotInside[V Float](n *branchNode[V], off uint) {
	n.childMask.MustClear(off)
	n.children[off] = nil
	n.valueMask.MustSet(off)
	n.values[off] = applySign(far[V](), Negative)
}

// removeSlot empties the slot and leaves an outside sign hint behind, so
// sign queries on the carved region stay coherent without a re-fill.
func removeSlot[V Float](n *branchNode[V], off uint) {
	n.childMask.MustClear(off)
	n.valueMask.MustClear(off)
	n.children[off] = nil
	n.values[off] = far[V]()
}

// takeChild moves other's child in slot off into n, if other has one.
// Otherwise both slots are tiles of the same classification and n keeps
// its own.
func takeChild[V Float](n, other *branchNode[V], off uint) {
	if !other.childMask.Test(off) {
		return
	}
	n.childMask.MustSet(off)
	n.valueMask.MustClear(off)
	n.children[off] = other.children[off]
	other.children[off] = nil
	other.childMask.MustClear(off)
}

func nodeUnion[V Float](a, b node[V]) {
	switch a := a.(type) {
	case *Leaf[V]:
		leafUnion(a, b.(*Leaf[V]))
	case *branchNode[V]:
		branchUnion(a, b.(*branchNode[V]))
	}
}

func nodeSubtract[V Float](a, b node[V]) {
	switch a := a.(type) {
	case *Leaf[V]:
		leafSubtract(a, b.(*Leaf[V]))
	case *branchNode[V]:
		branchSubtract(a, b.(*branchNode[V]))
	}
}

func nodeIntersect[V Float](a, b node[V]) {
	switch a := a.(type) {
	case *Leaf[V]:
		leafIntersect(a, b.(*Leaf[V]))
	case *branchNode[V]:
		branchIntersect(a, b.(*branchNode[V]))
	}
}

func nodeFlip[V Float](n node[V]) {
	switch n := n.(type) {
	case *Leaf[V]:
		for i := range n.values {
			n.values[i] = -n.values[i]
		}
	case *branchNode[V]:
		for off := uint(0); off < n.lev.size; off++ {
			if n.childMask.Test(off) {
				nodeFlip(n.children[off])
			}
			n.values[off] = -n.values[off]
		}
	}
}

func leafUnion[V Float](a, b *Leaf[V]) {
	for i := range a.values {
		a.values[i] = min(a.values[i], b.values[i])
	}
	a.mask.Or(b.mask)
}

func leafSubtract[V Float](a, b *Leaf[V]) {
	for i := range a.values {
		a.values[i] = max(a.values[i], -b.values[i])
	}
	a.mask.Or(b.mask)
}

func leafIntersect[V Float](a, b *Leaf[V]) {
	for i := range a.values {
		a.values[i] = max(a.values[i], b.values[i])
	}
	a.mask.Or(b.mask)
}

func branchUnion[V Float](a, b *branchNode[V]) {
	for off := uint(0); off < a.lev.size; off++ {
		switch {
		case isInsideTile(a, off):
			// already inside, nothing can deepen it

		case isInsideTile(b, off):
			makeSlotInside(a, off)

		case isOutsideTile(a, off):
			// whatever b has there wins over empty space
			takeChild(a, b, off)

		case b.childMask.Test(off):
			nodeUnion(a.children[off], b.children[off])
			if a.children[off].isEmpty() {
				makeSlotInside(a, off)
			}
		}
	}
}

func branchSubtract[V Float](a, b *branchNode[V]) {
	for off := uint(0); off < a.lev.size; off++ {
		switch {
		case isOutsideTile(a, off) || isOutsideTile(b, off):
			// nothing to remove, or nothing removed

		case isInsideTile(b, off):
			removeSlot(a, off)

		case isInsideTile(a, off):
			// a solid region minus b's partial region is b's complement
			takeChild(a, b, off)
			nodeFlip(a.children[off])

		default:
			nodeSubtract(a.children[off], b.children[off])
		}
	}
}

func branchIntersect[V Float](a, b *branchNode[V]) {
	for off := uint(0); off < a.lev.size; off++ {
		switch {
		case isOutsideTile(a, off) || isInsideTile(b, off):
			// a empty there, or b keeps all of a

		case isOutsideTile(b, off):
			removeSlot(a, off)

		case isInsideTile(a, off):
			takeChild(a, b, off)

		default:
			nodeIntersect(a.children[off], b.children[off])
		}
	}
}
