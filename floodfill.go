// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

// FloodFill propagates the sign of the nearest explicitly stored value
// across the untouched regions of a signed-distance tree, so that every
// coordinate afterward has a determinate inside/outside classification
// via [SignAt].
//
// The propagated voxels receive a far-field sentinel magnitude carrying
// the last-known sign; they are sign hints, not stored values, and stay
// invisible to [Tree.Get]. Adjacent top-level chunks whose facing
// boundaries are both inside additionally get fully-negative chunks
// synthesized into the gap between them along the z axis, which is how
// regions deep inside a solid acquire their sign without ever being
// voxelized. Only z-adjacency is bridged at the root; narrow bands of
// real surfaces do not leave root-scale gaps along the other axes.
func FloodFill[V Float](t *Tree[V]) {
	if len(t.root) == 0 {
		return
	}

	for _, child := range t.root {
		floodFillNode(child)
	}

	// bridge gaps between inside chunks on the same z line
	keys := t.sortedKeys()
	res := t.shape.resolution()

	for i := 1; i < len(keys); i++ {
		a, b := keys[i-1], keys[i]

		if a.X != b.X || a.Y != b.Y || b.Z == a.Z+res {
			continue
		}
		if lastValueSign(t.root[a]) != Negative || firstValueSign(t.root[b]) != Negative {
			continue
		}

		for origin := (Coord{a.X, a.Y, a.Z + res}); origin.Z < b.Z; origin.Z += res {
			n := newNode[V](t.shape, origin)
			fillWithSign(n, Negative)
			t.root[origin] = n
		}
	}
}

// SignAt classifies c after a [FloodFill]. Coordinates outside every
// materialized chunk default to [Positive]: unknown space is known-empty
// space, the modeling choice the CSG layer depends on.
func SignAt[V Float](t *Tree[V], c Coord) Sign {
	child, found := t.root[t.rootKey(c)]
	if !found {
		return Positive
	}
	return signAtNode(child, c)
}

func signAtNode[V Float](n node[V], c Coord) Sign {
	switch n := n.(type) {
	case *Leaf[V]:
		return signOf(n.values[n.offset(c)])
	case *branchNode[V]:
		off := n.offset(c)
		if n.childMask.Test(off) {
			return signAtNode(n.children[off], c)
		}
		return signOf(n.values[off])
	}
	return Positive
}

func floodFillNode[V Float](n node[V]) {
	switch n := n.(type) {
	case *Leaf[V]:
		leafFloodFill(n)
	case *branchNode[V]:
		branchFloodFill(n)
	}
}

// leafFloodFill sweeps the leaf in nested x, y, z order carrying the
// last-known sign per axis and writes a signed far sentinel into every
// unstored slot. Stored slots update the carried sign, their mask bits
// are untouched either way.
func leafFloodFill[V Float](lf *Leaf[V]) {
	if lf.mask.IsFull() {
		return
	}

	first, ok := lf.mask.FirstSet()
	if !ok {
		return
	}

	b := lf.lev.branching
	res := uint(1) << b
	i := signOf(lf.values[first])

	for x := uint(0); x < res; x++ {
		x00 := x << (2 * b) // offset of (x, 0, 0)
		if lf.mask.Test(x00) {
			i = signOf(lf.values[x00])
		}

		j := i
		for y := uint(0); y < res; y++ {
			xy0 := x00 + y<<b // offset of (x, y, 0)
			if lf.mask.Test(xy0) {
				j = signOf(lf.values[xy0])
			}

			k := j
			for z := uint(0); z < res; z++ {
				xyz := xy0 + z
				if lf.mask.Test(xyz) {
					k = signOf(lf.values[xyz])
				} else {
					lf.values[xyz] = applySign(far[V](), k)
				}
			}
		}
	}
}

// branchFloodFill fills the children first, then sweeps the slots like
// the leaf fill does, using the children's boundary signs to carry the
// sign across materialized subtrees. Untouched slots become sign-hint
// tiles: the value is written, the value mask is not set.
func branchFloodFill[V Float](n *branchNode[V]) {
	if n.valueMask.IsFull() {
		return
	}

	for off, ok := n.childMask.FirstSet(); ok; off, ok = n.childMask.NextSet(off + 1) {
		floodFillNode(n.children[off])
	}

	fv, fvOK := n.valueMask.FirstSet()
	fc, fcOK := n.childMask.FirstSet()

	var i Sign
	switch {
	case fvOK && fcOK && fv <= fc:
		i = signOf(n.values[fv])
	case fvOK && fcOK:
		i = firstValueSign(n.children[fc])
	case fvOK:
		i = signOf(n.values[fv])
	case fcOK:
		i = firstValueSign(n.children[fc])
	default:
		return
	}

	b := n.lev.branching
	perDim := uint(1) << b

	for x := uint(0); x < perDim; x++ {
		x00 := x << (2 * b)
		if n.childMask.Test(x00) {
			i = lastValueSign(n.children[x00])
		} else if n.valueMask.Test(x00) {
			i = signOf(n.values[x00])
		}

		j := i
		for y := uint(0); y < perDim; y++ {
			xy0 := x00 + y<<b
			if n.childMask.Test(xy0) {
				j = lastValueSign(n.children[xy0])
			} else if n.valueMask.Test(xy0) {
				j = signOf(n.values[xy0])
			}

			k := j
			for z := uint(0); z < perDim; z++ {
				xyz := xy0 + z
				switch {
				case n.childMask.Test(xyz):
					k = lastValueSign(n.children[xyz])
				case n.valueMask.Test(xyz):
					k = signOf(n.values[xyz])
				default:
					n.values[xyz] = applySign(far[V](), k)
				}
			}
		}
	}
}

// fillWithSign stamps the whole subtree with a sign, giving unstored
// slots the far sentinel first. Used to synthesize all-inside chunks.
func fillWithSign[V Float](n node[V], s Sign) {
	switch n := n.(type) {
	case *Leaf[V]:
		for i := range n.values {
			if !n.mask.Test(uint(i)) {
				n.values[i] = far[V]()
			}
			n.values[i] = applySign(n.values[i], s)
		}

	case *branchNode[V]:
		if n.valueMask.IsFull() {
			return
		}
		for i := range n.values {
			if n.childMask.Test(uint(i)) {
				fillWithSign(n.children[i], s)
			}
			if !n.valueMask.Test(uint(i)) {
				n.values[i] = far[V]()
			}
			n.values[i] = applySign(n.values[i], s)
		}
	}
}

// firstValueSign is the sign at the node's lowest slot, descending into a
// child when one is present.
func firstValueSign[V Float](n node[V]) Sign {
	switch n := n.(type) {
	case *Leaf[V]:
		return signOf(n.values[0])
	case *branchNode[V]:
		if n.childMask.Test(0) {
			return firstValueSign(n.children[0])
		}
		return signOf(n.values[0])
	}
	return Positive
}

// lastValueSign is the sign at the node's highest slot.
func lastValueSign[V Float](n node[V]) Sign {
	switch n := n.(type) {
	case *Leaf[V]:
		return signOf(n.values[len(n.values)-1])
	case *branchNode[V]:
		off := n.lev.size - 1
		if n.childMask.Test(off) {
			return lastValueSign(n.children[off])
		}
		return signOf(n.values[off])
	}
	return Positive
}
