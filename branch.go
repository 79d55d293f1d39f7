// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import "github.com/geomkit/voxtree/internal/bitmask"

// branchNode is an inner tree node. Every slot is in exactly one of three
// states, discriminated by two parallel masks:
//
//	child present:  childMask set, children[off] owns the subtree
//	tile:           valueMask set, values[off] is the constant for the
//	                whole sub-region, no child is materialized
//	inactive:       neither mask set
//
// childMask and valueMask are never both set for one slot, that is the
// central invariant every mutation below preserves.
//
// The value array is dense on purpose: the sign flood fill writes
// far-field sign hints into slots without setting valueMask, and sign
// queries read them back without consulting it. Only value reads through
// get honor the mask.
type branchNode[V comparable] struct {
	lev       *level
	orig      Coord
	childMask *bitmask.Mask
	valueMask *bitmask.Mask
	children  []node[V]
	values    []V
}

func newBranch[V comparable](lev *level, origin Coord) *branchNode[V] {
	return &branchNode[V]{
		lev:       lev,
		orig:      origin,
		childMask: bitmask.New(lev.size),
		valueMask: bitmask.New(lev.size),
		children:  make([]node[V], lev.size),
		values:    make([]V, lev.size),
	}
}

func (n *branchNode[V]) offset(c Coord) uint { return n.lev.offset(c) }

// slotOrigin is the global lattice coordinate of slot off's corner.
func (n *branchNode[V]) slotOrigin(off uint) Coord { return n.lev.slotOrigin(off, n.orig) }

// addChild allocates an empty child in slot off and flips the slot to the
// child state. The caller has ruled out an existing child.
func (n *branchNode[V]) addChild(off uint) node[V] {
	n.childMask.MustSet(off)
	n.valueMask.MustClear(off)

	child := newNode[V](n.lev.child, n.slotOrigin(off))
	n.children[off] = child
	return child
}

// subdivide expands the tile in slot off into a full child holding the
// tile's value in every voxel. This is the one-way tile -> child edge,
// taken only on a conflicting write or a single-voxel removal.
func (n *branchNode[V]) subdivide(off uint) node[V] {
	tileValue := n.values[off]
	child := n.addChild(off)
	child.fill(tileValue)
	return child
}

// dropChild detaches the child in slot off, the slot becomes inactive.
func (n *branchNode[V]) dropChild(off uint) {
	n.childMask.MustClear(off)
	n.children[off] = nil
}

func (n *branchNode[V]) get(c Coord) (val V, ok bool) {
	off := n.offset(c)

	if n.childMask.Test(off) {
		return n.children[off].get(c)
	}
	if n.valueMask.Test(off) {
		return n.values[off], true
	}
	return val, false
}

func (n *branchNode[V]) set(c Coord, v V) {
	off := n.offset(c)

	switch {
	case n.childMask.Test(off):
		n.children[off].set(c, v)

	case n.valueMask.Test(off):
		// writing the tile's own value needs no subdivision
		if n.values[off] == v {
			return
		}
		n.subdivide(off).set(c, v)

	default:
		n.addChild(off).set(c, v)
	}
}

func (n *branchNode[V]) unset(c Coord) {
	off := n.offset(c)

	switch {
	case n.childMask.Test(off):
		child := n.children[off]
		child.unset(c)

		// the slot reverts to inactive, not to a tile
		if child.isEmpty() {
			n.dropChild(off)
		}

	case n.valueMask.Test(off):
		// a tile is the whole region, expand it before deleting one voxel
		n.subdivide(off).unset(c)
	}
}

func (n *branchNode[V]) isEmpty() bool {
	return n.childMask.IsEmpty() && n.valueMask.IsEmpty()
}

func (n *branchNode[V]) origin() Coord { return n.orig }

func (n *branchNode[V]) fill(v V) {
	n.childMask.ClearAll()
	n.valueMask.SetAll()
	for i := range n.values {
		n.values[i] = v
		n.children[i] = nil
	}
}

func (n *branchNode[V]) clear() {
	n.childMask.ClearAll()
	n.valueMask.ClearAll()
	for i := range n.children {
		n.children[i] = nil
	}
}

func (n *branchNode[V]) prune(eq func(V, V) bool) (val V, ok bool) {
	for off, found := n.childMask.FirstSet(); found; off, found = n.childMask.NextSet(off + 1) {
		child := n.children[off]

		if child.isEmpty() {
			n.dropChild(off)
			continue
		}

		var cv V
		var constant bool

		switch c := child.(type) {
		case *Leaf[V]:
			cv, constant = c.IsConstant(eq)
		case *branchNode[V]:
			cv, constant = c.prune(eq)
		}

		if constant {
			n.dropChild(off)
			n.valueMask.MustSet(off)
			n.values[off] = cv
		}
	}

	if !n.valueMask.IsFull() {
		return val, false
	}

	first := n.values[0]
	for _, v := range n.values[1:] {
		if !eq(first, v) {
			return val, false
		}
	}

	return first, true
}

func (n *branchNode[V]) cloneNode() node[V] {
	cl := &branchNode[V]{
		lev:       n.lev,
		orig:      n.orig,
		childMask: n.childMask.Clone(),
		valueMask: n.valueMask.Clone(),
		children:  make([]node[V], n.lev.size),
		values:    append(n.values[:0:0], n.values...),
	}

	for off, ok := n.childMask.FirstSet(); ok; off, ok = n.childMask.NextSet(off + 1) {
		cl.children[off] = n.children[off].cloneNode()
	}

	return cl
}

func (n *branchNode[V]) visit(vis Visitor[V]) {
	for off := uint(0); off < n.lev.size; off++ {
		switch {
		case n.childMask.Test(off):
			n.children[off].visit(vis)
		case n.valueMask.Test(off):
			vis.Tile(Tile[V]{
				Origin: n.slotOrigin(off),
				Size:   n.lev.child.resolution(),
				Value:  n.values[off],
			})
		}
	}
}

func (n *branchNode[V]) leafAt(c Coord) (*Leaf[V], bool) {
	off := n.offset(c)
	if !n.childMask.Test(off) {
		return nil, false
	}
	return n.children[off].leafAt(c)
}

func (n *branchNode[V]) touchLeaf(c Coord) *Leaf[V] {
	off := n.offset(c)

	switch {
	case n.childMask.Test(off):
		return n.children[off].touchLeaf(c)
	case n.valueMask.Test(off):
		return n.subdivide(off).touchLeaf(c)
	default:
		return n.addChild(off).touchLeaf(c)
	}
}

func (n *branchNode[V]) takeLeaf(c Coord) (*Leaf[V], bool) {
	off := n.offset(c)
	if !n.childMask.Test(off) {
		return nil, false
	}

	if lf, isLeaf := n.children[off].(*Leaf[V]); isLeaf {
		n.dropChild(off)
		return lf, true
	}

	return n.children[off].takeLeaf(c)
}

func (n *branchNode[V]) insertLeaf(lf *Leaf[V]) {
	off := n.offset(lf.orig)

	if n.lev.child.isLeaf() {
		n.childMask.MustSet(off)
		n.valueMask.MustClear(off)
		n.children[off] = lf
		return
	}

	if !n.childMask.Test(off) {
		n.addChild(off)
	}
	n.children[off].insertLeaf(lf)
}
