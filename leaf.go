// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"iter"

	"github.com/geomkit/voxtree/internal/bitmask"
)

// Leaf is a terminal tree node: a dense value array and one mask marking
// which slots hold an explicitly stored voxel. Leaves are handed out by
// [Tree.TouchLeaf], [Tree.LeafAt] and dense visitation callbacks so that
// bulk algorithms (narrow-band solvers, extraction seeding) can work on a
// node without re-descending the tree per voxel.
//
// A Leaf obtained from a tree aliases the tree's storage, mutating it is a
// write to the tree and follows the same single-writer discipline.
type Leaf[V comparable] struct {
	lev    *level
	orig   Coord
	mask   *bitmask.Mask
	values []V
}

func newLeaf[V comparable](lev *level, origin Coord) *Leaf[V] {
	return &Leaf[V]{
		lev:    lev,
		orig:   origin,
		mask:   bitmask.New(lev.size),
		values: make([]V, lev.size),
	}
}

// offset packs the low-order coordinate bits into the flat slot index,
// x most significant, z least.
func (lf *Leaf[V]) offset(c Coord) uint { return lf.lev.offset(c) }

// coordAt is the inverse of offset for this leaf.
func (lf *Leaf[V]) coordAt(off uint) Coord { return lf.lev.slotOrigin(off, lf.orig) }

// Origin returns the lattice coordinate of the leaf's (0,0,0) corner.
func (lf *Leaf[V]) Origin() Coord { return lf.orig }

// Resolution returns the leaf's edge length in voxels.
func (lf *Leaf[V]) Resolution() int { return lf.lev.resolution() }

// Get returns the stored value at c along with an ok code. Unstored slots
// report absence, never a stale array entry.
func (lf *Leaf[V]) Get(c Coord) (val V, ok bool) {
	off := lf.offset(c)
	if !lf.mask.Test(off) {
		return val, false
	}
	return lf.values[off], true
}

// Set stores v at c. Leaves can not overflow, the offset is confined to
// the value array by the coordinate masking.
func (lf *Leaf[V]) Set(c Coord, v V) {
	off := lf.offset(c)
	lf.mask.MustSet(off)
	lf.values[off] = v
}

// Unset removes the value at c. Only the mask bit is cleared, the array
// slot goes stale.
func (lf *Leaf[V]) Unset(c Coord) {
	lf.mask.MustClear(lf.offset(c))
}

// Fill stores v in every slot. Used when an ancestor tile is expanded so
// the new leaf starts out consistent with the tile it replaces.
func (lf *Leaf[V]) Fill(v V) {
	lf.mask.SetAll()
	for i := range lf.values {
		lf.values[i] = v
	}
}

// IsEmpty reports whether no voxel is stored.
func (lf *Leaf[V]) IsEmpty() bool { return lf.mask.IsEmpty() }

// IsConstant returns the leaf's uniform value and true if every slot is
// explicitly stored and all values are eq to the first. A merely empty
// leaf is not constant, emptiness and "uniform known value" prune
// differently.
func (lf *Leaf[V]) IsConstant(eq func(V, V) bool) (val V, ok bool) {
	if !lf.mask.IsFull() {
		return val, false
	}

	first := lf.values[0]
	for _, v := range lf.values[1:] {
		if !eq(first, v) {
			return val, false
		}
	}

	return first, true
}

// All returns an iterator over the explicitly stored voxels of the leaf
// in slot order.
func (lf *Leaf[V]) All() iter.Seq2[Coord, V] {
	return func(yield func(Coord, V) bool) {
		for off, ok := lf.mask.FirstSet(); ok; off, ok = lf.mask.NextSet(off + 1) {
			if !yield(lf.coordAt(off), lf.values[off]) {
				return
			}
		}
	}
}

// node interface

func (lf *Leaf[V]) get(c Coord) (V, bool) { return lf.Get(c) }
func (lf *Leaf[V]) set(c Coord, v V)      { lf.Set(c, v) }
func (lf *Leaf[V]) unset(c Coord)         { lf.Unset(c) }
func (lf *Leaf[V]) isEmpty() bool         { return lf.IsEmpty() }
func (lf *Leaf[V]) origin() Coord         { return lf.orig }
func (lf *Leaf[V]) fill(v V)              { lf.Fill(v) }

func (lf *Leaf[V]) clear() {
	lf.mask.ClearAll()
}

// prune must never reach a leaf, parents collapse leaves via IsConstant.
func (lf *Leaf[V]) prune(func(V, V) bool) (V, bool) {
	panic("voxtree: leaf nodes are pruned by their parent")
}

func (lf *Leaf[V]) cloneNode() node[V] {
	return &Leaf[V]{
		lev:    lf.lev,
		orig:   lf.orig,
		mask:   lf.mask.Clone(),
		values: append(lf.values[:0:0], lf.values...),
	}
}

func (lf *Leaf[V]) visit(vis Visitor[V]) {
	vis.Dense(lf)
}

func (lf *Leaf[V]) leafAt(Coord) (*Leaf[V], bool) { return lf, true }
func (lf *Leaf[V]) touchLeaf(Coord) *Leaf[V]      { return lf }

func (lf *Leaf[V]) takeLeaf(Coord) (*Leaf[V], bool) {
	panic("voxtree: leaf nodes have no children")
}

func (lf *Leaf[V]) insertLeaf(*Leaf[V]) {
	panic("voxtree: leaf nodes have no children")
}
