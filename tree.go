// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"slices"
)

// DefaultBranching is the branching sequence used by [New] when none is
// given: 32^3 slots in the top-level nodes, 16^3 in the middle, 8^3
// voxels per leaf. The classic narrow-band layout.
var DefaultBranching = []uint{5, 4, 3}

// Tree is a sparse hierarchical voxel grid with payload V.
//
// The addressable domain is the whole signed integer lattice; memory is
// proportional only to the voxels actually written. The top level is a
// dictionary from quantized chunk origins to subtrees, below it sit
// branch nodes whose slots hold either a child, a constant tile, or
// nothing, and at the bottom dense leaves.
//
// A Tree is safe for concurrent reads, but reads and writes must be
// externally synchronized. There is no internal locking; mutation
// (Insert, Delete, TouchLeaf, Prune, Clear, Fill of leaves) assumes a
// single writer owning the tree for the duration. TouchLeaf mutates even
// when called only to obtain a handle and counts as a write.
//
// A Tree must not be copied by value; always pass by pointer.
type Tree[V comparable] struct {
	shape *level
	root  map[Coord]node[V]
}

// New returns an empty tree. The branching sequence is given per level
// from the top down and fixes the node sizes of this tree for its whole
// lifetime; omit it for [DefaultBranching].
func New[V comparable](branching ...uint) *Tree[V] {
	if len(branching) == 0 {
		branching = DefaultBranching
	}
	return &Tree[V]{
		shape: newShape(branching),
		root:  make(map[Coord]node[V]),
	}
}

// rootKey quantizes c down to the origin of its top-level chunk. Two
// coordinates map to the same key iff they fall into the same chunk, so
// keys are canonical and never address overlapping regions.
func (t *Tree[V]) rootKey(c Coord) Coord {
	return c.alignDown(t.shape.branchingTotal)
}

// sortedKeys returns the root keys in (X, Y, Z) lexicographic order.
func (t *Tree[V]) sortedKeys() []Coord {
	keys := make([]Coord, 0, len(t.root))
	for k := range t.root {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmpCoord)
	return keys
}

// Get returns the value stored at c along with an ok code. Reading an
// untouched coordinate yields absence, not an error and not a sentinel.
func (t *Tree[V]) Get(c Coord) (val V, ok bool) {
	child, found := t.root[t.rootKey(c)]
	if !found {
		return val, false
	}
	return child.get(c)
}

// Insert stores v at c, lazily materializing the chain of nodes down to
// the leaf.
func (t *Tree[V]) Insert(c Coord, v V) {
	key := t.rootKey(c)

	child, found := t.root[key]
	if !found {
		child = newNode[V](t.shape, key)
		t.root[key] = child
	}

	child.set(c, v)
}

// Delete removes the value at c. Subtrees left empty on the way out are
// detached and freed, up to and including the root entry.
func (t *Tree[V]) Delete(c Coord) {
	key := t.rootKey(c)

	child, found := t.root[key]
	if !found {
		return
	}

	child.unset(c)

	if child.isEmpty() {
		delete(t.root, key)
	}
}

// Clear removes every value and every node.
func (t *Tree[V]) Clear() {
	clear(t.root)
}

// IsEmpty reports whether the tree stores nothing.
func (t *Tree[V]) IsEmpty() bool {
	for _, child := range t.root {
		if !child.isEmpty() {
			return false
		}
	}
	return true
}

// Prune collapses every subtree whose values are all mutually eq into a
// single tile, reclaiming the subtree's memory. Use [Tolerance] to build
// eq from a float tolerance, or [Exact] for exact equality. Pruning is an
// optimization pass, queries return the same values afterward.
func (t *Tree[V]) Prune(eq func(V, V) bool) {
	for key, child := range t.root {
		if bn, isBranch := child.(*branchNode[V]); isBranch {
			bn.prune(eq)
		}

		// the root dictionary has no tile slots, a fully constant child
		// stays a node of tiles; empty children are dropped
		if child.isEmpty() {
			delete(t.root, key)
		}
	}
}

// TouchLeaf returns the leaf covering c, materializing it (and expanding
// any tile on the way) if it does not exist yet. It mutates the tree even
// when the leaf exists and must be treated as a write.
func (t *Tree[V]) TouchLeaf(c Coord) *Leaf[V] {
	key := t.rootKey(c)

	child, found := t.root[key]
	if !found {
		child = newNode[V](t.shape, key)
		t.root[key] = child
	}

	return child.touchLeaf(c)
}

// LeafAt returns the leaf covering c along with an ok code. Tiles and
// untouched regions have no leaf.
func (t *Tree[V]) LeafAt(c Coord) (*Leaf[V], bool) {
	child, found := t.root[t.rootKey(c)]
	if !found {
		return nil, false
	}
	return child.leafAt(c)
}

// TakeLeaf detaches and returns the leaf covering c. The caller takes
// ownership; re-attach it with [Tree.InsertLeaf].
func (t *Tree[V]) TakeLeaf(c Coord) (*Leaf[V], bool) {
	key := t.rootKey(c)

	child, found := t.root[key]
	if !found {
		return nil, false
	}

	var lf *Leaf[V]
	var ok bool

	if l, isLeaf := child.(*Leaf[V]); isLeaf {
		// single-level shape, the root entry is the leaf
		lf, ok = l, true
		delete(t.root, key)
	} else {
		lf, ok = child.takeLeaf(c)
		if ok && child.isEmpty() {
			delete(t.root, key)
		}
	}

	return lf, ok
}

// InsertLeaf attaches lf at its origin, replacing whatever the slot held.
// The leaf must stem from a tree of the same branching configuration.
func (t *Tree[V]) InsertLeaf(lf *Leaf[V]) {
	key := t.rootKey(lf.orig)

	if t.shape.isLeaf() {
		t.root[key] = lf
		return
	}

	child, found := t.root[key]
	if !found {
		child = newNode[V](t.shape, key)
		t.root[key] = child
	}

	child.insertLeaf(lf)
}

// Clone returns a deep copy of the tree.
func (t *Tree[V]) Clone() *Tree[V] {
	cl := &Tree[V]{
		shape: t.shape,
		root:  make(map[Coord]node[V], len(t.root)),
	}
	for key, child := range t.root {
		cl.root[key] = child.cloneNode()
	}
	return cl
}

// Stats summarizes the materialized topology of a tree.
type Stats struct {
	RootChunks int // entries in the root dictionary
	Leaves     int // dense leaf nodes
	Tiles      int // constant tile regions
	Voxels     int // active voxels, a tile counting as Size^3
}

// Stats walks the tree and counts chunks, leaves, tiles and stored
// voxels.
func (t *Tree[V]) Stats() Stats {
	s := Stats{RootChunks: len(t.root)}

	t.VisitLeaves(visitorFuncs[V]{
		dense: func(lf *Leaf[V]) {
			s.Leaves++
			s.Voxels += lf.mask.Count()
		},
		tile: func(tl Tile[V]) {
			s.Tiles++
			s.Voxels += tl.Size * tl.Size * tl.Size
		},
	})

	return s
}
