// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

// node is the contract shared by the two node kinds below the root,
// *Leaf[V] and *branchNode[V]. The closed set of implementations plus the
// runtime level chain replaces the statically recursive node family of a
// const-generic language.
type node[V comparable] interface {
	// get returns the value stored at c, descending through children and
	// resolving tiles, along with an ok code. Absence is not an error.
	get(c Coord) (V, bool)

	// set stores v at c, materializing children as needed. A conflicting
	// write into a tile subdivides it.
	set(c Coord, v V)

	// unset removes the value at c. Removing from a tile expands the tile
	// into a full child first, a tile is a whole region, not one voxel.
	unset(c Coord)

	isEmpty() bool
	origin() Coord

	// fill turns the whole node into one constant region, dropping any
	// children.
	fill(v V)

	// clear removes all values and children.
	clear()

	// prune collapses constant subtrees bottom-up. It returns this node's
	// own constant value and true when the entire node has become one
	// constant region, letting the parent replace it with a tile. Empty
	// nodes are not constant.
	prune(eq func(V, V) bool) (V, bool)

	cloneNode() node[V]

	visit(vis Visitor[V])

	leafAt(c Coord) (*Leaf[V], bool)
	touchLeaf(c Coord) *Leaf[V]
	takeLeaf(c Coord) (*Leaf[V], bool)
	insertLeaf(lf *Leaf[V])
}

// newNode allocates an empty node of the given level.
func newNode[V comparable](lev *level, origin Coord) node[V] {
	if lev.isLeaf() {
		return newLeaf[V](lev, origin)
	}
	return newBranch[V](lev, origin)
}
