// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Tile is a whole constant-valued sub-region reported during visitation.
// It stands for a solid cube of Size^3 voxels all holding Value; callers
// that only care about interior values need not expand it.
type Tile[V any] struct {
	Origin Coord
	Size   int // edge length in voxels
	Value  V
}

// Visitor receives the materialized bottom of the tree: dense leaves and
// constant tiles.
type Visitor[V comparable] interface {
	Dense(*Leaf[V])
	Tile(Tile[V])
}

// visitorFuncs adapts two closures to the Visitor interface.
type visitorFuncs[V comparable] struct {
	dense func(*Leaf[V])
	tile  func(Tile[V])
}

func (v visitorFuncs[V]) Dense(lf *Leaf[V]) { v.dense(lf) }
func (v visitorFuncs[V]) Tile(t Tile[V])    { v.tile(t) }

// VisitorFuncs builds a [Visitor] from two callbacks. Either callback may
// be nil, the corresponding events are then skipped.
func VisitorFuncs[V comparable](dense func(*Leaf[V]), tile func(Tile[V])) Visitor[V] {
	if dense == nil {
		dense = func(*Leaf[V]) {}
	}
	if tile == nil {
		tile = func(Tile[V]) {}
	}
	return visitorFuncs[V]{dense: dense, tile: tile}
}

// VisitLeaves visits every dense leaf and every tile, chunks in (X, Y, Z)
// key order, slots in offset order within each node.
func (t *Tree[V]) VisitLeaves(vis Visitor[V]) {
	for _, key := range t.sortedKeys() {
		t.root[key].visit(vis)
	}
}

// VisitLeavesPar visits like [Tree.VisitLeaves] but fans the subtrees of
// the top-level nodes out over a bounded worker group. Sibling subtrees
// never alias each other's storage, so read-only visitors need no
// coordination with the tree, but vis itself is invoked concurrently and
// must be safe for that. No ordering guarantee is made; callers needing
// deterministic output must collect and sort.
//
// Tile callbacks carry no substructure and are invoked without further
// fan-out, from the goroutine walking their parent node.
func (t *Tree[V]) VisitLeavesPar(vis Visitor[V]) {
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, child := range t.root {
		switch c := child.(type) {
		case *branchNode[V]:
			// fan out once per materialized slot of the top-level node,
			// spawned from this goroutine only so the limit can not
			// deadlock the group
			for off, ok := c.childMask.FirstSet(); ok; off, ok = c.childMask.NextSet(off + 1) {
				sub := c.children[off]
				g.Go(func() error {
					sub.visit(vis)
					return nil
				})
			}
			for off, ok := c.valueMask.FirstSet(); ok; off, ok = c.valueMask.NextSet(off + 1) {
				vis.Tile(Tile[V]{
					Origin: c.slotOrigin(off),
					Size:   c.lev.child.resolution(),
					Value:  c.values[off],
				})
			}
		case *Leaf[V]:
			g.Go(func() error {
				vis.Dense(c)
				return nil
			})
		}
	}

	_ = g.Wait() // visitors return no errors
}
