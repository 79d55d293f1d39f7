// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"sync"
	"testing"
)

func TestVisitLeavesOrderAndContent(t *testing.T) {
	t.Parallel()
	tree := New[int]()

	// three chunks, deliberately inserted out of order
	tree.Insert(Cd(5000, 0, 0), 1)
	tree.Insert(Cd(0, 0, 0), 2)
	tree.Insert(Cd(0, 0, 5000), 3)

	var origins []Coord
	tree.VisitLeaves(VisitorFuncs(
		func(lf *Leaf[int]) { origins = append(origins, lf.Origin()) },
		nil,
	))

	// leaf origins, aligned down to the leaf resolution
	want := []Coord{{0, 0, 0}, {0, 0, 5000}, {5000, 0, 0}}
	if len(origins) != len(want) {
		t.Fatalf("visited %v, want %v", origins, want)
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Fatalf("visited %v, want %v", origins, want)
		}
	}
}

func TestVisitReportsTiles(t *testing.T) {
	t.Parallel()
	tree := New[float32]()
	for x := range 8 {
		for y := range 8 {
			for z := range 8 {
				tree.Insert(Cd(x+8, y, z), 2.5)
			}
		}
	}
	tree.Prune(Exact[float32]())

	var tiles []Tile[float32]
	tree.VisitLeaves(VisitorFuncs[float32](nil, func(tl Tile[float32]) {
		tiles = append(tiles, tl)
	}))

	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	tl := tiles[0]
	if tl.Origin != Cd(8, 0, 0) || tl.Size != 8 || tl.Value != 2.5 {
		t.Errorf("tile = %+v", tl)
	}
}

func TestVisitLeavesParMatchesSerial(t *testing.T) {
	t.Parallel()
	tree := New[float32]()
	solidBox(tree, Cd(-20, -20, -20), Cd(20, 20, 20))
	solidBox(tree, Cd(5000, 0, 0), Cd(5040, 40, 40))
	tree.Prune(Exact[float32]())

	type census struct {
		leaves map[Coord]int
		tiles  map[Coord]float32
	}

	serial := census{leaves: map[Coord]int{}, tiles: map[Coord]float32{}}
	tree.VisitLeaves(VisitorFuncs(
		func(lf *Leaf[float32]) { serial.leaves[lf.Origin()] = lf.mask.Count() },
		func(tl Tile[float32]) { serial.tiles[tl.Origin] = tl.Value },
	))

	var mu sync.Mutex
	par := census{leaves: map[Coord]int{}, tiles: map[Coord]float32{}}
	tree.VisitLeavesPar(VisitorFuncs(
		func(lf *Leaf[float32]) {
			mu.Lock()
			defer mu.Unlock()
			par.leaves[lf.Origin()] = lf.mask.Count()
		},
		func(tl Tile[float32]) {
			mu.Lock()
			defer mu.Unlock()
			par.tiles[tl.Origin] = tl.Value
		},
	))

	if len(par.leaves) != len(serial.leaves) || len(par.tiles) != len(serial.tiles) {
		t.Fatalf("parallel census %d/%d, serial %d/%d",
			len(par.leaves), len(par.tiles), len(serial.leaves), len(serial.tiles))
	}
	for o, n := range serial.leaves {
		if par.leaves[o] != n {
			t.Fatalf("leaf %v: parallel %d, serial %d", o, par.leaves[o], n)
		}
	}
	for o, v := range serial.tiles {
		if par.tiles[o] != v {
			t.Fatalf("tile %v: parallel %v, serial %v", o, par.tiles[o], v)
		}
	}
}

func TestCloneMap(t *testing.T) {
	t.Parallel()
	tree := New[float32]()
	solidBox(tree, Cd(0, 0, 0), Cd(10, 10, 10))
	tree.Prune(Exact[float32]())

	mapped := CloneMap(tree, func(v float32) float64 { return float64(v) * 2 })

	if got, want := mapped.Stats(), tree.Stats(); got != want {
		t.Fatalf("topology changed: %+v != %+v", got, want)
	}
	if got, ok := mapped.Get(Cd(5, 5, 5)); !ok || got != -2.0 {
		t.Errorf("mapped interior = %v, %v, want -2, true", got, ok)
	}
	if got, ok := mapped.Get(Cd(-1, 0, 0)); !ok || got != 2.0 {
		t.Errorf("mapped shell = %v, %v, want 2, true", got, ok)
	}

	// the copy is independent
	mapped.Insert(Cd(100, 100, 100), 9)
	if _, ok := tree.Get(Cd(100, 100, 100)); ok {
		t.Error("insert into mapped copy leaked into original")
	}
}
