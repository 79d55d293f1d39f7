// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

import "testing"

// solidBox writes a narrow-band box into the tree: interior voxels get
// value -1, the one voxel thick shell around the box gets +1. lo is
// inclusive, hi exclusive.
func solidBox(tree *Tree[float32], lo, hi Coord) {
	for x := lo.X - 1; x < hi.X+1; x++ {
		for y := lo.Y - 1; y < hi.Y+1; y++ {
			for z := lo.Z - 1; z < hi.Z+1; z++ {
				inside := x >= lo.X && x < hi.X &&
					y >= lo.Y && y < hi.Y &&
					z >= lo.Z && z < hi.Z
				v := float32(1.0)
				if inside {
					v = -1.0
				}
				tree.Insert(Cd(x, y, z), v)
			}
		}
	}
}

func box(lo, hi Coord) *Tree[float32] {
	tree := New[float32]()
	solidBox(tree, lo, hi)
	return tree
}

func TestUnionDisjoint(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(4, 4, 4))
	b := box(Cd(10, 10, 10), Cd(14, 14, 14))
	FloodFill(a)
	FloodFill(b)

	Union(a, b)

	for _, tc := range []struct {
		c    Coord
		want Sign
	}{
		{Cd(2, 2, 2), Negative},
		{Cd(12, 12, 12), Negative},
		{Cd(7, 7, 7), Positive},
		{Cd(100, 0, 0), Positive},
	} {
		if got := SignAt(a, tc.c); got != tc.want {
			t.Errorf("SignAt(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}

	// b's stored shell voxels are now part of a
	if got, ok := a.Get(Cd(10, 12, 12)); !ok || got != -1.0 {
		t.Errorf("b voxel after union = %v, %v, want -1, true", got, ok)
	}
}

func TestUnionOverlappingTakesMin(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(4, 4, 4))
	b := box(Cd(2, 0, 0), Cd(6, 4, 4))
	FloodFill(a)
	FloodFill(b)

	Union(a, b)

	// (4,3,3) is on a's outer shell (+1) but inside b (-1)
	if got, ok := a.Get(Cd(4, 3, 3)); !ok || got != -1.0 {
		t.Errorf("overlap voxel = %v, %v, want -1, true", got, ok)
	}
	if got := SignAt(a, Cd(5, 2, 2)); got != Negative {
		t.Errorf("b interior after union = %v, want Negative", got)
	}
	if got := SignAt(a, Cd(2, 2, 2)); got != Negative {
		t.Errorf("a interior after union = %v, want Negative", got)
	}
}

func TestUnionMovesForeignChunks(t *testing.T) {
	t.Parallel()
	// boxes placed clear of chunk boundaries, one chunk each
	a := box(Cd(10, 10, 10), Cd(14, 14, 14))
	b := box(Cd(5000, 10, 10), Cd(5004, 14, 14))
	FloodFill(a)
	FloodFill(b)

	Union(a, b)

	if len(a.root) != 2 {
		t.Fatalf("expected 2 root chunks after union, have %d", len(a.root))
	}
	if got := SignAt(a, Cd(5002, 12, 12)); got != Negative {
		t.Errorf("foreign chunk interior = %v, want Negative", got)
	}
}

func TestSubtract(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(8, 8, 8))
	b := box(Cd(4, 0, 0), Cd(12, 8, 8))
	FloodFill(a)
	FloodFill(b)

	Subtract(a, b)

	for _, tc := range []struct {
		c    Coord
		want Sign
	}{
		{Cd(2, 4, 4), Negative}, // a minus b keeps this
		{Cd(6, 4, 4), Positive}, // removed by b
		{Cd(10, 4, 4), Positive}, // outside a to begin with
	} {
		if got := SignAt(a, tc.c); got != tc.want {
			t.Errorf("SignAt(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}

	// stored by both interiors: max(-1, -(-1)) = +1
	if got, ok := a.Get(Cd(5, 4, 4)); !ok || got != 1.0 {
		t.Errorf("carved voxel = %v, %v, want 1, true", got, ok)
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(8, 8, 8))
	b := box(Cd(4, 0, 0), Cd(12, 8, 8))
	FloodFill(a)
	FloodFill(b)

	Intersect(a, b)

	for _, tc := range []struct {
		c    Coord
		want Sign
	}{
		{Cd(6, 4, 4), Negative}, // in both
		{Cd(2, 4, 4), Positive}, // only in a
		{Cd(10, 4, 4), Positive}, // only in b
	} {
		if got := SignAt(a, tc.c); got != tc.want {
			t.Errorf("SignAt(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestIntersectDropsForeignChunks(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(4, 4, 4))
	b := box(Cd(5000, 0, 0), Cd(5004, 4, 4))
	FloodFill(a)
	FloodFill(b)

	Intersect(a, b)

	if len(a.root) != 0 {
		t.Errorf("disjoint intersection must drop all chunks, have %d", len(a.root))
	}
}

func TestFlipSigns(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(4, 4, 4))
	FloodFill(a)

	FlipSigns(a)

	if got := SignAt(a, Cd(2, 2, 2)); got != Positive {
		t.Errorf("former interior = %v, want Positive", got)
	}
	if got := SignAt(a, Cd(100, 100, 100)); got != Negative {
		t.Errorf("former empty space in chunk = %v, want Negative", got)
	}
	if got, _ := a.Get(Cd(2, 2, 2)); got != 1.0 {
		t.Errorf("interior value = %v, want 1", got)
	}
	if got, _ := a.Get(Cd(-1, 0, 0)); got != -1.0 {
		t.Errorf("shell value = %v, want -1", got)
	}
}

func TestLeafLevelCombine(t *testing.T) {
	t.Parallel()

	fill := func(f func(Coord) float32) *Tree[float32] {
		tree := New[float32](2)
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				for z := 0; z < 4; z++ {
					tree.Insert(Cd(x, y, z), f(Cd(x, y, z)))
				}
			}
		}
		return tree
	}

	a := fill(func(c Coord) float32 { return float32(c.X) - 1.5 })
	b := fill(func(c Coord) float32 { return float32(c.Y) - 1.5 })

	Union(a, b)

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			want := min(float32(x)-1.5, float32(y)-1.5)
			if got, _ := a.Get(Cd(x, y, 0)); got != want {
				t.Fatalf("union value at (%d,%d,0) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCSGMismatchedShapesPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("mismatched branching must panic")
		}
	}()
	Union(New[float32](5, 4, 3), New[float32](4, 3))
}

func TestCSGMaskInvariantsSurvive(t *testing.T) {
	t.Parallel()
	a := box(Cd(0, 0, 0), Cd(16, 16, 16))
	b := box(Cd(8, 8, 8), Cd(24, 24, 24))
	FloodFill(a)
	FloodFill(b)

	Union(a, b)
	checkMaskInvariants(t, a)

	c := box(Cd(0, 0, 0), Cd(16, 16, 16))
	d := box(Cd(8, 8, 8), Cd(24, 24, 24))
	FloodFill(c)
	FloodFill(d)
	Subtract(c, d)
	checkMaskInvariants(t, c)
}
