// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package mesher

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/geomkit/voxtree"
)

// center of the unit cube at the origin
var cubeCenter = r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}

func TestSingleVoxelCube(t *testing.T) {
	t.Parallel()
	tree := voxtree.New[int]()
	tree.Insert(voxtree.Cd(0, 0, 0), 1)

	tris := Cubes(tree)
	if len(tris) != 12 {
		t.Fatalf("got %d triangles, want 12", len(tris))
	}

	for i, tri := range tris {
		// all vertices on the unit cube
		for _, v := range tri {
			for _, c := range []float64{v.X, v.Y, v.Z} {
				if c != 0 && c != 1 {
					t.Fatalf("triangle %d vertex %v off the unit cube", i, v)
				}
			}
		}
		// outward-facing unit normals along one axis
		n := tri.Normal()
		if math.Abs(n.Norm()-1) > 1e-12 {
			t.Fatalf("triangle %d area-weighted normal %v", i, n)
		}

		center := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3.0)
		outward := center.Sub(cubeCenter).Dot(n)
		if outward <= 0 {
			t.Fatalf("triangle %d winds inward: normal %v at %v", i, n, center)
		}
	}
}

func TestAdjacentVoxelsShareNoFace(t *testing.T) {
	t.Parallel()
	tree := voxtree.New[int]()
	tree.Insert(voxtree.Cd(0, 0, 0), 1)
	tree.Insert(voxtree.Cd(1, 0, 0), 1)

	// 2 cubes, 12 faces total, the 2 touching ones suppressed
	tris := Cubes(tree)
	if len(tris) != 20 {
		t.Fatalf("got %d triangles, want 20", len(tris))
	}
}

func TestTileBoundaryOnly(t *testing.T) {
	t.Parallel()
	tree := voxtree.New[float32]()
	for x := range 8 {
		for y := range 8 {
			for z := range 8 {
				tree.Insert(voxtree.Cd(x, y, z), 1.0)
			}
		}
	}
	tree.Prune(voxtree.Exact[float32]())
	if st := tree.Stats(); st.Tiles != 1 {
		t.Fatalf("setup must produce a tile: %+v", st)
	}

	// an 8^3 solid block has 6 * 64 exposed faces
	tris := Cubes(tree)
	if want := 6 * 64 * 2; len(tris) != want {
		t.Fatalf("got %d triangles, want %d", len(tris), want)
	}
}

func TestTileMeshHasNoDuplicateFaces(t *testing.T) {
	t.Parallel()
	tree := voxtree.New[float32]()
	for x := range 8 {
		for y := range 8 {
			for z := range 8 {
				tree.Insert(voxtree.Cd(x, y, z), 1.0)
			}
		}
	}
	tree.Prune(voxtree.Exact[float32]())

	// edge and corner voxels lie on several faces of the tile shell,
	// each may still contribute its triangles only once
	seen := map[Triangle]bool{}
	for _, tri := range Cubes(tree) {
		if seen[tri] {
			t.Fatalf("triangle %v emitted twice", tri)
		}
		seen[tri] = true
	}
}

func TestMeshMatchesDenseEquivalent(t *testing.T) {
	t.Parallel()

	build := func(prune bool) int {
		tree := voxtree.New[float32]()
		for x := range 16 {
			for y := range 8 {
				for z := range 8 {
					tree.Insert(voxtree.Cd(x, y, z), 1.0)
				}
			}
		}
		if prune {
			tree.Prune(voxtree.Exact[float32]())
		}
		return len(Cubes(tree))
	}

	if dense, tiled := build(false), build(true); dense != tiled {
		t.Errorf("dense mesh has %d triangles, tiled %d", dense, tiled)
	}
}

func TestWriteSTL(t *testing.T) {
	t.Parallel()
	tree := voxtree.New[int]()
	tree.Insert(voxtree.Cd(0, 0, 0), 1)
	tris := Cubes(tree)

	var buf bytes.Buffer
	if err := WriteSTL(&buf, tris); err != nil {
		t.Fatal(err)
	}

	if want := 84 + 50*len(tris); buf.Len() != want {
		t.Fatalf("STL size = %d, want %d", buf.Len(), want)
	}

	count := binary.LittleEndian.Uint32(buf.Bytes()[80:84])
	if int(count) != len(tris) {
		t.Errorf("face count = %d, want %d", count, len(tris))
	}

	// first face normal must be unit length
	b := buf.Bytes()[84:]
	n := [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
	l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
	if math.Abs(l-1) > 1e-6 {
		t.Errorf("normal length = %v, want 1", l)
	}
}
