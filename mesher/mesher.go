// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

// Package mesher extracts polygon surfaces from voxel grids.
package mesher

import (
	"github.com/golang/geo/r3"

	"github.com/geomkit/voxtree"
)

// Triangle is a single face; vertices are in counter-clockwise order
// seen from outside.
type Triangle [3]r3.Vector

// Normal returns the (unnormalized) face normal.
func (t Triangle) Normal() r3.Vector {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

// Unit cube corners, index bit 0 is x, bit 1 y, bit 2 z.
var cubeVerts = [8]r3.Vector{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}

// Exposed cube faces as corner index triples, two triangles per side.
// Order matches the neighbor probes in meshVoxel.
var cubeFaces = [6][2][3]int{
	{{4, 7, 6}, {4, 5, 7}}, // +z
	{{0, 2, 3}, {0, 3, 1}}, // -z
	{{0, 4, 6}, {0, 6, 2}}, // -x
	{{1, 7, 5}, {1, 3, 7}}, // +x
	{{2, 6, 7}, {2, 7, 3}}, // +y
	{{0, 5, 4}, {0, 1, 5}}, // -y
}

var faceNeighbors = [6]voxtree.Coord{
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
}

// Cubes meshes the active voxels of t as axis-aligned unit cubes,
// emitting only faces against inactive space. Vertices are in lattice
// units; scale by the voxel size for world coordinates.
//
// Constant tiles contribute only their boundary shell, interior voxels
// of a tile can never expose a face.
func Cubes[V comparable](t *voxtree.Tree[V]) []Triangle {
	var tris []Triangle

	t.VisitLeaves(voxtree.VisitorFuncs(
		func(lf *voxtree.Leaf[V]) {
			res := lf.Resolution()
			orig := lf.Origin()
			for x := 0; x < res; x++ {
				for y := 0; y < res; y++ {
					for z := 0; z < res; z++ {
						tris = meshVoxel(t, orig.Add(voxtree.Cd(x, y, z)), tris)
					}
				}
			}
		},
		func(tile voxtree.Tile[V]) {
			// each shell voxel exactly once: the x faces take the full
			// s^2 slab, the y and z faces shrink past the edges and
			// corners already swept
			s := tile.Size
			for i := 0; i < s; i++ {
				for j := 0; j < s; j++ {
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(0, i, j)), tris)
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(s-1, i, j)), tris)
				}
			}
			for i := 1; i < s-1; i++ {
				for j := 0; j < s; j++ {
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(i, 0, j)), tris)
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(i, s-1, j)), tris)
				}
				for j := 1; j < s-1; j++ {
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(i, j, 0)), tris)
					tris = meshVoxel(t, tile.Origin.Add(voxtree.Cd(i, j, s-1)), tris)
				}
			}
		},
	))

	return tris
}

func meshVoxel[V comparable](t *voxtree.Tree[V], voxel voxtree.Coord, tris []Triangle) []Triangle {
	if _, ok := t.Get(voxel); !ok {
		return tris
	}

	base := r3.Vector{X: float64(voxel.X), Y: float64(voxel.Y), Z: float64(voxel.Z)}
	for side, nb := range faceNeighbors {
		if _, ok := t.Get(voxel.Add(nb)); ok {
			continue
		}
		for _, face := range cubeFaces[side] {
			tris = append(tris, Triangle{
				base.Add(cubeVerts[face[0]]),
				base.Add(cubeVerts[face[1]]),
				base.Add(cubeVerts[face[2]]),
			})
		}
	}
	return tris
}
