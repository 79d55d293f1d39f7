// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

// Package sdf builds and combines discretized signed distance fields on
// top of voxtree grids. Distances are in world units, negative inside.
package sdf

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/geomkit/voxtree"
	"github.com/geomkit/voxtree/mesher"
)

// Volume is a narrow-band signed distance field sampled on a regular
// lattice with the given voxel size. Only voxels within the band around
// the zero crossing are stored; [Volume.Sign] resolves the rest after
// the grid has been flood filled, which every CSG method does on demand.
type Volume struct {
	grid      *voxtree.Tree[float32]
	voxelSize float64
}

// FromFunc samples f on every lattice point of the world-space box
// [min, max] and keeps the values within bandWidth+1 voxels of the
// surface. f must return the signed distance at the given world point,
// negative inside.
func FromFunc(voxelSize float64, min, max r3.Vector, bandWidth int, f func(r3.Vector) float64) *Volume {
	v := &Volume{
		grid:      voxtree.New[float32](),
		voxelSize: voxelSize,
	}

	band := float64(bandWidth+1) * voxelSize
	lo := voxtree.Cd(
		int(math.Floor(min.X/voxelSize)),
		int(math.Floor(min.Y/voxelSize)),
		int(math.Floor(min.Z/voxelSize)),
	)
	hi := voxtree.Cd(
		int(math.Ceil(max.X/voxelSize)),
		int(math.Ceil(max.Y/voxelSize)),
		int(math.Ceil(max.Z/voxelSize)),
	)

	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				p := r3.Vector{
					X: float64(x) * voxelSize,
					Y: float64(y) * voxelSize,
					Z: float64(z) * voxelSize,
				}
				d := f(p)
				if math.Abs(d) > band {
					continue
				}
				v.grid.Insert(voxtree.Cd(x, y, z), float32(d))
			}
		}
	}

	return v
}

// Grid exposes the underlying voxel grid. The Volume keeps owning it.
func (v *Volume) Grid() *voxtree.Tree[float32] { return v.grid }

// VoxelSize returns the lattice spacing in world units.
func (v *Volume) VoxelSize() float64 { return v.voxelSize }

// voxelAt quantizes a world point down to its lattice cell.
func (v *Volume) voxelAt(p r3.Vector) voxtree.Coord {
	return voxtree.Cd(
		int(math.Floor(p.X/v.voxelSize)),
		int(math.Floor(p.Y/v.voxelSize)),
		int(math.Floor(p.Z/v.voxelSize)),
	)
}

// At returns the stored distance at the world point's voxel, if that
// voxel lies within the narrow band.
func (v *Volume) At(p r3.Vector) (float32, bool) {
	return v.grid.Get(v.voxelAt(p))
}

// Sign reports whether the world point is inside or outside the volume.
// Meaningful only after a flood fill, which every CSG method performs.
func (v *Volume) Sign(p r3.Vector) voxtree.Sign {
	return voxtree.SignAt(v.grid, v.voxelAt(p))
}

// FloodFill propagates inside/outside signs across the unwritten space.
func (v *Volume) FloodFill() { voxtree.FloodFill(v.grid) }

// Union merges o into v. o is consumed and must not be used afterward.
func (v *Volume) Union(o *Volume) error {
	if err := v.compatible(o); err != nil {
		return err
	}
	voxtree.FloodFill(v.grid)
	voxtree.FloodFill(o.grid)
	voxtree.Union(v.grid, o.grid)
	return nil
}

// Subtract removes o from v. o is consumed.
func (v *Volume) Subtract(o *Volume) error {
	if err := v.compatible(o); err != nil {
		return err
	}
	voxtree.FloodFill(v.grid)
	voxtree.FloodFill(o.grid)
	voxtree.Subtract(v.grid, o.grid)
	return nil
}

// Intersect keeps the common interior of v and o. o is consumed.
func (v *Volume) Intersect(o *Volume) error {
	if err := v.compatible(o); err != nil {
		return err
	}
	voxtree.FloodFill(v.grid)
	voxtree.FloodFill(o.grid)
	voxtree.Intersect(v.grid, o.grid)
	return nil
}

// Complement flips the volume inside out in place.
func (v *Volume) Complement() {
	voxtree.FlipSigns(v.grid)
}

// Prune collapses constant regions, treating distances within tol of
// each other as equal.
func (v *Volume) Prune(tol float32) {
	v.grid.Prune(voxtree.Tolerance(tol))
}

// Stats reports the grid's node census.
func (v *Volume) Stats() voxtree.Stats { return v.grid.Stats() }

// ActiveSurface meshes the narrow band voxels as cubes, scaled to world
// units. Crude but handy for inspecting a volume in any mesh viewer.
func (v *Volume) ActiveSurface() []mesher.Triangle {
	tris := mesher.Cubes(v.grid)
	for i := range tris {
		for j := range tris[i] {
			tris[i][j] = tris[i][j].Mul(v.voxelSize)
		}
	}
	return tris
}

// SaveActive writes the active-voxel mesh to a binary STL file.
func (v *Volume) SaveActive(path string) error {
	return errors.Wrap(mesher.SaveSTL(path, v.ActiveSurface()), "saving active voxels")
}

func (v *Volume) compatible(o *Volume) error {
	if v.voxelSize != o.voxelSize {
		return errors.Errorf("mismatched voxel sizes %g and %g", v.voxelSize, o.voxelSize)
	}
	return nil
}
