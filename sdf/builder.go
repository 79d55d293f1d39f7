// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package sdf

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
)

// Builder constructs volumes for common primitives at a fixed voxel
// size. The narrow band is one voxel wide on either side of the surface.
type Builder struct {
	voxelSize float64
	logger    golog.Logger
}

// NewBuilder returns a Builder with the given lattice spacing. logger
// may be nil to disable construction logging.
func NewBuilder(voxelSize float64, logger golog.Logger) Builder {
	return Builder{voxelSize: voxelSize, logger: logger}
}

// Sphere builds the signed distance volume of a sphere.
func (b Builder) Sphere(radius float64, origin r3.Vector) *Volume {
	const bandWidth = 1
	offset := radius + bandWidth*b.voxelSize
	min := origin.Sub(r3.Vector{X: offset, Y: offset, Z: offset})
	max := origin.Add(r3.Vector{X: offset, Y: offset, Z: offset})

	v := FromFunc(b.voxelSize, min, max, bandWidth, func(p r3.Vector) float64 {
		return p.Sub(origin).Norm() - radius
	})
	b.logBuilt("sphere", v)
	return v
}

// Cuboid builds the signed distance volume of an axis-aligned box.
func (b Builder) Cuboid(min, max r3.Vector) *Volume {
	const bandWidth = 1
	offset := r3.Vector{
		X: bandWidth * b.voxelSize,
		Y: bandWidth * b.voxelSize,
		Z: bandWidth * b.voxelSize,
	}
	gridMin := min.Sub(offset)
	gridMax := max.Add(offset)

	v := FromFunc(b.voxelSize, gridMin, gridMax, bandWidth, func(p r3.Vector) float64 {
		return boxDistance(min, max, p)
	})
	b.logBuilt("cuboid", v)
	return v
}

func (b Builder) logBuilt(what string, v *Volume) {
	if b.logger == nil {
		return
	}
	st := v.Stats()
	b.logger.Debugw("built primitive",
		"primitive", what,
		"voxel_size", b.voxelSize,
		"voxels", st.Voxels,
		"leaves", st.Leaves,
	)
}

// boxDistance is the signed distance from p to the box [min, max]:
// inside it is minus the distance to the nearest face, outside the
// euclidean distance to the box.
func boxDistance(min, max, p r3.Vector) float64 {
	inside := p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z

	if inside {
		d := p.X - min.X
		d = math.Min(d, max.X-p.X)
		d = math.Min(d, p.Y-min.Y)
		d = math.Min(d, max.Y-p.Y)
		d = math.Min(d, p.Z-min.Z)
		d = math.Min(d, max.Z-p.Z)
		if d == 0 {
			// face points keep an unsigned zero, -0 would read as inside
			return 0
		}
		return -d
	}

	var sq float64
	for _, a := range [3][3]float64{
		{p.X, min.X, max.X},
		{p.Y, min.Y, max.Y},
		{p.Z, min.Z, max.Z},
	} {
		switch v, lo, hi := a[0], a[1], a[2]; {
		case v < lo:
			sq += (lo - v) * (lo - v)
		case v > hi:
			sq += (v - hi) * (v - hi)
		}
	}
	return math.Sqrt(sq)
}
