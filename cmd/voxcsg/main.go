// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

// Command voxcsg builds two signed distance primitives, combines them
// with a boolean operation and prints the resulting grid census. With
// -o it also writes the active-voxel mesh as binary STL.
package main

import (
	"flag"
	"os"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/geomkit/voxtree/sdf"
)

var (
	op        = flag.String("op", "union", "boolean operation: union, subtract or intersect")
	voxelSize = flag.Float64("voxel", 0.1, "lattice spacing in world units")
	radius    = flag.Float64("radius", 5, "sphere radius")
	out       = flag.String("o", "", "write active-voxel mesh to this STL file")
	debug     = flag.Bool("debug", false, "verbose construction logging")
)

func main() {
	flag.Parse()

	logger := golog.NewLogger("voxcsg")
	if *debug {
		logger = golog.NewDebugLogger("voxcsg")
	}

	b := sdf.NewBuilder(*voxelSize, logger)
	sphere := b.Sphere(*radius, r3.Vector{})
	box := b.Cuboid(
		r3.Vector{X: 0, Y: -*radius, Z: -*radius},
		r3.Vector{X: 2 * *radius, Y: *radius, Z: *radius},
	)

	var err error
	switch *op {
	case "union":
		err = sphere.Union(box)
	case "subtract":
		err = sphere.Subtract(box)
	case "intersect":
		err = sphere.Intersect(box)
	default:
		logger.Errorf("unknown operation %q", *op)
		os.Exit(2)
	}
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	sphere.Prune(1e-6)

	st := sphere.Stats()
	logger.Infow("result",
		"op", *op,
		"chunks", st.RootChunks,
		"leaves", st.Leaves,
		"tiles", st.Tiles,
		"voxels", st.Voxels,
	)

	if *out != "" {
		if err := sphere.SaveActive(*out); err != nil {
			logger.Error(err)
			os.Exit(1)
		}
		logger.Infof("wrote %s", *out)
	}
}
