// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

// Package voxtree provides sparse hierarchical voxel grids over the
// unbounded signed 3D integer lattice, in the style of VDB trees.
//
// A [Tree] stores a payload per voxel in a shallow fixed-depth hierarchy:
//
//   - Root: a dictionary from quantized chunk origins to subtrees
//   - Branch nodes: fixed power-of-two slot grids holding children,
//     constant tiles, or nothing
//   - Leaves: dense cubes of voxels with an activity bitmask
//
// Memory is proportional to the written voxels, not the addressed
// region, and large constant regions collapse to single tile entries
// via [Tree.Prune].
//
// For signed-distance payloads the package adds volume semantics on top
// of the plain container: [FloodFill] propagates inside/outside signs
// across the unwritten space, and [Union], [Subtract] and [Intersect]
// combine two filled grids with the usual min/max CSG arithmetic,
// touching only the narrow band where the surfaces actually interact.
//
// Trees are safe for concurrent readers; any mutation requires external
// synchronization with all other access.
package voxtree
