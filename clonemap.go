// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package voxtree

// CloneMap returns a deep copy of t with every stored value passed
// through f, preserving the tree topology exactly: active masks, tiles
// and the chunk dictionary carry over one to one. Unmasked slot values
// are mapped too, so flood-fill sign hints survive a value retyping when
// f preserves signs.
func CloneMap[V, U comparable](t *Tree[V], f func(V) U) *Tree[U] {
	out := &Tree[U]{
		shape: t.shape,
		root:  make(map[Coord]node[U], len(t.root)),
	}
	for key, n := range t.root {
		out.root[key] = mapNode(n, f)
	}
	return out
}

func mapNode[V, U comparable](n node[V], f func(V) U) node[U] {
	switch n := n.(type) {
	case *Leaf[V]:
		return &Leaf[U]{
			lev:    n.lev,
			orig:   n.orig,
			mask:   n.mask.Clone(),
			values: mapValues(n.values, f),
		}
	case *branchNode[V]:
		out := &branchNode[U]{
			lev:       n.lev,
			orig:      n.orig,
			childMask: n.childMask.Clone(),
			valueMask: n.valueMask.Clone(),
			children:  make([]node[U], n.lev.size),
			values:    mapValues(n.values, f),
		}
		for off, ok := n.childMask.FirstSet(); ok; off, ok = n.childMask.NextSet(off + 1) {
			out.children[off] = mapNode(n.children[off], f)
		}
		return out
	}
	panic("voxtree: unknown node type")
}

func mapValues[V, U comparable](in []V, f func(V) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
