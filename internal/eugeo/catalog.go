// Package eugeo precomputes the catalog of candidate fold bodies the
// search driver probes when lifting a derivation into a fold: for each
// body size up to MaxBody, every canonical, non-fold expression over
// {0, 1, y, z} that genuinely depends on both y and z. A body that
// collapses to something simpler, or that never touches one of y/z, is
// exactly what the simplifier's fold reductions already handle, so it is
// never a useful witness and is dropped here rather than reconsidered on
// every probe.
//
// The catalog is built once per operator set and is safe to reuse across
// requests: it holds no references to any particular search's args or
// expected values.
//
// SPDX-License-Identifier: Apache-2.0
package eugeo

import (
	"bvsynth/internal/bvast"
	"bvsynth/internal/bvsimplify"
)

// MaxBody is the largest fold-body size the catalog precomputes.
const MaxBody = 9

// Catalog holds, per body size, the distinct canonical bodies of that
// size buildable from the operators it was built with.
type Catalog struct {
	bySize [][]bvast.Expr
}

// Build enumerates the fold-body catalog for ops, which should exclude
// OpFold/OpTFold (fold bodies may not themselves contain a fold), up to
// the package's default MaxBody.
func Build(ops bvast.OpSet) *Catalog {
	return BuildWithMaxBody(ops, MaxBody)
}

// BuildWithMaxBody is Build with an explicit body-size ceiling, for
// callers that source MAX_BODY from bvconfig rather than the default.
//
// Internally it first builds a "full" table of every distinct canonical
// expression up to maxBody over {0, 1, y, z} regardless of which of y/z
// it depends on, since a body depending only on y (say) is still a
// legitimate building block for a larger body that later folds in z. The
// exposed catalog then filters that full table down to entries that
// depend on both.
func BuildWithMaxBody(ops bvast.OpSet, maxBody int) *Catalog {
	if maxBody < 1 {
		maxBody = 1
	}
	full := make([][]bvast.Expr, maxBody+1)
	full[1] = []bvast.Expr{bvast.NewConst(0), bvast.NewConst(1), bvast.NewIdent(bvast.Y), bvast.NewIdent(bvast.Z)}

	seen := map[string]bool{}
	for _, e := range full[1] {
		seen[e.String()] = true
	}

	for s := 2; s <= maxBody; s++ {
		full[s] = buildSize(s, full, ops, seen)
	}

	bySize := make([][]bvast.Expr, maxBody+1)
	for s := 1; s <= maxBody; s++ {
		for _, e := range full[s] {
			if e.Vars()&bvast.VarY != 0 && e.Vars()&bvast.VarZ != 0 {
				bySize[s] = append(bySize[s], e)
			}
		}
	}
	return &Catalog{bySize: bySize}
}

// Bodies returns the catalog's bodies of exactly the given size, or nil
// if size is out of [1, maxBody] for the maxBody the catalog was built
// with.
func (c *Catalog) Bodies(size int) []bvast.Expr {
	if size < 1 || size >= len(c.bySize) {
		return nil
	}
	return c.bySize[size]
}

func buildSize(s int, full [][]bvast.Expr, ops bvast.OpSet, seen map[string]bool) []bvast.Expr {
	var raw []bvast.Expr

	for _, op := range []bvast.OpKind{bvast.OpNot, bvast.OpShl1, bvast.OpShr1, bvast.OpShr4, bvast.OpShr16} {
		if !ops.Has(op) {
			continue
		}
		for _, c := range full[s-1] {
			raw = append(raw, bvast.NewUnary(op, c))
		}
	}

	for _, op := range []bvast.OpKind{bvast.OpAnd, bvast.OpOr, bvast.OpXor, bvast.OpPlus} {
		if !ops.Has(op) {
			continue
		}
		for i := 1; i <= s-2; i++ {
			j := s - 1 - i
			if j < 1 {
				continue
			}
			for _, a := range full[i] {
				for _, b := range full[j] {
					raw = append(raw, bvast.NewBinary(op, a, b))
				}
			}
		}
	}

	if ops.Has(bvast.OpIf0) {
		for i := 1; i <= s-2; i++ {
			for j := 1; i+j <= s-2; j++ {
				k := s - 1 - i - j
				if k < 1 {
					continue
				}
				for _, c := range full[i] {
					for _, t := range full[j] {
						for _, e := range full[k] {
							raw = append(raw, bvast.NewIf0(c, t, e))
						}
					}
				}
			}
		}
	}

	var out []bvast.Expr
	for _, e := range raw {
		simplified := bvsimplify.Simplify(e)
		if simplified.Size() != s {
			// collapsed to something smaller; that smaller body already
			// exists at its own size, so this candidate is redundant.
			continue
		}
		key := simplified.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, simplified)
	}
	return out
}
