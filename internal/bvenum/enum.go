// Package bvenum builds tables of candidate BV expressions of a given
// size under a restricted operator set, the bottom-up enumerator used by
// exhaustive (non-search-table) program listing, such as the REPL's list
// and cluster commands.
//
// SPDX-License-Identifier: Apache-2.0
package bvenum

import "bvsynth/internal/bvast"

// DedupMode controls how ListExpr collapses semantically-redundant
// candidates while building each size's table.
type DedupMode int

const (
	// DedupNone keeps every syntactically distinct candidate.
	DedupNone DedupMode = iota
	// DedupPerStep keeps the first candidate per canonical (simplified)
	// string within each size, independently at every step.
	DedupPerStep
	// DedupGlobal keeps the first candidate per canonical string across
	// all sizes seen so far, in addition to per-step dedup.
	DedupGlobal
)

var unaryOpsList = []bvast.OpKind{bvast.OpNot, bvast.OpShl1, bvast.OpShr1, bvast.OpShr4, bvast.OpShr16}
var binaryOpsList = []bvast.OpKind{bvast.OpAnd, bvast.OpOr, bvast.OpXor, bvast.OpPlus}

// structuralMask excludes the leaf/wrapper kinds from an OpSet before
// comparing it against a requested operator set: Const and Id nodes are
// always present in any nontrivial expression and are not operators a
// caller selects.
const structuralMask = bvast.OpSet(1<<uint(bvast.OpConst) | 1<<uint(bvast.OpId) | 1<<uint(bvast.OpLambda))

// ListExpr enumerates every Lambda(body) with body.size == d-1 buildable
// from operators in ops, subject to mode's deduplication policy.
func ListExpr(d int, ops bvast.OpSet, mode DedupMode) []bvast.Expr {
	hasFold := ops.Has(bvast.OpFold)
	hasTFold := ops.Has(bvast.OpTFold)

	L := d - 1
	if hasTFold {
		L = d - 5
		if L < 1 {
			L = 1
		}
	}

	table := make([][]bvast.Expr, L+1)
	table[1] = seed(ops)

	globalSeen := map[string]bool{}
	if mode == DedupGlobal {
		for _, e := range table[1] {
			globalSeen[e.String()] = true
		}
	}

	for s := 2; s <= L; s++ {
		cand := buildSize(s, table, ops, hasFold)
		switch mode {
		case DedupPerStep:
			cand = dedupCanonical(cand, map[string]bool{})
		case DedupGlobal:
			cand = dedupCanonical(cand, globalSeen)
		}
		table[s] = cand
	}

	var finalSize []bvast.Expr
	if hasTFold {
		// Once tfold is in play, every valid program at this size is
		// tfold-rooted: table[L] holds bare bodies sized for nesting
		// inside a tfold (L is already d-5, clamped), not standalone
		// size-(d-1) candidates, so they are never appended here
		// regardless of dedup mode.
		for _, b := range table[L] {
			if b.HasFold() {
				continue
			}
			finalSize = append(finalSize, bvast.NewTFold(b))
		}
	} else {
		finalSize = append(finalSize, table[L]...)
	}

	var out []bvast.Expr
	for _, e := range finalSize {
		if e.InFold() {
			continue
		}
		if mode != DedupGlobal {
			opTypeSet := e.OpSet() &^ structuralMask
			if opTypeSet != ops {
				continue
			}
		}
		out = append(out, bvast.NewLambda(e))
	}
	return out
}

// seed builds T[1]: the constants 0 and 1 are always present; x is
// present unless the only fold-family operator requested is tfold (a
// tfold body is searched without the top-level x the wrapper already
// consumes); y and z are present whenever fold or tfold is requested.
func seed(ops bvast.OpSet) []bvast.Expr {
	res := []bvast.Expr{bvast.NewConst(0), bvast.NewConst(1)}

	hasFold := ops.Has(bvast.OpFold)
	hasTFold := ops.Has(bvast.OpTFold)

	if !(hasTFold && !hasFold) {
		res = append(res, bvast.NewIdent(bvast.X))
	}
	if hasFold || hasTFold {
		res = append(res, bvast.NewIdent(bvast.Y), bvast.NewIdent(bvast.Z))
	}
	return res
}

func buildSize(s int, table [][]bvast.Expr, ops bvast.OpSet, allowFold bool) []bvast.Expr {
	var out []bvast.Expr

	for _, op := range unaryOpsList {
		if !ops.Has(op) {
			continue
		}
		for _, c := range table[s-1] {
			out = append(out, bvast.NewUnary(op, c))
		}
	}

	for _, op := range binaryOpsList {
		if !ops.Has(op) {
			continue
		}
		for i := 1; i <= s-2; i++ {
			j := s - 1 - i
			if j < 1 {
				continue
			}
			for _, a := range table[i] {
				for _, b := range table[j] {
					if pruneMixedFold(a, b) {
						continue
					}
					out = append(out, bvast.NewBinary(op, a, b))
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
				for _, c := range table[i] {
					for _, t := range table[j] {
						if pruneMixedFold(c, t) {
							continue
						}
						for _, e := range table[k] {
							if pruneMixedFold(c, e) || pruneMixedFold(t, e) {
								continue
							}
							out = append(out, bvast.NewIf0(c, t, e))
						}
					}
				}
			}
		}
	}

	if allowFold {
		for i := 1; i <= s-3; i++ {
			for j := 1; i+j <= s-3; j++ {
				k := s - 2 - i - j
				if k < 1 {
					continue
				}
				for _, v := range table[i] {
					if v.HasFold() || v.InFold() {
						continue
					}
					for _, it := range table[j] {
						if it.HasFold() || it.InFold() {
							continue
						}
						for _, b := range table[k] {
							if b.HasFold() {
								continue
							}
							out = append(out, bvast.NewFold(v, it, b))
						}
					}
				}
			}
		}
	}

	return out
}

// pruneMixedFold rejects compositions that would let a fold's bound y/z
// leak outside its fold (one child already containing a fold, the other
// referencing y/z directly).
func pruneMixedFold(a, b bvast.Expr) bool {
	return (a.HasFold() && b.InFold()) || (b.HasFold() && a.InFold())
}

func dedupCanonical(exprs []bvast.Expr, seen map[string]bool) []bvast.Expr {
	var out []bvast.Expr
	for _, e := range exprs {
		key := Canonical(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
