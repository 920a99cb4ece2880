// Package bvcardinal implements the search-table driver: given a set of
// (x, expected) pairs, it grows per-size tables of reachable output
// fingerprints until one matches, and reconstructs the witnessing
// expression by walking back through the derivation that produced it.
// Unlike the bottom-up candidate enumerator in bvenum, it tracks
// expressions only by their evaluated behavior, never builds a candidate
// it doesn't need, and stops as soon as it finds a match.
//
// SPDX-License-Identifier: Apache-2.0
package bvcardinal

import (
	"math/rand"
	"time"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bveval"
	"bvsynth/internal/eugeo"
	"bvsynth/internal/solvererr"
)

var unaryOps = []bvast.OpKind{bvast.OpNot, bvast.OpShl1, bvast.OpShr1, bvast.OpShr4, bvast.OpShr16}
var binaryOps = []bvast.OpKind{bvast.OpAnd, bvast.OpOr, bvast.OpXor, bvast.OpPlus}

// Mode selects what counts as a solution fingerprint.
type Mode int

const (
	// SOLVE requires the fingerprint to equal expected exactly.
	SOLVE Mode = iota
	// CONDITION requires (k[i] == 0) to match (expected[i] == 0) for all i.
	CONDITION
	// BONUS_CONDITION requires (k[i] & 1) == expected[i] for all i.
	BONUS_CONDITION
)

// pollInterval is how many new-fingerprint insertions pass between
// wall-clock timeout checks.
const pollInterval = 1 << 14

// back is a back-pointer record: enough to reconstruct one Expr node
// given its children's own back-pointers.
type back struct {
	isLeaf   bool
	leaf     bvast.Expr
	op       bvast.OpKind
	children []string
	foldBody bvast.Expr // only set when op == bvast.OpFold
}

// fpEntry is a fingerprint inserted during the current size step, kept
// around just long enough to check it against the termination condition.
type fpEntry struct {
	key     string
	hasFold bool
	values  []uint64
}

type driver struct {
	args     []uint64
	expected []uint64
	maxSize  int
	ops      bvast.OpSet
	mode     Mode
	deadline time.Time
	rng      *rand.Rand
	catalog  *eugeo.Catalog

	sizeDict   map[string]int
	exprDicts  []map[string]back // index 1..maxSize
	registry   map[string]fpEntry
	insertions int
	newestKeys []fpEntry
	timedOut   bool
}

// Search runs cardinal(args, expected, maxSize, ops, mode, timeout). It
// returns the smallest witnessing expression found, or a *solvererr.Error
// of kind Timeout or NotFound.
func Search(args, expected []uint64, maxSize int, ops bvast.OpSet, mode Mode, timeout time.Duration, seed uint64, catalog *eugeo.Catalog) (result bvast.Expr, err error) {
	defer recoverInvariant(&result, &err)

	d := &driver{
		args:      args,
		expected:  expected,
		maxSize:   maxSize,
		ops:       ops,
		mode:      mode,
		deadline:  time.Now().Add(timeout),
		rng:       rand.New(rand.NewSource(int64(seed))),
		catalog:   catalog,
		sizeDict:  make(map[string]int),
		exprDicts: make([]map[string]back, maxSize+1),
		registry:  make(map[string]fpEntry),
	}
	for s := 1; s <= maxSize; s++ {
		d.exprDicts[s] = make(map[string]back)
	}

	zeros := make([]uint64, len(args))
	ones := make([]uint64, len(args))
	for i := range ones {
		ones[i] = 1
	}
	d.insert(false, zeros, 1, back{isLeaf: true, leaf: bvast.NewConst(0)})
	d.insert(false, ones, 1, back{isLeaf: true, leaf: bvast.NewConst(1)})
	d.insert(false, args, 1, back{isLeaf: true, leaf: bvast.NewIdent(bvast.X)})

	if key, ok := d.matchAmong(d.newestKeys); ok {
		return d.reconstruct(key), nil
	}

	for size := 2; size <= d.maxSize; size++ {
		d.newestKeys = d.newestKeys[:0]
		d.growSize(size)
		if d.timedOut {
			return nil, solvererr.NewTimeout("search exceeded its time budget")
		}
		if key, ok := d.matchAmong(d.newestKeys); ok {
			return d.reconstruct(key), nil
		}
	}
	return nil, solvererr.NewNotFound("enumeration exhausted at max_size with no fingerprint match")
}

// insert records a new fingerprint at size, unless one was already
// recorded at a smaller (or equal) size: the first witness at the
// smallest size always wins and is never replaced.
func (d *driver) insert(hasFold bool, values []uint64, size int, b back) bool {
	key := fingerprintKey(hasFold, values)
	if _, exists := d.sizeDict[key]; exists {
		return false
	}
	d.sizeDict[key] = size
	d.exprDicts[size][key] = b
	entry := fpEntry{key: key, hasFold: hasFold, values: values}
	d.registry[key] = entry
	d.newestKeys = append(d.newestKeys, entry)
	d.insertions++
	if d.insertions%pollInterval == 0 && time.Now().After(d.deadline) {
		d.timedOut = true
	}
	return true
}

// growSize derives every new fingerprint of the given size from smaller
// ones already in the tables: Phase A composes unary, binary and if0
// nodes over whatever is already reachable (fold or not); Phase B lifts a
// (value, init) pair of non-fold children into a new Fold node using one
// of the precomputed catalog bodies. It returns early, leaving d.timedOut
// set, as soon as a deadline poll inside insert trips.
func (d *driver) growSize(size int) {
	shuffledUnary := append([]bvast.OpKind(nil), unaryOps...)
	shuffledBinary := append([]bvast.OpKind(nil), binaryOps...)
	d.rng.Shuffle(len(shuffledUnary), func(i, j int) { shuffledUnary[i], shuffledUnary[j] = shuffledUnary[j], shuffledUnary[i] })
	d.rng.Shuffle(len(shuffledBinary), func(i, j int) { shuffledBinary[i], shuffledBinary[j] = shuffledBinary[j], shuffledBinary[i] })

	for _, op := range shuffledUnary {
		if !d.ops.Has(op) {
			continue
		}
		for key := range d.exprDicts[size-1] {
			e := d.registry[key]
			d.insert(e.hasFold, applyUnary(op, e.values), size, back{op: op, children: []string{key}})
			if d.timedOut {
				return
			}
		}
	}

	for _, op := range shuffledBinary {
		if !d.ops.Has(op) {
			continue
		}
		for i := 1; i <= size-2; i++ {
			j := size - 1 - i
			if j < 1 {
				continue
			}
			for keyA := range d.exprDicts[i] {
				a := d.registry[keyA]
				for keyB := range d.exprDicts[j] {
					b := d.registry[keyB]
					values := applyBinary(op, a.values, b.values)
					d.insert(a.hasFold || b.hasFold, values, size, back{op: op, children: []string{keyA, keyB}})
					if d.timedOut {
						return
					}
				}
			}
		}
	}

	if d.ops.Has(bvast.OpIf0) {
		for i := 1; i <= size-2; i++ {
			for j := 1; i+j <= size-2; j++ {
				k := size - 1 - i - j
				if k < 1 {
					continue
				}
				for condKey := range d.exprDicts[i] {
					cond := d.registry[condKey]
					for thenKey := range d.exprDicts[j] {
						then := d.registry[thenKey]
						for elseKey := range d.exprDicts[k] {
							els := d.registry[elseKey]
							values := applyIf0(cond.values, then.values, els.values)
							hasFold := cond.hasFold || then.hasFold || els.hasFold
							d.insert(hasFold, values, size, back{op: bvast.OpIf0, children: []string{condKey, thenKey, elseKey}})
							if d.timedOut {
								return
							}
						}
					}
				}
			}
		}
	}

	if d.ops.Has(bvast.OpFold) && d.catalog != nil {
		// fold size = 2 + value_size + init_size + body_size
		for i := 1; i <= size-3; i++ {
			for j := 1; i+j <= size-3; j++ {
				bodySize := size - 2 - i - j
				bodies := d.catalog.Bodies(bodySize)
				if len(bodies) == 0 {
					continue
				}
				for valueKey := range d.exprDicts[i] {
					value := d.registry[valueKey]
					if value.hasFold {
						continue
					}
					for initKey := range d.exprDicts[j] {
						init := d.registry[initKey]
						if init.hasFold {
							continue
						}
						for _, body := range bodies {
							values := make([]uint64, len(d.args))
							for k, x := range d.args {
								values[k] = bveval.EvalFold(x, value.values[k], init.values[k], body)
							}
							d.insert(true, values, size, back{op: bvast.OpFold, children: []string{valueKey, initKey}, foldBody: body})
							if d.timedOut {
								return
							}
						}
					}
				}
			}
		}
	}
}

func applyUnary(op bvast.OpKind, a []uint64) []uint64 {
	out := make([]uint64, len(a))
	for i, v := range a {
		switch op {
		case bvast.OpNot:
			out[i] = ^v
		case bvast.OpShl1:
			out[i] = v << 1
		case bvast.OpShr1:
			out[i] = v >> 1
		case bvast.OpShr4:
			out[i] = v >> 4
		case bvast.OpShr16:
			out[i] = v >> 16
		}
	}
	return out
}

func applyBinary(op bvast.OpKind, a, b []uint64) []uint64 {
	out := make([]uint64, len(a))
	for i := range a {
		switch op {
		case bvast.OpAnd:
			out[i] = a[i] & b[i]
		case bvast.OpOr:
			out[i] = a[i] | b[i]
		case bvast.OpXor:
			out[i] = a[i] ^ b[i]
		case bvast.OpPlus:
			out[i] = a[i] + b[i]
		}
	}
	return out
}

func applyIf0(cond, then, els []uint64) []uint64 {
	out := make([]uint64, len(cond))
	for i := range cond {
		if cond[i] == 0 {
			out[i] = then[i]
		} else {
			out[i] = els[i]
		}
	}
	return out
}

// reconstruct rebuilds the Expr witnessing key by walking its back-pointer
// chain down to leaves.
func (d *driver) reconstruct(key string) bvast.Expr {
	b := d.exprDicts[d.sizeDict[key]][key]
	if b.isLeaf {
		return b.leaf
	}
	switch {
	case bvast.IsUnaryOp(b.op):
		return bvast.NewUnary(b.op, d.reconstruct(b.children[0]))
	case bvast.IsBinaryOp(b.op):
		return bvast.NewBinary(b.op, d.reconstruct(b.children[0]), d.reconstruct(b.children[1]))
	case b.op == bvast.OpIf0:
		return bvast.NewIf0(d.reconstruct(b.children[0]), d.reconstruct(b.children[1]), d.reconstruct(b.children[2]))
	case b.op == bvast.OpFold:
		return bvast.NewFold(d.reconstruct(b.children[0]), d.reconstruct(b.children[1]), b.foldBody)
	default:
		panic(solvererr.NewInvariant("bvcardinal: reconstruct found an unhandled back-pointer op"))
	}
}

// recoverInvariant recovers a panic raised with a *solvererr.Error
// (always a KindInvariant value, by construction of NewInvariant),
// routing it out through the named result/err returns instead of
// crashing the caller. Any other panic value is not a recognized
// invariant violation and is re-raised unchanged.
func recoverInvariant(result *bvast.Expr, err *error) {
	if r := recover(); r != nil {
		if se, ok := r.(*solvererr.Error); ok {
			*result, *err = nil, se
			return
		}
		panic(r)
	}
}

func (d *driver) matchAmong(entries []fpEntry) (string, bool) {
	for _, e := range entries {
		if d.accepts(e.values) {
			return e.key, true
		}
	}
	return "", false
}

func (d *driver) accepts(values []uint64) bool {
	switch d.mode {
	case SOLVE:
		for i, v := range values {
			if v != d.expected[i] {
				return false
			}
		}
		return true
	case CONDITION:
		for i, v := range values {
			if (v == 0) != (d.expected[i] == 0) {
				return false
			}
		}
		return true
	case BONUS_CONDITION:
		for i, v := range values {
			if (v & 1) != d.expected[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
