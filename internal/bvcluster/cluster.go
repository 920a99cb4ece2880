// Package bvcluster fingerprints expressions against a fixed 256-value
// probe vector so that candidates which behave identically on those
// probes can be grouped together; the REPL's cluster command uses it this
// way. Two expressions landing in the same group agree on every probe,
// which does not prove they agree on every input. The search driver in
// bvcardinal does not use this package: it fingerprints against each
// request's own args.
//
// SPDX-License-Identifier: Apache-2.0
package bvcluster

import (
	"math/rand"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bveval"
)

// ProbeCount is the fixed size of the probe vector.
const ProbeCount = 256

// prngSeed is fixed so that clustering is reproducible across runs and
// across processes; it has no cryptographic significance.
const prngSeed = 177

// Key is the fixed probe vector every expression is evaluated against.
type Key [ProbeCount]uint64

// BuildKey constructs the probe vector: small signed integers, single-bit
// masks and their complements, then pseudo-random filler seeded with a
// fixed constant.
func BuildKey() Key {
	var k Key
	idx := 0

	for v := -7; v <= 7; v++ {
		k[idx] = uint64(int64(v))
		idx++
	}
	for i := 0; i < 64 && idx < ProbeCount; i++ {
		k[idx] = uint64(1) << uint(i)
		idx++
	}
	for i := 0; i < 64 && idx < ProbeCount; i++ {
		k[idx] = ^(uint64(1) << uint(i))
		idx++
	}

	rnd := rand.New(rand.NewSource(prngSeed))
	for idx < ProbeCount {
		k[idx] = rnd.Uint64()
		idx++
	}
	return k
}

// Fingerprint is an expression's output on every probe in a Key.
type Fingerprint [ProbeCount]uint64

// Evaluate computes e's fingerprint against key.
func Evaluate(e bvast.Expr, key Key) Fingerprint {
	var fp Fingerprint
	for i, x := range key {
		fp[i] = bveval.Eval(e, bveval.Env{X: x})
	}
	return fp
}

// Cluster groups exprs by fingerprint under key.
func Cluster(key Key, exprs []bvast.Expr) map[Fingerprint][]bvast.Expr {
	groups := make(map[Fingerprint][]bvast.Expr)
	for _, e := range exprs {
		fp := Evaluate(e, key)
		groups[fp] = append(groups[fp], e)
	}
	return groups
}
