// Package bveval implements BV evaluation semantics: wrapping 64-bit
// arithmetic over an environment of x, y, z, with single-entry per-node
// memoization for subtrees that only ever reference x.
//
// SPDX-License-Identifier: Apache-2.0
package bveval

import (
	"fmt"

	"bvsynth/internal/bvast"
	"bvsynth/internal/solvererr"
)

// Env is the evaluation environment (x, y, z).
type Env struct {
	X, Y, Z uint64
}

// Eval evaluates e under env, implementing BV semantics on wrapping u64s.
func Eval(e bvast.Expr, env Env) uint64 {
	if e.Vars()&^bvast.VarX == 0 {
		if x, v, ok := e.EvalCache(); ok && x == env.X {
			return v
		}
		v := evalNode(e, env)
		e.SetEvalCache(env.X, v)
		return v
	}
	return evalNode(e, env)
}

func evalNode(e bvast.Expr, env Env) uint64 {
	switch n := e.(type) {
	case *bvast.ConstExpr:
		return n.Value
	case *bvast.IdentExpr:
		switch n.Name {
		case bvast.X:
			return env.X
		case bvast.Y:
			return env.Y
		case bvast.Z:
			return env.Z
		}
		return 0
	case *bvast.LambdaExpr:
		return Eval(n.Body, env)
	case *bvast.If0Expr:
		if Eval(n.Cond, env) == 0 {
			return Eval(n.Then, env)
		}
		return Eval(n.Else, env)
	case *bvast.FoldExpr:
		return evalFold(Eval(n.Value, env), Eval(n.Init, env), n.Body, env.X)
	case *bvast.TFoldExpr:
		return evalFold(env.X, 0, n.Body, env.X)
	case *bvast.UnaryExpr:
		v := Eval(n.Arg, env)
		switch n.Op {
		case bvast.OpNot:
			return ^v
		case bvast.OpShl1:
			return v << 1
		case bvast.OpShr1:
			return v >> 1
		case bvast.OpShr4:
			return v >> 4
		case bvast.OpShr16:
			return v >> 16
		}
	case *bvast.BinaryExpr:
		a := Eval(n.Left, env)
		b := Eval(n.Right, env)
		switch n.Op {
		case bvast.OpAnd:
			return a & b
		case bvast.OpOr:
			return a | b
		case bvast.OpXor:
			return a ^ b
		case bvast.OpPlus:
			return a + b
		}
	}
	panic(solvererr.NewInvariant(fmt.Sprintf("bveval: unhandled node kind %v", e.Kind())))
}

// evalFold runs the 8-iteration, LSB-first fold loop: acc starts at init,
// and on each of the 8 iterations body is evaluated with y bound to the
// next byte of value (least significant first) and z bound to the
// running accumulator.
func evalFold(value, init uint64, body bvast.Expr, x uint64) uint64 {
	acc := init
	v := value
	for i := 0; i < 8; i++ {
		acc = Eval(body, Env{X: x, Y: v & 0xFF, Z: acc})
		v >>= 8
	}
	return acc
}

// EvalFold runs the fold loop directly, without requiring a surrounding
// Fold/TFold node. The search driver and the fold-body catalog both need
// this to probe candidate bodies against many (x, value, init) triples
// without constructing a FoldExpr for each one.
func EvalFold(x, value, init uint64, body bvast.Expr) uint64 {
	return evalFold(value, init, body, x)
}
