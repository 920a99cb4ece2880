// Package bvsimplify rewrites a BV expression tree into an equivalent but
// smaller (or more canonical) one: constant folding, identity/absorption
// laws, involution and complement laws, De Morgan pushing, distribution of
// unary ops over binary ops, shift-chain collapsing, commutative-operand
// canonicalization, and fold-specific reductions. Every rewrite here is
// sound: Simplify(e) must evaluate identically to e for every input.
//
// SPDX-License-Identifier: Apache-2.0
package bvsimplify

import (
	"bvsynth/internal/bvast"
	"bvsynth/internal/solvererr"
)

// Simplify returns e rewritten to a fixpoint of the rule set below, caching
// the result on e so repeated calls on the same node are free.
func Simplify(e bvast.Expr) bvast.Expr {
	if cached, ok := e.CachedSimplified(); ok {
		return cached
	}
	cur := e
	for {
		next := rewriteOnce(cur)
		if exprEqual(next, cur) {
			e.SetCachedSimplified(next)
			return next
		}
		cur = next
	}
}

// rewriteOnce simplifies every child bottom-up and then applies the rule
// set once to the resulting node.
func rewriteOnce(e bvast.Expr) bvast.Expr {
	switch n := e.(type) {
	case *bvast.ConstExpr, *bvast.IdentExpr:
		return e
	case *bvast.LambdaExpr:
		return bvast.NewLambda(Simplify(n.Body))
	case *bvast.If0Expr:
		return simplifyIf0(Simplify(n.Cond), Simplify(n.Then), Simplify(n.Else))
	case *bvast.FoldExpr:
		return simplifyFold(Simplify(n.Value), Simplify(n.Init), Simplify(n.Body))
	case *bvast.TFoldExpr:
		return simplifyTFold(Simplify(n.Body))
	case *bvast.UnaryExpr:
		return simplifyUnary(n.Op, Simplify(n.Arg))
	case *bvast.BinaryExpr:
		return simplifyBinary(n.Op, Simplify(n.Left), Simplify(n.Right))
	default:
		return e
	}
}

// exprEqual reports structural equality, used only to detect the rewrite
// fixpoint; it is not a general-purpose expression equivalence check.
func exprEqual(a, b bvast.Expr) bool {
	if a == b {
		return true
	}
	return bvast.Compare(a, b) == 0 && a.String() == b.String()
}

func applyUnaryConst(op bvast.OpKind, v uint64) uint64 {
	switch op {
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
	panic(solvererr.NewInvariant("bvsimplify: unhandled unary op in constant fold"))
}

func applyBinaryConst(op bvast.OpKind, a, b uint64) uint64 {
	switch op {
	case bvast.OpAnd:
		return a & b
	case bvast.OpOr:
		return a | b
	case bvast.OpXor:
		return a ^ b
	case bvast.OpPlus:
		return a + b
	}
	panic(solvererr.NewInvariant("bvsimplify: unhandled binary op in constant fold"))
}

func asConst(e bvast.Expr) (uint64, bool) {
	if c, ok := e.(*bvast.ConstExpr); ok {
		return c.Value, true
	}
	return 0, false
}

// isComplementOf reports whether b is syntactically (not a), after a has
// already been simplified; used by the involution/complement rules.
func isComplementOf(a, b bvast.Expr) bool {
	u, ok := b.(*bvast.UnaryExpr)
	if !ok || u.Op != bvast.OpNot {
		return false
	}
	return exprEqual(u.Arg, a)
}
