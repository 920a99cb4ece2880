package bvsimplify

import "bvsynth/internal/bvast"

// Substitute rewrites every free occurrence of id in e to replacement.
// Spec's design note describes substitute(e, name, value) as rewriting
// Id(name) to Const(value); this implementation generalizes the
// replacement to an arbitrary Expr (needed by the dead-accumulator fold
// rule, which substitutes y for a shifted copy of the fold's value
// subexpression, not necessarily a literal). Id(Y)/Id(Z) occurrences
// bound by a nested Fold/TFold are left alone (lexical shadowing).
func Substitute(e bvast.Expr, id bvast.Id, replacement bvast.Expr) bvast.Expr {
	switch n := e.(type) {
	case *bvast.ConstExpr:
		return e
	case *bvast.IdentExpr:
		if n.Name == id {
			return replacement
		}
		return e
	case *bvast.LambdaExpr:
		return bvast.NewLambda(Substitute(n.Body, id, replacement))
	case *bvast.UnaryExpr:
		return bvast.NewUnary(n.Op, Substitute(n.Arg, id, replacement))
	case *bvast.BinaryExpr:
		return bvast.NewBinary(n.Op, Substitute(n.Left, id, replacement), Substitute(n.Right, id, replacement))
	case *bvast.If0Expr:
		return bvast.NewIf0(
			Substitute(n.Cond, id, replacement),
			Substitute(n.Then, id, replacement),
			Substitute(n.Else, id, replacement),
		)
	case *bvast.FoldExpr:
		body := n.Body
		if id != bvast.Y && id != bvast.Z {
			body = Substitute(n.Body, id, replacement)
		}
		return bvast.NewFold(Substitute(n.Value, id, replacement), Substitute(n.Init, id, replacement), body)
	case *bvast.TFoldExpr:
		body := n.Body
		if id != bvast.Y && id != bvast.Z {
			body = Substitute(n.Body, id, replacement)
		}
		return bvast.NewTFold(body)
	default:
		return e
	}
}
