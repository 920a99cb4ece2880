package bvsimplify

import "bvsynth/internal/bvast"

// simplifyIf0 simplifies "(if0 cond then else)" where all three children
// have already been simplified.
//
// When cond is exactly the variable x, the then-branch is known to run
// only when x is 0, so x can be substituted with 0 throughout it. The
// symmetric move on the else-branch does not hold: knowing x != 0 pins no
// particular value, so no substitution is valid there.
func simplifyIf0(cond, then, els bvast.Expr) bvast.Expr {
	if cv, ok := asConst(cond); ok {
		if cv == 0 {
			return then
		}
		return els
	}
	if exprEqual(then, els) {
		return then
	}
	if id, ok := cond.(*bvast.IdentExpr); ok && id.Name == bvast.X {
		substituted := Substitute(then, bvast.X, bvast.NewConst(0))
		if !exprEqual(substituted, then) {
			then = Simplify(substituted)
		}
	}
	return bvast.NewIf0(cond, then, els)
}
