package bvsimplify

import (
	"bvsynth/internal/bvast"
	"bvsynth/internal/bveval"
)

// topByteOf builds an expression extracting bits 56-63 of value: the byte
// a fold's final (8th) iteration binds to y, since fold walks value's
// bytes least-significant first.
func topByteOf(value bvast.Expr) bvast.Expr {
	v := bvast.Expr(bvast.NewUnary(bvast.OpShr16, value))
	v = bvast.NewUnary(bvast.OpShr16, v)
	v = bvast.NewUnary(bvast.OpShr16, v)
	v = bvast.NewUnary(bvast.OpShr4, v)
	v = bvast.NewUnary(bvast.OpShr4, v)
	return v
}

// simplifyFold simplifies "(fold value init body)" where value, init, and
// body have already been simplified.
//
// Four reductions apply, checked in order of generality:
//  1. body is exactly z: every iteration just carries the accumulator
//     through unchanged, so the loop's result is its initial value.
//  2. body touches neither y nor z: every iteration produces the same
//     result regardless of loop state, so the fold reduces to body itself.
//  3. body touches y but never z: the accumulator is dead, so only the
//     last iteration's y binding (the top byte of value) can possibly
//     affect the result.
//  4. value and init are both constants and body has no free x: the
//     entire loop can be run directly instead of left as a tree.
func simplifyFold(value, init, body bvast.Expr) bvast.Expr {
	if isIdent(body, bvast.Z) {
		return init
	}
	if body.Vars()&(bvast.VarY|bvast.VarZ) == 0 {
		return body
	}
	if body.Vars()&bvast.VarZ == 0 {
		substituted := Substitute(body, bvast.Y, topByteOf(value))
		return Simplify(substituted)
	}
	if vv, vok := asConst(value); vok {
		if iv, iok := asConst(init); iok && body.Vars()&bvast.VarX == 0 {
			return bvast.NewConst(bveval.EvalFold(0, vv, iv, body))
		}
	}
	return bvast.NewFold(value, init, body)
}

// simplifyTFold simplifies "(fold x 0 body)" where body has already been
// simplified. value is implicitly x (not a constant) so the full-unroll
// reduction never applies here; the other fold reductions do, with init
// implicitly 0.
func simplifyTFold(body bvast.Expr) bvast.Expr {
	if isIdent(body, bvast.Z) {
		return bvast.NewConst(0)
	}
	if body.Vars()&(bvast.VarY|bvast.VarZ) == 0 {
		return body
	}
	if body.Vars()&bvast.VarZ == 0 {
		substituted := Substitute(body, bvast.Y, topByteOf(bvast.NewIdent(bvast.X)))
		return Simplify(substituted)
	}
	return bvast.NewTFold(body)
}

func isIdent(e bvast.Expr, id bvast.Id) bool {
	ident, ok := e.(*bvast.IdentExpr)
	return ok && ident.Name == id
}
