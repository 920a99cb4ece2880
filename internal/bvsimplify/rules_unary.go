package bvsimplify

import "bvsynth/internal/bvast"

// simplifyUnary simplifies "(op arg)" where arg has already been
// simplified. It handles constant folding, involution, De Morgan pushing,
// shift-chain collapsing, and distribution over if0/binary ops.
func simplifyUnary(op bvast.OpKind, arg bvast.Expr) bvast.Expr {
	if v, ok := asConst(arg); ok {
		return bvast.NewConst(applyUnaryConst(op, v))
	}

	switch op {
	case bvast.OpNot:
		if u, ok := arg.(*bvast.UnaryExpr); ok && u.Op == bvast.OpNot {
			return u.Arg
		}
		if b, ok := arg.(*bvast.BinaryExpr); ok && oneOperandConst(b) {
			switch b.Op {
			case bvast.OpAnd:
				return bvast.NewBinary(bvast.OpOr,
					bvast.NewUnary(bvast.OpNot, b.Left), bvast.NewUnary(bvast.OpNot, b.Right))
			case bvast.OpOr:
				return bvast.NewBinary(bvast.OpAnd,
					bvast.NewUnary(bvast.OpNot, b.Left), bvast.NewUnary(bvast.OpNot, b.Right))
			case bvast.OpXor:
				if _, ok := asConst(b.Left); ok {
					return bvast.NewBinary(bvast.OpXor, bvast.NewUnary(bvast.OpNot, b.Left), b.Right)
				}
				return bvast.NewBinary(bvast.OpXor, b.Left, bvast.NewUnary(bvast.OpNot, b.Right))
			}
		}
		if i0, ok := arg.(*bvast.If0Expr); ok {
			if hasConstBranch(i0) {
				return bvast.NewIf0(i0.Cond, bvast.NewUnary(op, i0.Then), bvast.NewUnary(op, i0.Else))
			}
		}

	case bvast.OpShl1, bvast.OpShr1, bvast.OpShr4, bvast.OpShr16:
		if collapsed, ok := collapseShiftChain(op, arg); ok {
			return collapsed
		}
		if b, ok := arg.(*bvast.BinaryExpr); ok && oneOperandConst(b) {
			switch b.Op {
			case bvast.OpAnd, bvast.OpOr, bvast.OpXor:
				return bvast.NewBinary(b.Op, bvast.NewUnary(op, b.Left), bvast.NewUnary(op, b.Right))
			case bvast.OpPlus:
				if op == bvast.OpShl1 {
					return bvast.NewBinary(bvast.OpPlus, bvast.NewUnary(op, b.Left), bvast.NewUnary(op, b.Right))
				}
			}
		}
		if i0, ok := arg.(*bvast.If0Expr); ok && hasConstBranch(i0) {
			return bvast.NewIf0(i0.Cond, bvast.NewUnary(op, i0.Then), bvast.NewUnary(op, i0.Else))
		}
	}

	return bvast.NewUnary(op, arg)
}

func oneOperandConst(b *bvast.BinaryExpr) bool {
	_, lc := asConst(b.Left)
	_, rc := asConst(b.Right)
	return lc || rc
}

func hasConstBranch(i0 *bvast.If0Expr) bool {
	_, tc := asConst(i0.Then)
	_, ec := asConst(i0.Else)
	return tc || ec
}

// shiftTier maps a shift op to the op four consecutive applications of it
// collapse into, e.g. four shr1s are one shr4. shr16 has no wider tier:
// four consecutive shr16s shift out all 64 bits, handled separately below.
func shiftTier(op bvast.OpKind) (bvast.OpKind, bool) {
	switch op {
	case bvast.OpShr1:
		return bvast.OpShr4, true
	case bvast.OpShr4:
		return bvast.OpShr16, true
	default:
		return 0, false
	}
}

// collapseShiftChain detects "op(op(op(op(base))))" (this node plus three
// more nested applications of the identical op found in arg) and replaces
// the whole chain with a single node: the next wider shift tier, or, for
// shr16, a zero constant since 4*16 = 64 bits is the full width.
func collapseShiftChain(op bvast.OpKind, arg bvast.Expr) (bvast.Expr, bool) {
	u1, ok := arg.(*bvast.UnaryExpr)
	if !ok || u1.Op != op {
		return nil, false
	}
	u2, ok := u1.Arg.(*bvast.UnaryExpr)
	if !ok || u2.Op != op {
		return nil, false
	}
	u3, ok := u2.Arg.(*bvast.UnaryExpr)
	if !ok || u3.Op != op {
		return nil, false
	}

	if op == bvast.OpShr16 {
		return bvast.NewConst(0), true
	}
	next, ok := shiftTier(op)
	if !ok {
		return nil, false
	}
	return bvast.NewUnary(next, u3.Arg), true
}
