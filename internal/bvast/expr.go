package bvast

// ConstExpr is a u64 literal (0, 1, or any constant folding produced).
type ConstExpr struct {
	attrs
	Value uint64
}

// IdentExpr is one of x, y, z.
type IdentExpr struct {
	attrs
	Name Id
}

// LambdaExpr is the program root, "(lambda (x) <body>)".
type LambdaExpr struct {
	attrs
	Body Expr
}

// If0Expr is "(if0 cond then else)".
type If0Expr struct {
	attrs
	Cond, Then, Else Expr
}

// FoldExpr is "(fold value init body)" where body is evaluated under the
// extended environment (x, y=byte, z=accumulator).
type FoldExpr struct {
	attrs
	Value, Init, Body Expr
}

// TFoldExpr is the top-level sugar "(fold x 0 body)".
type TFoldExpr struct {
	attrs
	Body Expr
}

// UnaryExpr is one of not/shl1/shr1/shr4/shr16 applied to Arg.
type UnaryExpr struct {
	attrs
	Op  OpKind
	Arg Expr
}

// BinaryExpr is one of and/or/xor/plus applied to Left, Right.
type BinaryExpr struct {
	attrs
	Op          OpKind
	Left, Right Expr
}

func (*ConstExpr) Kind() OpKind  { return OpConst }
func (*IdentExpr) Kind() OpKind  { return OpId }
func (*LambdaExpr) Kind() OpKind { return OpLambda }
func (*If0Expr) Kind() OpKind    { return OpIf0 }
func (*FoldExpr) Kind() OpKind   { return OpFold }
func (*TFoldExpr) Kind() OpKind  { return OpTFold }
func (u *UnaryExpr) Kind() OpKind  { return u.Op }
func (b *BinaryExpr) Kind() OpKind { return b.Op }

// NewConst builds a constant leaf. Size 1, no variables, no fold.
func NewConst(v uint64) *ConstExpr {
	return &ConstExpr{
		attrs: attrs{size: 1, opSet: opSetOf(OpConst)},
		Value: v,
	}
}

// NewIdent builds a variable leaf. Size 1.
func NewIdent(id Id) *IdentExpr {
	return &IdentExpr{
		attrs: attrs{size: 1, vars: varOf(id), opSet: opSetOf(OpId)},
		Name:  id,
	}
}

// NewLambda wraps body as the program root. Size 1 + body.
func NewLambda(body Expr) *LambdaExpr {
	return &LambdaExpr{
		attrs: attrs{
			size:    1 + body.Size(),
			vars:    body.Vars(),
			hasFold: body.HasFold(),
			opSet:   body.OpSet().With(OpLambda),
		},
		Body: body,
	}
}

// NewIf0 builds "(if0 cond then else)". Size 1 + sum(children).
func NewIf0(cond, then_, else_ Expr) *If0Expr {
	return &If0Expr{
		attrs: attrs{
			size:    1 + cond.Size() + then_.Size() + else_.Size(),
			vars:    cond.Vars() | then_.Vars() | else_.Vars(),
			hasFold: cond.HasFold() || then_.HasFold() || else_.HasFold(),
			opSet:   cond.OpSet().Union(then_.OpSet()).Union(else_.OpSet()).With(OpIf0),
		},
		Cond: cond, Then: then_, Else: else_,
	}
}

// NewFold builds "(fold value init body)". Size 2 + sum(children). Y and Z
// in body are bound by the fold, so they do not propagate into Vars(); a
// free X inside body does.
func NewFold(value, init, body Expr) *FoldExpr {
	return &FoldExpr{
		attrs: attrs{
			size:    2 + value.Size() + init.Size() + body.Size(),
			vars:    value.Vars() | init.Vars() | (body.Vars() & VarX),
			hasFold: true,
			opSet:   value.OpSet().Union(init.OpSet()).Union(body.OpSet()).With(OpFold),
		},
		Value: value, Init: init, Body: body,
	}
}

// NewTFold builds the top-level sugar "(fold x 0 body)". Size 4 + body.
func NewTFold(body Expr) *TFoldExpr {
	return &TFoldExpr{
		attrs: attrs{
			size:    4 + body.Size(),
			vars:    body.Vars() & VarX,
			hasFold: true,
			opSet:   body.OpSet().With(OpTFold),
		},
		Body: body,
	}
}

// NewUnary builds "(op arg)" for op in {not,shl1,shr1,shr4,shr16}.
func NewUnary(op OpKind, arg Expr) *UnaryExpr {
	return &UnaryExpr{
		attrs: attrs{
			size:    1 + arg.Size(),
			vars:    arg.Vars(),
			hasFold: arg.HasFold(),
			opSet:   arg.OpSet().With(op),
		},
		Op: op, Arg: arg,
	}
}

// NewBinary builds "(op left right)" for op in {and,or,xor,plus}.
func NewBinary(op OpKind, left, right Expr) *BinaryExpr {
	return &BinaryExpr{
		attrs: attrs{
			size:    1 + left.Size() + right.Size(),
			vars:    left.Vars() | right.Vars(),
			hasFold: left.HasFold() || right.HasFold(),
			opSet:   left.OpSet().Union(right.OpSet()).With(op),
		},
		Op: op, Left: left, Right: right,
	}
}

// IsUnaryOp and IsBinaryOp classify an OpKind for callers that only have
// the kind (e.g. the simplifier's dispatch and the enumerator's operator
// loops).
func IsUnaryOp(op OpKind) bool {
	switch op {
	case OpNot, OpShl1, OpShr1, OpShr4, OpShr16:
		return true
	default:
		return false
	}
}

func IsBinaryOp(op OpKind) bool {
	switch op {
	case OpAnd, OpOr, OpXor, OpPlus:
		return true
	default:
		return false
	}
}
