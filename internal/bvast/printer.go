package bvast

import (
	"strconv"
	"strings"
)

func opName(op OpKind) string {
	switch op {
	case OpNot:
		return "not"
	case OpShl1:
		return "shl1"
	case OpShr1:
		return "shr1"
	case OpShr4:
		return "shr4"
	case OpShr16:
		return "shr16"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpPlus:
		return "plus"
	default:
		return "?"
	}
}

func (c *ConstExpr) String() string { return strconv.FormatUint(c.Value, 10) }
func (i *IdentExpr) String() string { return i.Name.String() }

func (l *LambdaExpr) String() string {
	var b strings.Builder
	b.WriteString("(lambda (x) ")
	b.WriteString(l.Body.String())
	b.WriteByte(')')
	return b.String()
}

func (i *If0Expr) String() string {
	var b strings.Builder
	b.WriteString("(if0 ")
	b.WriteString(i.Cond.String())
	b.WriteByte(' ')
	b.WriteString(i.Then.String())
	b.WriteByte(' ')
	b.WriteString(i.Else.String())
	b.WriteByte(')')
	return b.String()
}

func (f *FoldExpr) String() string {
	var b strings.Builder
	b.WriteString("(fold ")
	b.WriteString(f.Value.String())
	b.WriteByte(' ')
	b.WriteString(f.Init.String())
	b.WriteString(" (lambda (y z) ")
	b.WriteString(f.Body.String())
	b.WriteString("))")
	return b.String()
}

// String prints a TFold as its desugared "(fold x 0 body)" form, since the
// BV surface syntax grammar has no tfold literal of its own.
func (t *TFoldExpr) String() string {
	var b strings.Builder
	b.WriteString("(fold x 0 (lambda (y z) ")
	b.WriteString(t.Body.String())
	b.WriteString("))")
	return b.String()
}

func (u *UnaryExpr) String() string {
	return "(" + opName(u.Op) + " " + u.Arg.String() + ")"
}

func (bi *BinaryExpr) String() string {
	return "(" + opName(bi.Op) + " " + bi.Left.String() + " " + bi.Right.String() + ")"
}

// PrintProgram prints a program root (always a *LambdaExpr) to BV surface
// syntax.
func PrintProgram(e Expr) string { return e.String() }
