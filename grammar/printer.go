package grammar

import "fmt"

// String renders the raw parse tree back to surface syntax. It is used for
// diagnostics only; the String methods in internal/bvast (PrintProgram)
// are what produce the canonical
// form used for search-table dedup and solver responses.
func (p *Program) String() string {
	return fmt.Sprintf("(lambda (x) %s)", p.Body.String())
}

func (e *Expr) String() string {
	switch {
	case e.Const != nil:
		return *e.Const
	case e.Var != nil:
		return *e.Var
	case e.Unary != nil:
		return e.Unary.String()
	case e.Binary != nil:
		return e.Binary.String()
	case e.If0 != nil:
		return e.If0.String()
	case e.Fold != nil:
		return e.Fold.String()
	default:
		return "<bad-expr>"
	}
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Arg.String())
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left.String(), b.Right.String())
}

func (i *If0Expr) String() string {
	return fmt.Sprintf("(if0 %s %s %s)", i.Cond.String(), i.Then.String(), i.Else.String())
}

func (f *FoldExpr) String() string {
	return fmt.Sprintf("(fold %s %s (lambda (y z) %s))", f.Value.String(), f.Init.String(), f.Body.String())
}
