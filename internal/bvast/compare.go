package bvast

// Compare imposes a total order over expression trees: first by
// operator-kind ordinal, then by a kind-specific comparison of
// children/leaf value. It drives the simplifier's commutative-operand
// normalization and the enumerator/driver's canonical-string dedup.
func Compare(a, b Expr) int {
	if a.Kind() != b.Kind() {
		return int(a.Kind()) - int(b.Kind())
	}

	switch a.Kind() {
	case OpConst:
		return compareU64(a.(*ConstExpr).Value, b.(*ConstExpr).Value)
	case OpId:
		return int(a.(*IdentExpr).Name) - int(b.(*IdentExpr).Name)
	case OpLambda:
		return Compare(a.(*LambdaExpr).Body, b.(*LambdaExpr).Body)
	case OpTFold:
		return Compare(a.(*TFoldExpr).Body, b.(*TFoldExpr).Body)
	case OpIf0:
		x, y := a.(*If0Expr), b.(*If0Expr)
		if c := Compare(x.Cond, y.Cond); c != 0 {
			return c
		}
		if c := Compare(x.Then, y.Then); c != 0 {
			return c
		}
		return Compare(x.Else, y.Else)
	case OpFold:
		x, y := a.(*FoldExpr), b.(*FoldExpr)
		if c := Compare(x.Value, y.Value); c != 0 {
			return c
		}
		if c := Compare(x.Init, y.Init); c != 0 {
			return c
		}
		return Compare(x.Body, y.Body)
	default:
		if IsUnaryOp(a.Kind()) {
			return Compare(a.(*UnaryExpr).Arg, b.(*UnaryExpr).Arg)
		}
		if IsBinaryOp(a.Kind()) {
			x, y := a.(*BinaryExpr), b.(*BinaryExpr)
			if c := Compare(x.Left, y.Left); c != 0 {
				return c
			}
			return Compare(x.Right, y.Right)
		}
		return 0
	}
}

func compareU64(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b Expr) bool { return Compare(a, b) < 0 }
