package bvast

import "testing"

func TestSizeAccounting(t *testing.T) {
	x := NewIdent(X)
	notX := NewUnary(OpNot, x)
	if notX.Size() != 2 {
		t.Fatalf("size = %d, want 2", notX.Size())
	}

	plusXX := NewBinary(OpPlus, x, x)
	if plusXX.Size() != 3 {
		t.Fatalf("size = %d, want 3", plusXX.Size())
	}

	if0 := NewIf0(x, NewConst(0), NewConst(1))
	if if0.Size() != 4 {
		t.Fatalf("size = %d, want 4", if0.Size())
	}

	fold := NewFold(x, NewConst(0), NewBinary(OpXor, NewIdent(Y), NewIdent(Z)))
	if fold.Size() != 2+1+1+3 {
		t.Fatalf("size = %d, want %d", fold.Size(), 2+1+1+3)
	}

	tf := NewTFold(NewBinary(OpXor, NewIdent(Y), NewIdent(Z)))
	if tf.Size() != 4+3 {
		t.Fatalf("size = %d, want %d", tf.Size(), 4+3)
	}

	lambda := NewLambda(notX)
	if lambda.Size() != 1+notX.Size() {
		t.Fatalf("size = %d, want %d", lambda.Size(), 1+notX.Size())
	}
}

func TestFoldMasksBoundVars(t *testing.T) {
	body := NewBinary(OpXor, NewIdent(Y), NewIdent(Z))
	fold := NewFold(NewIdent(X), NewConst(0), body)
	if fold.Vars()&(VarY|VarZ) != 0 {
		t.Fatalf("fold leaked bound vars: %v", fold.Vars())
	}
	if fold.Vars()&VarX == 0 {
		t.Fatalf("fold lost free x from value")
	}
	if !fold.HasFold() {
		t.Fatalf("fold.HasFold() should be true")
	}
	if fold.InFold() {
		t.Fatalf("fold node itself should not read as in_fold from outside")
	}
}

func TestOpSetExactness(t *testing.T) {
	e := NewBinary(OpAnd, NewIdent(X), NewUnary(OpNot, NewConst(0)))
	if !e.OpSet().Has(OpAnd) || !e.OpSet().Has(OpNot) || !e.OpSet().Has(OpId) || !e.OpSet().Has(OpConst) {
		t.Fatalf("op set missing expected members: %b", e.OpSet())
	}
	if e.OpSet().Has(OpOr) {
		t.Fatalf("op set has unexpected member OpOr")
	}
}

func TestCachedSimplified(t *testing.T) {
	e := NewIdent(X)
	if _, ok := e.CachedSimplified(); ok {
		t.Fatalf("fresh node should have no cached simplification")
	}
	e.SetCachedSimplified(e)
	got, ok := e.CachedSimplified()
	if !ok || got != Expr(e) {
		t.Fatalf("cached simplification not round-tripped")
	}
}
