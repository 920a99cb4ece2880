package bvenum

import (
	"testing"

	"bvsynth/internal/bvast"
)

func opSet(ops ...bvast.OpKind) bvast.OpSet {
	var s bvast.OpSet
	for _, op := range ops {
		s = s.With(op)
	}
	return s
}

func TestListExprSoundness(t *testing.T) {
	ops := opSet(bvast.OpNot, bvast.OpShl1)
	for d := 2; d <= 6; d++ {
		for _, lam := range ListExpr(d, ops, DedupNone) {
			l, ok := lam.(*bvast.LambdaExpr)
			if !ok {
				t.Fatalf("ListExpr returned a non-Lambda node: %s", lam.String())
			}
			if l.Body.Size() != d-1 {
				t.Fatalf("size mismatch: body=%q size=%d want=%d", l.Body.String(), l.Body.Size(), d-1)
			}
			if l.Body.Vars()&^bvast.VarX != 0 {
				t.Fatalf("body %q has free y/z", l.Body.String())
			}
			if got := l.Body.OpSet() &^ structuralMask; got != ops {
				t.Fatalf("body %q op_type_set = %v, want exactly %v", l.Body.String(), got, ops)
			}
		}
	}
}

func TestListExprFindsKnownSolution(t *testing.T) {
	ops := opSet(bvast.OpNot)
	found := false
	for _, lam := range ListExpr(4, ops, DedupNone) {
		if lam.String() == "(lambda (x) (not (not x)))" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected (not (not x)) among size-4 not-only candidates")
	}
}

func TestListExprDedupModesShrinkOutput(t *testing.T) {
	ops := opSet(bvast.OpXor, bvast.OpNot)
	none := ListExpr(5, ops, DedupNone)
	perStep := ListExpr(5, ops, DedupPerStep)
	if len(perStep) > len(none) {
		t.Fatalf("per-step dedup grew the candidate set: %d > %d", len(perStep), len(none))
	}
}
