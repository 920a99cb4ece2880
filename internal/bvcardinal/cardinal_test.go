package bvcardinal

import (
	"testing"
	"time"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bveval"
	"bvsynth/internal/eugeo"
)

func opSet(ops ...bvast.OpKind) bvast.OpSet {
	var s bvast.OpSet
	for _, op := range ops {
		s = s.With(op)
	}
	return s
}

func evalAll(e bvast.Expr, args []uint64) []uint64 {
	out := make([]uint64, len(args))
	for i, a := range args {
		out[i] = bveval.Eval(e, bveval.Env{X: a})
	}
	return out
}

func TestSearchFindsNot(t *testing.T) {
	args := []uint64{0, 1, 5, ^uint64(0)}
	expected := []uint64{^uint64(0), ^uint64(1), ^uint64(5), 0}
	got, err := Search(args, expected, 3, opSet(bvast.OpNot), SOLVE, 2*time.Second, 1, nil)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	for i, v := range evalAll(got, args) {
		if v != expected[i] {
			t.Fatalf("witness %s wrong at input %d: got %d want %d", got.String(), args[i], v, expected[i])
		}
	}
}

func TestSearchFindsShl1PlusConst(t *testing.T) {
	args := []uint64{0, 1, 2, 100}
	expected := make([]uint64, len(args))
	for i, a := range args {
		expected[i] = (a << 1) + 1
	}
	got, err := Search(args, expected, 5, opSet(bvast.OpShl1, bvast.OpPlus), SOLVE, 2*time.Second, 42, nil)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	for i, v := range evalAll(got, args) {
		if v != expected[i] {
			t.Fatalf("witness %s wrong at input %d: got %d want %d", got.String(), args[i], v, expected[i])
		}
	}
}

func TestSearchReturnsNotFoundWhenUnreachable(t *testing.T) {
	args := []uint64{0, 1}
	expected := []uint64{7, 9}
	_, err := Search(args, expected, 2, opSet(bvast.OpNot), SOLVE, 2*time.Second, 1, nil)
	if err == nil {
		t.Fatalf("expected a not-found error within a tiny size budget")
	}
}

func TestSearchWithFoldFindsByteSum(t *testing.T) {
	args := []uint64{0x0102030405060708, 0xff, 1}
	expected := make([]uint64, len(args))
	for i, a := range args {
		var acc uint64
		v := a
		for b := 0; b < 8; b++ {
			acc += v & 0xff
			v >>= 8
		}
		expected[i] = acc
	}
	catalog := eugeo.Build(opSet(bvast.OpPlus))
	ops := opSet(bvast.OpPlus, bvast.OpFold)
	got, err := Search(args, expected, 12, ops, SOLVE, 3*time.Second, 7, catalog)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	for i, v := range evalAll(got, args) {
		if v != expected[i] {
			t.Fatalf("witness %s wrong at input %d: got %d want %d", got.String(), args[i], v, expected[i])
		}
	}
}

func TestAssemblePlainProblem(t *testing.T) {
	args := []uint64{0, 1, 2}
	expected := []uint64{1, 0, 3}
	p := Problem{Args: args, Expected: expected, MaxSize: 4, Ops: opSet(bvast.OpNot, bvast.OpShl1)}
	got, err := Assemble(p, nil, 2*time.Second)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	for i, a := range args {
		if v := bveval.Eval(got, bveval.Env{X: a}); v != expected[i] {
			t.Fatalf("assembled program %s wrong at input %d: got %d want %d", got.String(), a, v, expected[i])
		}
	}
}

func TestAssembleRefinementProblem(t *testing.T) {
	// a is odd, so (and x 1) is nonzero on a and picks elseBody (identity);
	// r is even, so (and x 1) is zero on r and picks thenBody (x+1).
	a := []uint64{1, 3, 5}
	r := []uint64{0, 2, 4}
	ea := make([]uint64, len(a))
	er := make([]uint64, len(r))
	for i, v := range a {
		ea[i] = v
	}
	for i, v := range r {
		er[i] = v + 1
	}
	p := Problem{
		Args: a, Expected: ea,
		RefinementArgs: r, RefinementExp: er,
		MaxSize: 6,
		Ops:     opSet(bvast.OpNot, bvast.OpShl1, bvast.OpPlus, bvast.OpIf0, bvast.OpAnd),
	}
	got, err := Assemble(p, nil, 3*time.Second)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	for i, x := range a {
		if v := bveval.Eval(got, bveval.Env{X: x}); v != ea[i] {
			t.Fatalf("refinement program wrong on A at input %d: got %d want %d", x, v, ea[i])
		}
	}
	for i, x := range r {
		if v := bveval.Eval(got, bveval.Env{X: x}); v != er[i] {
			t.Fatalf("refinement program wrong on R at input %d: got %d want %d", x, v, er[i])
		}
	}
}

func TestAssembleTFoldProbeHitsCatalogDirectly(t *testing.T) {
	args := []uint64{0x0102030405060708, 0x10, 0xff}
	expected := make([]uint64, len(args))
	for i, a := range args {
		var acc uint64
		v := a
		for b := 0; b < 8; b++ {
			acc ^= v & 0xff
			v >>= 8
		}
		expected[i] = acc
	}
	catalog := eugeo.Build(opSet(bvast.OpXor))
	p := Problem{
		Args: args, Expected: expected,
		MaxSize: 10,
		Ops:     opSet(bvast.OpXor, bvast.OpTFold),
	}
	got, err := Assemble(p, catalog, 2*time.Second)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if _, ok := got.(*bvast.LambdaExpr).Body.(*bvast.TFoldExpr); !ok {
		t.Fatalf("expected a TFold-rooted program, got %s", got.String())
	}
	for i, a := range args {
		if v := bveval.Eval(got, bveval.Env{X: a}); v != expected[i] {
			t.Fatalf("witness %s wrong at input %d: got %d want %d", got.String(), a, v, expected[i])
		}
	}
}

func TestAssemblePipelineOrder(t *testing.T) {
	if len(Pipeline) != 3 || Pipeline[0] != TFoldProbe || Pipeline[1] != PlainSearch || Pipeline[2] != RefinementSearch {
		t.Fatalf("unexpected Pipeline order: %v", Pipeline)
	}
}
