package bvcardinal

import (
	"time"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bveval"
	"bvsynth/internal/eugeo"
	"bvsynth/internal/solvererr"
)

// Problem is everything a request block supplies about one synthesis
// problem: the primary (args, expected) pair, an optional refinement
// pair for conditional problems, the size budget, enabled operators, a
// per-request seed, and whether a BONUS_CONDITION discriminator (rather
// than a plain CONDITION one) should be used when solving a refinement.
type Problem struct {
	Args, Expected                []uint64
	RefinementArgs, RefinementExp []uint64
	MaxSize                       int
	Ops                           bvast.OpSet
	Seed                          uint64
	Bonus                         bool
}

// Strategy names one step of the top-level dispatch pipeline Assemble
// runs. Exposed as its own type (rather than inline branching) so the
// dispatch order is a visible, testable property.
type Strategy int

const (
	TFoldProbe Strategy = iota
	PlainSearch
	RefinementSearch
)

func (s Strategy) String() string {
	switch s {
	case TFoldProbe:
		return "tfold_probe"
	case PlainSearch:
		return "plain_search"
	case RefinementSearch:
		return "refinement_search"
	default:
		return "unknown"
	}
}

// Pipeline is the ordered strategies Assemble tries. TFoldProbe only ever
// applies when the request's operator set includes tfold; exactly one of
// PlainSearch/RefinementSearch applies after it, chosen by whether a
// refinement argument set was supplied.
var Pipeline = []Strategy{TFoldProbe, PlainSearch, RefinementSearch}

// Assemble solves a request block by running Pipeline in order and
// returns the finished Lambda, or an error (including
// solvererr.NewTimeout/NewNotFound) if no witness turned up within
// MaxSize and timeout.
func Assemble(p Problem, catalog *eugeo.Catalog, timeout time.Duration) (result bvast.Expr, err error) {
	defer recoverInvariant(&result, &err)

	cur := p
	for _, strategy := range Pipeline {
		expr, stratErr, applied, next := runStrategy(strategy, cur, catalog, timeout)
		cur = next
		if !applied {
			continue
		}
		return expr, stratErr
	}
	panic(solvererr.NewInvariant("bvcardinal: no strategy in Pipeline applied to this problem"))
}

// runStrategy reports whether strategy applies to p, the (expr, err) pair
// if so, and the Problem to use for any later strategy in Pipeline (only
// TFoldProbe's miss case rewrites it, per spec.md §4.7's fallback rule).
func runStrategy(s Strategy, p Problem, catalog *eugeo.Catalog, timeout time.Duration) (bvast.Expr, error, bool, Problem) {
	switch s {
	case TFoldProbe:
		if !p.Ops.Has(bvast.OpTFold) {
			return nil, nil, false, p
		}
		body, ok := tryTFold(p, catalog)
		if !ok {
			// spec.md §4.7's fallback: remove TFOLD, add FOLD, run the
			// normal search via whichever strategy comes next.
			fallback := p
			fallback.Ops = fallback.Ops.With(bvast.OpFold)
			fallback.Ops &^= 1 << uint(bvast.OpTFold)
			return nil, nil, false, fallback
		}
		return bvast.NewLambda(bvast.NewTFold(body)), nil, true, p
	case PlainSearch:
		if len(p.RefinementArgs) > 0 {
			return nil, nil, false, p
		}
		body, err := Search(p.Args, p.Expected, p.MaxSize-1, p.Ops, SOLVE, timeout, p.Seed, catalog)
		if err != nil {
			return nil, err, true, p
		}
		return bvast.NewLambda(body), nil, true, p
	case RefinementSearch:
		if len(p.RefinementArgs) == 0 {
			return nil, nil, false, p
		}
		expr, err := assembleRefinement(p, catalog, timeout)
		return expr, err, true, p
	default:
		return nil, nil, false, p
	}
}

// tryTFold probes every precomputed fold body against the merged args
// directly via fold_eval, without ever running a search: a TFOLD problem
// is, by construction, exactly "(lambda (x) (fold x 0 body))" for some
// body, so the only unknown is which catalog body works.
func tryTFold(p Problem, catalog *eugeo.Catalog) (bvast.Expr, bool) {
	merged := append(append([]uint64(nil), p.Args...), p.RefinementArgs...)
	expected := append(append([]uint64(nil), p.Expected...), p.RefinementExp...)
	if len(merged) == 0 || catalog == nil {
		return nil, false
	}
	maxBodySize := p.MaxSize - 5
	if maxBodySize < 1 {
		return nil, false
	}
	if maxBodySize > eugeo.MaxBody {
		maxBodySize = eugeo.MaxBody
	}
	for size := 1; size <= maxBodySize; size++ {
		for _, body := range catalog.Bodies(size) {
			if matchesTFold(merged, expected, body) {
				return body, true
			}
		}
	}
	return nil, false
}

func matchesTFold(args, expected []uint64, body bvast.Expr) bool {
	for i, a := range args {
		if bveval.EvalFold(a, a, 0, body) != expected[i] {
			return false
		}
	}
	return true
}

// assembleRefinement solves a conditional program: a discriminator that
// tells the two argument sets apart, and a then/else body solved
// independently against each set.
func assembleRefinement(p Problem, catalog *eugeo.Catalog, timeout time.Duration) (bvast.Expr, error) {
	thenBody, err := Search(p.RefinementArgs, p.RefinementExp, p.MaxSize, p.Ops, SOLVE, timeout, p.Seed, catalog)
	if err != nil {
		return nil, err
	}
	elseBody, err := Search(p.Args, p.Expected, p.MaxSize, p.Ops, SOLVE, timeout, p.Seed+1, catalog)
	if err != nil {
		return nil, err
	}

	discriminatorOps := p.Ops &^ (1 << uint(bvast.OpFold))
	// cond must be nonzero on A (so If0 falls to elseBody, solved against A)
	// and zero on R (so If0 picks thenBody, solved against R).
	condArgs := append(append([]uint64(nil), p.Args...), p.RefinementArgs...)
	condExpected := make([]uint64, len(condArgs))
	for i := range p.Args {
		condExpected[i] = 1
	}
	for i := range p.RefinementArgs {
		condExpected[len(p.Args)+i] = 0
	}

	mode := CONDITION
	if p.Bonus {
		mode = BONUS_CONDITION
	}
	cond, err := Search(condArgs, condExpected, p.MaxSize, discriminatorOps, mode, timeout, p.Seed+2, catalog)
	if err != nil {
		return nil, err
	}
	if p.Bonus {
		cond = bvast.NewBinary(bvast.OpAnd, cond, bvast.NewConst(1))
	}
	return bvast.NewLambda(bvast.NewIf0(cond, thenBody, elseBody)), nil
}
