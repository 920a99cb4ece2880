package bvprotocol

import "bvsynth/internal/bvcardinal"

// ToProblem adapts a parsed request block into the shape bvcardinal.Assemble
// expects.
func (r *Request) ToProblem() bvcardinal.Problem {
	return bvcardinal.Problem{
		Args:           r.Args,
		Expected:       r.Expected,
		RefinementArgs: r.RefinementArgs,
		RefinementExp:  r.RefinementExp,
		MaxSize:        r.ExprSize,
		Ops:            r.Ops,
		Seed:           r.Seed,
		Bonus:          r.Bonus,
	}
}
