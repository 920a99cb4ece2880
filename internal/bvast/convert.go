package bvast

import (
	"fmt"
	"strconv"

	"bvsynth/grammar"
)

var unaryOps = map[string]OpKind{
	"not":   OpNot,
	"shl1":  OpShl1,
	"shr1":  OpShr1,
	"shr4":  OpShr4,
	"shr16": OpShr16,
}

var binaryOps = map[string]OpKind{
	"and":  OpAnd,
	"or":   OpOr,
	"xor":  OpXor,
	"plus": OpPlus,
}

// FromGrammar converts a parsed grammar.Program into the synthesis
// engine's own Expr tree.
func FromGrammar(p *grammar.Program) (Expr, error) {
	body, err := exprFromGrammar(p.Body)
	if err != nil {
		return nil, err
	}
	return NewLambda(body), nil
}

func exprFromGrammar(e *grammar.Expr) (Expr, error) {
	switch {
	case e.Const != nil:
		v, err := strconv.ParseUint(*e.Const, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad constant %q: %w", *e.Const, err)
		}
		return NewConst(v), nil

	case e.Var != nil:
		switch *e.Var {
		case "x":
			return NewIdent(X), nil
		case "y":
			return NewIdent(Y), nil
		case "z":
			return NewIdent(Z), nil
		default:
			return nil, fmt.Errorf("unknown identifier %q", *e.Var)
		}

	case e.Unary != nil:
		op, ok := unaryOps[e.Unary.Op]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", e.Unary.Op)
		}
		arg, err := exprFromGrammar(e.Unary.Arg)
		if err != nil {
			return nil, err
		}
		return NewUnary(op, arg), nil

	case e.Binary != nil:
		op, ok := binaryOps[e.Binary.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", e.Binary.Op)
		}
		left, err := exprFromGrammar(e.Binary.Left)
		if err != nil {
			return nil, err
		}
		right, err := exprFromGrammar(e.Binary.Right)
		if err != nil {
			return nil, err
		}
		return NewBinary(op, left, right), nil

	case e.If0 != nil:
		cond, err := exprFromGrammar(e.If0.Cond)
		if err != nil {
			return nil, err
		}
		then_, err := exprFromGrammar(e.If0.Then)
		if err != nil {
			return nil, err
		}
		else_, err := exprFromGrammar(e.If0.Else)
		if err != nil {
			return nil, err
		}
		return NewIf0(cond, then_, else_), nil

	case e.Fold != nil:
		value, err := exprFromGrammar(e.Fold.Value)
		if err != nil {
			return nil, err
		}
		init, err := exprFromGrammar(e.Fold.Init)
		if err != nil {
			return nil, err
		}
		body, err := exprFromGrammar(e.Fold.Body)
		if err != nil {
			return nil, err
		}
		return NewFold(value, init, body), nil

	default:
		return nil, fmt.Errorf("empty expression node")
	}
}

// Parse parses BV surface syntax directly into an Expr tree.
func Parse(sourceName, source string) (Expr, error) {
	program, err := grammar.ParseString(sourceName, source)
	if err != nil {
		return nil, err
	}
	return FromGrammar(program)
}
