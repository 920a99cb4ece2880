// Package bvprotocol implements the line protocol the solver loop speaks
// over stdin/stdout: repeated request blocks (a request1 marker line
// followed by nine data lines), one response line per request.
//
// SPDX-License-Identifier: Apache-2.0
package bvprotocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bvsynth/internal/bvast"
	"bvsynth/internal/solvererr"
)

// Marker is the literal line introducing a request block.
const Marker = "request1"

// Request is one parsed request block.
type Request struct {
	IsContinuation bool
	TimeoutSec     int
	ExprSize       int
	Ops            bvast.OpSet
	Bonus          bool
	HasTFold       bool
	Args           []uint64
	Expected       []uint64
	RefinementArgs []uint64
	RefinementExp  []uint64
	Seed           uint64
}

var opNames = map[string]bvast.OpKind{
	"not":   bvast.OpNot,
	"shl1":  bvast.OpShl1,
	"shr1":  bvast.OpShr1,
	"shr4":  bvast.OpShr4,
	"shr16": bvast.OpShr16,
	"and":   bvast.OpAnd,
	"or":    bvast.OpOr,
	"xor":   bvast.OpXor,
	"plus":  bvast.OpPlus,
	"if0":   bvast.OpIf0,
	"fold":  bvast.OpFold,
	"tfold": bvast.OpTFold,
}

// Reader reads successive request blocks from an underlying stream.
type Reader struct {
	scan *bufio.Scanner
}

// NewReader wraps r for line-oriented request parsing.
func NewReader(r io.Reader) *Reader {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scan: scan}
}

// Next reads the next request block, or returns io.EOF once the stream is
// exhausted before a marker line is seen.
func (r *Reader) Next() (*Request, error) {
	line, ok := r.readLine()
	if !ok {
		return nil, io.EOF
	}
	if strings.TrimSpace(line) != Marker {
		return nil, solvererr.NewParseError(fmt.Sprintf("expected %q marker, got %q", Marker, line), nil)
	}

	fields := make([]string, 9)
	for i := range fields {
		line, ok := r.readLine()
		if !ok {
			return nil, solvererr.NewParseError("request block truncated", io.ErrUnexpectedEOF)
		}
		fields[i] = line
	}
	return parseRequest(fields)
}

func (r *Reader) readLine() (string, bool) {
	if !r.scan.Scan() {
		return "", false
	}
	return r.scan.Text(), true
}

func parseRequest(fields []string) (*Request, error) {
	req := &Request{}

	req.IsContinuation = strings.TrimSpace(fields[0]) != "0"

	timeout, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, solvererr.NewParseError("bad timeout_sec", err)
	}
	req.TimeoutSec = timeout

	size, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, solvererr.NewParseError("bad expr_size", err)
	}
	req.ExprSize = size

	ops, bonus, hasTFold, err := parseOps(fields[3])
	if err != nil {
		return nil, err
	}
	req.Ops, req.Bonus, req.HasTFold = ops, bonus, hasTFold

	args, err := parseU64List(fields[4])
	if err != nil {
		return nil, solvererr.NewParseError("bad args", err)
	}
	req.Args = args

	expected, err := parseU64List(fields[5])
	if err != nil {
		return nil, solvererr.NewParseError("bad expecteds", err)
	}
	req.Expected = expected
	if len(req.Expected) != len(req.Args) {
		return nil, solvererr.NewParseError("args/expecteds length mismatch", nil)
	}

	refArgs, err := parseU64List(fields[6])
	if err != nil {
		return nil, solvererr.NewParseError("bad refinement_args", err)
	}
	req.RefinementArgs = refArgs

	refExp, err := parseU64List(fields[7])
	if err != nil {
		return nil, solvererr.NewParseError("bad refinement_expecteds", err)
	}
	req.RefinementExp = refExp
	if len(req.RefinementExp) != len(req.RefinementArgs) {
		return nil, solvererr.NewParseError("refinement_args/refinement_expecteds length mismatch", nil)
	}

	seed, err := strconv.ParseUint(strings.TrimSpace(fields[8]), 0, 64)
	if err != nil {
		return nil, solvererr.NewParseError("bad seed", err)
	}
	req.Seed = seed

	return req, nil
}

// parseOps parses the comma-separated operators field, tolerating
// leading/trailing whitespace and a trailing comma the way the original
// NekoSamaDuce entry's operator-set parser does.
func parseOps(field string) (ops bvast.OpSet, bonus, hasTFold bool, err error) {
	for _, tok := range strings.Split(field, ",") {
		name := strings.TrimSpace(tok)
		if name == "" {
			continue
		}
		if name == "bonus" {
			bonus = true
			continue
		}
		op, ok := opNames[name]
		if !ok {
			return 0, false, false, solvererr.NewParseError(fmt.Sprintf("unknown operator %q", name), nil)
		}
		if op == bvast.OpTFold {
			hasTFold = true
		}
		ops = ops.With(op)
	}
	return ops, bonus, hasTFold, nil
}

// parseU64List parses a comma-separated list of decimal or 0x-prefixed
// u64 values, tolerating an empty field (zero values) and a trailing
// comma.
func parseU64List(field string) ([]uint64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	var out []uint64
	for _, tok := range strings.Split(field, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseUint(tok, 0, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
