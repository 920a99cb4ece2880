// Package bvrepl is an interactive shell for exercising the enumerator,
// simplifier, and cluster index directly, without going through the line
// protocol: list candidate programs of a size, simplify one expression, or
// cluster a whole size's candidates by evaluated behavior. The cluster
// command consults and populates an on-disk cache (internal/bvcache) of
// each fingerprint group's canonical programs, when one is configured.
//
// SPDX-License-Identifier: Apache-2.0
package bvrepl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bvcache"
	"bvsynth/internal/bvcluster"
	"bvsynth/internal/bvenum"
	"bvsynth/internal/bvsimplify"
)

const prompt = "bvsynth> "

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

// Start runs the read-eval-print loop against in, writing to out, until
// in is exhausted or a "quit" command is read. cacheDir, if non-empty, is
// the on-disk cluster cache the "cluster" command consults and populates
// (see internal/bvcache); an empty cacheDir disables caching entirely.
func Start(in io.Reader, out io.Writer, cacheDir string) {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for {
		fmt.Fprint(w, prompt)
		w.Flush()
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "list":
			runList(w, fields[1:])
		case "simplify":
			runSimplify(w, strings.TrimSpace(strings.TrimPrefix(line, "simplify")))
		case "cluster":
			runCluster(w, fields[1:], cacheDir)
		case "help":
			printHelp(w)
		default:
			fmt.Fprintf(w, "unknown command %q (try \"help\")\n", fields[0])
		}
		w.Flush()
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  list <size> <op,op,...>        enumerate programs of the given BV-size")
	fmt.Fprintln(w, "  simplify <expr>                parse and simplify a surface-syntax expression")
	fmt.Fprintln(w, "  cluster <size> <op,op,...>      group a size's candidates by evaluated behavior")
	fmt.Fprintln(w, "  quit")
}

func parseOpSet(csv string) (bvast.OpSet, error) {
	var ops bvast.OpSet
	for _, tok := range strings.Split(csv, ",") {
		name := strings.TrimSpace(tok)
		if name == "" {
			continue
		}
		op, ok := opNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown operator %q", name)
		}
		ops = ops.With(op)
	}
	return ops, nil
}

func runList(w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "usage: list <size> <op,op,...>")
		return
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "bad size: %v\n", err)
		return
	}
	ops, err := parseOpSet(args[1])
	if err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	exprs := bvenum.ListExpr(size, ops, bvenum.DedupPerStep)
	for _, e := range exprs {
		fmt.Fprintln(w, e.String())
	}
	fmt.Fprintf(w, "(%d programs)\n", len(exprs))
}

func runSimplify(w io.Writer, source string) {
	if source == "" {
		fmt.Fprintln(w, "usage: simplify <expr>")
		return
	}
	e, err := bvast.Parse("repl", source)
	if err != nil {
		fmt.Fprintf(w, "parse error: %v\n", err)
		return
	}
	simplified := bvsimplify.Simplify(e)
	fmt.Fprintf(w, "%s\n", simplified.String())
}

func runCluster(w io.Writer, args []string, cacheDir string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "usage: cluster <size> <op,op,...>")
		return
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "bad size: %v\n", err)
		return
	}
	ops, err := parseOpSet(args[1])
	if err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	exprs := bvenum.ListExpr(size, ops, bvenum.DedupPerStep)
	key := bvcluster.BuildKey()
	groups := bvcluster.Cluster(key, exprs)

	nameWidth := 0
	for _, members := range groups {
		for _, e := range members {
			if width := runewidth.StringWidth(e.String()); width > nameWidth {
				nameWidth = width
			}
		}
	}

	i := 0
	for fp, members := range groups {
		cached := cacheCluster(cacheDir, fp, members)
		fmt.Fprintf(w, "cluster %d:", i)
		if cached {
			fmt.Fprint(w, " (cached)")
		}
		fmt.Fprintln(w)
		for _, e := range members {
			s := e.String()
			pad := nameWidth - runewidth.StringWidth(s)
			fmt.Fprintf(w, "  %s%s\n", s, strings.Repeat(" ", pad))
		}
		i++
	}
	fmt.Fprintf(w, "(%d candidates in %d clusters)\n", len(exprs), len(groups))
}

// cacheCluster consults and populates the on-disk cluster cache for one
// fingerprint group: the first caller to see a given fingerprint claims
// its cache file and writes the group's canonical programs there; later
// callers (including future processes, since the cache is on disk) find
// the file already claimed and skip writing it again. It reports whether
// the entry was already present on disk before this call. A blank
// cacheDir disables caching entirely.
func cacheCluster(cacheDir string, fp bvcluster.Fingerprint, members []bvast.Expr) bool {
	if cacheDir == "" {
		return false
	}
	path := bvcache.PathFor(cacheDir, bvcache.Checksum(fp))
	claimed, err := bvcache.Claim(path)
	if err != nil {
		return false
	}
	if !claimed {
		return true
	}
	programs := make([]string, len(members))
	for i, e := range members {
		programs[i] = e.String()
	}
	if err := bvcache.Populate(path, programs); err != nil {
		return false
	}
	return false
}
