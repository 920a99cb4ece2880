package bvrepl

import (
	"bytes"
	"strings"
	"testing"
)

func runInput(t *testing.T, input string) string {
	t.Helper()
	return runInputWithCache(t, input, "")
}

func runInputWithCache(t *testing.T, input, cacheDir string) string {
	t.Helper()
	var out bytes.Buffer
	Start(strings.NewReader(input), &out, cacheDir)
	return out.String()
}

func TestSimplifyCommandReducesExpression(t *testing.T) {
	out := runInput(t, "simplify (lambda (x) (xor x x))\nquit\n")
	if !strings.Contains(out, "0") {
		t.Fatalf("expected the simplified output to contain 0, got %q", out)
	}
}

func TestSimplifyCommandReportsParseErrors(t *testing.T) {
	out := runInput(t, "simplify (lambda (x) (xor x))\nquit\n")
	if !strings.Contains(out, "parse error") {
		t.Fatalf("expected a parse error message, got %q", out)
	}
}

func TestListCommandEnumeratesBySize(t *testing.T) {
	out := runInput(t, "list 3 not\nquit\n")
	if !strings.Contains(out, "(lambda (x) (not x))") {
		t.Fatalf("expected (not x) among size-3 programs, got %q", out)
	}
	if !strings.Contains(out, "programs)") {
		t.Fatalf("expected a program count summary, got %q", out)
	}
}

func TestListCommandRejectsUnknownOperator(t *testing.T) {
	out := runInput(t, "list 3 bogus\nquit\n")
	if !strings.Contains(out, "unknown operator") {
		t.Fatalf("expected an unknown-operator message, got %q", out)
	}
}

func TestClusterCommandGroupsCandidates(t *testing.T) {
	out := runInput(t, "cluster 3 not\nquit\n")
	if !strings.Contains(out, "cluster 0:") {
		t.Fatalf("expected at least one cluster heading, got %q", out)
	}
	if !strings.Contains(out, "candidates in") {
		t.Fatalf("expected a summary line, got %q", out)
	}
}

func TestUnknownCommandIsReported(t *testing.T) {
	out := runInput(t, "frobnicate\nquit\n")
	if !strings.Contains(out, "unknown command") {
		t.Fatalf("expected an unknown-command message, got %q", out)
	}
}

func TestHelpListsCommands(t *testing.T) {
	out := runInput(t, "help\nquit\n")
	if !strings.Contains(out, "simplify <expr>") {
		t.Fatalf("expected help text to mention simplify, got %q", out)
	}
}

func TestClusterCommandPopulatesThenHitsDiskCache(t *testing.T) {
	dir := t.TempDir()
	first := runInputWithCache(t, "cluster 3 not\nquit\n", dir)
	if strings.Contains(first, "(cached)") {
		t.Fatalf("expected the first run to populate the cache, not hit it: %q", first)
	}
	second := runInputWithCache(t, "cluster 3 not\nquit\n", dir)
	if !strings.Contains(second, "(cached)") {
		t.Fatalf("expected the second run to report a cache hit, got %q", second)
	}
}
