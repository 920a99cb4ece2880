package bvcache

import (
	"path/filepath"
	"testing"

	"bvsynth/internal/bvcluster"
)

func TestClaimIsExclusive(t *testing.T) {
	dir := t.TempDir()
	var fp bvcluster.Fingerprint
	fp[0] = 42
	checksum := Checksum(fp)
	path := PathFor(dir, checksum)

	first, err := Claim(path)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !first {
		t.Fatalf("expected first claim to succeed")
	}

	second, err := Claim(path)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if second {
		t.Fatalf("expected second claim on the same path to fail")
	}
}

func TestPopulateAndRead(t *testing.T) {
	dir := t.TempDir()
	var fp bvcluster.Fingerprint
	checksum := Checksum(fp)
	path := PathFor(dir, checksum)

	if _, err := Claim(path); err != nil {
		t.Fatalf("claim: %v", err)
	}
	want := []string{"(lambda (x) x)", "(lambda (x) (not (not x)))"}
	if err := Populate(path, want); err != nil {
		t.Fatalf("populate: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestReadUnpopulatedClaimReturnsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aa", "0000000000000000.sxp")
	if _, err := Claim(path); err != nil {
		t.Fatalf("claim: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unpopulated claim, got %v", got)
	}
}
