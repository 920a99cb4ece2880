// Package bvcache persists cluster output to disk so repeated requests
// against the same fingerprint can skip re-deriving it. Entries live at
// cache_dir/xx/yyyyyyyyyyyyyyyy.sxp, where xx is the low byte of a CRC-64
// checksum of the fingerprint and the hex string is the full checksum.
// Claiming a slot is a plain exclusive file creation: the first caller to
// create the file owns populating it, every later caller sees it already
// exists and either reads it (if populated) or moves on (if still being
// written by the claimant).
//
// SPDX-License-Identifier: Apache-2.0
package bvcache

import (
	"encoding/binary"
	"fmt"
	"hash/crc64"
	"os"
	"path/filepath"
	"strings"

	"bvsynth/internal/bvcluster"
)

var crcTable = crc64.MakeTable(crc64.ISO)

// Checksum computes the CRC-64 of a cluster fingerprint.
func Checksum(fp bvcluster.Fingerprint) uint64 {
	buf := make([]byte, bvcluster.ProbeCount*8)
	for i, v := range fp {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	return crc64.Checksum(buf, crcTable)
}

// PathFor returns the cache file path for a fingerprint checksum under
// cacheDir.
func PathFor(cacheDir string, checksum uint64) string {
	return filepath.Join(cacheDir, fmt.Sprintf("%02x", checksum&0xFF), fmt.Sprintf("%016x.sxp", checksum))
}

// Claim attempts to exclusively create path. true means this call created
// the (empty) file and the caller is responsible for populating it with
// Populate; false means the file already exists, created by an earlier
// claimant (possibly still being populated).
func Claim(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}

// Populate writes one program per line to an already-claimed path.
func Populate(path string, programs []string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, p := range programs {
		if _, err := fmt.Fprintln(f, p); err != nil {
			return err
		}
	}
	return nil
}

// Read loads the cached programs at path. A missing or still-empty file
// (an unpopulated claim) both return (nil, nil).
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}
