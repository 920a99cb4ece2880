package bvcardinal

import "encoding/binary"

// fingerprintKey packs a has-fold flag and an output vector into a
// comparable map key. Output vectors vary in length per request (one
// entry per example), so a fixed-size array (as bvcluster uses for its
// universal 256-probe key) doesn't fit here; each search run instead
// fingerprints candidates against its own request's args.
func fingerprintKey(hasFold bool, values []uint64) string {
	buf := make([]byte, 1+8*len(values))
	if hasFold {
		buf[0] = 1
	}
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[1+i*8:], v)
	}
	return string(buf)
}
