// Package fingerprint identifies manuscripts by content.
package fingerprint

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Sum returns the hex BLAKE3 digest of content.
func Sum(content string) string {
	h := blake3.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}

// Seed derives a shuffle seed from content. The same manuscript always
// yields the same seed; any edit yields an unrelated one.
func Seed(content string) uint64 {
	h := blake3.Sum256([]byte(content))
	return binary.LittleEndian.Uint64(h[:8])
}
