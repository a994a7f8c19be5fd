package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a stable opaque identifier for a user ID, safe to log.
func HashUserKey(s string) string {
	return HashParts([]byte(s))
}

// HashParts hashes the parts in order, length-prefixing each so that
// ("ab","c") and ("a","bc") differ.
func HashParts(parts ...[]byte) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range lenBuf {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
