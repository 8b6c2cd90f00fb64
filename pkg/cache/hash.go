package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 content hash of data as a 64-character hex
// string. Snapshots, graph documents, and rendered artifacts are all
// addressed by this hash, so two byte-identical payloads always land on
// the same cache entry regardless of backend.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key from a prefix and a set of
// discriminating parts. The parts are JSON-encoded before hashing so that
// option structs contribute their field values, not their Go identity.
func hashKey(prefix string, parts ...any) string {
	enc, _ := json.Marshal(parts)
	sum := sha256.Sum256(enc)
	return prefix + ":" + hex.EncodeToString(sum[:])
}
