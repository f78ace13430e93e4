package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key hashes the parts into a filesystem-safe cache key. Surrounding
// whitespace and trailing slashes are ignored.
func Key(parts ...string) string {
	norm := make([]string, 0, len(parts))
	for _, p := range parts {
		norm = append(norm, strings.TrimRight(strings.TrimSpace(p), "/"))
	}
	sum := sha256.Sum256([]byte(strings.Join(norm, "\x00")))
	return hex.EncodeToString(sum[:])
}
