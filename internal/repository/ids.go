package repository

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// newID generates a short random identifier with a type prefix, e.g.
// "v-1a2b3c4d5e6f7a8b" for vendors. Collisions are guarded by primary key
// constraints, not by this function.
func newID(prefix string) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-unknown", prefix)
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b))
}
