package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomToken returns a 64-character hex token for one-time
// verification and reset links.
func GenerateRandomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
