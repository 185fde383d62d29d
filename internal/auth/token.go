package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionExpiry is the fixed lifetime of a session from issuance.
const SessionExpiry = 24 * time.Hour

const tokenBytes = 32

// GenerateToken returns a cryptographically random opaque session token.
// The token carries no embedded claims; it is only a lookup key into the
// session store.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
