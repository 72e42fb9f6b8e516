package passwordreset

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// codeBytes sizes the random code: 32 bytes of entropy, 64 hex characters on
// the wire. An opaque token this wide makes online guessing hopeless even
// without the rate limiter in front of the redemption endpoint.
const codeBytes = 32

// GenerateCode produces a cryptographically random reset code.
func GenerateCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
