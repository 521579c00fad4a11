package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultBytes yields 256 bits of entropy, rendered as 64 hex characters.
const DefaultBytes = 32

// Generate returns a fresh verification token drawn from the system
// entropy source and rendered as lowercase hex. The byte length doubles
// in the encoded form.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultBytes
	}

	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("token: read entropy: %w", err)
	}

	return hex.EncodeToString(buffer), nil
}

// New returns a token of the default length.
func New() (string, error) {
	return Generate(DefaultBytes)
}
