package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

var errNonPositiveLength = errors.New("byte length must be positive")

// RandomToken returns a URL-safe token built from byteLength bytes of
// cryptographically secure randomness.
func RandomToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errNonPositiveLength
	}

	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
