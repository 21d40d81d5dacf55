package security

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenSize = 32

// MakeOneTimeToken generates an opaque token for verification and
// password-reset links. The value is only ever compared against the
// single column it was stored in, then cleared.
func MakeOneTimeToken() (string, error) {
	b := make([]byte, tokenSize)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
