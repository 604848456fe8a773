package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// GenNumericCode generates a secure random numeric code of the given length
// as a zero-padded string.
func GenNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// GenOpaqueToken returns a high-entropy opaque token value: n random bytes
// hex encoded.
func GenOpaqueToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashSecret returns the hex SHA-256 digest used to store codes and refresh
// tokens at rest. The plaintext value is never persisted.
func HashSecret(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// SecretEqual compares a submitted secret against a stored hash in constant
// time.
func SecretEqual(storedHash, submitted string) bool {
	h := HashSecret(strings.TrimSpace(submitted))
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(h)) == 1
}
