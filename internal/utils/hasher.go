package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// CookieKey derives a base64 AES-256 key from a free-form secret, in the
// format fiber's encryptcookie middleware expects.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
