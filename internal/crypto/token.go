package crypto

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken derives the key under which a refresh token is tracked, so the
// raw token never lands in redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
