package auth

import (
	"crypto/sha512"
	"encoding/hex"
)

// secretSalt is deliberately fixed: digest equality is the whole authentication
// contract, so every registration and login must hash the same way.
const secretSalt = "birdwatcher"

// HashSecret derives the hex encoded SHA-512 digest of a secret joined with the
// fixed salt. Deterministic: equal secrets always yield equal digests.
func HashSecret(secret string) string {
	var digest = sha512.Sum512([]byte(secret + "-" + secretSalt))
	return hex.EncodeToString(digest[:])
}
