package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword : Hash Password
func HashPassword(password string) string {
	bytes, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes)
}

// VerifySecret checks a candidate secret against a stored bcrypt hash.
// Both the login password and the transfer PIN are verified through this
// one primitive: they share the same stored credential hash.
func VerifySecret(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
