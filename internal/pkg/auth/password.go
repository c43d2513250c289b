package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor of stored hashes
const BcryptCost = 12

// PasswordHasher stores passwords either as bcrypt hashes or, when hashing is
// disabled, as given. Verification accepts both forms so plaintext seed
// accounts keep working after hashing is turned on.
type PasswordHasher struct {
	hash bool
	cost int
}

func NewPasswordHasher(hash bool) *PasswordHasher {
	return &PasswordHasher{hash: hash, cost: BcryptCost}
}

// Hash returns the value to persist for password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if !h.hash {
		return password, nil
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a stored value against a candidate password
func (h *PasswordHasher) Verify(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
