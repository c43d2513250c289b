package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const sessionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SessionCodeLength is the length of a mentorship session id
const SessionCodeLength = 8

// NewSessionCode returns a random 8 character code from A-Z0-9
func NewSessionCode() string {
	buf := make([]byte, SessionCodeLength)
	max := big.NewInt(int64(len(sessionCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand failed: %v", err))
		}
		buf[i] = sessionCodeAlphabet[n.Int64()]
	}
	return string(buf)
}

// NewRoleID returns prefix followed by five random digits, e.g. S04217
func NewRoleID(prefix string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return fmt.Sprintf("%s%05d", prefix, n.Int64())
}

// FormatUSD renders an amount as $12.50
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
