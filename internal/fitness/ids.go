package fitness

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// NewMemberID returns a short identifier of the form "M123".
func NewMemberID() string {
	return "M" + uuidDigits(3)
}

// NewTransactionID returns a short identifier of the form "T1234".
func NewTransactionID() string {
	return "T" + uuidDigits(4)
}

// uuidDigits takes the leading n decimal digits of a random UUID's integer value.
func uuidDigits(n int) string {
	id := uuid.New()
	digits := new(big.Int).SetBytes(id[:]).String()
	if len(digits) < n {
		digits = strings.Repeat("0", n-len(digits)) + digits
	}
	return digits[:n]
}
