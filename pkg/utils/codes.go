package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ConfirmationCodeLength is the number of digits in a payment code.
const ConfirmationCodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateConfirmationCode returns a uniformly random 6-digit string.
// Leading zeros are kept, so the value must stay text.
func GenerateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %v", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IsConfirmationCode reports whether s has the shape of a payment code.
func IsConfirmationCode(s string) bool {
	if len(s) != ConfirmationCodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
