package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// randomDigits generates a cryptographically secure numeric code of the
// given length. Leading zeros are allowed.
func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
