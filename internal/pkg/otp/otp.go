package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidLength is returned when the requested code length is not positive.
var ErrInvalidLength = errors.New("otp: code length must be positive")

// Generator produces one-time passcodes.
type Generator interface {
	// Generate returns a new code with exactly length characters.
	Generate(length int) (string, error)
}

// Numeric generates decimal one-time passcodes from crypto/rand.
//
// Codes are drawn uniformly from [0, 10^length) and left-padded with zeros,
// so every digit position carries full entropy.
type Numeric struct{}

// NewNumeric returns a numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a code with exactly length decimal digits.
func (*Numeric) Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
