package utils

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var base58Pattern = regexp.MustCompile("^[1-9A-HJ-NP-Za-km-z]+$")

// ValidateAddress checks that a string has the shape of a Solana account
// identifier: base58, 32 to 44 characters.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if len(address) < 32 || len(address) > 44 {
		return fmt.Errorf("address has invalid length")
	}
	if !base58Pattern.MatchString(address) {
		return fmt.Errorf("address must be valid base58")
	}
	return nil
}

// ValidateSignature checks that a string has the shape of a Solana
// transaction signature: base58, typically 87 or 88 characters.
func ValidateSignature(signature string) error {
	if signature == "" {
		return fmt.Errorf("transaction signature cannot be empty")
	}
	if len(signature) < 80 || len(signature) > 90 {
		return fmt.Errorf("transaction signature has invalid length")
	}
	if !base58Pattern.MatchString(signature) {
		return fmt.Errorf("transaction signature must be valid base58")
	}
	return nil
}

// ValidateAmount checks that an amount string is a non-negative decimal.
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}
