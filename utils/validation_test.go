package utils

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress("AejHuZdNpDUiAiwuV2NKXz8K6eLzChYGpTcxptinWbar"))

	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"hex address", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
		{"invalid base58 characters", "AejHuZdNpDUiAiwuV2NKXz8K6eLzChYGpTcxptinW0OI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateAddress(tt.address))
		})
	}
}

func TestValidateSignature(t *testing.T) {
	sig := strings.Repeat("2x", 44)
	require.NoError(t, ValidateSignature(sig))

	assert.Error(t, ValidateSignature(""))
	assert.Error(t, ValidateSignature("tooshort"))
	assert.Error(t, ValidateSignature(sig+sig))
}

func TestValidateAmount(t *testing.T) {
	dec, err := ValidateAmount("1000000")
	require.NoError(t, err)
	assert.True(t, dec.Equal(decimal.NewFromInt(1_000_000)))

	dec, err = ValidateAmount("0")
	require.NoError(t, err)
	assert.True(t, dec.IsZero())

	_, err = ValidateAmount("")
	assert.Error(t, err)
	_, err = ValidateAmount("-5")
	assert.Error(t, err)
	_, err = ValidateAmount("1,5")
	assert.Error(t, err)
}
