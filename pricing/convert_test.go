package pricing

import (
	"math"
	"testing"

	x402types "github.com/aona-network/x402/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLamportsToDisplay(t *testing.T) {
	price := decimal.NewFromInt(100)

	got := LamportsToDisplay(1_500_000_000, price)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "got %s", got)

	got = LamportsToDisplay(0, price)
	assert.True(t, got.IsZero())

	// 0.001 SOL at $100/SOL is ten cents.
	got = LamportsToDisplay(BasePriceLamports, price)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.1)), "got %s", got)

	// Amounts above the int64 range convert exactly.
	got = LamportsToDisplay(math.MaxUint64, decimal.NewFromInt(1))
	assert.True(t, got.Equal(decimal.RequireFromString("18446744073.709551615")), "got %s", got)
}

func TestTokenAmountToDisplay(t *testing.T) {
	got := TokenAmountToDisplay(1_500_000, x402types.TokenUSDC)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.5)), "got %s", got)

	got = TokenAmountToDisplay(1, x402types.TokenUSDC)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.000001)), "got %s", got)

	got = TokenAmountToDisplay(2_000_000_000, x402types.TokenSOL)
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)
}
