package pricing

import (
	x402types "github.com/aona-network/x402/types"
	"github.com/shopspring/decimal"
)

// LamportsToDisplay converts a lamport amount to display currency given
// the price of one whole SOL in that currency.
func LamportsToDisplay(lamports uint64, solUnitPrice decimal.Decimal) decimal.Decimal {
	sol := decimal.NewFromUint64(lamports).Div(decimal.NewFromInt(LamportsPerSOL))
	return sol.Mul(solUnitPrice)
}

// TokenAmountToDisplay converts a raw token amount to its display value
// using the token's configured decimals.
func TokenAmountToDisplay(raw uint64, token x402types.PaymentToken) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(token.Decimals))
}
