// Package pricing computes what a data reading costs and how a received
// payment splits between the node operator and the protocol. Everything
// here is pure; nothing moves funds.
package pricing

import (
	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of base units in one whole SOL.
const LamportsPerSOL = 1_000_000_000

// BasePriceLamports is the price of one reading before the reputation
// premium: 0.001 SOL.
const BasePriceLamports = 1_000_000

// ProtocolFeeRate is the protocol's share of every payment. Changing it
// changes financial behavior.
var ProtocolFeeRate = decimal.NewFromFloat(0.10)

// Reputation tier multipliers, first match from the top wins. Scores are
// conventionally in [0,100] but are not range-checked; an out-of-domain
// score lands in the nearest tier.
var tiers = []struct {
	minScore   float64
	multiplier decimal.Decimal
}{
	{75, decimal.NewFromFloat(1.5)},
	{50, decimal.NewFromFloat(1.2)},
	{25, decimal.NewFromFloat(1.1)},
}

// CalculatePrice returns the price in lamports for a reading served by a
// node with the given reputation score. Higher reputation prices at a
// premium.
func CalculatePrice(reputationScore float64) uint64 {
	multiplier := decimal.NewFromInt(1)
	for _, tier := range tiers {
		if reputationScore >= tier.minScore {
			multiplier = tier.multiplier
			break
		}
	}

	price := decimal.NewFromInt(BasePriceLamports).Mul(multiplier).Floor()
	return uint64(price.IntPart())
}

// SplitPayment divides a received amount into the node operator's share
// and the protocol fee. The fee is floored, so the node share absorbs the
// rounding remainder and the two always sum exactly to amount. The split
// is advisory; transfer enforcement is a ledger-side responsibility.
func SplitPayment(amount uint64) (nodeShare, protocolFee uint64) {
	fee := decimal.NewFromUint64(amount).Mul(ProtocolFeeRate).Floor()
	protocolFee = uint64(fee.IntPart())
	nodeShare = amount - protocolFee
	return nodeShare, protocolFee
}
