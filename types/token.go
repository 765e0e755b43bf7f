package types

import (
	"github.com/gagliardetto/solana-go"
)

// TokenStandard distinguishes the two transfer shapes the verifier knows
// how to check.
type TokenStandard string

const (
	TokenStandardNative TokenStandard = "native"
	TokenStandardSPL    TokenStandard = "spl"
)

// Accept methods advertised in a payment request. Derived from the token
// standard, never set directly.
const (
	MethodNativeTransfer = "native-transfer"
	MethodTokenTransfer  = "token-transfer"
)

// PaymentToken describes one entry of the closed token set. Decimals and
// symbol are fixed per entry and never inferred from a transaction. The
// mint is nil for the native token; an SPL entry with a nil mint is a
// configuration defect and is rejected at verification time.
type PaymentToken struct {
	Standard TokenStandard     `json:"standard"`
	Symbol   string            `json:"symbol"`
	Decimals uint8             `json:"decimals"`
	Mint     *solana.PublicKey `json:"mint,omitempty"`
}

// USDCDevnetMint is the devnet USDC mint the network settles SPL payments
// against.
var USDCDevnetMint = solana.MustPublicKeyFromBase58("4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU")

var (
	// TokenSOL is the native settlement asset, 9 decimals (lamports).
	TokenSOL = PaymentToken{
		Standard: TokenStandardNative,
		Symbol:   "SOL",
		Decimals: 9,
	}

	// TokenUSDC is the one fungible token currently accepted.
	TokenUSDC = PaymentToken{
		Standard: TokenStandardSPL,
		Symbol:   "USDC",
		Decimals: 6,
		Mint:     &USDCDevnetMint,
	}
)

// paymentTokens is the static registry. Adding a token means extending
// this map in source, not registering at runtime.
var paymentTokens = map[string]PaymentToken{
	TokenSOL.Symbol:  TokenSOL,
	TokenUSDC.Symbol: TokenUSDC,
}

// TokenFromSymbol looks a token up in the static registry.
func TokenFromSymbol(symbol string) (PaymentToken, bool) {
	t, ok := paymentTokens[symbol]
	return t, ok
}

// SupportedTokens returns the symbols of every registered token.
func SupportedTokens() []string {
	symbols := make([]string, 0, len(paymentTokens))
	for s := range paymentTokens {
		symbols = append(symbols, s)
	}
	return symbols
}

// IsNative reports whether t is the chain's native asset.
func (t PaymentToken) IsNative() bool {
	return t.Standard == TokenStandardNative
}

// AcceptMethod derives the transfer method a payer must use for this
// token. Because it is derived, it can never disagree with the token.
func (t PaymentToken) AcceptMethod() string {
	if t.IsNative() {
		return MethodNativeTransfer
	}
	return MethodTokenTransfer
}
