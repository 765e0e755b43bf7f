package types

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// TransactionRecord is a read-only snapshot of a confirmed ledger
// transaction, decoupled from the RPC response format. The verifier only
// ever reads it; the ledger owns the data.
type TransactionRecord struct {
	Signature solana.Signature
	Slot      uint64
	BlockTime time.Time

	// AccountKeys is the ordered static account-key list of the
	// transaction message.
	AccountKeys []solana.PublicKey

	// PreBalances and PostBalances are lamport balances per account,
	// index-aligned with AccountKeys.
	PreBalances  []uint64
	PostBalances []uint64

	// TokenBalances holds the post-execution SPL token balances.
	TokenBalances []TokenBalanceEntry
}

// TokenBalanceEntry is one post-execution token balance, tagged with the
// owning account and the mint it belongs to.
type TokenBalanceEntry struct {
	AccountIndex uint16
	Owner        solana.PublicKey
	Mint         solana.PublicKey
	Amount       uint64
	Decimals     uint8
}

// BalanceDelta returns the lamport balance change of the account at index
// idx, or false when the record carries no balances for that index.
func (r *TransactionRecord) BalanceDelta(idx int) (int64, bool) {
	if idx < 0 || idx >= len(r.PreBalances) || idx >= len(r.PostBalances) {
		return 0, false
	}
	return int64(r.PostBalances[idx]) - int64(r.PreBalances[idx]), true
}

// AccountIndex returns the position of key in the static account-key
// list, or -1 when the account does not appear in the transaction.
func (r *TransactionRecord) AccountIndex(key solana.PublicKey) int {
	for i, k := range r.AccountKeys {
		if k.Equals(key) {
			return i
		}
	}
	return -1
}
