package clients

import (
	"context"

	x402types "github.com/aona-network/x402/types"
	"github.com/gagliardetto/solana-go"
)

// Client is the single capability the verifier consumes from a ledger:
// fetch a finalized transaction record by its signature.
type Client interface {
	FetchTransaction(ctx context.Context, signature solana.Signature) (*x402types.TransactionRecord, error)
	Network() x402types.Network
	Close()
}
