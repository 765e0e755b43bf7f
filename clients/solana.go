// Package clients wraps network access to the settlement ledger. The
// verifier talks to it through the Client interface only.
package clients

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	x402types "github.com/aona-network/x402/types"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCEnvVar overrides the devnet RPC endpoint. The mainnet endpoint is
// fixed and ignores it.
const RPCEnvVar = "AONA_SOLANA_RPC_URL"

// SolanaClient binds a Solana cluster endpoint and exposes transaction
// lookup at the confirmed commitment level. It imposes no timeout of its
// own; cancellation belongs to the caller's context.
type SolanaClient struct {
	network x402types.Network
	rpcURL  string
	client  *rpc.Client
}

var _ Client = (*SolanaClient)(nil)

// NewSolanaClient creates a client for the given cluster. rpcURL is an
// optional endpoint override, honored only for the test cluster.
func NewSolanaClient(network x402types.Network, rpcURL string) (*SolanaClient, error) {
	endpoint, err := resolveEndpoint(network, rpcURL)
	if err != nil {
		return nil, err
	}

	return &SolanaClient{
		network: network,
		rpcURL:  endpoint,
		client:  rpc.New(endpoint),
	}, nil
}

// resolveEndpoint picks the RPC endpoint for a cluster. Mainnet is fixed;
// devnet takes the explicit override first, then the environment, then
// the public endpoint.
func resolveEndpoint(network x402types.Network, override string) (string, error) {
	switch network {
	case x402types.NetworkSolanaMainnet:
		return rpc.MainNetBeta_RPC, nil
	case x402types.NetworkSolanaDevnet:
		if override != "" {
			return override, nil
		}
		if env := os.Getenv(RPCEnvVar); env != "" {
			return env, nil
		}
		return rpc.DevNet_RPC, nil
	default:
		return "", &x402types.X402Error{
			Code:    x402types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported network: %s", network),
		}
	}
}

// FetchTransaction retrieves the transaction for signature at the
// confirmed commitment level, permitting the newest supported message
// version, and maps it into a TransactionRecord snapshot. A signature
// unknown to the cluster yields types.ErrTxNotFound.
func (c *SolanaClient) FetchTransaction(
	ctx context.Context,
	signature solana.Signature,
) (*x402types.TransactionRecord, error) {
	out, err := c.client.GetTransaction(ctx, signature, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &rpc.MaxSupportedTransactionVersion0,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, x402types.ErrTxNotFound
		}
		return nil, fmt.Errorf("fetch transaction %s: %w", signature, err)
	}
	if out == nil {
		return nil, x402types.ErrTxNotFound
	}

	return recordFromResult(signature, out)
}

// recordFromResult flattens the RPC result into the domain snapshot the
// verifier reads.
func recordFromResult(
	signature solana.Signature,
	out *rpc.GetTransactionResult,
) (*x402types.TransactionRecord, error) {
	record := &x402types.TransactionRecord{
		Signature: signature,
		Slot:      out.Slot,
	}

	if out.BlockTime != nil {
		record.BlockTime = out.BlockTime.Time()
	}

	if out.Transaction != nil {
		tx, err := out.Transaction.GetTransaction()
		if err != nil {
			return nil, &x402types.X402Error{
				Code:    x402types.ErrMalformedTransaction,
				Message: fmt.Sprintf("decode transaction %s: %v", signature, err),
			}
		}
		record.AccountKeys = tx.Message.AccountKeys
	}

	if out.Meta != nil {
		record.PreBalances = out.Meta.PreBalances
		record.PostBalances = out.Meta.PostBalances
		record.TokenBalances = tokenBalances(out.Meta.PostTokenBalances)
	}

	return record, nil
}

// tokenBalances maps post-execution token balances, dropping entries the
// RPC returned without an owner or with an unparseable raw amount.
func tokenBalances(balances []rpc.TokenBalance) []x402types.TokenBalanceEntry {
	var entries []x402types.TokenBalanceEntry
	for _, tb := range balances {
		if tb.Owner == nil || tb.UiTokenAmount == nil {
			continue
		}
		amount, err := strconv.ParseUint(tb.UiTokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, x402types.TokenBalanceEntry{
			AccountIndex: tb.AccountIndex,
			Owner:        *tb.Owner,
			Mint:         tb.Mint,
			Amount:       amount,
			Decimals:     tb.UiTokenAmount.Decimals,
		})
	}
	return entries
}

// Network returns the cluster this client is bound to.
func (c *SolanaClient) Network() x402types.Network { return c.network }

// RPCURL returns the endpoint the client resolved at construction.
func (c *SolanaClient) RPCURL() string { return c.rpcURL }

func (c *SolanaClient) Close() {}
