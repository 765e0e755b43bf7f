package clients

import (
	"testing"

	x402types "github.com/aona-network/x402/types"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	t.Setenv(RPCEnvVar, "")

	// Mainnet is fixed and ignores overrides.
	endpoint, err := resolveEndpoint(x402types.NetworkSolanaMainnet, "http://localhost:8899")
	require.NoError(t, err)
	assert.Equal(t, rpc.MainNetBeta_RPC, endpoint)

	// Devnet defaults to the public cluster endpoint.
	endpoint, err = resolveEndpoint(x402types.NetworkSolanaDevnet, "")
	require.NoError(t, err)
	assert.Equal(t, rpc.DevNet_RPC, endpoint)

	// Explicit override wins.
	endpoint, err = resolveEndpoint(x402types.NetworkSolanaDevnet, "http://localhost:8899")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", endpoint)

	_, err = resolveEndpoint("base-sepolia", "")
	require.Error(t, err)
}

func TestResolveEndpoint_EnvOverride(t *testing.T) {
	t.Setenv(RPCEnvVar, "http://devnet-proxy:8899")

	endpoint, err := resolveEndpoint(x402types.NetworkSolanaDevnet, "")
	require.NoError(t, err)
	assert.Equal(t, "http://devnet-proxy:8899", endpoint)

	// An explicit override still beats the environment.
	endpoint, err = resolveEndpoint(x402types.NetworkSolanaDevnet, "http://localhost:8899")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", endpoint)

	// Mainnet stays fixed.
	endpoint, err = resolveEndpoint(x402types.NetworkSolanaMainnet, "")
	require.NoError(t, err)
	assert.Equal(t, rpc.MainNetBeta_RPC, endpoint)
}

func TestNewSolanaClient(t *testing.T) {
	client, err := NewSolanaClient(x402types.NetworkSolanaDevnet, "http://localhost:8899")
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, x402types.NetworkSolanaDevnet, client.Network())
	assert.Equal(t, "http://localhost:8899", client.RPCURL())

	_, err = NewSolanaClient("cosmoshub-4", "")
	require.Error(t, err)
}

func TestRecordFromResult(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("AejHuZdNpDUiAiwuV2NKXz8K6eLzChYGpTcxptinWbar")
	mint := solana.MustPublicKeyFromBase58("4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU")

	var sig solana.Signature
	blockTime := solana.UnixTimeSeconds(1_700_000_000)

	out := &rpc.GetTransactionResult{
		Slot:      4242,
		BlockTime: &blockTime,
		Meta: &rpc.TransactionMeta{
			PreBalances:  []uint64{10, 20},
			PostBalances: []uint64{5, 25},
			PostTokenBalances: []rpc.TokenBalance{
				{
					AccountIndex: 1,
					Mint:         mint,
					Owner:        &owner,
					UiTokenAmount: &rpc.UiTokenAmount{
						Amount:   "2500000",
						Decimals: 6,
					},
				},
				// No owner: dropped.
				{
					AccountIndex: 2,
					Mint:         mint,
					UiTokenAmount: &rpc.UiTokenAmount{
						Amount:   "1",
						Decimals: 6,
					},
				},
				// Unparseable raw amount: dropped.
				{
					AccountIndex: 3,
					Mint:         mint,
					Owner:        &owner,
					UiTokenAmount: &rpc.UiTokenAmount{
						Amount:   "not-a-number",
						Decimals: 6,
					},
				},
			},
		},
	}

	record, err := recordFromResult(sig, out)
	require.NoError(t, err)

	assert.Equal(t, uint64(4242), record.Slot)
	assert.Equal(t, blockTime.Time(), record.BlockTime)
	assert.Equal(t, []uint64{10, 20}, record.PreBalances)
	assert.Equal(t, []uint64{5, 25}, record.PostBalances)

	require.Len(t, record.TokenBalances, 1)
	entry := record.TokenBalances[0]
	assert.Equal(t, uint16(1), entry.AccountIndex)
	assert.Equal(t, owner, entry.Owner)
	assert.Equal(t, mint, entry.Mint)
	assert.Equal(t, uint64(2_500_000), entry.Amount)
	assert.Equal(t, uint8(6), entry.Decimals)
}
