package x402

import (
	"testing"
	"time"

	"github.com/aona-network/x402/logger"
	"github.com/aona-network/x402/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNodeAddress = "AejHuZdNpDUiAiwuV2NKXz8K6eLzChYGpTcxptinWbar"

func TestNew_Defaults(t *testing.T) {
	x := New(nil)
	defer x.Close()

	assert.Equal(t, DefaultTimeout, x.timeout)
	assert.IsType(t, logger.NoopLogger{}, x.log)
	assert.Empty(t, x.Supported().Kinds)
}

func TestNew_Options(t *testing.T) {
	x := New(&types.Config{DefaultTimeout: time.Minute}, WithTimeout(5*time.Second))
	defer x.Close()

	// An explicit option wins over the config value.
	assert.Equal(t, 5*time.Second, x.timeout)
}

func TestAddNetwork(t *testing.T) {
	x := NewWithDefaults()
	defer x.Close()

	err := x.AddNetwork(types.NetworkSolanaDevnet, types.ClientConfig{
		RPCUrl: "http://localhost:8899",
	})
	require.NoError(t, err)

	assert.True(t, x.IsNetworkSupported(types.NetworkSolanaDevnet))
	assert.False(t, x.IsNetworkSupported(types.NetworkSolanaMainnet))

	supported := x.Supported()
	require.Len(t, supported.Kinds, 1)
	assert.Equal(t, "solana-devnet", supported.Kinds[0].Network)
	assert.Equal(t, "exact", supported.Kinds[0].Scheme)
	assert.Equal(t, ProtocolVersion, supported.Kinds[0].X402Version)

	err = x.AddNetwork("polygon", types.ClientConfig{})
	require.Error(t, err)
}

func TestAddNetwork_Duplicate(t *testing.T) {
	x := NewWithDefaults()
	defer x.Close()

	require.NoError(t, x.AddNetwork(types.NetworkSolanaDevnet, types.ClientConfig{
		RPCUrl: "http://localhost:8899",
	}))

	err := x.AddNetwork(types.NetworkSolanaDevnet, types.ClientConfig{
		RPCUrl: "http://localhost:9999",
	})
	require.Error(t, err)

	var x402Err *types.X402Error
	require.ErrorAs(t, err, &x402Err)
	assert.Equal(t, types.ErrConfigError, x402Err.Code)

	// The first registration stays; no duplicate kind is advertised.
	assert.Len(t, x.Supported().Kinds, 1)
}

func TestRequirePayment(t *testing.T) {
	x := NewWithDefaults()
	defer x.Close()

	req := x.RequirePayment(testNodeAddress, 80, types.TokenSOL, types.NetworkSolanaDevnet)
	assert.Equal(t, uint64(1_500_000), req.Price)
	assert.Equal(t, types.MethodNativeTransfer, req.AcceptMethod)
	assert.Equal(t, testNodeAddress, req.PayTo)
	assert.Equal(t, "SOL", req.Token)
	assert.Equal(t, types.NetworkSolanaDevnet, req.Network)

	req = x.RequirePayment(testNodeAddress, 10, types.TokenUSDC, types.NetworkSolanaDevnet)
	assert.Equal(t, uint64(1_000_000), req.Price)
	assert.Equal(t, types.MethodTokenTransfer, req.AcceptMethod)
}

func TestQuickVerify_Facade(t *testing.T) {
	x := NewWithDefaults()
	defer x.Close()

	require.NoError(t, x.AddNetwork(types.NetworkSolanaDevnet, types.ClientConfig{
		RPCUrl: "http://localhost:8899",
	}))

	req := &types.VerifyRequest{
		Signature:      validBase58(88),
		ExpectedAmount: 1_000_000,
		Recipient:      testNodeAddress,
		Token:          "SOL",
		Network:        types.NetworkSolanaDevnet,
	}

	verdict, err := x.QuickVerify(req)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)

	req.Network = types.NetworkSolanaMainnet
	verdict, err = x.QuickVerify(req)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
}

func validBase58(n int) string {
	const alphabet = "123456789ABCDEFGHJKMNPQRSTUVWXYZ"
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[i%len(alphabet)]
	}
	return string(out)
}
