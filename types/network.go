package types

// Network identifies which Solana cluster a payment settles on.
type Network string

const (
	// NetworkSolanaMainnet is the production cluster. Its RPC endpoint is
	// fixed and cannot be overridden.
	NetworkSolanaMainnet Network = "solana-mainnet"

	// NetworkSolanaDevnet is the test cluster used during node onboarding.
	NetworkSolanaDevnet Network = "solana-devnet"
)

// AllNetworks lists every cluster the library can be configured for.
func AllNetworks() []Network {
	return []Network{NetworkSolanaMainnet, NetworkSolanaDevnet}
}

// IsSupported reports whether n is one of the known clusters.
func (n Network) IsSupported() bool {
	return n == NetworkSolanaMainnet || n == NetworkSolanaDevnet
}

// IsTestnet reports whether n is the test cluster.
func (n Network) IsTestnet() bool {
	return n == NetworkSolanaDevnet
}

func (n Network) String() string {
	return string(n)
}
