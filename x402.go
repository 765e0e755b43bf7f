// Package x402 implements the payment side of AONA's HTTP 402 data
// access protocol on Solana: pricing a sensor reading by node
// reputation, building the fields of a 402 Payment Required response,
// and verifying that a claimed transaction actually paid the expected
// amount to the expected recipient.
package x402

import (
	"context"
	"fmt"
	"time"

	"github.com/aona-network/x402/clients"
	"github.com/aona-network/x402/logger"
	"github.com/aona-network/x402/metrics"
	"github.com/aona-network/x402/pricing"
	"github.com/aona-network/x402/types"
	"github.com/aona-network/x402/verification"
)

// Version information.
const (
	Version         = "1.0.0"
	ProtocolVersion = 1
)

// DefaultTimeout bounds a single ledger fetch when the configuration
// does not say otherwise.
const DefaultTimeout = 30 * time.Second

// X402 is the entry point: one instance serves the whole process, with
// one ledger client per configured cluster. Verification calls are
// independent and may run concurrently.
type X402 struct {
	verification *verification.Service
	config       *types.Config
	log          logger.Logger
	rec          metrics.Recorder
	timeout      time.Duration
	supported    []types.SupportedItem
}

// New creates an X402 instance. With no options, logging and metrics are
// no-ops.
func New(config *types.Config, opts ...Option) *X402 {
	x := &X402{
		config:  config,
		log:     logger.NoopLogger{},
		rec:     metrics.NoopRecorder{},
		timeout: DefaultTimeout,
	}

	if config != nil && config.DefaultTimeout > 0 {
		x.timeout = config.DefaultTimeout
	}

	for _, opt := range opts {
		opt(x)
	}

	if config != nil && config.LogLevel != "" {
		if _, isNoop := x.log.(logger.NoopLogger); isNoop {
			x.log = logger.NewZapLogger(config.LogLevel)
		}
	}
	if config != nil && config.EnableMetrics {
		if _, isNoop := x.rec.(metrics.NoopRecorder); isNoop {
			x.rec = metrics.NewPrometheusRecorder()
		}
	}

	x.verification = verification.NewService(x.timeout, x.log, x.rec)
	return x
}

// NewWithDefaults creates an X402 instance with default configuration.
func NewWithDefaults() *X402 {
	return New(&types.Config{DefaultTimeout: DefaultTimeout})
}

// AddNetwork configures a ledger client for a cluster. The RPC endpoint
// override in cfg is honored only for the test cluster. Registering the
// same cluster twice is rejected; the existing client stays in place.
func (x *X402) AddNetwork(network types.Network, cfg types.ClientConfig) error {
	if x.verification.IsNetworkSupported(network) {
		return &types.X402Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("network already configured: %s", network),
		}
	}

	client, err := clients.NewSolanaClient(network, cfg.RPCUrl)
	if err != nil {
		return err
	}

	if err := x.verification.AddClient(network, client); err != nil {
		client.Close()
		return err
	}

	x.supported = append(x.supported, types.SupportedItem{
		X402Version: ProtocolVersion,
		Scheme:      "exact",
		Network:     network.String(),
	})

	x.log.Info("network configured", map[string]any{
		"network": network.String(),
		"rpc":     client.RPCURL(),
	})
	return nil
}

// RequirePayment prices a reading for the node's reputation and builds
// the payment request a server attaches to its 402 response.
func (x *X402) RequirePayment(
	nodeAddress string,
	reputationScore float64,
	token types.PaymentToken,
	network types.Network,
) types.PaymentRequest {
	price := pricing.CalculatePrice(reputationScore)
	return types.NewPaymentRequest(nodeAddress, price, token, network)
}

// Verify fetches the claimed transaction and returns the verdict gating
// data release.
func (x *X402) Verify(
	ctx context.Context,
	req *types.VerifyRequest,
) (*types.PaymentVerification, error) {
	return x.verification.VerifyPayment(ctx, req)
}

// BatchVerify verifies multiple payments concurrently.
func (x *X402) BatchVerify(
	ctx context.Context,
	reqs []*types.VerifyRequest,
) ([]*types.PaymentVerification, error) {
	return x.verification.BatchVerify(ctx, reqs)
}

// QuickVerify performs structural validation without ledger queries.
func (x *X402) QuickVerify(req *types.VerifyRequest) (*types.PaymentVerification, error) {
	return x.verification.QuickVerify(req)
}

// VerifyWithRetry re-runs verification while the transaction is not yet
// visible on the queried node.
func (x *X402) VerifyWithRetry(
	ctx context.Context,
	req *types.VerifyRequest,
	maxRetries int,
	retryDelay time.Duration,
) (*types.PaymentVerification, error) {
	return x.verification.VerifyWithRetry(ctx, req, maxRetries, retryDelay)
}

// Supported enumerates the network/scheme kinds this instance accepts.
func (x *X402) Supported() *types.SupportedResponse {
	kinds := make([]types.SupportedItem, len(x.supported))
	copy(kinds, x.supported)
	return &types.SupportedResponse{Kinds: kinds}
}

// IsNetworkSupported checks whether a cluster has a configured client.
func (x *X402) IsNetworkSupported(network types.Network) bool {
	return x.verification.IsNetworkSupported(network)
}

// Close closes all ledger client connections.
func (x *X402) Close() {
	x.verification.Close()
}
