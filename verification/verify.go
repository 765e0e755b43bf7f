// Package verification decides whether a claimed ledger transaction
// satisfies an expected payment. Every failure path produces a structured
// verdict; nothing escapes the service boundary as a panic or an
// unhandled error once inputs are type-valid.
package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aona-network/x402/clients"
	"github.com/aona-network/x402/logger"
	"github.com/aona-network/x402/metrics"
	x402types "github.com/aona-network/x402/types"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// AmountTolerance is the downward tolerance applied to the expected
// amount, absorbing ledger fee deduction variance. Changing it changes
// financial behavior.
var AmountTolerance = decimal.NewFromFloat(0.99)

// Service verifies payments across the configured clusters. It holds no
// state across calls and performs no deduplication of signatures: the
// same signature verified twice performs two independent fetches.
type Service struct {
	clients map[x402types.Network]clients.Client
	timeout time.Duration
	log     logger.Logger
	rec     metrics.Recorder
}

// NewService creates a verification service. Clients are registered at
// setup time via AddClient; registration is not safe concurrently with
// verification.
func NewService(timeout time.Duration, log logger.Logger, rec metrics.Recorder) *Service {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Service{
		clients: make(map[x402types.Network]clients.Client),
		timeout: timeout,
		log:     log,
		rec:     rec,
	}
}

// AddClient registers the ledger client for a cluster.
func (s *Service) AddClient(network x402types.Network, client clients.Client) error {
	if !network.IsSupported() {
		return &x402types.X402Error{
			Code:    x402types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported network: %s", network),
		}
	}
	s.clients[network] = client
	return nil
}

// VerifyPayment fetches the claimed transaction and decides whether it
// satisfies the expected payment. The returned verdict is the whole
// contract: a failed fetch, a missing transaction, a wrong recipient and
// a short amount all come back as Valid=false with a code, never as an
// error. A non-nil error means the request itself was unusable.
func (s *Service) VerifyPayment(
	ctx context.Context,
	req *x402types.VerifyRequest,
) (*x402types.PaymentVerification, error) {
	if req == nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrInvalidRequest,
			Message: "verify request is nil",
		}
	}

	start := time.Now()
	verdict := s.verify(ctx, req)
	s.observe(req, verdict, time.Since(start))
	return verdict, nil
}

func (s *Service) verify(ctx context.Context, req *x402types.VerifyRequest) *x402types.PaymentVerification {
	if err := req.Validate(); err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest, err.Error())
	}

	client, ok := s.clients[req.Network]
	if !ok {
		return s.fail(req, x402types.VerdictNetworkNotConfigured,
			fmt.Sprintf("no ledger client configured for network %s", req.Network))
	}

	signature, err := solana.SignatureFromBase58(req.Signature)
	if err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest,
			fmt.Sprintf("invalid transaction signature: %v", err))
	}

	recipient, err := solana.PublicKeyFromBase58(req.Recipient)
	if err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest,
			fmt.Sprintf("invalid recipient address: %v", err))
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := client.FetchTransaction(verifyCtx, signature)
	if err != nil {
		if errors.Is(err, x402types.ErrTxNotFound) {
			// Terminal for this call; the caller may retry the whole
			// verification once the transaction has propagated.
			return s.fail(req, x402types.VerdictNotFound, "Transaction not found")
		}
		return s.fail(req, x402types.VerdictTransportError, err.Error())
	}

	// The token is resolved against the static registry; whatever mint a
	// client claims on the wire is never consulted.
	token, ok := x402types.TokenFromSymbol(req.Token)
	if !ok || (!token.IsNative() && token.Mint == nil) {
		return s.fail(req, x402types.VerdictTokenNotConfigured, "Token mint not configured")
	}

	var (
		actualAmount  decimal.Decimal
		validTransfer bool
	)

	if token.IsNative() {
		delta, ok := nativeTransfer(record, recipient)
		actualAmount, validTransfer = decimal.NewFromInt(delta), ok
	} else {
		raw, ok := tokenTransfer(record, recipient, *token.Mint)
		actualAmount, validTransfer = decimal.NewFromUint64(raw), ok
	}

	minAmount := decimal.NewFromUint64(req.ExpectedAmount).Mul(AmountTolerance)
	amountValid := actualAmount.GreaterThanOrEqual(minAmount)

	verdict := &x402types.PaymentVerification{
		Valid:     validTransfer && amountValid,
		Amount:    actualAmount.IntPart(),
		Recipient: req.Recipient,
		Signature: req.Signature,
		Token:     req.Token,
		Timestamp: time.Now(),
	}

	// Recipient failure takes priority over a short amount.
	switch {
	case !validTransfer:
		verdict.Code = x402types.VerdictInvalidRecipient
		verdict.Error = "Invalid recipient"
	case !amountValid:
		verdict.Code = x402types.VerdictAmountTooLow
		verdict.Error = fmt.Sprintf("Amount too low: %s < %d", actualAmount, req.ExpectedAmount)
	}

	return verdict
}

// nativeTransfer reads the lamport balance delta at the index where the
// recipient appears in the static account-key list. An absent recipient
// means no transfer to check; the delta of some other slot is never used.
func nativeTransfer(record *x402types.TransactionRecord, recipient solana.PublicKey) (int64, bool) {
	idx := record.AccountIndex(recipient)
	if idx < 0 {
		return 0, false
	}
	delta, ok := record.BalanceDelta(idx)
	if !ok {
		return 0, false
	}
	return delta, true
}

// tokenTransfer scans the post-execution token balances for the first
// entry owned by the recipient under the expected mint. First match wins;
// multiple transfer instructions in one transaction are not aggregated.
func tokenTransfer(record *x402types.TransactionRecord, recipient, mint solana.PublicKey) (uint64, bool) {
	for _, entry := range record.TokenBalances {
		if entry.Owner.Equals(recipient) && entry.Mint.Equals(mint) {
			return entry.Amount, true
		}
	}
	return 0, false
}

func (s *Service) fail(req *x402types.VerifyRequest, code, msg string) *x402types.PaymentVerification {
	return &x402types.PaymentVerification{
		Valid:     false,
		Amount:    0,
		Recipient: req.Recipient,
		Signature: req.Signature,
		Token:     req.Token,
		Timestamp: time.Now(),
		Code:      code,
		Error:     msg,
	}
}

func (s *Service) observe(req *x402types.VerifyRequest, verdict *x402types.PaymentVerification, elapsed time.Duration) {
	result := "valid"
	if !verdict.Valid {
		result = verdict.Code
	}

	labels := map[string]string{"network": req.Network.String()}
	s.rec.IncCounter("verify_"+result, labels)
	s.rec.ObserveLatency("verify_payment", elapsed, labels)

	s.log.Debug("payment verified", map[string]any{
		"signature": req.Signature,
		"network":   req.Network.String(),
		"token":     req.Token,
		"valid":     verdict.Valid,
		"code":      verdict.Code,
		"amount":    verdict.Amount,
	})
}

// BatchVerify verifies many in-flight payments concurrently. Calls are
// fully independent; no coordination or shared state exists between them.
func (s *Service) BatchVerify(
	ctx context.Context,
	reqs []*x402types.VerifyRequest,
) ([]*x402types.PaymentVerification, error) {
	if len(reqs) == 0 {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrInvalidRequest,
			Message: "no verify requests given",
		}
	}

	type outcome struct {
		index   int
		verdict *x402types.PaymentVerification
		err     error
	}

	results := make([]*x402types.PaymentVerification, len(reqs))
	outcomes := make(chan outcome, len(reqs))

	for i, req := range reqs {
		go func(index int, r *x402types.VerifyRequest) {
			verdict, err := s.VerifyPayment(ctx, r)
			outcomes <- outcome{index: index, verdict: verdict, err: err}
		}(i, req)
	}

	var firstErr error
	for range reqs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case out := <-outcomes:
			results[out.index] = out.verdict
			if out.err != nil && firstErr == nil {
				firstErr = out.err
			}
		}
	}

	return results, firstErr
}

// VerifyWithRetry re-runs the whole verification while the verdict is a
// not-found, covering the window where a confirmed transaction has not
// yet propagated to the queried node. The core contract is unchanged:
// each attempt performs exactly one fetch.
func (s *Service) VerifyWithRetry(
	ctx context.Context,
	req *x402types.VerifyRequest,
	maxRetries int,
	retryDelay time.Duration,
) (*x402types.PaymentVerification, error) {
	var verdict *x402types.PaymentVerification
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		verdict, err = s.VerifyPayment(ctx, req)
		if err != nil {
			return nil, err
		}
		if verdict.Code != x402types.VerdictNotFound {
			return verdict, nil
		}
	}

	return verdict, nil
}

// IsNetworkSupported reports whether a ledger client is registered for
// the cluster.
func (s *Service) IsNetworkSupported(network x402types.Network) bool {
	_, ok := s.clients[network]
	return ok
}

// SupportedNetworks returns every cluster with a registered client.
func (s *Service) SupportedNetworks() []x402types.Network {
	networks := make([]x402types.Network, 0, len(s.clients))
	for network := range s.clients {
		networks = append(networks, network)
	}
	return networks
}

// Close closes all registered ledger clients.
func (s *Service) Close() {
	for _, client := range s.clients {
		client.Close()
	}
}
