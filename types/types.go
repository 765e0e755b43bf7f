package types

import (
	"fmt"
	"strconv"
	"time"
)

// X402Version is the protocol version the library speaks.
type X402Version int

const (
	X402Version1 X402Version = 1
)

// Wire field names attached to a 402 Payment Required response. Header
// casing is the serving layer's concern; these are the canonical keys.
const (
	FieldPrice          = "price"
	FieldAcceptMethod   = "accept-method"
	FieldPaymentAddress = "payment-address"
	FieldToken          = "token"
	FieldNetwork        = "network"
)

// PaymentRequest describes one requested payment. It is built fresh per
// pricing decision, serialized into a 402 response and discarded; it
// carries no state.
type PaymentRequest struct {
	// Price is the amount owed, in base units of the token.
	Price uint64 `json:"price"`

	// AcceptMethod is derived from the token standard.
	AcceptMethod string `json:"acceptMethod"`

	// PayTo is the node operator's account the payment must reach.
	PayTo string `json:"payTo"`

	// Token is the symbol of the accepted token.
	Token string `json:"token"`

	// Network is the cluster the payment must settle on.
	Network Network `json:"network"`
}

// NewPaymentRequest builds the payment request a server attaches to a
// 402 response. No address validation happens here; the layer that later
// verifies a transaction against the address owns that responsibility.
func NewPaymentRequest(payTo string, price uint64, token PaymentToken, network Network) PaymentRequest {
	return PaymentRequest{
		Price:        price,
		AcceptMethod: token.AcceptMethod(),
		PayTo:        payTo,
		Token:        token.Symbol,
		Network:      network,
	}
}

// WireFields renders the request as the flat key/value set the serving
// layer attaches to its response.
func (r PaymentRequest) WireFields() map[string]string {
	return map[string]string{
		FieldPrice:          strconv.FormatUint(r.Price, 10),
		FieldAcceptMethod:   r.AcceptMethod,
		FieldPaymentAddress: r.PayTo,
		FieldToken:          r.Token,
		FieldNetwork:        r.Network.String(),
	}
}

// VerifyRequest is the input surface of payment verification: the claimed
// transaction signature plus what the server expected to be paid.
type VerifyRequest struct {
	// Signature is the base58 transaction signature from the client's
	// payment header.
	Signature string `json:"signature" validate:"required"`

	// ExpectedAmount is the price quoted to the client, in base units.
	// Zero is legal and trivially satisfied; callers must not pass zero
	// unintentionally.
	ExpectedAmount uint64 `json:"expectedAmount"`

	// Recipient is the base58 account the payment must have reached.
	Recipient string `json:"recipient" validate:"required"`

	// Token is the symbol selecting which transfer shape to check the
	// transaction for. It is resolved against the static token registry
	// at verification time; the request can never supply a mint.
	Token string `json:"token" validate:"required"`

	// Network selects the cluster the transaction was submitted to.
	Network Network `json:"network" validate:"required"`
}

// Validate checks that the request carries every required field.
func (v *VerifyRequest) Validate() error {
	if v.Signature == "" {
		return fmt.Errorf("signature is required")
	}
	if v.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if v.Token == "" {
		return fmt.Errorf("token is required")
	}
	if !v.Network.IsSupported() {
		return fmt.Errorf("unsupported network: %s", v.Network)
	}
	return nil
}

// Verdict codes carried by PaymentVerification. Valid stays the single
// control-flow bit; the code lets operational alarms split "our setup is
// broken" from "this client didn't pay enough", and malformed caller
// input from genuine transport faults.
const (
	VerdictInvalidRequest       = "invalid_request"
	VerdictNotFound             = "not_found"
	VerdictTokenNotConfigured   = "token_not_configured"
	VerdictNetworkNotConfigured = "network_not_configured"
	VerdictInvalidRecipient     = "invalid_recipient"
	VerdictAmountTooLow         = "amount_too_low"
	VerdictTransportError       = "transport_error"
)

// PaymentVerification is the sole contract surfaced to callers: a boolean
// verdict plus diagnostics. It never exposes raw transaction internals.
// Callers treat Valid=false uniformly as "deny access" and use Code and
// Error for logging only.
type PaymentVerification struct {
	Valid bool `json:"valid"`

	// Amount is the observed base-unit amount. Signed so a drained
	// recipient shows as negative; amounts beyond the int64 range are
	// not representable here, though the validity check itself is exact.
	Amount    int64     `json:"amount"`
	Recipient string    `json:"recipient"`
	Signature string    `json:"signature"`
	Token     string    `json:"token"`
	Timestamp time.Time `json:"timestamp"`
	Code      string    `json:"code,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// SupportedItem describes one network/scheme pair the library is
// configured for.
type SupportedItem struct {
	X402Version int    `json:"x402Version"`
	Scheme      string `json:"scheme"`
	Network     string `json:"network"`
}

type SupportedResponse struct {
	Kinds []SupportedItem `json:"kinds"`
}

// ClientConfig configures one ledger client.
type ClientConfig struct {
	Network Network `json:"network" validate:"required"`

	// RPCUrl overrides the cluster endpoint. Only honored for the test
	// cluster; the production endpoint is fixed.
	RPCUrl string `json:"rpcUrl,omitempty" validate:"omitempty,url"`

	Timeout time.Duration `json:"timeout,omitempty"`
}

// Config is the library-wide configuration.
type Config struct {
	DefaultTimeout time.Duration            `json:"defaultTimeout,omitempty"`
	Clients        map[Network]ClientConfig `json:"clients,omitempty"`
	LogLevel       string                   `json:"logLevel,omitempty"`
	EnableMetrics  bool                     `json:"enableMetrics,omitempty"`
}

// X402Error is the error type for programmer-facing failures (bad setup,
// misuse). Payment-facing outcomes are verdicts, not errors.
type X402Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *X402Error) Error() string {
	return e.Message
}

// Common error codes.
const (
	ErrInvalidRequest       = "INVALID_REQUEST"
	ErrUnsupportedNetwork   = "UNSUPPORTED_NETWORK"
	ErrTransactionNotFound  = "TRANSACTION_NOT_FOUND"
	ErrMalformedTransaction = "MALFORMED_TRANSACTION"
	ErrConfigError          = "CONFIG_ERROR"
)

// ErrTxNotFound is returned by ledger clients when the queried signature
// does not exist at the confirmed commitment level. The verifier folds it
// into a terminal not-found verdict; the caller may retry later if the
// transaction is merely not yet propagated.
var ErrTxNotFound = &X402Error{
	Code:    ErrTransactionNotFound,
	Message: "transaction not found",
}
