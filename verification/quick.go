package verification

import (
	"fmt"
	"time"

	x402types "github.com/aona-network/x402/types"
	"github.com/aona-network/x402/utils"
)

// QuickVerify runs the structural checks that need no ledger round-trip:
// field presence, signature and address shape, a registered token symbol,
// and a registered cluster.
// A passing verdict means only that the request is worth fetching for,
// not that a payment happened.
func (s *Service) QuickVerify(req *x402types.VerifyRequest) (*x402types.PaymentVerification, error) {
	if req == nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrInvalidRequest,
			Message: "verify request is nil",
		}
	}

	if err := req.Validate(); err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest, err.Error()), nil
	}

	if err := utils.ValidateSignature(req.Signature); err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest, err.Error()), nil
	}

	if err := utils.ValidateAddress(req.Recipient); err != nil {
		return s.fail(req, x402types.VerdictInvalidRequest, err.Error()), nil
	}

	if _, ok := x402types.TokenFromSymbol(req.Token); !ok {
		return s.fail(req, x402types.VerdictTokenNotConfigured,
			fmt.Sprintf("unknown token %s", req.Token)), nil
	}

	if !s.IsNetworkSupported(req.Network) {
		return s.fail(req, x402types.VerdictNetworkNotConfigured,
			fmt.Sprintf("no ledger client configured for network %s", req.Network)), nil
	}

	return &x402types.PaymentVerification{
		Valid:     true,
		Recipient: req.Recipient,
		Signature: req.Signature,
		Token:     req.Token,
		Timestamp: time.Now(),
	}, nil
}
