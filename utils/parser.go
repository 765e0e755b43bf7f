package utils

import (
	"encoding/json"
	"fmt"

	x402types "github.com/aona-network/x402/types"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParseConfig parses and validates the library configuration from JSON.
func ParseConfig(data []byte) (*x402types.Config, error) {
	var config x402types.Config

	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	for network, client := range config.Clients {
		if client.Network == "" {
			client.Network = network
			config.Clients[network] = client
		}
		if err := validate.Struct(&client); err != nil {
			return nil, &x402types.X402Error{
				Code:    x402types.ErrConfigError,
				Message: fmt.Sprintf("client config for %s: %v", network, err),
			}
		}
	}

	return &config, nil
}

// ParseClientConfig parses and validates a single client configuration
// from JSON.
func ParseClientConfig(data []byte) (*x402types.ClientConfig, error) {
	var config x402types.ClientConfig

	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse client config: %v", err),
		}
	}

	if err := validate.Struct(&config); err != nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrConfigError,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}

	return &config, nil
}

// ParseVerifyRequest parses and validates a verify request from JSON,
// for serving layers that relay the client's payment claim verbatim.
// The token field is a bare symbol; the mint it stands for is resolved
// from the static registry during verification, never from the wire.
func ParseVerifyRequest(data []byte) (*x402types.VerifyRequest, error) {
	var req x402types.VerifyRequest

	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrInvalidRequest,
			Message: fmt.Sprintf("failed to parse verify request: %v", err),
		}
	}

	if err := validate.Struct(&req); err != nil {
		return nil, &x402types.X402Error{
			Code:    x402types.ErrInvalidRequest,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}

	return &req, nil
}

// SerializeVerification converts a verdict to JSON.
func SerializeVerification(verdict *x402types.PaymentVerification) ([]byte, error) {
	return json.Marshal(verdict)
}

// SerializePaymentRequest converts a payment request to JSON.
func SerializePaymentRequest(req x402types.PaymentRequest) ([]byte, error) {
	return json.Marshal(req)
}
