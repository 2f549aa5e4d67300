package ccip

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotOffchainLookup indicates revert data that is not an OffchainLookup error.
	ErrNotOffchainLookup = errors.New("ccip: revert is not OffchainLookup")

	// ErrSenderMismatch indicates an OffchainLookup raised on behalf of another contract.
	ErrSenderMismatch = errors.New("ccip: OffchainLookup sender does not match call target")

	// ErrTooManyRedirects indicates the lookup chain exceeded the redirect limit.
	ErrTooManyRedirects = errors.New("ccip: too many OffchainLookup redirects")

	// ErrNoGateway indicates an OffchainLookup without gateway URLs.
	ErrNoGateway = errors.New("ccip: no gateway urls")
)

// GatewayError is a non-success answer from a gateway.
type GatewayError struct {
	URL     string
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ccip: gateway %s: status %d: %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("ccip: gateway %s: status %d", e.URL, e.Status)
}

// Permanent reports whether other gateways should not be tried (4xx).
func (e *GatewayError) Permanent() bool {
	return e.Status >= 400 && e.Status < 500
}

// SenderError wraps ErrSenderMismatch with the addresses involved.
type SenderError struct {
	Target common.Address
	Sender common.Address
}

func (e *SenderError) Error() string {
	return fmt.Sprintf("%v: target %s, sender %s", ErrSenderMismatch, e.Target.Hex(), e.Sender.Hex())
}

func (e *SenderError) Unwrap() error {
	return ErrSenderMismatch
}
