// Package ccip implements EIP-3668 off-chain verified reads ("CCIP-Read")
// on top of any go-ethereum ContractCaller.
//
// A contract that cannot answer a call from chain state reverts with
//
//	OffchainLookup(address sender, string[] urls, bytes callData,
//	               bytes4 callbackFunction, bytes extraData)
//
// Caller catches that revert, asks one of the gateways for the answer and
// calls callbackFunction(response, extraData) on the same contract, which
// verifies the answer. The callback may itself revert with another
// OffchainLookup; the chain is followed up to a redirect limit.
package ccip

import (
	"context"
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// DefaultMaxRedirects is the number of OffchainLookup rounds followed per call.
const DefaultMaxRedirects = 4

// Caller is an ethereum.ContractCaller with off-chain lookups enabled.
type Caller struct {
	inner        ethereum.ContractCaller
	gateway      Gateway
	revert       func(error) ([]byte, bool)
	maxRedirects int
	logger       *zap.Logger
}

var _ ethereum.ContractCaller = (*Caller)(nil)

// Option configures a Caller.
type Option func(*Caller)

// WithHTTPClient sets the client used by the default HTTP gateway.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Caller) {
		c.gateway = NewHTTPGateway(client, c.logger)
	}
}

// WithGateway replaces the gateway used to answer lookups.
func WithGateway(gateway Gateway) Option {
	return func(c *Caller) {
		c.gateway = gateway
	}
}

// WithMaxRedirects sets how many OffchainLookup rounds a call may take.
// Negative values are treated as zero.
func WithMaxRedirects(max int) Option {
	return func(c *Caller) {
		if max < 0 {
			max = 0
		}
		c.maxRedirects = max
	}
}

// WithLogger sets the logger. Apply it before WithHTTPClient so the gateway
// shares it.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Caller) {
		c.logger = logger
		if gw, ok := c.gateway.(*HTTPGateway); ok {
			gw.logger = logger
		}
	}
}

// WithRevertDecoder replaces the function extracting revert data from
// transport errors. The default is RevertData.
func WithRevertDecoder(decode func(error) ([]byte, bool)) Option {
	return func(c *Caller) {
		c.revert = decode
	}
}

// NewCaller wraps inner with off-chain lookup support. Wrapping a *Caller
// returns it unchanged when no options are given.
func NewCaller(inner ethereum.ContractCaller, opts ...Option) *Caller {
	if existing, ok := inner.(*Caller); ok && len(opts) == 0 {
		return existing
	}
	logger := zap.NewNop()
	c := &Caller{
		inner:        inner,
		gateway:      NewHTTPGateway(nil, logger),
		revert:       RevertData,
		maxRedirects: DefaultMaxRedirects,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CallContract executes msg, following OffchainLookup reverts raised by the
// call target. Reverts of any other kind are returned unchanged.
func (c *Caller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	for hop := 0; ; hop++ {
		out, err := c.inner.CallContract(ctx, msg, blockNumber)
		if err == nil {
			return out, nil
		}

		data, ok := c.revert(err)
		if !ok {
			return nil, err
		}
		lookup, parseErr := ParseOffchainLookup(data)
		if errors.Is(parseErr, ErrNotOffchainLookup) {
			return nil, err
		}
		if parseErr != nil {
			return nil, parseErr
		}

		if hop >= c.maxRedirects {
			return nil, ErrTooManyRedirects
		}
		if msg.To == nil || lookup.Sender != *msg.To {
			var target common.Address
			if msg.To != nil {
				target = *msg.To
			}
			return nil, &SenderError{Target: target, Sender: lookup.Sender}
		}

		c.logger.Debug("ccip offchain lookup",
			zap.Stringer("sender", lookup.Sender),
			zap.Strings("urls", lookup.URLs),
			zap.Int("hop", hop),
		)

		response, err := c.gateway.Fetch(ctx, lookup)
		if err != nil {
			return nil, err
		}
		callback, err := lookup.Callback(response)
		if err != nil {
			return nil, err
		}
		msg.Data = callback
	}
}
