package ensresolve

import (
	"github.com/branched-services/go-ensresolve/ccip"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Resolver resolves names to addresses and addresses to names. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	caller     ethereum.ContractCaller
	universal  *Contract
	records    *Contract
	legacy     LegacyResolver
	normalizer Normalizer
	revert     RevertDecoder
	logger     *zap.Logger
	metrics    metrics
}

// New creates a Resolver issuing calls through caller, typically an
// *ethclient.Client. Every call goes through a ccip.Caller so resolvers may
// answer with off-chain lookups.
func New(caller ethereum.ContractCaller, opts ...Option) *Resolver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ccipOpts := append([]ccip.Option{
		ccip.WithLogger(cfg.logger),
		ccip.WithRevertDecoder(cfg.revert),
	}, cfg.ccipOptions...)
	offchain := ccip.NewCaller(caller, ccipOpts...)

	r := &Resolver{
		caller:     offchain,
		universal:  NewContract(cfg.universalResolver, resolverABI),
		records:    NewContract(common.Address{}, resolverABI),
		legacy:     cfg.legacy,
		normalizer: cfg.normalizer,
		revert:     cfg.revert,
		logger:     cfg.logger,
		metrics:    newMetrics(),
	}
	if r.legacy == nil && cfg.legacyRegistry != nil {
		r.legacy = NewRegistryResolver(offchain, *cfg.legacyRegistry,
			WithRevertDecoder(cfg.revert),
			WithLogger(cfg.logger),
		)
	}
	return r
}

// UniversalResolver returns the address answering requireResolver.
func (r *Resolver) UniversalResolver() common.Address {
	return r.universal.Address()
}
