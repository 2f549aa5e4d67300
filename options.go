package ensresolve

import (
	"github.com/branched-services/go-ensresolve/ccip"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Option configures a Resolver.
type Option func(*config)

// config holds Resolver configuration.
type config struct {
	universalResolver common.Address
	legacyRegistry    *common.Address
	legacy            LegacyResolver
	normalizer        Normalizer
	revert            RevertDecoder
	logger            *zap.Logger
	ccipOptions       []ccip.Option
}

// defaultConfig returns the default Resolver configuration.
func defaultConfig() *config {
	return &config{
		universalResolver: UniversalResolverAddress,
		normalizer:        NewIDNANormalizer(),
		revert:            ccip.RevertData,
		logger:            zap.NewNop(),
	}
}

// WithUniversalResolver sets the contract answering requireResolver.
// Default is UniversalResolverAddress.
func WithUniversalResolver(address common.Address) Option {
	return func(c *config) {
		c.universalResolver = address
	}
}

// WithNormalizer sets the normalizer used to validate reverse claims.
// Default is an IDNANormalizer.
func WithNormalizer(n Normalizer) Option {
	return func(c *config) {
		if n != nil {
			c.normalizer = n
		}
	}
}

// WithLegacy sets the resolver used for CoinTypeLegacy lookups.
func WithLegacy(l LegacyResolver) Option {
	return func(c *config) {
		c.legacy = l
	}
}

// WithLegacyRegistry enables CoinTypeLegacy lookups through a classic ENS
// registry, sharing the Resolver's caller. Ignored when WithLegacy is set.
func WithLegacyRegistry(address common.Address) Option {
	return func(c *config) {
		c.legacyRegistry = &address
	}
}

// WithRevertDecoder sets how reverted calls are recognised in transport
// errors. Default is ccip.RevertData.
func WithRevertDecoder(decode RevertDecoder) Option {
	return func(c *config) {
		if decode != nil {
			c.revert = decode
		}
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCCIPOptions passes options to the off-chain read caller, e.g.
// ccip.WithHTTPClient or ccip.WithMaxRedirects.
func WithCCIPOptions(opts ...ccip.Option) Option {
	return func(c *config) {
		c.ccipOptions = append(c.ccipOptions, opts...)
	}
}
