package ensresolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// LegacyResolver answers CoinTypeLegacy lookups with pre-wildcard ENS
// semantics. Only ETH addresses are supported.
type LegacyResolver interface {
	ResolveAddress(ctx context.Context, name string) (*AddressRecord, error)
	LookupName(ctx context.Context, address string) (string, error)
}

// RegistryResolver resolves through the classic ENS registry: the resolver of
// the exact node is read from the registry and queried directly. Names
// without their own resolver entry do not resolve.
type RegistryResolver struct {
	caller   ethereum.ContractCaller
	registry *Contract
	records  *Contract
	revert   RevertDecoder
	logger   *zap.Logger
}

var _ LegacyResolver = (*RegistryResolver)(nil)

// NewRegistryResolver creates a RegistryResolver for the registry at address.
// Only WithRevertDecoder and WithLogger apply.
func NewRegistryResolver(caller ethereum.ContractCaller, address common.Address, opts ...Option) *RegistryResolver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &RegistryResolver{
		caller:   caller,
		registry: NewContract(address, registryABI),
		records:  NewContract(common.Address{}, resolverABI),
		revert:   cfg.revert,
		logger:   cfg.logger,
	}
}

// resolverOf returns the resolver registered for node, or nil.
func (l *RegistryResolver) resolverOf(ctx context.Context, node common.Hash) (*Contract, error) {
	call, err := l.registry.Invoke(sigRegistryLookup, node)
	if err != nil {
		return nil, err
	}
	out, err := call.Execute(ctx, l.caller, l.revert)
	if err != nil {
		return nil, err
	}
	v, err := call.Result(out)
	if err != nil {
		return nil, err
	}
	addr, ok := v.(common.Address)
	if !ok {
		return nil, &DecodeError{Method: sigRegistryLookup, Data: out, Err: fmt.Errorf("unexpected %T", v)}
	}
	if addr == (common.Address{}) {
		return nil, nil
	}
	return l.records.At(addr), nil
}

func (l *RegistryResolver) record(ctx context.Context, name, signature string) (any, error) {
	node := NameHash(name)
	resolver, err := l.resolverOf(ctx, node)
	if err != nil || resolver == nil {
		return nil, err
	}
	call, err := resolver.Invoke(signature, node)
	if err != nil {
		return nil, err
	}
	out, err := call.Execute(ctx, l.caller, l.revert)
	if err != nil {
		return nil, err
	}
	return call.Result(out)
}

// ResolveAddress implements LegacyResolver.
func (l *RegistryResolver) ResolveAddress(ctx context.Context, name string) (*AddressRecord, error) {
	if isAddressLiteral(name) {
		return &AddressRecord{CoinType: CoinTypeETH, Raw: common.HexToAddress(name).Bytes()}, nil
	}
	v, err := l.record(ctx, name, sigAddr)
	if err != nil {
		if isNoData(err) {
			return nil, nil
		}
		return nil, err
	}
	addr, ok := v.(common.Address)
	if !ok || addr == (common.Address{}) {
		return nil, nil
	}
	return &AddressRecord{CoinType: CoinTypeETH, Raw: addr.Bytes()}, nil
}

// LookupName implements LegacyResolver. A claim that does not resolve back
// to address is dropped rather than reported.
func (l *RegistryResolver) LookupName(ctx context.Context, address string) (string, error) {
	if err := validateAddress(address); err != nil {
		return "", err
	}
	address = strings.ToLower(address)

	v, err := l.record(ctx, ReverseName(address, CoinTypeETH), sigName)
	if err != nil {
		if isNoData(err) {
			return "", nil
		}
		return "", err
	}
	claim, _ := v.(string)
	if claim == "" {
		return "", nil
	}

	checked, err := l.ResolveAddress(ctx, claim)
	if err != nil {
		return "", err
	}
	if checked == nil || checked.Hex() != address {
		l.logger.Debug("legacy reverse claim does not match",
			zap.String("address", address),
			zap.String("name", claim),
		)
		return "", nil
	}
	return claim, nil
}
