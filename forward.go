package ensresolve

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ResolveAddress resolves name to its address record for coinType.
//
// A missing resolver, a missing record, the zero address and any failure
// while fetching the record all yield (nil, nil). Errors are returned only
// for CoinTypeLegacy lookups and when ctx is done.
//
// A name that already is a 0x-prefixed 20-byte hex address is returned as a
// CoinTypeETH record, in checksummed form, without consulting the registry.
func (r *Resolver) ResolveAddress(ctx context.Context, name string, coinType CoinType) (*AddressRecord, error) {
	if coinType == CoinTypeLegacy {
		if r.legacy == nil {
			return nil, ErrLegacyUnavailable
		}
		return r.legacy.ResolveAddress(ctx, name)
	}

	if isAddressLiteral(name) {
		return &AddressRecord{CoinType: CoinTypeETH, Raw: common.HexToAddress(name).Bytes()}, nil
	}

	handle := r.DiscoverResolver(ctx, name)
	if handle == nil {
		r.observe(kindForward, outcomeNone)
		return nil, nil
	}

	record, err := r.fetchAddress(ctx, handle, coinType)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Debug("address lookup failed",
			zap.String("name", name),
			zap.Uint64("coinType", uint64(coinType)),
			zap.Error(err),
		)
		r.observe(kindForward, outcomeError)
		return nil, nil
	}
	if record.IsEmpty() {
		r.observe(kindForward, outcomeNone)
		return nil, nil
	}

	r.observe(kindForward, outcomeFound)
	return record, nil
}

// fetchAddress reads the address record of a discovered resolver: addr(node)
// for ETH, addr(node, coinType) otherwise.
func (r *Resolver) fetchAddress(ctx context.Context, h *ResolverHandle, coinType CoinType) (*AddressRecord, error) {
	if coinType == CoinTypeETH {
		v, err := r.callResolver(ctx, h, sigAddr)
		if err != nil {
			return nil, err
		}
		addr, ok := v.(common.Address)
		if !ok {
			return nil, &DecodeError{Method: sigAddr, Err: fmt.Errorf("unexpected %T", v)}
		}
		return DecodeAddress(addr.Bytes(), coinType)
	}

	v, err := r.callResolver(ctx, h, sigAddrCoinType, coinType)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, &DecodeError{Method: sigAddrCoinType, Err: fmt.Errorf("unexpected %T", v)}
	}
	return DecodeAddress(raw, coinType)
}
