package ensresolve

import (
	"context"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ResolverHandle is the resolver discovered for one name. It is bound to
// that exact name and must not be reused for another.
type ResolverHandle struct {
	// Address of the resolver contract.
	Address common.Address

	// Name the handle was discovered for.
	Name string

	// Node is NameHash(Name).
	Node common.Hash

	// Extended is true when the resolver implements resolve(bytes,bytes)
	// and must be called through it.
	Extended bool
}

// resolverInfo mirrors the requireResolver return tuple.
type resolverInfo struct {
	Name     []byte
	Offset   *big.Int
	Node     [32]byte
	Resolver common.Address
	Extended bool
}

// DiscoverResolver finds the active resolver for name with a single call to
// the universal resolver. Any failure, including no resolver anywhere in the
// hierarchy, yields nil.
func (r *Resolver) DiscoverResolver(ctx context.Context, name string) *ResolverHandle {
	handle, err := r.requireResolver(ctx, name)
	if err != nil {
		r.logger.Debug("resolver discovery failed",
			zap.String("name", name),
			zap.Error(err),
		)
		r.observe(kindDiscover, outcomeNone)
		return nil
	}
	if handle == nil {
		r.observe(kindDiscover, outcomeNone)
		return nil
	}
	r.observe(kindDiscover, outcomeFound)
	return handle
}

func (r *Resolver) requireResolver(ctx context.Context, name string) (*ResolverHandle, error) {
	if name == "" {
		return nil, nil
	}

	dnsName, err := DNSEncode(name)
	if err != nil {
		return nil, err
	}
	call, err := r.universal.Invoke(sigRequireResolver, dnsName)
	if err != nil {
		return nil, err
	}
	out, err := call.Execute(ctx, r.caller, r.revert)
	if err != nil {
		return nil, err
	}
	values, err := call.Decode(out)
	if err != nil {
		return nil, err
	}
	info, ok := toResolverInfo(values[0])
	if !ok {
		return nil, &DecodeError{Method: sigRequireResolver, Data: out, Err: fmt.Errorf("unexpected tuple %T", values[0])}
	}
	if info.Resolver == (common.Address{}) {
		return nil, nil
	}

	return &ResolverHandle{
		Address:  info.Resolver,
		Name:     name,
		Node:     NameHash(name),
		Extended: info.Extended,
	}, nil
}

// toResolverInfo converts the unpacked anonymous tuple struct. Tags are
// ignored by the conversion, so any struct with the same fields converts.
func toResolverInfo(v any) (resolverInfo, bool) {
	val := reflect.ValueOf(v)
	infoType := reflect.TypeOf(resolverInfo{})
	if !val.IsValid() || !val.Type().ConvertibleTo(infoType) {
		return resolverInfo{}, false
	}
	info, ok := val.Convert(infoType).Interface().(resolverInfo)
	return info, ok
}
