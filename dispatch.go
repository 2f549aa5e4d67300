package ensresolve

import (
	"context"
	"fmt"
)

// callResolver performs one record lookup against a discovered resolver.
//
// Extended resolvers receive resolve(dnsName, signature(node, args...)) and
// the returned bytes are decoded as the inner method's outputs. Other
// resolvers are called with signature(node, args...) directly. Both paths
// run through the off-chain read caller.
func (r *Resolver) callResolver(ctx context.Context, h *ResolverHandle, signature string, args ...any) (any, error) {
	target := r.records.At(h.Address)

	inner, err := target.Invoke(signature, append([]any{h.Node}, args...)...)
	if err != nil {
		return nil, err
	}

	if !h.Extended {
		out, err := inner.Execute(ctx, r.caller, r.revert)
		if err != nil {
			return nil, err
		}
		return inner.Result(out)
	}

	dnsName, err := DNSEncode(h.Name)
	if err != nil {
		return nil, err
	}
	outer, err := target.Invoke(sigResolve, dnsName, inner.Data())
	if err != nil {
		return nil, err
	}
	out, err := outer.Execute(ctx, r.caller, r.revert)
	if err != nil {
		return nil, err
	}
	wrapped, err := outer.Result(out)
	if err != nil {
		return nil, err
	}
	raw, ok := wrapped.([]byte)
	if !ok {
		return nil, &DecodeError{Method: sigResolve, Data: out, Err: fmt.Errorf("unexpected %T", wrapped)}
	}
	return inner.Result(raw)
}
