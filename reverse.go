package ensresolve

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// LookupName returns the verified primary name of address for coinType.
//
// The claim stored under the reverse name is only returned when it is
// normalized and forward-resolves back to address. A missing or unverifiable
// claim yields ("", nil). A claim that resolves to a different address is an
// *IntegrityError. Malformed addresses are an *ArgumentError. Transport
// failures are returned unchanged.
func (r *Resolver) LookupName(ctx context.Context, address string, coinType CoinType) (string, error) {
	if coinType == CoinTypeLegacy {
		if r.legacy == nil {
			return "", ErrLegacyUnavailable
		}
		return r.legacy.LookupName(ctx, address)
	}

	if err := validateAddress(address); err != nil {
		return "", err
	}
	address = strings.ToLower(address)
	reverseName := ReverseName(address, coinType)

	rev := r.DiscoverResolver(ctx, reverseName)
	if rev == nil {
		r.observe(kindReverse, outcomeNone)
		return "", nil
	}

	v, err := r.callResolver(ctx, rev, sigName)
	if err != nil {
		if isNoData(err) {
			r.observe(kindReverse, outcomeNone)
			return "", nil
		}
		r.observe(kindReverse, outcomeError)
		return "", err
	}
	claim, _ := v.(string)
	if claim == "" {
		r.observe(kindReverse, outcomeNone)
		return "", nil
	}

	if !r.isNormalized(claim) {
		r.observe(kindReverse, outcomeNone)
		return "", nil
	}

	fwd := r.DiscoverResolver(ctx, claim)
	if fwd == nil {
		r.observe(kindReverse, outcomeNone)
		return "", nil
	}
	checked, err := r.fetchAddress(ctx, fwd, coinType)
	if err != nil {
		if isNoData(err) || isBadRecord(err) {
			r.logger.Debug("reverse claim has no forward record",
				zap.String("address", address),
				zap.String("name", claim),
				zap.Error(err),
			)
			r.observe(kindReverse, outcomeNone)
			return "", nil
		}
		r.observe(kindReverse, outcomeError)
		return "", err
	}
	if checked.IsEmpty() {
		r.observe(kindReverse, outcomeNone)
		return "", nil
	}

	if checked.Hex() != address {
		r.observe(kindReverse, outcomeMismatch)
		return "", &IntegrityError{Address: address, Name: claim, Checked: checked.String()}
	}

	r.observe(kindReverse, outcomeFound)
	return claim, nil
}

// isNormalized reports whether name equals its normalized form.
func (r *Resolver) isNormalized(name string) bool {
	norm, err := r.normalizer.Normalize(name)
	if err != nil || norm != name {
		r.logger.Debug("reverse claim is not normalized",
			zap.String("name", name),
			zap.String("normalized", norm),
			zap.Error(err),
		)
		return false
	}
	return true
}

// validateAddress accepts a 0x-prefixed hex string with at least one digit.
func validateAddress(address string) error {
	if len(address) <= 2 || !isHexString(address) {
		return &ArgumentError{Argument: "address", Value: address, Reason: "must be a non-empty hex string"}
	}
	return nil
}

// isBadRecord reports whether err means the record exists but does not hold
// a usable address.
func isBadRecord(err error) bool {
	var lengthErr *AddressLengthError
	var decodeErr *DecodeError
	return errors.As(err, &lengthErr) || errors.As(err, &decodeErr)
}
