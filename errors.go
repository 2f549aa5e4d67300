package ensresolve

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidArgument indicates malformed caller input.
	ErrInvalidArgument = errors.New("ensresolve: invalid argument")

	// ErrDataIntegrity indicates a reverse record whose name does not resolve
	// back to the address it was stored for.
	ErrDataIntegrity = errors.New("ensresolve: address->name->address mismatch")

	// ErrEmptyResult indicates a call returned no data where outputs were expected.
	ErrEmptyResult = errors.New("ensresolve: empty call result")

	// ErrLabelTooLong indicates a label exceeds 255 bytes and cannot be DNS encoded.
	ErrLabelTooLong = errors.New("ensresolve: label exceeds 255 bytes")

	// ErrLegacyUnavailable indicates legacy passthrough was requested without a legacy resolver.
	ErrLegacyUnavailable = errors.New("ensresolve: legacy resolution not configured")
)

// MethodNotFoundError indicates the ABI doesn't have the requested method signature.
type MethodNotFoundError struct {
	Contract  common.Address
	Signature string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("ensresolve: method %q not found for contract %s", e.Signature, e.Contract.Hex())
}

// ArgumentError indicates an issue with a caller supplied argument.
type ArgumentError struct {
	Argument string
	Value    string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ensresolve: invalid %s %q: %s", e.Argument, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// EncodingError indicates a failure while encoding a name or call.
type EncodingError struct {
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("ensresolve: encoding error for %v: %v", e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// DecodeError indicates call output that could not be decoded.
type DecodeError struct {
	Method string
	Data   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ensresolve: decode %s output (%d bytes): %v", e.Method, len(e.Data), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CallError indicates a contract call that reverted. Data holds the revert
// payload, which may be empty.
type CallError struct {
	Contract common.Address
	Method   string
	Data     []byte
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("ensresolve: call %s on %s reverted: %v", e.Method, e.Contract.Hex(), e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// AddressLengthError indicates an EVM address record that is not 20 bytes long.
type AddressLengthError struct {
	CoinType CoinType
	Length   int
}

func (e *AddressLengthError) Error() string {
	return fmt.Sprintf("ensresolve: coin type %d: address record has %d bytes, want 20", e.CoinType, e.Length)
}

// IntegrityError is returned when a verified reverse claim resolves to a
// different address.
type IntegrityError struct {
	Address string
	Name    string
	Checked string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v: %s claims %q which resolves to %s", ErrDataIntegrity, e.Address, e.Name, e.Checked)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDataIntegrity
}

// isNoData reports whether err means a record is absent rather than broken:
// an empty result or a reverted call.
func isNoData(err error) bool {
	if errors.Is(err, ErrEmptyResult) {
		return true
	}
	var callErr *CallError
	return errors.As(err, &callErr)
}
