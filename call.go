package ensresolve

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// RevertDecoder extracts the revert payload from a transport error.
// ok is false when err does not describe a reverted call.
type RevertDecoder func(err error) (data []byte, ok bool)

// Call is a packed, ready to send contract call.
// Call is immutable once created.
type Call struct {
	contract *Contract
	method   abi.Method
	args     []any
	data     []byte
}

// newCall packs the arguments against the method inputs.
func newCall(contract *Contract, method abi.Method, rawArgs []any) (*Call, error) {
	args := make([]any, len(rawArgs))
	for i, arg := range rawArgs {
		args[i] = convertToABIType(arg)
	}

	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, &EncodingError{Value: method.Sig, Err: err}
	}

	data := make([]byte, 0, len(method.ID)+len(packed))
	data = append(data, method.ID...)
	data = append(data, packed...)

	return &Call{
		contract: contract,
		method:   method,
		args:     args,
		data:     data,
	}, nil
}

// convertToABIType handles common Go integer conversions for uint256 inputs.
func convertToABIType(value any) any {
	switch v := value.(type) {
	case CoinType:
		return new(big.Int).SetUint64(uint64(v))
	case int:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	case uint64:
		return new(big.Int).SetUint64(v)
	default:
		return v
	}
}

// Contract returns the target contract for this call.
func (c *Call) Contract() *Contract {
	return c.contract
}

// Method returns the ABI method for this call.
func (c *Call) Method() abi.Method {
	return c.method
}

// Args returns the packed arguments.
func (c *Call) Args() []any {
	return c.args
}

// Data returns selector and encoded arguments.
func (c *Call) Data() []byte {
	return c.data
}

// Selector returns the 4-byte function selector.
func (c *Call) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], c.method.ID[:4])
	return sel
}

// Msg returns the call message for the transport.
func (c *Call) Msg() ethereum.CallMsg {
	to := c.contract.address
	return ethereum.CallMsg{To: &to, Data: c.data}
}

// Execute sends the call at the latest block. Reverts recognised by revert
// are returned as *CallError; every other transport error is returned unchanged.
func (c *Call) Execute(ctx context.Context, caller ethereum.ContractCaller, revert RevertDecoder) ([]byte, error) {
	out, err := caller.CallContract(ctx, c.Msg(), nil)
	if err != nil {
		if data, ok := revert(err); ok {
			return nil, &CallError{
				Contract: c.contract.address,
				Method:   c.method.Sig,
				Data:     data,
				Err:      err,
			}
		}
		return nil, err
	}
	return out, nil
}

// Decode unpacks call output. Empty output for a method with outputs is
// ErrEmptyResult.
func (c *Call) Decode(out []byte) ([]any, error) {
	return decodeOutputs(c.method, out)
}

// Result decodes call output, unwrapping a single return value.
func (c *Call) Result(out []byte) (any, error) {
	values, err := c.Decode(out)
	if err != nil {
		return nil, err
	}
	if len(values) == 1 {
		return values[0], nil
	}
	return values, nil
}

func decodeOutputs(method abi.Method, out []byte) ([]any, error) {
	if len(method.Outputs) > 0 && len(out) == 0 {
		return nil, &DecodeError{Method: method.Sig, Data: out, Err: ErrEmptyResult}
	}
	values, err := method.Outputs.Unpack(out)
	if err != nil {
		return nil, &DecodeError{Method: method.Sig, Data: out, Err: err}
	}
	return values, nil
}
