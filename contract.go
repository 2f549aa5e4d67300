package ensresolve

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract wraps a deployed contract for read-only calls.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// NewContract creates a Contract wrapper.
func NewContract(address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
	}
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Method returns the ABI method with the given signature, e.g.
// "addr(bytes32,uint256)". Overloaded methods are told apart by signature
// rather than by go-ethereum's generated names ("addr", "addr0").
func (c *Contract) Method(signature string) (abi.Method, error) {
	return methodBySignature(c.address, c.abi, signature)
}

// HasMethod returns true if the contract has a method with the given signature.
func (c *Contract) HasMethod(signature string) bool {
	_, err := c.Method(signature)
	return err == nil
}

// Invoke creates a Call for the method with the given signature.
func (c *Contract) Invoke(signature string, args ...any) (*Call, error) {
	method, err := c.Method(signature)
	if err != nil {
		return nil, err
	}
	return newCall(c, method, args)
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(signature string, args ...any) *Call {
	call, err := c.Invoke(signature, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// At returns a wrapper for the same ABI deployed at another address.
func (c *Contract) At(address common.Address) *Contract {
	return NewContract(address, c.abi)
}

func methodBySignature(address common.Address, contractABI abi.ABI, signature string) (abi.Method, error) {
	for _, m := range contractABI.Methods {
		if m.Sig == signature {
			return m, nil
		}
	}
	return abi.Method{}, &MethodNotFoundError{Contract: address, Signature: signature}
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
