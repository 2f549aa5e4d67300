package ccip

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const lookupABIJSON = `[
	{
		"name": "OffchainLookup",
		"type": "error",
		"inputs": [
			{"name": "sender", "type": "address"},
			{"name": "urls", "type": "string[]"},
			{"name": "callData", "type": "bytes"},
			{"name": "callbackFunction", "type": "bytes4"},
			{"name": "extraData", "type": "bytes"}
		]
	}
]`

var (
	lookupError    abi.Error
	callbackInputs abi.Arguments
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(lookupABIJSON))
	if err != nil {
		panic(err)
	}
	var ok bool
	if lookupError, ok = parsed.Errors["OffchainLookup"]; !ok {
		panic("ccip: OffchainLookup missing from ABI")
	}

	bytesTy, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	callbackInputs = abi.Arguments{{Type: bytesTy}, {Type: bytesTy}}
}

// OffchainLookupSelector returns the 4-byte selector of
// OffchainLookup(address,string[],bytes,bytes4,bytes).
func OffchainLookupSelector() [4]byte {
	var sel [4]byte
	copy(sel[:], lookupError.ID[:4])
	return sel
}

// OffchainLookup is the decoded EIP-3668 revert.
type OffchainLookup struct {
	Sender           common.Address
	URLs             []string
	CallData         []byte
	CallbackFunction [4]byte
	ExtraData        []byte
}

// ParseOffchainLookup decodes revert data. It returns ErrNotOffchainLookup
// when the selector does not match.
func ParseOffchainLookup(data []byte) (*OffchainLookup, error) {
	sel := OffchainLookupSelector()
	if len(data) < 4 || !bytes.Equal(data[:4], sel[:]) {
		return nil, ErrNotOffchainLookup
	}

	values, err := lookupError.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("ccip: decode OffchainLookup: %w", err)
	}
	if len(values) != 5 {
		return nil, fmt.Errorf("ccip: decode OffchainLookup: %d values", len(values))
	}

	lookup := &OffchainLookup{}
	var ok [5]bool
	lookup.Sender, ok[0] = values[0].(common.Address)
	lookup.URLs, ok[1] = values[1].([]string)
	lookup.CallData, ok[2] = values[2].([]byte)
	lookup.CallbackFunction, ok[3] = values[3].([4]byte)
	lookup.ExtraData, ok[4] = values[4].([]byte)
	for i, good := range ok {
		if !good {
			return nil, fmt.Errorf("ccip: decode OffchainLookup: field %d has type %T", i, values[i])
		}
	}
	return lookup, nil
}

// Encode packs the lookup as revert data.
func (l *OffchainLookup) Encode() ([]byte, error) {
	packed, err := lookupError.Inputs.Pack(l.Sender, l.URLs, l.CallData, l.CallbackFunction, l.ExtraData)
	if err != nil {
		return nil, err
	}
	sel := OffchainLookupSelector()
	return append(sel[:], packed...), nil
}

// Callback builds the calldata for callbackFunction(response, extraData).
func (l *OffchainLookup) Callback(response []byte) ([]byte, error) {
	packed, err := callbackInputs.Pack(response, l.ExtraData)
	if err != nil {
		return nil, err
	}
	return append(l.CallbackFunction[:], packed...), nil
}

// DecodeCallback splits callback calldata into its response and extraData.
func DecodeCallback(data []byte) (response, extraData []byte, err error) {
	if len(data) < 4 {
		return nil, nil, errors.New("ccip: callback data too short")
	}
	values, err := callbackInputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return values[0].([]byte), values[1].([]byte), nil
}
