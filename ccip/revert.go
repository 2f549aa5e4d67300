package ccip

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertData extracts the revert payload of a failed eth_call as reported by
// go-ethereum's RPC client. A revert without payload returns (nil, true).
func RevertData(err error) ([]byte, bool) {
	if err == nil {
		return nil, false
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		switch v := dataErr.ErrorData().(type) {
		case string:
			if data, decodeErr := hexutil.Decode(v); decodeErr == nil {
				return data, true
			}
		case []byte:
			return v, true
		}
	}

	if strings.Contains(err.Error(), "execution reverted") {
		return nil, true
	}
	return nil, false
}

// RevertError is a reverted call with its payload. It implements
// rpc.DataError the way go-ethereum's client reports reverts, so
// RevertData recognises it.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string {
	return "execution reverted"
}

// ErrorCode returns the JSON-RPC code geth uses for reverts.
func (e *RevertError) ErrorCode() int {
	return 3
}

// ErrorData returns the 0x-hex revert payload.
func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(e.Data)
}
