package ensresolve

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressRecord is an address record for a coin type. For EVM coin types Raw
// is a 20-byte address, otherwise chain specific bytes.
type AddressRecord struct {
	CoinType CoinType
	Raw      []byte
}

// Address returns the record as an EVM address.
func (r *AddressRecord) Address() common.Address {
	return common.BytesToAddress(r.Raw)
}

// IsEVM reports whether the record holds an EVM address.
func (r *AddressRecord) IsEVM() bool {
	return IsEVMCoinType(r.CoinType) && len(r.Raw) == common.AddressLength
}

// IsEmpty reports whether the record holds no address: no bytes at all, or
// the zero address for EVM coin types. Non-EVM bytes are opaque, so a
// non-empty record of zero bytes is kept.
func (r *AddressRecord) IsEmpty() bool {
	if len(r.Raw) == 0 {
		return true
	}
	if !IsEVMCoinType(r.CoinType) {
		return false
	}
	for _, b := range r.Raw {
		if b != 0 {
			return false
		}
	}
	return true
}

// Hex returns the lowercase 0x-prefixed hex of the raw record.
func (r *AddressRecord) Hex() string {
	return "0x" + hex.EncodeToString(r.Raw)
}

// String returns the EIP-55 checksummed address for EVM records and the
// plain hex encoding otherwise.
func (r *AddressRecord) String() string {
	if r.IsEVM() {
		return r.Address().Hex()
	}
	return r.Hex()
}

// Equal compares two records by coin type and bytes.
func (r *AddressRecord) Equal(o *AddressRecord) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.CoinType == o.CoinType && bytes.Equal(r.Raw, o.Raw)
}

// DecodeAddress interprets raw record bytes for a coin type.
//
// ETH records are taken as the 20-byte address. Other EVM coin types treat an
// empty record as the zero address; anything but 20 bytes is an error.
// Non-EVM records are returned unchanged.
func DecodeAddress(raw []byte, coinType CoinType) (*AddressRecord, error) {
	switch {
	case coinType == CoinTypeETH:
		return &AddressRecord{CoinType: coinType, Raw: common.BytesToAddress(raw).Bytes()}, nil
	case IsEVMCoinType(coinType):
		if len(raw) == 0 {
			return &AddressRecord{CoinType: coinType, Raw: make([]byte, common.AddressLength)}, nil
		}
		if len(raw) != common.AddressLength {
			return nil, &AddressLengthError{CoinType: coinType, Length: len(raw)}
		}
		return &AddressRecord{CoinType: coinType, Raw: common.CopyBytes(raw)}, nil
	default:
		return &AddressRecord{CoinType: coinType, Raw: common.CopyBytes(raw)}, nil
	}
}

// isAddressLiteral reports whether s is a 0x-prefixed 20-byte hex address.
func isAddressLiteral(s string) bool {
	return len(s) == 2+2*common.AddressLength && has0xPrefix(s) && common.IsHexAddress(s)
}

// isHexString reports whether s is "0x" followed by hex digits of any length.
func isHexString(s string) bool {
	if !has0xPrefix(s) {
		return false
	}
	for _, c := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && s[1] == 'x'
}
