package ensresolve

import (
	"fmt"
	"strconv"
	"strings"
)

// CoinType identifies the chain or address namespace of an address record.
type CoinType uint64

const (
	// CoinTypeETH is the SLIP-44 coin type of Ethereum mainnet.
	CoinTypeETH CoinType = 60

	// CoinTypeDefault marks the default EVM chain (ENSIP-19).
	CoinTypeDefault CoinType = 1 << 31

	// CoinTypeLegacy routes a lookup to the configured LegacyResolver.
	// It lies outside every real coin type range.
	CoinTypeLegacy CoinType = 1<<64 - 1

	// evmCoinTypeLimit is the exclusive upper bound of ENSIP-11 coin types.
	evmCoinTypeLimit CoinType = 1 << 32
)

// IsEVMCoinType reports whether c addresses an EVM chain: ETH itself or an
// ENSIP-11 coin type (a 31-bit chain id with the high bit set).
// Values >= 2^32 are not EVM.
func IsEVMCoinType(c CoinType) bool {
	return c == CoinTypeETH || (c >= CoinTypeDefault && c < evmCoinTypeLimit)
}

// CoinTypeFromChainID returns the ENSIP-11 coin type for an EVM chain id.
// Chain 1 maps to CoinTypeETH.
func CoinTypeFromChainID(chainID uint64) (CoinType, error) {
	if chainID == 1 {
		return CoinTypeETH, nil
	}
	if chainID >= uint64(CoinTypeDefault) {
		return 0, fmt.Errorf("%w: chain id %d exceeds 31 bits", ErrInvalidArgument, chainID)
	}
	return CoinTypeDefault | CoinType(chainID), nil
}

// ChainIDFromCoinType is the inverse of CoinTypeFromChainID. The default
// marker maps to chain id 0.
func ChainIDFromCoinType(c CoinType) (uint64, bool) {
	if c == CoinTypeETH {
		return 1, true
	}
	if !IsEVMCoinType(c) {
		return 0, false
	}
	return uint64(c ^ CoinTypeDefault), true
}

// ParseCoinType parses a decimal or 0x-hex coin type, or one of the
// keywords "eth", "default" and "legacy".
func ParseCoinType(s string) (CoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "eth":
		return CoinTypeETH, nil
	case "default":
		return CoinTypeDefault, nil
	case "legacy", "old":
		return CoinTypeLegacy, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, &ArgumentError{Argument: "coinType", Value: s, Reason: "not an unsigned integer"}
	}
	return CoinType(v), nil
}

// reverseSuffix returns the middle label of a reverse name.
func (c CoinType) reverseSuffix() string {
	switch c {
	case CoinTypeETH:
		return "addr"
	case CoinTypeDefault:
		return "default"
	default:
		return strconv.FormatUint(uint64(c), 16)
	}
}

// ReverseName returns the ENSIP-19 reverse name of an address:
// "<hex>.<addr|default|coin type in hex>.reverse". The address is lower-cased
// and its 0x prefix dropped.
func ReverseName(address string, coinType CoinType) string {
	hex := strings.ToLower(address)
	hex = strings.TrimPrefix(hex, "0x")
	return hex + "." + coinType.reverseSuffix() + ".reverse"
}
