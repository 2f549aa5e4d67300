package ensresolve

import (
	"github.com/ethereum/go-ethereum/common"
)

// Well-known contract deployments, identical on mainnet and Sepolia.
var (
	// UniversalResolverAddress is the universal resolver proxy answering requireResolver.
	UniversalResolverAddress = common.HexToAddress("0xeEeEEEeE14D718C2B47D9923Deab1335E144EeEe")

	// RegistryAddress is the classic ENS registry used for legacy resolution.
	RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
)

// Function signatures used by the dispatcher.
const (
	sigRequireResolver = "requireResolver(bytes)"
	sigResolve         = "resolve(bytes,bytes)"
	sigName            = "name(bytes32)"
	sigAddr            = "addr(bytes32)"
	sigAddrCoinType    = "addr(bytes32,uint256)"
	sigRegistryLookup  = "resolver(bytes32)"
)

// resolverABIJSON covers the universal resolver, IExtendedResolver,
// INameResolver, IAddrResolver and IAddressResolver.
const resolverABIJSON = `[
	{
		"name": "requireResolver",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "name", "type": "bytes"}
		],
		"outputs": [
			{
				"name": "",
				"type": "tuple",
				"components": [
					{"name": "name", "type": "bytes"},
					{"name": "offset", "type": "uint256"},
					{"name": "node", "type": "bytes32"},
					{"name": "resolver", "type": "address"},
					{"name": "extended", "type": "bool"}
				]
			}
		]
	},
	{
		"name": "resolve",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "name", "type": "bytes"},
			{"name": "data", "type": "bytes"}
		],
		"outputs": [
			{"name": "", "type": "bytes"}
		]
	},
	{
		"name": "name",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "node", "type": "bytes32"}
		],
		"outputs": [
			{"name": "", "type": "string"}
		]
	},
	{
		"name": "addr",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "node", "type": "bytes32"}
		],
		"outputs": [
			{"name": "", "type": "address"}
		]
	},
	{
		"name": "addr",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "node", "type": "bytes32"},
			{"name": "coinType", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "bytes"}
		]
	}
]`

// registryABIJSON is the read side of the classic ENS registry.
const registryABIJSON = `[
	{
		"name": "resolver",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "node", "type": "bytes32"}
		],
		"outputs": [
			{"name": "", "type": "address"}
		]
	}
]`

var (
	resolverABI = MustParseABI(resolverABIJSON)
	registryABI = MustParseABI(registryABIJSON)
)
