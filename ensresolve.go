// Package ensresolve resolves ENS names to addresses and addresses back to
// names, following ENSIP-10 (wildcard resolution) and ENSIP-19 (multi-chain
// primary names).
//
// # Basic Usage
//
// Create a Resolver on top of any go-ethereum ContractCaller:
//
//	client, err := ethclient.Dial("https://eth.drpc.org")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := ensresolve.New(client)
//
//	// name -> address
//	rec, err := r.ResolveAddress(ctx, "raffy.eth", ensresolve.CoinTypeETH)
//	if rec != nil {
//	    fmt.Println(rec) // 0x51050ec063d393217B436747617aD1C2285Aeeee
//	}
//
//	// address -> name, verified by forward resolution
//	name, err := r.LookupName(ctx, "0x51050ec063d393217B436747617aD1C2285Aeeee", ensresolve.CoinTypeETH)
//
// # Resolution
//
// The resolver of a name is found with one requireResolver call to the
// universal resolver, which walks the name hierarchy on chain and reports
// whether the resolver is extended (implements resolve(bytes,bytes)).
// Records of extended resolvers are read by wrapping the record call in
// resolve(dnsName, call); other resolvers are called directly. Every call
// may be answered through EIP-3668 off-chain lookups, see package ccip.
//
// # Absence vs. Failure
//
// A missing resolver, record or reverse claim is reported as a nil record or
// empty name, never as an error. ResolveAddress swallows every failure after
// argument handling. LookupName distinguishes:
//
//   - *ArgumentError: the address is not a non-empty 0x hex string
//   - *IntegrityError: the claimed name resolves to another address
//   - any other error: a transport failure, returned unchanged
//
// # Coin Types
//
// Coin types follow SLIP-44 and ENSIP-11. CoinTypeETH (60) and values in
// [2^31, 2^32) are EVM chains whose records are 20-byte addresses;
// CoinTypeDefault (2^31) names the default EVM chain. All other coin types
// carry opaque bytes.
//
// # References
//
//   - https://docs.ens.domains/ensip/10 (wildcard resolution)
//   - https://docs.ens.domains/ensip/11 (EVM coin types)
//   - https://docs.ens.domains/ensip/19 (multichain primary names)
//   - https://eips.ethereum.org/EIPS/eip-3668 (CCIP-Read)
package ensresolve
