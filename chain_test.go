package ensresolve

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/branched-services/go-ensresolve/ccip"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Revert payloads of the universal resolver.
var (
	errResolverNotFound    = []byte{0x77, 0x20, 0x9f, 0xe8}
	errResolverNotExtended = []byte{0x5f, 0xe9, 0xa5, 0xdf}
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")

// fakeChain is an in-memory ethereum.ContractCaller. Addresses without a
// handler behave like accounts without code and return no data.
type fakeChain struct {
	mu       sync.Mutex
	handlers map[common.Address]func(data []byte) ([]byte, error)
	calls    []ethereum.CallMsg
}

func newFakeChain() *fakeChain {
	return &fakeChain{handlers: make(map[common.Address]func([]byte) ([]byte, error))}
}

func (c *fakeChain) register(addr common.Address, h func([]byte) ([]byte, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[addr] = h
}

func (c *fakeChain) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.calls = append(c.calls, msg)
	h := c.handlers[*msg.To]
	c.mu.Unlock()

	if h == nil {
		return nil, nil
	}
	return h(msg.Data)
}

func (c *fakeChain) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// dnsDecode reverses DNSEncode.
func dnsDecode(b []byte) string {
	var labels []string
	for i := 0; i < len(b) && b[i] != 0; {
		n := int(b[i])
		labels = append(labels, string(b[i+1:i+1+n]))
		i += 1 + n
	}
	return strings.Join(labels, ".")
}

type universalEntry struct {
	resolver common.Address
	extended bool
}

// fakeUniversal answers requireResolver by walking up the name hierarchy.
type fakeUniversal struct {
	entries map[string]universalEntry
}

func (u *fakeUniversal) set(name string, resolver common.Address, extended bool) {
	u.entries[name] = universalEntry{resolver: resolver, extended: extended}
}

func (u *fakeUniversal) handle(data []byte) ([]byte, error) {
	method, err := resolverABI.MethodById(data[:4])
	if err != nil || method.Sig != sigRequireResolver {
		return nil, &ccip.RevertError{}
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	name := dnsDecode(args[0].([]byte))

	offset := 0
	for n := name; n != ""; {
		if e, ok := u.entries[n]; ok {
			if n != name && !e.extended {
				return nil, &ccip.RevertError{Data: errResolverNotExtended}
			}
			encoded, _ := DNSEncode(n)
			return method.Outputs.Pack(resolverInfo{
				Name:     encoded,
				Offset:   big.NewInt(int64(offset)),
				Node:     NameHash(n),
				Resolver: e.resolver,
				Extended: e.extended,
			})
		}
		i := strings.IndexByte(n, '.')
		if i < 0 {
			break
		}
		offset += i + 1
		n = n[i+1:]
	}
	return nil, &ccip.RevertError{Data: errResolverNotFound}
}

// fakeResolver holds records keyed by node.
type fakeResolver struct {
	extended bool
	addrs    map[common.Hash]common.Address
	coins    map[common.Hash]map[CoinType][]byte
	names    map[common.Hash]string
	failures map[string]error
}

func newFakeResolver(extended bool) *fakeResolver {
	return &fakeResolver{
		extended: extended,
		addrs:    make(map[common.Hash]common.Address),
		coins:    make(map[common.Hash]map[CoinType][]byte),
		names:    make(map[common.Hash]string),
		failures: make(map[string]error),
	}
}

func (r *fakeResolver) setAddr(name string, coinType CoinType, raw []byte) {
	node := NameHash(name)
	if coinType == CoinTypeETH {
		r.addrs[node] = common.BytesToAddress(raw)
		return
	}
	if r.coins[node] == nil {
		r.coins[node] = make(map[CoinType][]byte)
	}
	r.coins[node][coinType] = raw
}

func (r *fakeResolver) setName(name, claim string) {
	r.names[NameHash(name)] = claim
}

func (r *fakeResolver) handle(data []byte) ([]byte, error) {
	method, err := resolverABI.MethodById(data[:4])
	if err != nil {
		return nil, &ccip.RevertError{}
	}
	if err, ok := r.failures[method.Sig]; ok {
		return nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}

	switch method.Sig {
	case sigResolve:
		if !r.extended {
			return nil, &ccip.RevertError{}
		}
		out, err := r.handle(args[1].([]byte))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(out)
	case sigAddr:
		node := common.Hash(args[0].([32]byte))
		return method.Outputs.Pack(r.addrs[node])
	case sigAddrCoinType:
		node := common.Hash(args[0].([32]byte))
		coinType := CoinType(args[1].(*big.Int).Uint64())
		return method.Outputs.Pack(r.coins[node][coinType])
	case sigName:
		node := common.Hash(args[0].([32]byte))
		return method.Outputs.Pack(r.names[node])
	}
	return nil, fmt.Errorf("unexpected method %s", method.Sig)
}

var (
	raffyAddr    = common.HexToAddress("0x51050ec063d393217B436747617aD1C2285Aeeee")
	liarAddr     = common.HexToAddress("0x000000000000000000000000000000000000bEEF")
	unnormAddr   = common.HexToAddress("0x000000000000000000000000000000000000CaFe")
	orphanAddr   = common.HexToAddress("0x00000000000000000000000000000000DeaDBeef")
	brokenAddr   = common.HexToAddress("0x000000000000000000000000000000000000b0b0")
	unsetAddr    = common.HexToAddress("0x000000000000000000000000000000000000F00d")
	underAddr    = common.HexToAddress("0x000000000000000000000000000000000000a11e")
	btcRecord    = common.FromHex("0x76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac")
	baseCoinType = CoinTypeDefault | 8453

	publicResolverAddr   = common.HexToAddress("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63")
	wildcardResolverAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	reverseResolverAddr  = common.HexToAddress("0x2222222222222222222222222222222222222222")
	brokenResolverAddr   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	emptyResolverAddr    = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

// testWorld is a small ENS deployment:
//
//	raffy.eth       public resolver, ETH/default/base/BTC/LTC records
//	unnorm_         public resolver, ETH record, breaks the underscore rule
//	zero.raffy.eth  public resolver, no records
//	wild.eth        extended resolver answering for every subname
//	broken.eth      resolver whose calls fail at the transport
//	empty.eth       resolver address without code
//	*.addr.reverse / *.default.reverse reverse claims
type testWorld struct {
	chain     *fakeChain
	universal *fakeUniversal
	public    *fakeResolver
	wildcard  *fakeResolver
	reverse   *fakeResolver
	broken    *fakeResolver
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()

	w := &testWorld{
		chain:     newFakeChain(),
		universal: &fakeUniversal{entries: make(map[string]universalEntry)},
		public:    newFakeResolver(false),
		wildcard:  newFakeResolver(true),
		reverse:   newFakeResolver(false),
		broken:    newFakeResolver(false),
	}

	w.universal.set("raffy.eth", publicResolverAddr, false)
	w.universal.set("zero.raffy.eth", publicResolverAddr, false)
	w.universal.set("wild.eth", wildcardResolverAddr, true)
	w.universal.set("broken.eth", brokenResolverAddr, false)
	w.universal.set("empty.eth", emptyResolverAddr, false)
	w.universal.set("Raffy.eth", publicResolverAddr, false)
	w.universal.set("unnorm_", publicResolverAddr, false)

	w.public.setAddr("raffy.eth", CoinTypeETH, raffyAddr.Bytes())
	w.public.setAddr("raffy.eth", CoinTypeDefault, raffyAddr.Bytes())
	w.public.setAddr("raffy.eth", baseCoinType, raffyAddr.Bytes())
	w.public.setAddr("raffy.eth", 0, btcRecord)
	w.public.setAddr("raffy.eth", 2, []byte{0, 0, 0, 0})
	w.public.setAddr("unnorm_", CoinTypeETH, underAddr.Bytes())
	w.public.setAddr("Raffy.eth", CoinTypeETH, unnormAddr.Bytes())

	w.wildcard.setAddr("sub.wild.eth", CoinTypeETH, raffyAddr.Bytes())
	w.wildcard.setAddr("sub.wild.eth", CoinTypeDefault, raffyAddr.Bytes())
	w.wildcard.setAddr("wild.eth", CoinTypeETH, raffyAddr.Bytes())

	w.broken.failures[sigAddr] = errConnRefused
	w.broken.failures[sigName] = errConnRefused

	for _, tc := range []struct {
		addr     common.Address
		coinType CoinType
		claim    string
	}{
		{raffyAddr, CoinTypeETH, "raffy.eth"},
		{raffyAddr, CoinTypeDefault, "raffy.eth"},
		{raffyAddr, baseCoinType, "raffy.eth"},
		{liarAddr, CoinTypeETH, "raffy.eth"},
		{unnormAddr, CoinTypeETH, "Raffy.eth"},
		{underAddr, CoinTypeETH, "unnorm_"},
		{unsetAddr, CoinTypeETH, "zero.raffy.eth"},
		{brokenAddr, CoinTypeETH, "broken.eth"},
	} {
		reverseName := ReverseName(tc.addr.Hex(), tc.coinType)
		w.universal.set(reverseName, reverseResolverAddr, false)
		w.reverse.setName(reverseName, tc.claim)
	}

	w.chain.register(UniversalResolverAddress, w.universal.handle)
	w.chain.register(publicResolverAddr, w.public.handle)
	w.chain.register(wildcardResolverAddr, w.wildcard.handle)
	w.chain.register(reverseResolverAddr, w.reverse.handle)
	w.chain.register(brokenResolverAddr, w.broken.handle)

	return w
}

func (w *testWorld) resolver(opts ...Option) *Resolver {
	return New(w.chain, opts...)
}
