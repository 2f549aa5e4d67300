package ccip

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func testLookup() *OffchainLookup {
	return &OffchainLookup{
		Sender:           common.HexToAddress("0x1111111111111111111111111111111111111111"),
		URLs:             []string{"https://a.example/{sender}/{data}.json", "https://b.example/"},
		CallData:         []byte{0xca, 0xfe},
		CallbackFunction: [4]byte{0xde, 0xad, 0xbe, 0xef},
		ExtraData:        []byte{0x01, 0x02, 0x03},
	}
}

func TestOffchainLookupSelector(t *testing.T) {
	sel := OffchainLookupSelector()
	if want := hexutil.MustDecode("0x556f1830"); !bytes.Equal(sel[:], want) {
		t.Errorf("Expected selector %x, got %x", want, sel)
	}
}

func TestParseOffchainLookup(t *testing.T) {
	t.Run("encode then parse", func(t *testing.T) {
		want := testLookup()
		data, err := want.Encode()
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		got, err := ParseOffchainLookup(data)
		if err != nil {
			t.Fatalf("ParseOffchainLookup failed: %v", err)
		}
		if got.Sender != want.Sender {
			t.Errorf("Expected sender %s, got %s", want.Sender.Hex(), got.Sender.Hex())
		}
		if len(got.URLs) != 2 || got.URLs[0] != want.URLs[0] || got.URLs[1] != want.URLs[1] {
			t.Errorf("Expected urls %v, got %v", want.URLs, got.URLs)
		}
		if !bytes.Equal(got.CallData, want.CallData) || !bytes.Equal(got.ExtraData, want.ExtraData) {
			t.Error("Calldata or extraData differ")
		}
		if got.CallbackFunction != want.CallbackFunction {
			t.Errorf("Expected callback %x, got %x", want.CallbackFunction, got.CallbackFunction)
		}
	})

	t.Run("other revert", func(t *testing.T) {
		for _, data := range [][]byte{nil, {1, 2}, {1, 2, 3, 4, 5}} {
			if _, err := ParseOffchainLookup(data); !errors.Is(err, ErrNotOffchainLookup) {
				t.Errorf("ParseOffchainLookup(%x): expected ErrNotOffchainLookup, got %v", data, err)
			}
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		sel := OffchainLookupSelector()
		_, err := ParseOffchainLookup(append(sel[:], 0x00))
		if err == nil || errors.Is(err, ErrNotOffchainLookup) {
			t.Errorf("Expected decode error, got %v", err)
		}
	})
}

func TestCallback(t *testing.T) {
	lookup := testLookup()
	data, err := lookup.Callback([]byte{0xaa, 0xbb})
	if err != nil {
		t.Fatalf("Callback failed: %v", err)
	}
	if !bytes.Equal(data[:4], lookup.CallbackFunction[:]) {
		t.Errorf("Expected selector %x, got %x", lookup.CallbackFunction, data[:4])
	}

	response, extra, err := DecodeCallback(data)
	if err != nil {
		t.Fatalf("DecodeCallback failed: %v", err)
	}
	if !bytes.Equal(response, []byte{0xaa, 0xbb}) {
		t.Errorf("Expected response aabb, got %x", response)
	}
	if !bytes.Equal(extra, lookup.ExtraData) {
		t.Errorf("Expected extraData %x, got %x", lookup.ExtraData, extra)
	}

	if _, _, err := DecodeCallback([]byte{1}); err == nil {
		t.Error("Expected error for short callback data")
	}
}
