package ensresolve

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestDNSEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"empty name", "", []byte{0}},
		{"single label", "eth", []byte{3, 'e', 't', 'h', 0}},
		{"two labels", "a.eth", []byte{1, 'a', 3, 'e', 't', 'h', 0}},
		{"empty label", "a..eth", []byte{1, 'a', 0, 3, 'e', 't', 'h', 0}},
		{"unicode", "é.eth", []byte{2, 0xc3, 0xa9, 3, 'e', 't', 'h', 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DNSEncode(tt.input)
			if err != nil {
				t.Fatalf("DNSEncode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Expected %x, got %x", tt.want, got)
			}
		})
	}

	t.Run("length is name plus two", func(t *testing.T) {
		for _, name := range []string{"raffy.eth", "sub.wild.eth", strings.Repeat("x", MaxLabelLength) + ".eth"} {
			got, err := DNSEncode(name)
			if err != nil {
				t.Fatalf("DNSEncode(%q) failed: %v", name, err)
			}
			if len(got) != len(name)+2 {
				t.Errorf("DNSEncode(%q): expected %d bytes, got %d", name, len(name)+2, len(got))
			}
			if got[len(got)-1] != 0 {
				t.Errorf("DNSEncode(%q): missing terminator", name)
			}
		}
	})

	t.Run("label too long", func(t *testing.T) {
		_, err := DNSEncode(strings.Repeat("x", MaxLabelLength+1) + ".eth")
		if !errors.Is(err, ErrLabelTooLong) {
			t.Errorf("Expected ErrLabelTooLong, got %v", err)
		}
		var encErr *EncodingError
		if !errors.As(err, &encErr) {
			t.Errorf("Expected *EncodingError, got %T", err)
		}
	})
}

func TestNameHash(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameHash(tt.name); got != common.HexToHash(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, got.Hex())
			}
		})
	}

	t.Run("label order matters", func(t *testing.T) {
		if NameHash("a.b") == NameHash("b.a") {
			t.Error("Expected different nodes for a.b and b.a")
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		if NameHash("raffy.eth") == NameHash("Raffy.eth") {
			t.Error("Expected different nodes for different casing")
		}
	})
}

func TestLabelHash(t *testing.T) {
	want := common.HexToHash("0x4f5b812789fc606be1b3b16908db13fc7a9adf7ca72641f84d75b47069d3d7f0")
	if got := LabelHash("eth"); got != want {
		t.Errorf("Expected %s, got %s", want.Hex(), got.Hex())
	}
}
