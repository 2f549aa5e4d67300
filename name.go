package ensresolve

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MaxLabelLength is the largest label DNSEncode accepts, in bytes.
const MaxLabelLength = 255

// splitName splits a dotted name into labels. The empty name has no labels.
func splitName(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, ".")
}

// DNSEncode encodes a dotted name in DNS wire format.
// Format: [len:1][label:len]...[0x00]
func DNSEncode(name string) ([]byte, error) {
	labels := splitName(name)

	size := 1
	for _, label := range labels {
		if len(label) > MaxLabelLength {
			return nil, &EncodingError{Value: label, Err: ErrLabelTooLong}
		}
		size += 1 + len(label)
	}

	out := make([]byte, 0, size)
	for _, label := range labels {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}

// LabelHash returns keccak256 of a single label.
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(label))
}

// NameHash computes the node of a name. Labels are folded from the
// top-level label toward the most specific one.
func NameHash(name string) common.Hash {
	var node common.Hash
	labels := splitName(name)
	for i := len(labels) - 1; i >= 0; i-- {
		label := LabelHash(labels[i])
		node = crypto.Keccak256Hash(node[:], label[:])
	}
	return node
}
