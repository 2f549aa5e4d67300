package ensresolve

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Normalizer maps a name to its canonical form. It must be deterministic.
type Normalizer interface {
	Normalize(name string) (string, error)
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(name string) (string, error)

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(name string) (string, error) {
	return f(name)
}

// IDNANormalizer normalizes with the UTS #46 lookup profile, non-transitional,
// without STD3 host name restrictions, and then applies the ENS label rules
// that UTS #46 leaves out:
//
//   - no empty labels
//   - underscores only as a leading run ("__a" is valid, "a_" is not)
//   - no "--" at the third and fourth position of a label
type IDNANormalizer struct {
	profile *idna.Profile
}

// NewIDNANormalizer creates an IDNANormalizer.
func NewIDNANormalizer() *IDNANormalizer {
	return &IDNANormalizer{
		profile: idna.New(
			idna.MapForLookup(),
			idna.Transitional(false),
			idna.StrictDomainName(false),
		),
	}
}

// Normalize implements Normalizer. The root name "" normalizes to itself.
func (n *IDNANormalizer) Normalize(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	out, err := n.profile.ToUnicode(name)
	if err != nil {
		return "", &ArgumentError{Argument: "name", Value: name, Reason: err.Error()}
	}
	for _, label := range strings.Split(out, ".") {
		if err := checkLabel(label); err != nil {
			return "", &ArgumentError{Argument: "name", Value: name, Reason: err.Error()}
		}
	}
	return out, nil
}

func checkLabel(label string) error {
	if label == "" {
		return errors.New("empty label")
	}
	if strings.Contains(strings.TrimLeft(label, "_"), "_") {
		return fmt.Errorf("label %q has an underscore after its first character", label)
	}
	if r := []rune(label); len(r) >= 4 && r[2] == '-' && r[3] == '-' {
		return fmt.Errorf("label %q has an invalid extension", label)
	}
	return nil
}
