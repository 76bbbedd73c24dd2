package keying

import (
	"fmt"
	"strings"
)

// Scheme identifies a modulation scheme.
//
// There are three true variants; the binary-prefixed labels accepted by
// [ParseScheme] (BASK, BFSK, BPSK) are display aliases for the same
// algorithms, since the engine only handles binary signaling anyway.
type Scheme int

const (
	SchemeASK Scheme = iota
	SchemeFSK
	SchemePSK
)

// String returns the canonical scheme label.
func (s Scheme) String() string {
	switch s {
	case SchemeASK:
		return "ASK"
	case SchemeFSK:
		return "FSK"
	case SchemePSK:
		return "PSK"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme maps the six user-facing labels onto the three variants.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ask", "bask":
		return SchemeASK, nil
	case "fsk", "bfsk":
		return SchemeFSK, nil
	case "psk", "bpsk":
		return SchemePSK, nil
	default:
		return 0, fmt.Errorf("unsupported modulation scheme: %q", name)
	}
}
