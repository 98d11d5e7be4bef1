// Package keys holds the key-parameter registry and the public/private
// key handles used to sign and verify canonical transaction bytes.
package keys

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"strings"
)

// separator joins the algorithm and curve parts of a registry name.
const separator = "_"

// ErrUnknownKeyID is returned when a key identifier does not resolve
// against the registry.
var ErrUnknownKeyID = errors.New("unknown key algorithm identifier")

// Params describes one known key-parameter set.
// The zero value is the empty-key sentinel meaning "no key set".
type Params struct {
	// Name is the registry identifier, algorithm[_curve].
	Name      string
	Algorithm string
	Curve     string

	// nist is set for curves backed by the standard library.
	nist elliptic.Curve
}

// Known key-parameter sets. ECDSAP384R1 is the protocol default.
var (
	EmptyKey       = Params{}
	ECDSAP256R1    = Params{Name: "ecdsa_p256r1", Algorithm: "ecdsa", Curve: "p256r1", nist: elliptic.P256()}
	ECDSAP384R1    = Params{Name: "ecdsa_p384r1", Algorithm: "ecdsa", Curve: "p384r1", nist: elliptic.P384()}
	ECDSASecp256k1 = Params{Name: "ecdsa_secp256k1", Algorithm: "ecdsa", Curve: "secp256k1"}
	Ed25519        = Params{Name: "ed25519", Algorithm: "ed25519"}
)

var registry = map[string]Params{
	EmptyKey.Name:       EmptyKey,
	ECDSAP256R1.Name:    ECDSAP256R1,
	ECDSAP384R1.Name:    ECDSAP384R1,
	ECDSASecp256k1.Name: ECDSASecp256k1,
	Ed25519.Name:        Ed25519,
}

// ParamsByName resolves a registry identifier to its parameter set.
// Unknown identifiers are a hard error, never a default.
func ParamsByName(name string) (Params, error) {
	params, ok := registry[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownKeyID, name)
	}

	return params, nil
}

// SplitName splits a registry identifier into its algorithm and curve
// parts. Identifiers without a separator yield an empty curve part.
func SplitName(name string) (algorithm, curve string) {
	parts := strings.SplitN(name, separator, 2)
	if len(parts) == 1 {
		return parts[0], ""
	}

	return parts[0], parts[1]
}

// JoinName is the inverse of SplitName; an empty curve part is omitted.
func JoinName(algorithm, curve string) string {
	if curve == "" {
		return algorithm
	}

	return algorithm + separator + curve
}
