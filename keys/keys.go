package keys

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"skynet-tx/util/byteutil"
	"skynet-tx/util/hashutil"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ErrKeyNotSet is returned when a crypto operation is attempted with
// the empty-key sentinel.
var ErrKeyNotSet = errors.New("key not set")

// PublicKey wraps raw public key bytes together with their resolved
// parameter set. The zero value is the empty/unset key.
type PublicKey struct {
	params Params
	raw    []byte
}

// ImportRaw builds a PublicKey from raw key bytes, validating the
// bytes against the parameter set. The empty-key sentinel accepts
// only zero-length bytes.
func ImportRaw(params Params, raw []byte) (PublicKey, error) {
	switch {
	case params.Name == EmptyKey.Name:
		if len(raw) != 0 {
			return PublicKey{}, fmt.Errorf("empty key carries %d raw bytes", len(raw))
		}
		return PublicKey{}, nil

	case params.nist != nil:
		// x==nil means the bytes are not a valid point encoding.
		x, _ := elliptic.Unmarshal(params.nist, raw)
		if x == nil {
			return PublicKey{}, fmt.Errorf("malformed %s public key", params.Name)
		}

	case params.Name == ECDSASecp256k1.Name:
		if _, err := secp256k1.ParsePubKey(raw); err != nil {
			return PublicKey{}, fmt.Errorf("malformed %s public key: %w", params.Name, err)
		}

	case params.Name == Ed25519.Name:
		if len(raw) != ed25519.PublicKeySize {
			return PublicKey{}, fmt.Errorf("malformed %s public key: %d bytes", params.Name, len(raw))
		}

	default:
		return PublicKey{}, fmt.Errorf("%w: %q", ErrUnknownKeyID, params.Name)
	}

	return PublicKey{params: params, raw: byteutil.Copy(raw)}, nil
}

// Params returns the key's parameter set.
func (pk PublicKey) Params() Params {
	return pk.params
}

// IsEmpty tells if the key is the empty/unset sentinel.
func (pk PublicKey) IsEmpty() bool {
	return pk.params.Name == EmptyKey.Name
}

// Raw returns a copy of the raw public key bytes,
// zero-length for the empty key.
func (pk PublicKey) Raw() []byte {
	return byteutil.Copy(pk.raw)
}

// Verify checks sig against data. A well-formed but mismatching
// signature yields (false, nil); only unusable key material is an
// error.
func (pk PublicKey) Verify(data, sig []byte) (bool, error) {
	switch {
	case pk.IsEmpty():
		return false, ErrKeyNotSet

	case pk.params.nist != nil:
		x, y := elliptic.Unmarshal(pk.params.nist, pk.raw)
		if x == nil {
			return false, fmt.Errorf("malformed %s public key", pk.params.Name)
		}
		pub := ecdsa.PublicKey{Curve: pk.params.nist, X: x, Y: y}
		return ecdsa.VerifyASN1(&pub, digest(pk.params, data), sig), nil

	case pk.params.Name == ECDSASecp256k1.Name:
		pub, err := secp256k1.ParsePubKey(pk.raw)
		if err != nil {
			return false, fmt.Errorf("malformed %s public key: %w", pk.params.Name, err)
		}
		parsed, err := secpecdsa.ParseDERSignature(sig)
		if err != nil {
			return false, nil
		}
		return parsed.Verify(digest(pk.params, data), pub), nil

	case pk.params.Name == Ed25519.Name:
		if len(pk.raw) != ed25519.PublicKeySize {
			return false, fmt.Errorf("malformed %s public key: %d bytes", pk.params.Name, len(pk.raw))
		}
		if len(sig) != ed25519.SignatureSize {
			return false, nil
		}
		return ed25519.Verify(ed25519.PublicKey(pk.raw), data, sig), nil
	}

	return false, fmt.Errorf("%w: %q", ErrUnknownKeyID, pk.params.Name)
}

// PrivateKey is the signing-side key handle.
type PrivateKey struct {
	params Params
	nist   *ecdsa.PrivateKey
	secp   *secp256k1.PrivateKey
	ed     ed25519.PrivateKey
}

// GenerateKey creates a fresh private key for the given parameter set.
func GenerateKey(params Params) (PrivateKey, error) {
	switch {
	case params.Name == EmptyKey.Name:
		return PrivateKey{}, ErrKeyNotSet

	case params.nist != nil:
		priv, err := ecdsa.GenerateKey(params.nist, rand.Reader)
		if err != nil {
			return PrivateKey{}, err
		}
		return PrivateKey{params: params, nist: priv}, nil

	case params.Name == ECDSASecp256k1.Name:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return PrivateKey{}, err
		}
		return PrivateKey{params: params, secp: priv}, nil

	case params.Name == Ed25519.Name:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return PrivateKey{}, err
		}
		return PrivateKey{params: params, ed: priv}, nil
	}

	return PrivateKey{}, fmt.Errorf("%w: %q", ErrUnknownKeyID, params.Name)
}

// ImportPrivateRaw builds a PrivateKey from its raw scalar/seed bytes.
func ImportPrivateRaw(params Params, raw []byte) (PrivateKey, error) {
	switch {
	case params.Name == EmptyKey.Name:
		return PrivateKey{}, ErrKeyNotSet

	case params.nist != nil:
		byteLen := (params.nist.Params().BitSize + 7) / 8
		if len(raw) != byteLen {
			return PrivateKey{}, fmt.Errorf("malformed %s private key: %d bytes", params.Name, len(raw))
		}
		d := new(big.Int).SetBytes(raw)
		if d.Sign() == 0 || d.Cmp(params.nist.Params().N) >= 0 {
			return PrivateKey{}, fmt.Errorf("malformed %s private key: scalar out of range", params.Name)
		}
		priv := &ecdsa.PrivateKey{D: d}
		priv.Curve = params.nist
		priv.X, priv.Y = params.nist.ScalarBaseMult(raw)
		return PrivateKey{params: params, nist: priv}, nil

	case params.Name == ECDSASecp256k1.Name:
		if len(raw) != 32 {
			return PrivateKey{}, fmt.Errorf("malformed %s private key: %d bytes", params.Name, len(raw))
		}
		return PrivateKey{params: params, secp: secp256k1.PrivKeyFromBytes(raw)}, nil

	case params.Name == Ed25519.Name:
		if len(raw) != ed25519.SeedSize {
			return PrivateKey{}, fmt.Errorf("malformed %s private key: %d bytes", params.Name, len(raw))
		}
		return PrivateKey{params: params, ed: ed25519.NewKeyFromSeed(raw)}, nil
	}

	return PrivateKey{}, fmt.Errorf("%w: %q", ErrUnknownKeyID, params.Name)
}

// Params returns the key's parameter set.
func (k PrivateKey) Params() Params {
	return k.params
}

// Raw exports the raw scalar/seed bytes of the private key.
func (k PrivateKey) Raw() []byte {
	switch {
	case k.nist != nil:
		byteLen := (k.params.nist.Params().BitSize + 7) / 8
		raw := make([]byte, byteLen)
		k.nist.D.FillBytes(raw)
		return raw
	case k.secp != nil:
		return k.secp.Serialize()
	case k.ed != nil:
		return byteutil.Copy(k.ed.Seed())
	}

	return []byte{}
}

// Public derives the corresponding public key.
func (k PrivateKey) Public() (PublicKey, error) {
	switch {
	case k.nist != nil:
		raw := elliptic.Marshal(k.params.nist, k.nist.X, k.nist.Y)
		return PublicKey{params: k.params, raw: raw}, nil
	case k.secp != nil:
		return PublicKey{params: k.params, raw: k.secp.PubKey().SerializeUncompressed()}, nil
	case k.ed != nil:
		pub := k.ed.Public().(ed25519.PublicKey)
		return PublicKey{params: k.params, raw: byteutil.Copy(pub)}, nil
	}

	return PublicKey{}, ErrKeyNotSet
}

// Sign signs data and returns the signature bytes.
func (k PrivateKey) Sign(data []byte) ([]byte, error) {
	switch {
	case k.nist != nil:
		return ecdsa.SignASN1(rand.Reader, k.nist, digest(k.params, data))
	case k.secp != nil:
		return secpecdsa.Sign(k.secp, digest(k.params, data)).Serialize(), nil
	case k.ed != nil:
		return ed25519.Sign(k.ed, data), nil
	}

	return nil, ErrKeyNotSet
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return b
}

// digest reduces data to the hash each curve signs over.
// Ed25519 signs the message directly and never calls this.
func digest(params Params, data []byte) []byte {
	if params.Name == ECDSAP384R1.Name {
		return hashutil.Sha384(data)
	}

	return hashutil.Sha256(data)
}
