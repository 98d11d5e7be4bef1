// Package tx implements the canonical transaction encoding and the
// signing protocol layered on top of it. A transaction's fields
// project into one fixed-order tuple; the structured-binary encoding
// of that tuple is the only thing ever signed or verified.
package tx

import (
	"errors"
	"fmt"

	"skynet-tx/keys"
	"skynet-tx/util/byteutil"
)

// SchemaAtomic is the single transaction layout this package
// implements. Other schema tags round-trip untouched.
const SchemaAtomic = "atomic"

// NonceLength is the required nonce size in bytes.
const NonceLength = 8

// tupleArity is the fixed slot count of the canonical tuple.
const tupleArity = 9

var (
	// ErrMalformedTuple reports a tuple or object whose shape does
	// not match the canonical layout.
	ErrMalformedTuple = errors.New("malformed transaction tuple")

	// ErrNonceLength reports a nonce whose decoded length is not
	// exactly NonceLength bytes.
	ErrNonceLength = errors.New("nonce must be exactly 8 bytes")
)

// TxData holds the transaction fields that make up the canonical
// tuple, in memory. Contract is nil when absent; any zero-length
// write normalizes to nil. Caller may be the empty-key sentinel
// until the transaction is signed.
type TxData struct {
	Schema   string
	Account  string
	MaxFuel  uint64
	Nonce    []byte
	Network  string
	Contract []byte
	Method   string
	Caller   keys.PublicKey
	Args     []byte
}

// ToUnnamed projects the fields into the canonical 9-slot tuple:
//
//	[schema, account, maxFuel, nonce, network, contract|nil, method,
//	 [algorithmPart, curvePart, rawKeyBytes], args]
//
// An unset caller key projects to ["", "", <empty>] without touching
// the crypto layer. An absent contract is an explicit nil slot, never
// an omitted one.
func (d *TxData) ToUnnamed() []interface{} {
	algorithm, curve := "", ""
	rawKey := []byte{}

	if !d.Caller.IsEmpty() {
		algorithm, curve = keys.SplitName(d.Caller.Params().Name)
		rawKey = d.Caller.Raw()
	}

	var contract interface{}
	if len(d.Contract) > 0 {
		contract = byteutil.Copy(d.Contract)
	}

	return []interface{}{
		d.Schema,
		d.Account,
		d.MaxFuel,
		byteutil.Copy(d.Nonce),
		d.Network,
		contract,
		d.Method,
		[]interface{}{algorithm, curve, rawKey},
		byteutil.Copy(d.Args),
	}
}

// FromUnnamed rebuilds the fields from a canonical tuple. The whole
// tuple, including key-registry resolution, is validated into a
// staging value first; the receiver is only mutated on full success.
func (d *TxData) FromUnnamed(tuple []interface{}) error {
	staged, err := stageTuple(tuple)
	if err != nil {
		return err
	}

	*d = staged
	return nil
}

func stageTuple(tuple []interface{}) (TxData, error) {
	var staged TxData

	if len(tuple) != tupleArity {
		return staged, fmt.Errorf("%w: arity %d, want %d", ErrMalformedTuple, len(tuple), tupleArity)
	}

	var err error
	if staged.Schema, err = asString(tuple[0], "schema"); err != nil {
		return staged, err
	}
	if staged.Account, err = asString(tuple[1], "account"); err != nil {
		return staged, err
	}
	if staged.MaxFuel, err = asUint(tuple[2], "maxFuel"); err != nil {
		return staged, err
	}
	if staged.Nonce, err = asBytes(tuple[3], "nonce"); err != nil {
		return staged, err
	}
	if len(staged.Nonce) != 0 && len(staged.Nonce) != NonceLength {
		return staged, fmt.Errorf("%w: %d-byte nonce", ErrMalformedTuple, len(staged.Nonce))
	}
	if staged.Network, err = asString(tuple[4], "network"); err != nil {
		return staged, err
	}
	if staged.Contract, err = asBytes(tuple[5], "contract"); err != nil {
		return staged, err
	}
	if len(staged.Contract) == 0 {
		staged.Contract = nil
	}
	if staged.Method, err = asString(tuple[6], "method"); err != nil {
		return staged, err
	}
	if staged.Caller, err = stageCaller(tuple[7]); err != nil {
		return staged, err
	}
	if staged.Args, err = asBytes(tuple[8], "args"); err != nil {
		return staged, err
	}

	return staged, nil
}

// stageCaller validates the 3-slot caller triple and resolves its
// identifier against the key registry. The empty-key sentinel
// short-circuits without importing key material.
func stageCaller(slot interface{}) (keys.PublicKey, error) {
	triple, ok := slot.([]interface{})
	if !ok || len(triple) != 3 {
		return keys.PublicKey{}, fmt.Errorf("%w: caller slot is not a 3-slot triple", ErrMalformedTuple)
	}

	algorithm, err := asString(triple[0], "caller algorithm")
	if err != nil {
		return keys.PublicKey{}, err
	}
	curve, err := asString(triple[1], "caller curve")
	if err != nil {
		return keys.PublicKey{}, err
	}
	rawKey, err := asBytes(triple[2], "caller key bytes")
	if err != nil {
		return keys.PublicKey{}, err
	}

	params, err := keys.ParamsByName(keys.JoinName(algorithm, curve))
	if err != nil {
		return keys.PublicKey{}, err
	}

	if params.Name == keys.EmptyKey.Name {
		return keys.PublicKey{}, nil
	}

	return keys.ImportRaw(params, rawKey)
}

func asString(v interface{}, field string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrMalformedTuple, field, v)
	}

	return s, nil
}

func asUint(v interface{}, field string) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", ErrMalformedTuple, field)
		}
		return uint64(n), nil
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", ErrMalformedTuple, field)
		}
		return uint64(n), nil
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", ErrMalformedTuple, field)
		}
		return uint64(n), nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", ErrMalformedTuple, field)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", ErrMalformedTuple, field)
		}
		return uint64(n), nil
	}

	return 0, fmt.Errorf("%w: %s is %T, want unsigned integer", ErrMalformedTuple, field, v)
}

func asBytes(v interface{}, field string) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return byteutil.Copy(b), nil
	}

	return nil, fmt.Errorf("%w: %s is %T, want bytes", ErrMalformedTuple, field, v)
}
