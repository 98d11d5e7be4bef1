package tx

import (
	"bytes"
	"fmt"

	"skynet-tx/keys"
	"skynet-tx/util/base58"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// ToBytes encodes the canonical tuple with the structured-binary
// encoder. Slots are written positionally, so equal field values
// always produce identical bytes.
func (d *TxData) ToBytes() ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	if err := encodeData(enc, d); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FromBytes decodes canonical tuple bytes. Like FromUnnamed, the
// receiver is only mutated once the whole tuple validates.
func (d *TxData) FromBytes(raw []byte) error {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))

	tuple, err := decodeData(dec)
	if err != nil {
		return err
	}

	return d.FromUnnamed(tuple)
}

// ToBase58 returns the base58 text of ToBytes.
func (d *TxData) ToBase58() (string, error) {
	raw, err := d.ToBytes()
	if err != nil {
		return "", err
	}

	return base58.Encode(raw), nil
}

// FromBase58 decodes base58 text produced by ToBase58.
func (d *TxData) FromBase58(text string) error {
	raw, err := base58.Decode(text)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedTuple, err)
	}

	return d.FromBytes(raw)
}

// encodeData writes the canonical 9-slot tuple.
func encodeData(enc *msgpack.Encoder, d *TxData) error {
	if err := enc.EncodeArrayLen(tupleArity); err != nil {
		return err
	}
	if err := enc.EncodeString(d.Schema); err != nil {
		return err
	}
	if err := enc.EncodeString(d.Account); err != nil {
		return err
	}
	if err := enc.EncodeUint(d.MaxFuel); err != nil {
		return err
	}
	if err := encodeBin(enc, d.Nonce); err != nil {
		return err
	}
	if err := enc.EncodeString(d.Network); err != nil {
		return err
	}
	if len(d.Contract) == 0 {
		if err := enc.EncodeNil(); err != nil {
			return err
		}
	} else if err := encodeBin(enc, d.Contract); err != nil {
		return err
	}
	if err := enc.EncodeString(d.Method); err != nil {
		return err
	}

	algorithm, curve := "", ""
	rawKey := []byte{}
	if !d.Caller.IsEmpty() {
		algorithm, curve = keys.SplitName(d.Caller.Params().Name)
		rawKey = d.Caller.Raw()
	}
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := enc.EncodeString(algorithm); err != nil {
		return err
	}
	if err := enc.EncodeString(curve); err != nil {
		return err
	}
	if err := encodeBin(enc, rawKey); err != nil {
		return err
	}

	return encodeBin(enc, d.Args)
}

// decodeData reads the 9-slot tuple back into the in-memory tuple
// form consumed by FromUnnamed.
func decodeData(dec *msgpack.Decoder) ([]interface{}, error) {
	arity, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTuple, err)
	}
	if arity != tupleArity {
		return nil, fmt.Errorf("%w: arity %d, want %d", ErrMalformedTuple, arity, tupleArity)
	}

	schema, err := decodeString(dec, "schema")
	if err != nil {
		return nil, err
	}
	account, err := decodeString(dec, "account")
	if err != nil {
		return nil, err
	}
	maxFuel, err := dec.DecodeUint64()
	if err != nil {
		return nil, fmt.Errorf("%w: maxFuel: %s", ErrMalformedTuple, err)
	}
	nonce, err := decodeBin(dec, "nonce")
	if err != nil {
		return nil, err
	}
	network, err := decodeString(dec, "network")
	if err != nil {
		return nil, err
	}

	var contract interface{}
	code, err := dec.PeekCode()
	if err != nil {
		return nil, fmt.Errorf("%w: contract: %s", ErrMalformedTuple, err)
	}
	if code == msgpcode.Nil {
		if err := dec.DecodeNil(); err != nil {
			return nil, fmt.Errorf("%w: contract: %s", ErrMalformedTuple, err)
		}
	} else {
		if contract, err = decodeBin(dec, "contract"); err != nil {
			return nil, err
		}
	}

	method, err := decodeString(dec, "method")
	if err != nil {
		return nil, err
	}

	callerArity, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("%w: caller: %s", ErrMalformedTuple, err)
	}
	if callerArity != 3 {
		return nil, fmt.Errorf("%w: caller arity %d, want 3", ErrMalformedTuple, callerArity)
	}
	algorithm, err := decodeString(dec, "caller algorithm")
	if err != nil {
		return nil, err
	}
	curve, err := decodeString(dec, "caller curve")
	if err != nil {
		return nil, err
	}
	rawKey, err := decodeBin(dec, "caller key bytes")
	if err != nil {
		return nil, err
	}

	args, err := decodeBin(dec, "args")
	if err != nil {
		return nil, err
	}

	return []interface{}{
		schema,
		account,
		maxFuel,
		nonce,
		network,
		contract,
		method,
		[]interface{}{algorithm, curve, rawKey},
		args,
	}, nil
}

func encodeBin(enc *msgpack.Encoder, b []byte) error {
	if b == nil {
		b = []byte{}
	}

	return enc.EncodeBytes(b)
}

func decodeBin(dec *msgpack.Decoder, field string) ([]byte, error) {
	b, err := dec.DecodeBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedTuple, field, err)
	}

	return b, nil
}

func decodeString(dec *msgpack.Decoder, field string) (string, error) {
	s, err := dec.DecodeString()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrMalformedTuple, field, err)
	}

	return s, nil
}
