package tx

import (
	"bytes"
	"errors"
	"fmt"

	"skynet-tx/codec"
	"skynet-tx/keys"
	"skynet-tx/util/base58"
	"skynet-tx/util/byteutil"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrNoSignature reports a Verify call on an unsigned transaction.
	ErrNoSignature = errors.New("transaction is not signed")

	// ErrNoSignerKey reports a Verify call with no signer key set.
	ErrNoSignerKey = errors.New("signer key not set")
)

// Transaction is the field-accessor facade over the canonical tuple,
// plus the detached signature. Each instance is an independent value
// owned by its caller; nothing here is safe for concurrent mutation.
//
// Mutating any field after Sign does not invalidate the stored
// signature: Verify recomputes the canonical bytes from the current
// fields, so a mutated transaction simply stops verifying. Callers
// must re-sign after mutation.
type Transaction struct {
	data      TxData
	signature []byte
}

// New returns an empty transaction with the atomic schema tag.
func New() *Transaction {
	return &Transaction{data: TxData{Schema: SchemaAtomic}}
}

// Schema returns the layout tag.
func (t *Transaction) Schema() string { return t.data.Schema }

// SetSchema sets the layout tag. Unknown tags round-trip untouched.
func (t *Transaction) SetSchema(schema string) { t.data.Schema = schema }

// Account returns the target account identifier.
func (t *Transaction) Account() string { return t.data.Account }

// SetAccount sets the target account identifier.
func (t *Transaction) SetAccount(account string) { t.data.Account = account }

// MaxFuel returns the fuel budget.
func (t *Transaction) MaxFuel() uint64 { return t.data.MaxFuel }

// SetMaxFuel sets the fuel budget. No upper bound is enforced here.
func (t *Transaction) SetMaxFuel(maxFuel uint64) { t.data.MaxFuel = maxFuel }

// Network returns the target network name.
func (t *Transaction) Network() string { return t.data.Network }

// SetNetwork sets the target network name.
func (t *Transaction) SetNetwork(network string) { t.data.Network = network }

// Nonce returns a copy of the nonce bytes.
func (t *Transaction) Nonce() []byte { return byteutil.Copy(t.data.Nonce) }

// SetNonce sets the nonce. Any length other than NonceLength is
// rejected before the value is stored.
func (t *Transaction) SetNonce(nonce []byte) error {
	if len(nonce) != NonceLength {
		return fmt.Errorf("%w, got %d", ErrNonceLength, len(nonce))
	}

	t.data.Nonce = byteutil.Copy(nonce)
	return nil
}

// NonceHex returns the nonce as hex text.
func (t *Transaction) NonceHex() string { return byteutil.ToHex(t.data.Nonce) }

// SetNonceHex sets the nonce from hex text, under the same length
// rule as SetNonce.
func (t *Transaction) SetNonceHex(nonceHex string) error {
	nonce, err := byteutil.FromHex(nonceHex)
	if err != nil {
		return err
	}

	return t.SetNonce(nonce)
}

// GenNonce fills the nonce with fresh random bytes.
func (t *Transaction) GenNonce() {
	t.data.Nonce = keys.RandomBytes(NonceLength)
}

// SmartContractHash returns the contract hash bytes, zero-length
// when absent.
func (t *Transaction) SmartContractHash() []byte { return byteutil.Copy(t.data.Contract) }

// SetSmartContractHash stores the contract hash. A zero-length write
// clears the field to absent; absent and explicitly empty are the
// same canonical state.
func (t *Transaction) SetSmartContractHash(hash []byte) {
	if len(hash) == 0 {
		t.data.Contract = nil
		return
	}

	t.data.Contract = byteutil.Copy(hash)
}

// SmartContractHashHex returns the contract hash as hex text, empty
// when absent.
func (t *Transaction) SmartContractHashHex() string { return byteutil.ToHex(t.data.Contract) }

// SetSmartContractHashHex sets the contract hash from hex text.
func (t *Transaction) SetSmartContractHashHex(hashHex string) error {
	hash, err := byteutil.FromHex(hashHex)
	if err != nil {
		return err
	}

	t.SetSmartContractHash(hash)
	return nil
}

// SmartContractMethod returns the method name.
func (t *Transaction) SmartContractMethod() string { return t.data.Method }

// SetSmartContractMethod sets the method name.
func (t *Transaction) SetSmartContractMethod(method string) { t.data.Method = method }

// SmartContractArgs returns a copy of the raw args bytes.
func (t *Transaction) SmartContractArgs() []byte { return byteutil.Copy(t.data.Args) }

// SetSmartContractArgs encodes a structured value into the args
// bytes. The three args setters write the same backing field; the
// last write wins.
func (t *Transaction) SetSmartContractArgs(value interface{}) error {
	raw, err := codec.Marshal(value)
	if err != nil {
		return err
	}

	t.data.Args = raw
	return nil
}

// SetSmartContractArgsBytes stores raw args bytes as-is.
func (t *Transaction) SetSmartContractArgsBytes(raw []byte) {
	t.data.Args = byteutil.Copy(raw)
}

// SmartContractArgsHex returns the args bytes as hex text.
func (t *Transaction) SmartContractArgsHex() string { return byteutil.ToHex(t.data.Args) }

// SetSmartContractArgsHex stores args from hex text.
func (t *Transaction) SetSmartContractArgsHex(argsHex string) error {
	raw, err := byteutil.FromHex(argsHex)
	if err != nil {
		return err
	}

	t.data.Args = raw
	return nil
}

// SignerKey returns the signer public key, the empty sentinel before
// signing.
func (t *Transaction) SignerKey() keys.PublicKey { return t.data.Caller }

// SetSignerKey sets the signer public key directly. Sign overwrites
// it with the key derived from the private key.
func (t *Transaction) SetSignerKey(pk keys.PublicKey) { t.data.Caller = pk }

// Signature returns a copy of the signature bytes, zero-length while
// unsigned.
func (t *Transaction) Signature() []byte { return byteutil.Copy(t.signature) }

// Data returns a copy of the canonical field set, for representation
// bridging and introspection.
func (t *Transaction) Data() TxData {
	d := t.data
	d.Nonce = byteutil.Copy(t.data.Nonce)
	if t.data.Contract != nil {
		d.Contract = byteutil.Copy(t.data.Contract)
	}
	d.Args = byteutil.Copy(t.data.Args)
	return d
}

// SetData replaces the canonical field set wholesale.
func (t *Transaction) SetData(d TxData) error {
	return t.data.FromUnnamed(d.ToUnnamed())
}

// UnsignedBytes returns the canonical bytes that Sign signs and
// Verify checks, computed from the current field values.
func (t *Transaction) UnsignedBytes() ([]byte, error) {
	return t.data.ToBytes()
}

// Sign derives the public key from priv, commits it as the signer
// key, then signs the canonical bytes. The signed payload therefore
// already carries the derived key in its caller slot. Returns the
// signature, which is also stored on the transaction.
func (t *Transaction) Sign(priv keys.PrivateKey) ([]byte, error) {
	pub, err := priv.Public()
	if err != nil {
		return nil, fmt.Errorf("derive signer key: %w", err)
	}

	t.data.Caller = pub

	payload, err := t.data.ToBytes()
	if err != nil {
		return nil, err
	}

	sig, err := priv.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	t.signature = sig
	return byteutil.Copy(sig), nil
}

// Verify recomputes the canonical bytes from the current fields and
// checks the stored signature against the stored signer key. A
// well-formed but mismatching signature yields (false, nil); an
// absent signature or unusable key is an error.
func (t *Transaction) Verify() (bool, error) {
	if len(t.signature) == 0 {
		return false, ErrNoSignature
	}
	if t.data.Caller.IsEmpty() {
		return false, ErrNoSignerKey
	}

	payload, err := t.data.ToBytes()
	if err != nil {
		return false, err
	}

	return t.data.Caller.Verify(payload, t.signature)
}

// Object is the named projection of a full signed transaction.
type Object struct {
	Data      BufferObject
	Signature []byte
}

// ToObject projects the transaction and its signature by name.
func (t *Transaction) ToObject() Object {
	return Object{
		Data:      t.data.ToBufferObject(),
		Signature: t.signature,
	}
}

// FromObject rebuilds the transaction from a named projection.
// Nothing is committed unless the whole object validates.
func (t *Transaction) FromObject(o Object) error {
	var staged TxData
	if err := staged.FromBufferObject(o.Data); err != nil {
		return err
	}

	t.data = staged
	t.signature = byteutil.Copy(o.Signature)
	return nil
}

// ToBytes encodes the transport form: a 2-slot array of the
// canonical data tuple and the signature.
func (t *Transaction) ToBytes() ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(2); err != nil {
		return nil, err
	}
	if err := encodeData(enc, &t.data); err != nil {
		return nil, err
	}
	if err := encodeBin(enc, t.signature); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FromBytes decodes the transport form produced by ToBytes. The
// transaction is only mutated once data tuple, key registry check
// and signature slot all validate.
func (t *Transaction) FromBytes(raw []byte) error {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))

	arity, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedTuple, err)
	}
	if arity != 2 {
		return fmt.Errorf("%w: transport arity %d, want 2", ErrMalformedTuple, arity)
	}

	tuple, err := decodeData(dec)
	if err != nil {
		return err
	}

	sig, err := decodeBin(dec, "signature")
	if err != nil {
		return err
	}

	staged, err := stageTuple(tuple)
	if err != nil {
		return err
	}

	t.data = staged
	t.signature = sig
	return nil
}

// ToBase58 returns the base58 text of the transport form.
func (t *Transaction) ToBase58() (string, error) {
	raw, err := t.ToBytes()
	if err != nil {
		return "", err
	}

	return base58.Encode(raw), nil
}

// FromBase58 decodes base58 text produced by ToBase58.
func (t *Transaction) FromBase58(text string) error {
	raw, err := base58.Decode(text)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedTuple, err)
	}

	return t.FromBytes(raw)
}
