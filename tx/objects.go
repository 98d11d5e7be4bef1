package tx

import (
	"skynet-tx/keys"
	"skynet-tx/util/byteutil"
)

// CallerObject is the named projection of the caller-key triple.
type CallerObject struct {
	Algorithm string
	Curve     string
	Raw       []byte
}

// BufferObject is the named 1:1 projection of the canonical tuple
// with byte fields as shared slices. It is an ergonomic construction
// and introspection surface, not the wire format; the returned slices
// may alias record state.
type BufferObject struct {
	Schema   string
	Account  string
	MaxFuel  uint64
	Nonce    []byte
	Network  string
	Contract []byte
	Method   string
	Caller   CallerObject
	Args     []byte
}

// TypedObject is the same projection with every byte field held in
// an owned copy and the nonce in a fixed-size array. Mutating a
// TypedObject never aliases record state.
type TypedObject struct {
	Schema   string
	Account  string
	MaxFuel  uint64
	Nonce    [NonceLength]byte
	Network  string
	Contract []byte
	Method   string
	Caller   CallerObject
	Args     []byte
}

// ToBufferObject projects the fields by name. Purely structural.
func (d *TxData) ToBufferObject() BufferObject {
	algorithm, curve := "", ""
	rawKey := []byte{}
	if !d.Caller.IsEmpty() {
		algorithm, curve = keys.SplitName(d.Caller.Params().Name)
		rawKey = d.Caller.Raw()
	}

	return BufferObject{
		Schema:   d.Schema,
		Account:  d.Account,
		MaxFuel:  d.MaxFuel,
		Nonce:    d.Nonce,
		Network:  d.Network,
		Contract: d.Contract,
		Method:   d.Method,
		Caller: CallerObject{
			Algorithm: algorithm,
			Curve:     curve,
			Raw:       rawKey,
		},
		Args: d.Args,
	}
}

// FromBufferObject projects the named fields back into the tuple and
// delegates to FromUnnamed. An absent contract defaults to the
// explicit nil slot.
func (d *TxData) FromBufferObject(o BufferObject) error {
	return d.FromUnnamed(objectTuple(o))
}

// ToTypedObject is ToBufferObject with defensive copies.
func (d *TxData) ToTypedObject() TypedObject {
	o := d.ToBufferObject()

	typed := TypedObject{
		Schema:  o.Schema,
		Account: o.Account,
		MaxFuel: o.MaxFuel,
		Network: o.Network,
		Method:  o.Method,
		Caller: CallerObject{
			Algorithm: o.Caller.Algorithm,
			Curve:     o.Caller.Curve,
			Raw:       byteutil.Copy(o.Caller.Raw),
		},
		Args: byteutil.Copy(o.Args),
	}
	copy(typed.Nonce[:], o.Nonce)
	if len(o.Contract) > 0 {
		typed.Contract = byteutil.Copy(o.Contract)
	}

	return typed
}

// FromTypedObject is the inverse of ToTypedObject.
func (d *TxData) FromTypedObject(o TypedObject) error {
	return d.FromUnnamed(objectTuple(BufferObject{
		Schema:   o.Schema,
		Account:  o.Account,
		MaxFuel:  o.MaxFuel,
		Nonce:    o.Nonce[:],
		Network:  o.Network,
		Contract: o.Contract,
		Method:   o.Method,
		Caller:   o.Caller,
		Args:     o.Args,
	}))
}

func objectTuple(o BufferObject) []interface{} {
	var contract interface{}
	if len(o.Contract) > 0 {
		contract = o.Contract
	}

	return []interface{}{
		o.Schema,
		o.Account,
		o.MaxFuel,
		o.Nonce,
		o.Network,
		contract,
		o.Method,
		[]interface{}{o.Caller.Algorithm, o.Caller.Curve, o.Caller.Raw},
		o.Args,
	}
}
