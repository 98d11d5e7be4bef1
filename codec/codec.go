// Package codec wraps the schema-less structured-binary encoding
// used for free-form values such as smart contract method arguments.
// Map keys are sorted on encode so that equal values always yield
// equal bytes.
package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes an arbitrary value into its structured-binary form.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes structured-binary data into the given value.
// Interface values decode loosely (integers as int64), so a decoded
// value re-encodes to the same bytes regardless of the width the
// wire format picked.
func Unmarshal(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	return dec.Decode(v)
}
