package base58

import (
	"bytes"
	"errors"
	"skynet-tx/util/hashutil"

	"github.com/mr-tron/base58"
)

// Encode encodes the given bytes into plain base58 text.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode decodes plain base58 text into bytes.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckDecode decodes base58 text with checksum check.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 5 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	if !bytes.Equal(hashutil.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, errors.New("invalid base-58 check string: invalid checksum")
	}

	// Trim last 4 bytes.
	b = b[:len(b)-4]

	return b, nil
}

// CheckEncode encodes the given bytes into
// base58 encoding with checksum appended to it.
func CheckEncode(b []byte) string {
	checked := make([]byte, 0, len(b)+4)
	checked = append(checked, b...)
	checked = append(checked, hashutil.Checksum(b)...)
	return base58.Encode(checked)
}
