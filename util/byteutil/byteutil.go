package byteutil

import "encoding/hex"

// FromHex decodes a hex string into bytes.
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// ToHex encodes the given bytes into a hex string.
func ToHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

// Copy returns an owned copy of the given bytes,
// the origin bytes remain unchanged. A nil input
// yields an empty, non-nil slice.
func Copy(raw []byte) []byte {
	copied := make([]byte, len(raw))
	copy(copied, raw)
	return copied
}
