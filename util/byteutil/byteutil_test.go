package byteutil

import (
	"bytes"
	"testing"
)

func TestFromHex(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03}
	get, err := FromHex("010203")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(get, want) {
		t.Fatalf("Get=%v, want=%v", get, want)
	}

	_, err = FromHex("not-hex")
	if err == nil {
		t.Fatalf("Get error=nil, want an error")
	}
}

func TestToHex(t *testing.T) {
	want := "010203"
	get := ToHex([]byte{0x01, 0x02, 0x03})
	if get != want {
		t.Fatalf("Get=%s, want=%s", get, want)
	}

	if ToHex(nil) != "" {
		t.Fatalf("Get=%s, want empty string", ToHex(nil))
	}
}

func TestCopy(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	copied := Copy(raw)
	if !bytes.Equal(copied, raw) {
		t.Fatalf("Get=%v, want=%v", copied, raw)
	}

	copied[0] = 0xff
	if raw[0] != 0x01 {
		t.Fatalf("Copy aliases its input")
	}

	copied = Copy(nil)
	if copied == nil || len(copied) != 0 {
		t.Fatalf("Get=%v, want empty non-nil slice", copied)
	}
}
