package codec

import (
	"bytes"
	"testing"
)

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]interface{}{
		"from":   "A",
		"to":     "B",
		"amount": 10,
	}

	first, err := Marshal(value)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Marshal(value)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("Get=%x, want=%x", second, first)
	}
}

func TestRoundTrip(t *testing.T) {
	value := map[string]interface{}{
		"from":   "A",
		"to":     "B",
		"amount": 10,
	}

	encoded, err := Marshal(value)
	if err != nil {
		t.Fatal(err)
	}

	var decoded interface{}
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatal(err)
	}

	reencoded, err := Marshal(decoded)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(reencoded, encoded) {
		t.Fatalf("Get=%x, want=%x", reencoded, encoded)
	}
}

func TestRoundTripKeepsIntWidth(t *testing.T) {
	// Small integers use the most compact wire format; a decoded
	// value must re-encode to those same compact bytes.
	value := map[string]interface{}{
		"amount": 10,
		"list":   []interface{}{1, 127, 128, 65536},
	}

	encoded, err := Marshal(value)
	if err != nil {
		t.Fatal(err)
	}

	var decoded interface{}
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatal(err)
	}

	reencoded, err := Marshal(decoded)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(reencoded, encoded) {
		t.Fatalf("Get=%x, want=%x", reencoded, encoded)
	}
}

func TestUnmarshalBadData(t *testing.T) {
	var decoded map[string]interface{}
	if err := Unmarshal([]byte{0x81}, &decoded); err == nil {
		t.Fatalf("Get error=nil, want an error")
	}
}
