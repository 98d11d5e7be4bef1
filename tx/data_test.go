package tx

import (
	"bytes"
	"errors"
	"testing"

	"skynet-tx/keys"
)

func testData(t *testing.T) TxData {
	t.Helper()

	priv, err := keys.GenerateKey(keys.ECDSAP384R1)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := priv.Public()
	if err != nil {
		t.Fatal(err)
	}

	return TxData{
		Schema:  SchemaAtomic,
		Account: "Qme9sSmYaLAAuSCTC1aMGDcq4iH8rkv6HQE1HSkpvpz7cG",
		MaxFuel: 10,
		Nonce:   make([]byte, NonceLength),
		Network: "skynet",
		Method:  "transfer",
		Caller:  pub,
		Args:    []byte{0x01, 0x02, 0x03},
	}
}

func dataBytes(t *testing.T, d *TxData) []byte {
	t.Helper()

	raw, err := d.ToBytes()
	if err != nil {
		t.Fatal(err)
	}

	return raw
}

func TestUnnamedRoundTrip(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	var rebuilt TxData
	if err := rebuilt.FromUnnamed(d.ToUnnamed()); err != nil {
		t.Fatal(err)
	}

	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	var rebuilt TxData
	if err := rebuilt.FromBytes(want); err != nil {
		t.Fatal(err)
	}

	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestBase58RoundTrip(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	text, err := d.ToBase58()
	if err != nil {
		t.Fatal(err)
	}

	var rebuilt TxData
	if err := rebuilt.FromBase58(text); err != nil {
		t.Fatal(err)
	}

	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestBufferObjectRoundTrip(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	var rebuilt TxData
	if err := rebuilt.FromBufferObject(d.ToBufferObject()); err != nil {
		t.Fatal(err)
	}

	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestTypedObjectRoundTrip(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	var rebuilt TxData
	if err := rebuilt.FromTypedObject(d.ToTypedObject()); err != nil {
		t.Fatal(err)
	}

	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestTypedObjectNoAlias(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	typed := d.ToTypedObject()
	typed.Nonce[0] = 0xff
	typed.Args[0] ^= 0xff
	typed.Caller.Raw[0] ^= 0xff

	if get := dataBytes(t, &d); !bytes.Equal(get, want) {
		t.Fatalf("mutating a typed object changed the record bytes")
	}
}

func TestEmptyCallerRoundTrip(t *testing.T) {
	d := TxData{Schema: SchemaAtomic, Network: "skynet"}

	tuple := d.ToUnnamed()
	caller := tuple[7].([]interface{})
	if caller[0].(string) != "" || caller[1].(string) != "" || len(caller[2].([]byte)) != 0 {
		t.Fatalf("Get caller slot=%v, want [\"\", \"\", empty]", caller)
	}

	var rebuilt TxData
	if err := rebuilt.FromBytes(dataBytes(t, &d)); err != nil {
		t.Fatal(err)
	}
	if !rebuilt.Caller.IsEmpty() {
		t.Fatalf("Get IsEmpty=false, want=true")
	}
}

func TestContractAbsentVsEmpty(t *testing.T) {
	absent := testData(t)
	explicit := absent
	explicit.Contract = []byte{}

	if !bytes.Equal(dataBytes(t, &absent), dataBytes(t, &explicit)) {
		t.Fatalf("absent and explicitly empty contract encode differently")
	}

	var rebuilt TxData
	if err := rebuilt.FromBytes(dataBytes(t, &explicit)); err != nil {
		t.Fatal(err)
	}
	if rebuilt.Contract != nil {
		t.Fatalf("Get=%v, want nil contract", rebuilt.Contract)
	}
}

func TestContractPresentRoundTrip(t *testing.T) {
	d := testData(t)
	d.Contract = []byte{0x12, 0x20, 0xaa, 0xbb}
	want := dataBytes(t, &d)

	var rebuilt TxData
	if err := rebuilt.FromBytes(want); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(rebuilt.Contract, d.Contract) {
		t.Fatalf("Get=%x, want=%x", rebuilt.Contract, d.Contract)
	}
	if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
		t.Fatalf("Get=%x, want=%x", get, want)
	}
}

func TestUnknownCallerRejected(t *testing.T) {
	d := testData(t)
	tuple := d.ToUnnamed()
	tuple[7] = []interface{}{"rsa", "pss", []byte{0x01}}

	target := testData(t)
	target.Account = "somebody-else"
	before := dataBytes(t, &target)

	err := target.FromUnnamed(tuple)
	if !errors.Is(err, keys.ErrUnknownKeyID) {
		t.Fatalf("Get error=%v, want ErrUnknownKeyID", err)
	}

	// Failed import must not leave partial mutation behind.
	if get := dataBytes(t, &target); !bytes.Equal(get, before) {
		t.Fatalf("record mutated by failed import")
	}
}

func TestMaxFuelIntegerWidths(t *testing.T) {
	d := testData(t)
	want := dataBytes(t, &d)

	values := []interface{}{
		uint8(10), uint16(10), uint32(10), uint64(10), uint(10),
		int8(10), int16(10), int32(10), int64(10), int(10),
	}

	for _, value := range values {
		tuple := d.ToUnnamed()
		tuple[2] = value

		var rebuilt TxData
		if err := rebuilt.FromUnnamed(tuple); err != nil {
			t.Fatalf("maxFuel as %T: %v", value, err)
		}
		if rebuilt.MaxFuel != 10 {
			t.Fatalf("maxFuel as %T: Get=%d, want=10", value, rebuilt.MaxFuel)
		}
		if get := dataBytes(t, &rebuilt); !bytes.Equal(get, want) {
			t.Fatalf("maxFuel as %T: Get=%x, want=%x", value, get, want)
		}
	}

	for _, value := range []interface{}{int8(-1), int16(-1), int64(-1)} {
		tuple := d.ToUnnamed()
		tuple[2] = value

		var rebuilt TxData
		if err := rebuilt.FromUnnamed(tuple); !errors.Is(err, ErrMalformedTuple) {
			t.Fatalf("maxFuel as %T: Get error=%v, want ErrMalformedTuple", value, err)
		}
	}
}

func TestMalformedTuples(t *testing.T) {
	d := testData(t)

	cases := []func() []interface{}{
		func() []interface{} { return d.ToUnnamed()[:8] },
		func() []interface{} {
			tuple := d.ToUnnamed()
			tuple[0] = 7
			return tuple
		},
		func() []interface{} {
			tuple := d.ToUnnamed()
			tuple[2] = -1
			return tuple
		},
		func() []interface{} {
			tuple := d.ToUnnamed()
			tuple[3] = []byte{0x01, 0x02}
			return tuple
		},
		func() []interface{} {
			tuple := d.ToUnnamed()
			tuple[7] = "not-a-triple"
			return tuple
		},
	}

	for i, build := range cases {
		var target TxData
		if err := target.FromUnnamed(build()); !errors.Is(err, ErrMalformedTuple) {
			t.Fatalf("case %d: Get error=%v, want ErrMalformedTuple", i, err)
		}
	}
}

func TestFromBytesGarbage(t *testing.T) {
	var d TxData
	if err := d.FromBytes([]byte{0xc1, 0x00}); err == nil {
		t.Fatalf("Get error=nil, want an error")
	}

	if err := d.FromBase58("0OIl"); err == nil {
		t.Fatalf("Get error=nil, want an error")
	}
}
