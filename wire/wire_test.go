package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		var buf bytes.Buffer
		if err := WriteBool(&buf, v); err != nil {
			t.Fatalf("WriteBool(%v): %v", v, err)
		}
		if uint32(buf.Len()) != SizeBool(v) {
			t.Fatalf("SizeBool(%v) = %d, encode wrote %d", v, SizeBool(v), buf.Len())
		}
		got, err := ReadBool(&buf)
		if err != nil {
			t.Fatalf("ReadBool: %v", err)
		}
		if got != v {
			t.Fatalf("round trip = %v, want %v", got, v)
		}
	}
}

func TestBoolInvalidByte(t *testing.T) {
	_, err := ReadBool(bytes.NewReader([]byte{0x02}))
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("ReadBool(0x02) err = %v, want ErrInvalidData", err)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU8(&buf, 0xAB); err != nil {
		t.Fatal(err)
	}
	if err := WriteU16(&buf, 0x1234); err != nil {
		t.Fatal(err)
	}
	if err := WriteU32(&buf, 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	if err := WriteU64(&buf, 0x0123456789ABCDEF); err != nil {
		t.Fatal(err)
	}
	if err := WriteI32(&buf, -12345); err != nil {
		t.Fatal(err)
	}
	if err := WriteU128(&buf, U128{Lo: 1, Hi: 2}); err != nil {
		t.Fatal(err)
	}

	if u8, err := ReadU8(&buf); err != nil || u8 != 0xAB {
		t.Fatalf("ReadU8 = %#x, %v", u8, err)
	}
	if u16, err := ReadU16(&buf); err != nil || u16 != 0x1234 {
		t.Fatalf("ReadU16 = %#x, %v", u16, err)
	}
	if u32, err := ReadU32(&buf); err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("ReadU32 = %#x, %v", u32, err)
	}
	if u64, err := ReadU64(&buf); err != nil || u64 != 0x0123456789ABCDEF {
		t.Fatalf("ReadU64 = %#x, %v", u64, err)
	}
	if i32, err := ReadI32(&buf); err != nil || i32 != -12345 {
		t.Fatalf("ReadI32 = %d, %v", i32, err)
	}
	if u128, err := ReadU128(&buf); err != nil || u128 != (U128{Lo: 1, Hi: 2}) {
		t.Fatalf("ReadU128 = %+v, %v", u128, err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", strings.Repeat("x", 1000), "日本語"}
	for _, s := range cases {
		var buf bytes.Buffer
		if err := WriteString(&buf, s); err != nil {
			t.Fatalf("WriteString(%q): %v", s, err)
		}
		if uint32(buf.Len()) != SizeString(s) {
			t.Fatalf("SizeString(%q) = %d, wrote %d", s, SizeString(s), buf.Len())
		}
		got, err := ReadString(&buf)
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip = %q, want %q", got, s)
		}
	}
}

func TestStringTooLong(t *testing.T) {
	s := strings.Repeat("a", 0x10000)
	var buf bytes.Buffer
	err := WriteString(&buf, s)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes on a failed encode, want 0", buf.Len())
	}
}

func TestStringShortRead(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU16(&buf, 10); err != nil {
		t.Fatal(err)
	}
	buf.WriteString("ab")
	_, err := ReadString(&buf)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU16(&buf, 1); err != nil {
		t.Fatal(err)
	}
	buf.WriteByte(0xFF)
	_, err := ReadString(&buf)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestSliceRoundTrip(t *testing.T) {
	in := []string{"a", "bb", "ccc"}
	var buf bytes.Buffer
	err := WriteSlice(&buf, in, WriteString)
	if err != nil {
		t.Fatal(err)
	}
	wantSize := SizeSlice(in, SizeString)
	if uint32(buf.Len()) != wantSize {
		t.Fatalf("SizeSlice = %d, wrote %d", wantSize, buf.Len())
	}
	out, err := ReadSlice(&buf, ReadString)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("out[%d] = %q, want %q", i, out[i], in[i])
		}
	}
}

func TestSliceEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSlice[string](&buf, nil, WriteString); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2 {
		t.Fatalf("empty slice encoded to %d bytes, want 2", buf.Len())
	}
	out, err := ReadSlice(&buf, ReadString)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestDataRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 4096)
	var buf bytes.Buffer
	if err := WriteData(&buf, payload); err != nil {
		t.Fatal(err)
	}
	if uint32(buf.Len()) != SizeData(payload) {
		t.Fatalf("SizeData = %d, wrote %d", SizeData(payload), buf.Len())
	}
	out, err := ReadData(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDataExceedsCap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU32(&buf, MaxDataSize+1); err != nil {
		t.Fatal(err)
	}
	_, err := ReadData(&buf)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestOptionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	val := uint32(7)
	if err := WriteOption(&buf, &val, WriteU32); err != nil {
		t.Fatal(err)
	}
	if uint32(buf.Len()) != SizeOption(&val, SizeU32) {
		t.Fatalf("SizeOption mismatch")
	}
	got, err := ReadOption(&buf, ReadU32)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != val {
		t.Fatalf("round trip = %v, want %d", got, val)
	}

	buf.Reset()
	if err := WriteOption[uint32](&buf, nil, WriteU32); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 1 {
		t.Fatalf("absent option encoded to %d bytes, want 1", buf.Len())
	}
	got, err = ReadOption(&buf, ReadU32)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("round trip = %v, want nil", got)
	}
}

func TestOptionInvalidTag(t *testing.T) {
	_, err := ReadOption(bytes.NewReader([]byte{0x02}), ReadU32)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestUnit(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUnit(&buf, Unit{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Unit encoded to %d bytes, want 0", buf.Len())
	}
	if _, err := ReadUnit(&buf); err != nil {
		t.Fatal(err)
	}
}
