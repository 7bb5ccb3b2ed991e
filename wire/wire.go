// Package wire implements the canonical binary encoding used by every
// JetStream message: fixed-width little-endian integers, length-prefixed
// strings and sequences, sized data blobs, and presence-tagged options.
//
// Every encodable type exposes three operations: ByteSize, Encode, and
// Decode. Decode never returns a partial value — on a short read it
// reports io.ErrUnexpectedEOF, on an out-of-range tag or length it
// reports a wrapped ErrInvalidData, and on an encode that would overflow
// a length field it reports ErrInvalidInput before writing any bytes.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalidData marks a decode failure caused by malformed content
// (bad boolean byte, bad option tag, unknown discriminant, invalid UTF-8).
var ErrInvalidData = errors.New("wire: invalid data")

// ErrInvalidInput marks an encode failure caused by a value that does not
// fit the wire format (a string/sequence longer than its u16 length field,
// a blob longer than its u32 length field).
var ErrInvalidInput = errors.New("wire: invalid input")

// MaxDataSize is the implementation cap on a single sized-data blob (C1,
// spec.md §3): 32 MiB.
const MaxDataSize = 32 << 20

// invalidf wraps ErrInvalidData with a formatted message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidData}, args...)...)
}

// --- u8/bool ---

// SizeU8 is the byte size of an encoded uint8. Always 1.
func SizeU8(uint8) uint32 { return 1 }

// WriteU8 encodes a single byte.
func WriteU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// ReadU8 decodes a single byte.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, shortRead(err)
	}
	return buf[0], nil
}

// SizeBool is the byte size of an encoded bool. Always 1.
func SizeBool(bool) uint32 { return 1 }

// WriteBool encodes a boolean as 0x00 or 0x01.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteU8(w, 1)
	}
	return WriteU8(w, 0)
}

// ReadBool decodes a boolean. Any byte other than 0x00/0x01 is
// ErrInvalidData.
func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadU8(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, invalidf("bool byte %#x", b)
	}
}

// --- fixed-width unsigned integers ---

// SizeU16 is the byte size of an encoded uint16. Always 2.
func SizeU16(uint16) uint32 { return 2 }

// WriteU16 encodes a little-endian uint16.
func WriteU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadU16 decodes a little-endian uint16.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, shortRead(err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// SizeU32 is the byte size of an encoded uint32. Always 4.
func SizeU32(uint32) uint32 { return 4 }

// WriteU32 encodes a little-endian uint32.
func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadU32 decodes a little-endian uint32.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, shortRead(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// SizeU64 is the byte size of an encoded uint64. Always 8.
func SizeU64(uint64) uint32 { return 8 }

// WriteU64 encodes a little-endian uint64.
func WriteU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadU64 decodes a little-endian uint64.
func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, shortRead(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// SizeI32 is the byte size of an encoded int32. Always 4.
func SizeI32(int32) uint32 { return 4 }

// WriteI32 encodes a little-endian two's-complement int32.
func WriteI32(w io.Writer, v int32) error {
	return WriteU32(w, uint32(v))
}

// ReadI32 decodes a little-endian two's-complement int32.
func ReadI32(r io.Reader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

// --- u128 ---

// U128 is an unsigned 128-bit integer, stored as two 64-bit halves. No
// ecosystem library in the retrieval pack provides a fixed 16-byte
// wire-shaped 128-bit integer (see DESIGN.md), so this is a minimal
// standard-library type.
type U128 struct {
	Lo uint64
	Hi uint64
}

// SizeU128 is the byte size of an encoded U128. Always 16.
func SizeU128(U128) uint32 { return 16 }

// WriteU128 encodes a little-endian U128 (low half first).
func WriteU128(w io.Writer, v U128) error {
	if err := WriteU64(w, v.Lo); err != nil {
		return err
	}
	return WriteU64(w, v.Hi)
}

// ReadU128 decodes a little-endian U128.
func ReadU128(r io.Reader) (U128, error) {
	lo, err := ReadU64(r)
	if err != nil {
		return U128{}, err
	}
	hi, err := ReadU64(r)
	if err != nil {
		return U128{}, err
	}
	return U128{Lo: lo, Hi: hi}, nil
}

// --- unit ---

// Unit is the zero-byte wire type.
type Unit struct{}

// SizeUnit is always 0.
func SizeUnit(Unit) uint32 { return 0 }

// WriteUnit writes nothing.
func WriteUnit(io.Writer, Unit) error { return nil }

// ReadUnit reads nothing.
func ReadUnit(io.Reader) (Unit, error) { return Unit{}, nil }

// --- string ---

// SizeString is the byte size of an encoded string: 2 length bytes plus
// the UTF-8 byte length.
func SizeString(s string) uint32 {
	return 2 + uint32(len(s))
}

// WriteString encodes a u16 byte-length prefix followed by the string's
// UTF-8 bytes. Returns ErrInvalidInput without writing anything if the
// string is longer than a u16 can address.
func WriteString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: string length %d exceeds u16", ErrInvalidInput, len(s))
	}
	if err := WriteU16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadString decodes a u16-length-prefixed UTF-8 string. A declared
// length longer than the stream yields io.ErrUnexpectedEOF; invalid
// UTF-8 yields ErrInvalidData.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadU16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", shortRead(err)
	}
	if !utf8.Valid(buf) {
		return "", invalidf("string is not valid UTF-8")
	}
	return string(buf), nil
}

// --- sequence ---

// SizeSlice is the byte size of an encoded sequence: 2 count bytes plus
// the sum of each element's size.
func SizeSlice[T any](s []T, elemSize func(T) uint32) uint32 {
	total := uint32(2)
	for _, v := range s {
		total += elemSize(v)
	}
	return total
}

// WriteSlice encodes a u16 count prefix followed by each element in
// order. Returns ErrInvalidInput without writing anything if the count
// exceeds what a u16 can address.
func WriteSlice[T any](w io.Writer, s []T, encode func(io.Writer, T) error) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: sequence length %d exceeds u16", ErrInvalidInput, len(s))
	}
	if err := WriteU16(w, uint16(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := encode(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadSlice decodes a u16-count-prefixed sequence of T, preallocating to
// the declared count.
func ReadSlice[T any](r io.Reader, decode func(io.Reader) (T, error)) ([]T, error) {
	n, err := ReadU16(r)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// --- data blob ---

// SizeData is the byte size of an encoded blob: 4 length bytes plus the
// payload.
func SizeData(b []byte) uint32 {
	return 4 + uint32(len(b))
}

// WriteData encodes a u32 byte-count prefix followed by the raw bytes.
// Returns ErrInvalidInput without writing anything if the blob is longer
// than a u32 can address.
func WriteData(w io.Writer, b []byte) error {
	if uint64(len(b)) > 0xFFFFFFFF {
		return fmt.Errorf("%w: data length %d exceeds u32", ErrInvalidInput, len(b))
	}
	if err := WriteU32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadData decodes a u32-length-prefixed blob. A declared length greater
// than MaxDataSize is ErrInvalidData; a declared length longer than the
// stream is io.ErrUnexpectedEOF.
func ReadData(r io.Reader) ([]byte, error) {
	n, err := ReadU32(r)
	if err != nil {
		return nil, err
	}
	if n > MaxDataSize {
		return nil, invalidf("data length %d exceeds cap %d", n, MaxDataSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, shortRead(err)
	}
	return buf, nil
}

// --- option ---

// SizeOption is the byte size of an encoded Option[T]: 1 tag byte plus,
// if present, the wrapped value's size.
func SizeOption[T any](v *T, elemSize func(T) uint32) uint32 {
	if v == nil {
		return 1
	}
	return 1 + elemSize(*v)
}

// WriteOption encodes a presence tag (0 absent, 1 present) followed by
// the value's encoding if present.
func WriteOption[T any](w io.Writer, v *T, encode func(io.Writer, T) error) error {
	if v == nil {
		return WriteU8(w, 0)
	}
	if err := WriteU8(w, 1); err != nil {
		return err
	}
	return encode(w, *v)
}

// ReadOption decodes a presence-tagged option. A tag byte other than 0
// or 1 is ErrInvalidData.
func ReadOption[T any](r io.Reader, decode func(io.Reader) (T, error)) (*T, error) {
	tag, err := ReadU8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, invalidf("option tag %#x", tag)
	}
}

// shortRead normalizes io.EOF (which io.ReadFull returns when no byte
// at all was read) into io.ErrUnexpectedEOF, so a value that ends before
// its first byte is reported the same way as one cut off part-way,
// matching the "never a partial value" invariant.
func shortRead(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
