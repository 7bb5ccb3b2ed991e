// Package frame implements JetStream's length-prefixed, typed, tagged
// wire frame (C4): size|type|tag|payload, exactly as spec.md §3/§6
// describe it.
//
// Frame layout mirrors the teacher repo's original internal/protocol
// package (its Encoder.WriteMessage/Decoder.ReadMessage: 4-byte size,
// 1-byte type, 2-byte tag, then payload), generalized to a Framer
// contract so any request/response union — not just a fixed 9P message
// set — can ride the same frame.
package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetstream-proto/jetstream/wire"
)

const (
	// HeaderSize is the fixed portion of every frame: 4 (size) + 1
	// (type) + 2 (tag).
	HeaderSize = 7

	// ErrorType is the reserved message type for the error frame
	// (spec.md §3, §6).
	ErrorType uint8 = 5

	// TversionType and RversionType are the reserved message types for
	// the version handshake (spec.md §3, §4.5).
	TversionType uint8 = 100
	RversionType uint8 = 101

	// MessageIDStart is the first message type id available to
	// service codegen (spec.md §3, §4.6).
	MessageIDStart uint8 = 102

	// NoTag is the reserved tag used only for the version handshake
	// (spec.md §3).
	NoTag uint16 = 0xFFFF
)

// Framer is implemented by every request/response union so the frame
// layer can size, type, and encode it without knowing its concrete
// shape (spec.md §4.4).
type Framer interface {
	// MessageType reports the numeric type id of the selected variant.
	MessageType() uint8
	// PayloadSize reports the on-the-wire byte size of the payload
	// (excluding the 7-byte frame header).
	PayloadSize() uint32
	// EncodePayload writes the selected variant's payload.
	EncodePayload(w io.Writer) error
}

// Frame is a decoded wire frame with its payload left un-decoded: the
// caller picks the decode function for Type (normally a generated
// union's Decode function).
type Frame struct {
	Type    uint8
	Tag     uint16
	Payload []byte
}

// WriteFrame encodes f under the given tag: size, type, tag, payload.
func WriteFrame(w io.Writer, tag uint16, f Framer) error {
	size := uint64(HeaderSize) + uint64(f.PayloadSize())
	if size > 0xFFFFFFFF {
		return fmt.Errorf("%w: frame size %d exceeds u32", wire.ErrInvalidInput, size)
	}
	if err := wire.WriteU32(w, uint32(size)); err != nil {
		return err
	}
	if err := wire.WriteU8(w, f.MessageType()); err != nil {
		return err
	}
	if err := wire.WriteU16(w, tag); err != nil {
		return err
	}
	return f.EncodePayload(w)
}

// ReadFrame reads one frame from r. It reports io.EOF if the stream ends
// cleanly before the first byte of a frame. It reports a decode error
// (wrapping wire.ErrInvalidData) if the declared size is less than
// HeaderSize or exceeds maxSize (when maxSize is non-zero — the
// negotiated msize cap); it reports io.ErrUnexpectedEOF if the stream
// ends part-way through a frame.
func ReadFrame(r io.Reader, maxSize uint32) (Frame, error) {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return Frame{}, err
	}
	size := binary.LittleEndian.Uint32(sizeBuf[:])
	if size < HeaderSize {
		return Frame{}, fmt.Errorf("%w: frame size %d below header size %d", wire.ErrInvalidData, size, HeaderSize)
	}
	if maxSize != 0 && size > maxSize {
		return Frame{}, fmt.Errorf("%w: frame size %d exceeds msize %d", wire.ErrInvalidData, size, maxSize)
	}

	typ, err := wire.ReadU8(r)
	if err != nil {
		return Frame{}, err
	}
	tag, err := wire.ReadU16(r)
	if err != nil {
		return Frame{}, err
	}

	payloadLen := size - HeaderSize
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Frame{}, io.ErrUnexpectedEOF
		}
		return Frame{}, err
	}

	return Frame{Type: typ, Tag: tag, Payload: payload}, nil
}

// DecodePayload runs decode over f's payload bytes and requires that it
// consume every byte: surplus bytes in the payload window are a decode
// error (spec.md §4.4).
func DecodePayload[T any](payload []byte, decode func(io.Reader) (T, error)) (T, error) {
	r := bytes.NewReader(payload)
	v, err := decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.Len() != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d surplus bytes in payload", wire.ErrInvalidData, r.Len())
	}
	return v, nil
}
