package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/jetstream-proto/jetstream/wire"
)

// pingFrame is a minimal Framer used only to exercise the frame layer
// independently of any generated service union.
type pingFrame struct {
	text string
}

func (p pingFrame) MessageType() uint8    { return 102 }
func (p pingFrame) PayloadSize() uint32   { return wire.SizeString(p.text) }
func (p pingFrame) EncodePayload(w io.Writer) error {
	return wire.WriteString(w, p.text)
}

func decodePing(r io.Reader) (pingFrame, error) {
	s, err := wire.ReadString(r)
	if err != nil {
		return pingFrame{}, err
	}
	return pingFrame{text: s}, nil
}

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, 7, pingFrame{text: "hello"}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	f, err := ReadFrame(&buf, 0)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Type != 102 || f.Tag != 7 {
		t.Fatalf("f = %+v", f)
	}

	got, err := DecodePayload(f.Payload, decodePing)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if got.text != "hello" {
		t.Fatalf("text = %q, want hello", got.text)
	}
}

func TestReadFrameSizeBelowHeader(t *testing.T) {
	var buf bytes.Buffer
	wire.WriteU32(&buf, 3)
	_, err := ReadFrame(&buf, 0)
	if !errors.Is(err, wire.ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestReadFrameExceedsMaxSize(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, 1, pingFrame{text: "a very long ping message"}); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFrame(&buf, HeaderSize+4)
	if !errors.Is(err, wire.ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestReadFrameShortPayload(t *testing.T) {
	var buf bytes.Buffer
	wire.WriteU32(&buf, 20)
	wire.WriteU8(&buf, 102)
	wire.WriteU16(&buf, 0)
	buf.WriteString("short")

	_, err := ReadFrame(&buf, 0)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecodePayloadSurplusBytes(t *testing.T) {
	var buf bytes.Buffer
	wire.WriteString(&buf, "hi")
	buf.WriteByte(0xFF)

	_, err := DecodePayload(buf.Bytes(), decodePing)
	if !errors.Is(err, wire.ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}
