package handshake

import (
	"io"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
	"github.com/jetstream-proto/jetstream/wire"
)

// Tversion is the client's opening frame, sent on frame.NoTag
// (spec.md §4.5).
type Tversion struct {
	Msize   uint32
	Version string
}

func (t Tversion) MessageType() uint8  { return frame.TversionType }
func (t Tversion) PayloadSize() uint32 { return wire.SizeU32(t.Msize) + wire.SizeString(t.Version) }

func (t Tversion) EncodePayload(w io.Writer) error {
	if err := wire.WriteU32(w, t.Msize); err != nil {
		return err
	}
	return wire.WriteString(w, t.Version)
}

// DecodeTversion decodes a Tversion payload.
func DecodeTversion(r io.Reader) (Tversion, error) {
	msize, err := wire.ReadU32(r)
	if err != nil {
		return Tversion{}, err
	}
	version, err := wire.ReadString(r)
	if err != nil {
		return Tversion{}, err
	}
	return Tversion{Msize: msize, Version: version}, nil
}

// Rversion is the server's reply to Tversion, sent on frame.NoTag
// (spec.md §4.5). Version "unknown" with Msize 0 signals rejection.
type Rversion struct {
	Msize   uint32
	Version string
}

func (r Rversion) MessageType() uint8  { return frame.RversionType }
func (r Rversion) PayloadSize() uint32 { return wire.SizeU32(r.Msize) + wire.SizeString(r.Version) }

func (r Rversion) EncodePayload(w io.Writer) error {
	if err := wire.WriteU32(w, r.Msize); err != nil {
		return err
	}
	return wire.WriteString(w, r.Version)
}

// DecodeRversion decodes an Rversion payload.
func DecodeRversion(r io.Reader) (Rversion, error) {
	msize, err := wire.ReadU32(r)
	if err != nil {
		return Rversion{}, err
	}
	version, err := wire.ReadString(r)
	if err != nil {
		return Rversion{}, err
	}
	return Rversion{Msize: msize, Version: version}, nil
}

// unknownVersion is the Rversion payload a server sends when it has no
// handler for the requested protocol name, or the requested version
// string does not parse (spec.md §4.5 step 5).
const unknownVersion = "unknown"

// ClientHandshake runs the client side of version negotiation
// (spec.md §4.5): send Tversion, receive Rversion, adopt
// min(clientMax, serverMax) as the session's msize. identity is
// normally a generated service's protocol identity string, but a
// legacy "9P2000"/"9P2000.L" token is also accepted.
func ClientHandshake(r io.Reader, w io.Writer, clientMax uint32, identity string) (msize uint32, err error) {
	t := Tversion{Msize: clientMax, Version: identity}
	if err := frame.WriteFrame(w, frame.NoTag, t); err != nil {
		return 0, diag.Wrap(diag.KindTransport, err)
	}

	f, err := frame.ReadFrame(r, 0)
	if err != nil {
		return 0, diag.Wrap(diag.KindTransport, err)
	}
	if f.Type != frame.RversionType {
		return 0, diag.Newf(diag.KindVersionMismatch, "expected Rversion, got message type %d", f.Type)
	}
	if f.Tag != frame.NoTag {
		return 0, diag.Newf(diag.KindVersionMismatch, "Rversion arrived on tag %d, want NOTAG", f.Tag)
	}

	rv, err := frame.DecodePayload(f.Payload, DecodeRversion)
	if err != nil {
		return 0, diag.Wrap(diag.KindDecode, err)
	}
	if rv.Version == unknownVersion {
		return 0, diag.Newf(diag.KindVersionMismatch, "server rejected version %q", identity)
	}

	msize = clientMax
	if rv.Msize < msize {
		msize = rv.Msize
	}
	return msize, nil
}

// Resolver reports whether a handler is registered for the given
// handshake key (Version.HandlerKey()).
type Resolver func(handlerKey string) bool

// ServerHandshake runs the server/router side of version negotiation
// (spec.md §4.5). On success it returns the negotiated Version and
// msize, with the still-open reader/writer ready for service frames.
// On rejection it writes the "unknown" Rversion itself and returns a
// version-mismatch error for an unparseable version, or a no-handler
// error when no handler is registered; the caller should close the
// connection.
func ServerHandshake(r io.Reader, w io.Writer, serverMax uint32, resolve Resolver) (Version, uint32, error) {
	f, err := frame.ReadFrame(r, 0)
	if err != nil {
		return Version{}, 0, diag.Wrap(diag.KindTransport, err)
	}
	if f.Type != frame.TversionType {
		return Version{}, 0, diag.Newf(diag.KindVersionMismatch, "expected Tversion, got message type %d", f.Type)
	}
	if f.Tag != frame.NoTag {
		return Version{}, 0, diag.Newf(diag.KindVersionMismatch, "Tversion arrived on tag %d, want NOTAG", f.Tag)
	}

	tv, err := frame.DecodePayload(f.Payload, DecodeTversion)
	if err != nil {
		return Version{}, 0, diag.Wrap(diag.KindDecode, err)
	}

	v, parseErr := ParseVersion(tv.Version)
	if parseErr == nil && resolve(v.HandlerKey()) {
		msize := serverMax
		if tv.Msize < msize {
			msize = tv.Msize
		}
		rv := Rversion{Msize: msize, Version: v.String()}
		if err := frame.WriteFrame(w, frame.NoTag, rv); err != nil {
			return Version{}, 0, diag.Wrap(diag.KindTransport, err)
		}
		return v, msize, nil
	}

	rv := Rversion{Msize: 0, Version: unknownVersion}
	if err := frame.WriteFrame(w, frame.NoTag, rv); err != nil {
		return Version{}, 0, diag.Wrap(diag.KindTransport, err)
	}
	if parseErr != nil {
		return Version{}, 0, diag.Newf(diag.KindVersionMismatch, "unparseable version %q: %v", tv.Version, parseErr)
	}
	return Version{}, 0, diag.Newf(diag.KindNoHandler, "no handler registered for %q", v.HandlerKey())
}
