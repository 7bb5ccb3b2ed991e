// Package handshake implements the version negotiation (C5): the
// Tversion/Rversion exchange on the reserved NOTAG tag that must
// complete before any service frame is decoded.
package handshake

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// jetstreamPrefix is the fixed prefix of every JetStream protocol
// identity string (spec.md §3): rs.jetstream.proto/<name>/<semver>.
const jetstreamPrefix = "rs.jetstream.proto/"

// Kind distinguishes the three forms a version string may take
// (spec.md §4.5 step 2): the two 9P2000 legacy tokens, or a JetStream
// protocol identity string.
type Kind uint8

const (
	KindLegacy9P2000  Kind = iota // the bare token "9P2000"
	KindLegacy9P2000L             // the bare token "9P2000.L"
	KindJetStream                 // rs.jetstream.proto/<name>/<semver>+<digest>
)

// Version is a parsed version string. For KindJetStream, ProtoName is
// the service name and SemVer carries the version and, in its Build
// field, the 8-hex-character service digest (semver's own
// build-metadata syntax already matches the spec's "<semver>+<digest>"
// grammar, so no separate digest field is needed).
type Version struct {
	Kind      Kind
	ProtoName string
	SemVer    semver.Version
}

// HandlerKey returns the string a router looks handlers up by: the
// bare legacy token, or the JetStream protocol name.
func (v Version) HandlerKey() string {
	switch v.Kind {
	case KindLegacy9P2000:
		return "9P2000"
	case KindLegacy9P2000L:
		return "9P2000.L"
	default:
		return v.ProtoName
	}
}

// Digest returns the 8-hex-character service digest carried in the
// version's build metadata, or "" for a legacy version.
func (v Version) Digest() string {
	if v.Kind != KindJetStream || len(v.SemVer.Build) == 0 {
		return ""
	}
	return v.SemVer.Build[0]
}

// String renders v back into the identity string spec.md §3 defines.
func (v Version) String() string {
	switch v.Kind {
	case KindLegacy9P2000:
		return "9P2000"
	case KindLegacy9P2000L:
		return "9P2000.L"
	default:
		return jetstreamPrefix + v.ProtoName + "/" + v.SemVer.String()
	}
}

// ParseVersion parses a Tversion/Rversion version string into one of
// the three forms spec.md §4.5 step 2 allows.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "9P2000":
		return Version{Kind: KindLegacy9P2000}, nil
	case "9P2000.L":
		return Version{Kind: KindLegacy9P2000L}, nil
	}

	rest, ok := strings.CutPrefix(s, jetstreamPrefix)
	if !ok {
		return Version{}, fmt.Errorf("handshake: %q is neither a legacy token nor a %s identity string", s, jetstreamPrefix)
	}
	name, semverPart, ok := strings.Cut(rest, "/")
	if !ok || name == "" || semverPart == "" {
		return Version{}, fmt.Errorf("handshake: malformed identity string %q", s)
	}
	sv, err := semver.Parse(semverPart)
	if err != nil {
		return Version{}, fmt.Errorf("handshake: invalid semver in %q: %w", s, err)
	}
	return Version{Kind: KindJetStream, ProtoName: name, SemVer: sv}, nil
}
