package codegen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// CanonicalString renders svc's shape — method order, names, parameter
// names and types, return types — into the textual form the protocol
// identity digest is computed over (spec.md §3, §4.6). Two services
// with the same CanonicalString are wire-compatible; any change to
// method order, naming, or types changes it.
func (svc ServiceDesc) CanonicalString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "service %s {\n", svc.Name)
	for _, m := range svc.Methods {
		fmt.Fprintf(&b, "  fn %s(", m.Name)
		for i, p := range m.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
		}
		b.WriteString(") -> ")
		if m.ReturnType != nil {
			b.WriteString(m.ReturnType.String())
		} else {
			b.WriteString("unit")
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Digest returns the first 8 hex characters of the SHA-256 of svc's
// canonical string (spec.md §3). This mirrors the original crate's use
// of sha256::digest(...)[0..8] over the trait's token stream
// (components/jetstream_macros/src/service.rs), just over Go's
// canonical rendering instead of a Rust token stream.
func (svc ServiceDesc) Digest() string {
	sum := sha256.Sum256([]byte(svc.CanonicalString()))
	return hex.EncodeToString(sum[:])[:8]
}

// ProtocolIdentity returns the protocol identity string emitted by
// codegen and checked by the handshake (spec.md §3):
// rs.jetstream.proto/<name>/<semver>+<digest>.
func (svc ServiceDesc) ProtocolIdentity() string {
	return fmt.Sprintf("rs.jetstream.proto/%s/%s+%s", strings.ToLower(svc.Name), svc.Version, svc.Digest())
}
