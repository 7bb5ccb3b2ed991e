// Package codegen implements the composite and service code generator
// (C2, C6): given a declarative description of a record, a tagged
// union, or a whole service, it emits Go source implementing the
// byte_size/encode/decode contract (or, for a service, the full
// client stub and server dispatcher) over the wire package.
//
// Grounded on the original Rust crate's service_parser.rs
// (ServiceDef/MethodDef/ParamDef) and service.rs macro
// (T<NAME>/R<NAME> discriminant-constant naming), re-expressed as a
// Go struct description plus text/template-driven source generation —
// the same shape idiomatic Go generators (stringer, protoc-gen-go)
// use in place of Rust's proc-macro attributes.
package codegen

import "fmt"

// Kind identifies a wire primitive or a composed shape. Composites
// (Slice, Option) carry an Elem; Record references another RecordDesc
// or ServiceDesc method record by name.
type Kind int

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindI32
	KindString
	KindData
	KindUnit
	KindSlice
	KindOption
	KindRecord
)

// TypeRef describes a field's wire type. Elem is set for Slice and
// Option; RecordName is set for Record (the referenced type must
// already implement ByteSize/Encode/Decode the way this package's
// output does — either hand-written or itself generated).
type TypeRef struct {
	Kind       Kind
	Elem       *TypeRef
	RecordName string
}

// Control captures C2's four per-field codec controls. At most one of
// With, Into/From, or As is meaningful for a given field; Skip is
// independent of the others.
type Control struct {
	Skip bool
	With string // a package-level "<With>Size/<With>Write/<With>Read" trio
	Into string // encode-side transform: func(T) U
	From string // decode-side transform: func(U) T
	As   string // like Into for encode and size: func(T) U; decode uses the type's default codec unchanged
}

// FieldDesc is one named, typed field of a record.
type FieldDesc struct {
	Name    string
	Type    TypeRef
	Control Control
}

// RecordDesc describes a record: an ordered list of named
// wire-encodable fields (C2, record form).
type RecordDesc struct {
	Name   string
	Fields []FieldDesc
}

// ParamDesc is one named, typed parameter of a service method —
// identical in shape to FieldDesc but named separately because a
// method's parameters become a generated record's fields, not a
// record the embedder wrote directly.
type ParamDesc struct {
	Name string
	Type TypeRef
}

// MethodDesc is one RPC method of a service (C6). ReturnType is nil
// for a void (unit-returning) method.
type MethodDesc struct {
	Name       string
	Params     []ParamDesc
	ReturnType *TypeRef
}

// ServiceDesc is a full service description: a name, a semver string,
// and an ordered sequence of methods (C6).
type ServiceDesc struct {
	Name    string
	Version string
	Methods []MethodDesc
}

// RequestRecordName returns the generated request record's name for
// m: T<Name>.
func (m MethodDesc) RequestRecordName() string { return "T" + exportedName(m.Name) }

// ResponseRecordName returns the generated response record's name for
// m: R<Name>.
func (m MethodDesc) ResponseRecordName() string { return "R" + exportedName(m.Name) }

// RequestID returns the method's request discriminant: 102 + 2i
// (spec.md §3, §4.6: MESSAGE_ID_START = 102).
func RequestID(i int) uint8 { return MessageIDStart + uint8(2*i) }

// ResponseID returns the method's response discriminant: 103 + 2i.
func ResponseID(i int) uint8 { return MessageIDStart + uint8(2*i) + 1 }

// MessageIDStart is the first message type id available to
// service-generated code (spec.md §3).
const MessageIDStart = 102

// ErrorDiscriminant is the reserved response discriminant carrying the
// error variant (spec.md §3, §4.6).
const ErrorDiscriminant = 5

func exportedName(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func (t TypeRef) String() string {
	switch t.Kind {
	case KindSlice:
		return fmt.Sprintf("[]%s", t.Elem)
	case KindOption:
		return fmt.Sprintf("option<%s>", t.Elem)
	case KindRecord:
		return t.RecordName
	default:
		return primitiveCanonicalName(t.Kind)
	}
}

func primitiveCanonicalName(k Kind) string {
	switch k {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindI32:
		return "i32"
	case KindString:
		return "string"
	case KindData:
		return "data"
	case KindUnit:
		return "unit"
	default:
		return "?"
	}
}
