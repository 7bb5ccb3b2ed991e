package codegen

import "fmt"

// wireOps carries enough information to emit inline Go expressions
// for a field's size/write/read without any runtime reflection: a Go
// type name, and three closures that, given the names of the Go
// variables involved, return the source text of the call expression.
type wireOps struct {
	GoType   string
	Size     func(expr string) string   // -> uint32 expression
	Write    func(w, expr string) string // -> error expression
	Read     func(r string) string       // -> "(value, error)" expression
	PostRead string                      // optional: func name applied to the decoded value (C2 "from")
	Zero     string                      // zero-value literal, for skipped fields
}

func primitiveOps(k Kind) wireOps {
	switch k {
	case KindBool:
		return wireOps{
			GoType: "bool",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeBool(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteBool(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadBool(%s)", r) },
			Zero:   "false",
		}
	case KindU8:
		return wireOps{
			GoType: "uint8",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeU8(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteU8(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadU8(%s)", r) },
			Zero:   "0",
		}
	case KindU16:
		return wireOps{
			GoType: "uint16",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeU16(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteU16(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadU16(%s)", r) },
			Zero:   "0",
		}
	case KindU32:
		return wireOps{
			GoType: "uint32",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeU32(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteU32(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadU32(%s)", r) },
			Zero:   "0",
		}
	case KindU64:
		return wireOps{
			GoType: "uint64",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeU64(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteU64(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadU64(%s)", r) },
			Zero:   "0",
		}
	case KindU128:
		return wireOps{
			GoType: "wire.U128",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeU128(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteU128(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadU128(%s)", r) },
			Zero:   "wire.U128{}",
		}
	case KindI32:
		return wireOps{
			GoType: "int32",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeI32(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteI32(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadI32(%s)", r) },
			Zero:   "0",
		}
	case KindString:
		return wireOps{
			GoType: "string",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeString(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteString(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadString(%s)", r) },
			Zero:   `""`,
		}
	case KindData:
		return wireOps{
			GoType: "[]byte",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeData(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteData(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadData(%s)", r) },
			Zero:   "nil",
		}
	case KindUnit:
		return wireOps{
			GoType: "wire.Unit",
			Size:   func(e string) string { return fmt.Sprintf("wire.SizeUnit(%s)", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("wire.WriteUnit(%s, %s)", w, e) },
			Read:   func(r string) string { return fmt.Sprintf("wire.ReadUnit(%s)", r) },
			Zero:   "wire.Unit{}",
		}
	default:
		panic(fmt.Sprintf("codegen: not a primitive kind: %v", k))
	}
}

// opsFor computes the wireOps for an arbitrary TypeRef, recursing into
// Slice/Option via the wire package's generic helpers and deferring to
// the referenced type's own ByteSize/Encode/Decode methods for Record.
func opsFor(t TypeRef) wireOps {
	switch t.Kind {
	case KindSlice:
		elem := opsFor(*t.Elem)
		return wireOps{
			GoType: "[]" + elem.GoType,
			Size: func(e string) string {
				return fmt.Sprintf("wire.SizeSlice(%s, func(v %s) uint32 { return %s })", e, elem.GoType, elem.Size("v"))
			},
			Write: func(w, e string) string {
				return fmt.Sprintf("wire.WriteSlice(%s, %s, func(w io.Writer, v %s) error { return %s })", w, e, elem.GoType, elem.Write("w", "v"))
			},
			Read: func(r string) string {
				return fmt.Sprintf("wire.ReadSlice(%s, func(r io.Reader) (%s, error) { return %s })", r, elem.GoType, elem.Read("r"))
			},
			Zero: "nil",
		}
	case KindOption:
		elem := opsFor(*t.Elem)
		return wireOps{
			GoType: "*" + elem.GoType,
			Size: func(e string) string {
				return fmt.Sprintf("wire.SizeOption(%s, func(v %s) uint32 { return %s })", e, elem.GoType, elem.Size("v"))
			},
			Write: func(w, e string) string {
				return fmt.Sprintf("wire.WriteOption(%s, %s, func(w io.Writer, v %s) error { return %s })", w, e, elem.GoType, elem.Write("w", "v"))
			},
			Read: func(r string) string {
				return fmt.Sprintf("wire.ReadOption(%s, func(r io.Reader) (%s, error) { return %s })", r, elem.GoType, elem.Read("r"))
			},
			Zero: "nil",
		}
	case KindRecord:
		return wireOps{
			GoType: t.RecordName,
			Size:   func(e string) string { return fmt.Sprintf("%s.ByteSize()", e) },
			Write:  func(w, e string) string { return fmt.Sprintf("%s.Encode(%s)", e, w) },
			Read:   func(r string) string { return fmt.Sprintf("Decode%s(%s)", t.RecordName, r) },
			Zero:   t.RecordName + "{}",
		}
	default:
		return primitiveOps(t.Kind)
	}
}

// fieldOps resolves a field's effective wireOps, applying its Control
// (C2's skip/with/into-from/as) over the type's default ops.
func fieldOps(f FieldDesc) wireOps {
	base := opsFor(f.Type)
	c := f.Control

	switch {
	case c.With != "":
		return wireOps{
			GoType: base.GoType,
			Size:   func(e string) string { return fmt.Sprintf("%sSize(%s)", c.With, e) },
			Write:  func(w, e string) string { return fmt.Sprintf("%sWrite(%s, %s)", c.With, w, e) },
			Read:   func(r string) string { return fmt.Sprintf("%sRead(%s)", c.With, r) },
			Zero:   base.Zero,
		}
	case c.Into != "" && c.From != "":
		return wireOps{
			GoType:   base.GoType,
			Size:     func(e string) string { return base.Size(fmt.Sprintf("%s(%s)", c.Into, e)) },
			Write:    func(w, e string) string { return base.Write(w, fmt.Sprintf("%s(%s)", c.Into, e)) },
			Read:     base.Read,
			PostRead: c.From,
			Zero:     base.Zero,
		}
	case c.As != "":
		return wireOps{
			GoType: base.GoType,
			Size:   func(e string) string { return base.Size(fmt.Sprintf("%s(%s)", c.As, e)) },
			Write:  func(w, e string) string { return base.Write(w, fmt.Sprintf("%s(%s)", c.As, e)) },
			Read:   base.Read,
			Zero:   base.Zero,
		}
	default:
		return base
	}
}
