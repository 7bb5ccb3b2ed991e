package codegen

// VariantDesc is one variant of a tagged union (C2, union form): a
// name, an optional explicit wire discriminant, and an optional
// payload. A nil Payload means the variant carries no data (spec.md
// §4.2: "no payload").
//
// Discriminant is a *uint8 so "absent" is representable: a nil
// Discriminant means the generator assigns one from declaration order
// starting at 0 (spec.md §3 "derived either (a) from declaration
// order... or (b) from an explicit per-variant numeric assignment").
// The service codegen (service.go) always supplies an explicit
// Discriminant for Tmessage/Rmessage, since their discriminants must
// land in the wire's message-type space (102+, plus the reserved error
// discriminant 5); a plain data union omits it and lets declaration
// order assign 0,1,2....
type VariantDesc struct {
	Name         string
	Discriminant *uint8
	Payload      *TypeRef
	// PayloadDecodeFunc overrides the default "Decode<RecordName>"
	// decode function name, for payload types whose decoder lives in
	// another package (e.g. diag.DecodeDiagnostic for the error
	// variant).
	PayloadDecodeFunc string
}

// UnionDesc describes a tagged union: an ordered list of variants
// (C2, union form). A variant's discriminant is its explicit
// VariantDesc.Discriminant if set, otherwise its index in Variants
// (spec.md §3, §9 "two discriminant schemes: declaration-order for
// general data unions, and explicit per-variant numeric assignment for
// T/R unions").
type UnionDesc struct {
	Name     string
	Variants []VariantDesc
}

// discriminant resolves v's wire discriminant: its explicit value if
// set, otherwise its declaration-order index i.
func discriminant(v VariantDesc, i int) uint8 {
	if v.Discriminant != nil {
		return *v.Discriminant
	}
	return uint8(i)
}

// explicitDiscriminant returns a *uint8 pointing at d, for service
// codegen's Tmessage/Rmessage variants, which always assign their
// discriminant explicitly from the wire message-type space rather than
// declaration order.
func explicitDiscriminant(d uint8) *uint8 { return &d }

// templateVariant is one VariantDesc's rendering data, precomputed
// from its resolved wireOps.
type templateVariant struct {
	Wrapper      string
	VariantName  string
	UnionName    string
	Discriminant uint8
	HasPayload   bool
	GoType       string
	SizeExpr     string
	WriteExpr    string
	ReadExpr     string
}

// templateUnion is a UnionDesc rendered into template-ready data.
type templateUnion struct {
	Name     string
	Variants []templateVariant
}

// generateUnion emits a union as a marker interface plus one wrapper
// struct per variant, each implementing frame.Framer, and a
// Decode<Name> dispatcher keyed on the wire discriminant (C2, union
// form; unknown discriminant decodes to wire.ErrInvalidData per
// spec.md §4.2). Rendering is delegated to the "union*" templates in
// templates.go.
func generateUnion(u UnionDesc) string {
	td := templateUnion{Name: u.Name}
	for i, v := range u.Variants {
		wrapper := u.Name + v.Name
		tv := templateVariant{
			Wrapper:      wrapper,
			VariantName:  v.Name,
			UnionName:    u.Name,
			Discriminant: discriminant(v, i),
		}
		if v.Payload != nil {
			ops := opsFor(*v.Payload)
			tv.HasPayload = true
			tv.GoType = ops.GoType
			tv.SizeExpr = ops.Size("v.Value")
			tv.WriteExpr = ops.Write("w", "v.Value")
			readExpr := ops.Read("r")
			if v.PayloadDecodeFunc != "" {
				readExpr = v.PayloadDecodeFunc + "(r)"
			}
			tv.ReadExpr = readExpr
		}
		td.Variants = append(td.Variants, tv)
	}

	g := newGenerator()
	g.execute("unionInterface", td)
	for _, v := range td.Variants {
		g.execute("unionVariant", v)
	}
	g.execute("unionDecode", td)
	return g.String()
}
