package codegen

import "strconv"

// templateField is one record field's rendering data, precomputed from
// a FieldDesc's resolved wireOps so the templates in templates.go never
// need to call back into Go code.
type templateField struct {
	Name      string
	GoType    string
	Skip      bool
	SizeExpr  string
	WriteExpr string
	ReadExpr  string
	PostRead  string
	Tmp       string
}

// templateRecord is a RecordDesc rendered into template-ready data.
type templateRecord struct {
	Name   string
	Fields []templateField
}

// generateRecord emits a record's ByteSize/Encode/Decode methods
// (C2, record form): field concatenation in declaration order, honoring
// each field's Control. Rendering itself is delegated to the
// "record*" templates in templates.go; this function only resolves
// each field's wire ops into the strings those templates interpolate.
func generateRecord(rd RecordDesc) string {
	td := templateRecord{Name: rd.Name}
	for i, f := range rd.Fields {
		if f.Control.Skip {
			td.Fields = append(td.Fields, templateField{
				Name:   f.Name,
				GoType: opsFor(f.Type).GoType,
				Skip:   true,
			})
			continue
		}
		ops := fieldOps(f)
		td.Fields = append(td.Fields, templateField{
			Name:      f.Name,
			GoType:    ops.GoType,
			SizeExpr:  ops.Size("v." + f.Name),
			WriteExpr: ops.Write("w", "v."+f.Name),
			ReadExpr:  ops.Read("r"),
			PostRead:  ops.PostRead,
			Tmp:       "f" + strconv.Itoa(i),
		})
	}

	g := newGenerator()
	g.execute("recordStruct", td)
	g.execute("recordByteSize", td)
	g.execute("recordEncode", td)
	g.execute("recordDecode", td)
	return g.String()
}
