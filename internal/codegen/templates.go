package codegen

import (
	"bytes"
	"fmt"
	"text/template"
)

// generator renders named text/template templates into a shared
// buffer, the same Execute-into-buffer shape
// _examples/sandia-minimega-minimega/src/vmconfiger/generator.go uses
// to turn a parsed field description into Go source: one named
// sub-template per shape (record struct/byte-size/encode/decode,
// union interface/variant/decode), executed in sequence against
// precomputed per-field/per-variant data.
//
// Unlike vmconfiger, JetStream's generator input is never parsed out
// of existing Go source with go/ast/go/parser — a RecordDesc/UnionDesc
// is authored directly as Go data (the IR types in ir.go), the same
// way a .proto file's parsed AST feeds protoc-gen-go. There is nothing
// here for go/ast or go/parser to parse.
type generator struct {
	tmpl *template.Template
	buf  bytes.Buffer
}

var codecTemplates = template.Must(template.New("codec").Parse(`
{{define "recordStruct"}}// {{.Name}} is a generated wire record.
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}{{if .Skip}} // skipped on the wire{{end}}
{{- end}}
}

{{end}}

{{define "recordByteSize"}}// ByteSize returns the encoded size of a {{.Name}}.
func (v {{.Name}}) ByteSize() uint32 {
{{- if not .Fields}}
	return 0
}

{{- else}}
	var size uint32
{{- range .Fields}}
{{- if not .Skip}}
	size += {{.SizeExpr}}
{{- end}}
{{- end}}
	return size
}

{{- end}}

{{end}}

{{define "recordEncode"}}// Encode writes v's wire encoding.
func (v {{.Name}}) Encode(w io.Writer) error {
{{- range .Fields}}
{{- if not .Skip}}
	if err := {{.WriteExpr}}; err != nil {
		return err
	}
{{- end}}
{{- end}}
	return nil
}

{{end}}

{{define "recordDecode"}}// Decode{{.Name}} decodes a {{.Name}}.
func Decode{{.Name}}(r io.Reader) ({{.Name}}, error) {
	var v {{.Name}}
{{- range .Fields}}
{{- if not .Skip}}
	{{.Tmp}}, err := {{.ReadExpr}}
	if err != nil {
		return {{$.Name}}{}, err
	}
{{- if .PostRead}}
	v.{{.Name}} = {{.PostRead}}({{.Tmp}})
{{- else}}
	v.{{.Name}} = {{.Tmp}}
{{- end}}
{{- end}}
{{- end}}
	return v, nil
}

{{end}}

{{define "unionInterface"}}// {{.Name}} is a generated tagged union.
type {{.Name}} interface {
	frame.Framer
	is{{.Name}}()
}

{{end}}

{{define "unionVariant"}}const {{.Wrapper}}Type uint8 = {{.Discriminant}}

// {{.Wrapper}} is the {{.VariantName}} variant of {{.UnionName}}.
{{- if .HasPayload}}
type {{.Wrapper}} struct {
	Value {{.GoType}}
}

func ({{.Wrapper}}) is{{.UnionName}}() {}
func (v {{.Wrapper}}) MessageType() uint8  { return {{.Wrapper}}Type }
func (v {{.Wrapper}}) PayloadSize() uint32 { return {{.SizeExpr}} }
func (v {{.Wrapper}}) EncodePayload(w io.Writer) error { return {{.WriteExpr}} }
{{- else}}
type {{.Wrapper}} struct{}

func ({{.Wrapper}}) is{{.UnionName}}() {}
func ({{.Wrapper}}) MessageType() uint8              { return {{.Wrapper}}Type }
func ({{.Wrapper}}) PayloadSize() uint32             { return 0 }
func ({{.Wrapper}}) EncodePayload(io.Writer) error   { return nil }
{{- end}}

{{end}}

{{define "unionDecode"}}// Decode{{.Name}} decodes the variant selected by msgType.
func Decode{{.Name}}(msgType uint8, r io.Reader) ({{.Name}}, error) {
	switch msgType {
{{- range .Variants}}
	case {{.Wrapper}}Type:
{{- if .HasPayload}}
		value, err := {{.ReadExpr}}
		if err != nil {
			return nil, err
		}
		return {{.Wrapper}}{Value: value}, nil
{{- else}}
		return {{.Wrapper}}{}, nil
{{- end}}
{{- end}}
	default:
		return nil, fmt.Errorf("%w: unknown {{.Name}} discriminant %d", wire.ErrInvalidData, msgType)
	}
}

{{end}}
`))

// newGenerator builds a generator sharing codecTemplates.
func newGenerator() *generator {
	return &generator{tmpl: codecTemplates}
}

// execute runs the named sub-template against data, appending its
// output to the buffer. A template error here means a bug in the
// templates above, not in generated-code input, so it panics rather
// than threading an error return through every call site — the same
// choice vmconfiger's Generator.Execute makes (it logs and continues,
// but there every template is static per build; ours is static per
// process, so a mismatch is a programming error either way).
func (g *generator) execute(name string, data any) {
	if err := g.tmpl.ExecuteTemplate(&g.buf, name, data); err != nil {
		panic(fmt.Sprintf("codegen: template %q: %v", name, err))
	}
}

// String returns the accumulated output.
func (g *generator) String() string { return g.buf.String() }
