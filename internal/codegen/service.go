package codegen

import (
	"fmt"
	"go/format"
	"strings"
)

// GenerateService renders svc into a complete Go source file: the
// per-method request/response records, the Tmessage/Rmessage unions
// with their discriminant constants, a Client stub, and a server
// Dispatcher satisfying session/dispatch.Handler — the full output of
// C6 (spec.md §4.6). pkgName is the generated file's package clause.
//
// This mirrors the shape idiomatic Go generators commit alongside
// their own source (protoc-gen-go, stringer): the .go file GenerateService
// returns is meant to be written to disk and compiled as ordinary Go,
// not interpreted at runtime.
func GenerateService(svc ServiceDesc, pkgName string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by jetstreamgen from a service description. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	b.WriteString(`import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/wire"
)

`)

	fmt.Fprintf(&b, "// ProtocolIdentity is the %s service's protocol identity string\n", svc.Name)
	fmt.Fprintf(&b, "// (spec.md §3): it changes whenever the service's method set, names,\n")
	fmt.Fprintf(&b, "// parameter types, or return types change.\n")
	fmt.Fprintf(&b, "const ProtocolIdentity = %q\n\n", svc.ProtocolIdentity())

	for i, m := range svc.Methods {
		generateMethodRecords(&b, m, i)
	}

	generateRequestUnion(&b, svc)
	generateResponseUnion(&b, svc)
	generateClient(&b, svc)
	generateDispatcher(&b, svc)

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("codegen: generated source does not parse: %w", err)
	}
	return string(out), nil
}

// generateMethodRecords emits the T<Method>/R<Method> request/response
// records for method m at index i.
func generateMethodRecords(b *strings.Builder, m MethodDesc, i int) {
	reqFields := make([]FieldDesc, len(m.Params))
	for j, p := range m.Params {
		reqFields[j] = FieldDesc{Name: exportedName(p.Name), Type: p.Type}
	}
	b.WriteString(generateRecord(RecordDesc{Name: m.RequestRecordName(), Fields: reqFields}))

	var respFields []FieldDesc
	if m.ReturnType != nil {
		respFields = []FieldDesc{{Name: "Value", Type: *m.ReturnType}}
	}
	b.WriteString(generateRecord(RecordDesc{Name: m.ResponseRecordName(), Fields: respFields}))

	fmt.Fprintf(b, "// %s and %s are the wire discriminants for method %q\n", requestConstName(m), responseConstName(m), m.Name)
	fmt.Fprintf(b, "// (spec.md §3, §4.6: MESSAGE_ID_START=102, request=102+2i, response=103+2i).\n")
	fmt.Fprintf(b, "const %s uint8 = %d\n", requestConstName(m), RequestID(i))
	fmt.Fprintf(b, "const %s uint8 = %d\n\n", responseConstName(m), ResponseID(i))
}

func requestConstName(m MethodDesc) string  { return "T" + exportedName(m.Name) + "Type" }
func responseConstName(m MethodDesc) string { return "R" + exportedName(m.Name) + "Type" }

// generateRequestUnion emits Tmessage: one variant per method, plus
// the Decode dispatcher.
func generateRequestUnion(b *strings.Builder, svc ServiceDesc) {
	u := UnionDesc{Name: "Tmessage"}
	for i, m := range svc.Methods {
		rec := m.RequestRecordName()
		u.Variants = append(u.Variants, VariantDesc{
			Name:              exportedName(m.Name),
			Discriminant:      explicitDiscriminant(RequestID(i)),
			Payload:           &TypeRef{Kind: KindRecord, RecordName: rec},
			PayloadDecodeFunc: "Decode" + rec,
		})
	}
	b.WriteString(generateUnion(u))
}

// generateResponseUnion emits Rmessage: one variant per method plus
// the reserved error variant bound to discriminant 5 (spec.md §4.6).
func generateResponseUnion(b *strings.Builder, svc ServiceDesc) {
	u := UnionDesc{Name: "Rmessage"}
	for i, m := range svc.Methods {
		rec := m.ResponseRecordName()
		u.Variants = append(u.Variants, VariantDesc{
			Name:              exportedName(m.Name),
			Discriminant:      explicitDiscriminant(ResponseID(i)),
			Payload:           &TypeRef{Kind: KindRecord, RecordName: rec},
			PayloadDecodeFunc: "Decode" + rec,
		})
	}
	u.Variants = append(u.Variants, VariantDesc{
		Name:              "Error",
		Discriminant:      explicitDiscriminant(ErrorDiscriminant),
		Payload:           &TypeRef{Kind: KindRecord, RecordName: "diag.Diagnostic"},
		PayloadDecodeFunc: "diag.DecodeDiagnostic",
	})
	b.WriteString(generateUnion(u))
}

// generateClient emits the Client stub: one method per service method,
// each acquiring a tag, sending the request variant, and destructuring
// the matching response variant (spec.md §4.6 "client stub").
func generateClient(b *strings.Builder, svc ServiceDesc) {
	b.WriteString("// Client is the generated client stub: one method per service\n")
	b.WriteString("// method, each performing one RPC over the session.\n")
	b.WriteString("type Client struct{ Session *mux.Session }\n\n")
	b.WriteString("// NewClient wraps an already-negotiated session in a Client.\n")
	b.WriteString("func NewClient(s *mux.Session) *Client { return &Client{Session: s} }\n\n")

	for _, m := range svc.Methods {
		generateClientMethod(b, m)
	}
}

func generateClientMethod(b *strings.Builder, m MethodDesc) {
	name := exportedName(m.Name)
	reqRec := m.RequestRecordName()
	wrapper := "Tmessage" + name
	respWrapper := "Rmessage" + name

	paramList := []string{"ctx context.Context"}
	argList := []string{}
	for _, p := range m.Params {
		goName := exportedName(p.Name)
		paramList = append(paramList, fmt.Sprintf("%s %s", goName, opsFor(p.Type).GoType))
		argList = append(argList, goName)
	}

	retType := "wire.Unit"
	if m.ReturnType != nil {
		retType = opsFor(*m.ReturnType).GoType
	}

	fmt.Fprintf(b, "// %s calls the %q method.\n", name, m.Name)
	fmt.Fprintf(b, "func (c *Client) %s(%s) (%s, error) {\n", name, strings.Join(paramList, ", "), retType)
	fmt.Fprintf(b, "\treq := %s{Value: %s{%s}}\n", wrapper, reqRec, fieldAssignList(m, argList))
	fmt.Fprintf(b, "\tresp, err := mux.RPC(ctx, c.Session, req, DecodeRmessage)\n")
	b.WriteString("\tif err != nil {\n\t\tvar zero " + retType + "\n\t\treturn zero, err\n\t}\n")
	fmt.Fprintf(b, "\tswitch v := resp.(type) {\n")
	fmt.Fprintf(b, "\tcase %s:\n", respWrapper)
	if m.ReturnType != nil {
		b.WriteString("\t\treturn v.Value.Value, nil\n")
	} else {
		b.WriteString("\t\treturn wire.Unit{}, nil\n")
	}
	b.WriteString("\tcase RmessageError:\n")
	b.WriteString("\t\tvar zero " + retType + "\n")
	b.WriteString("\t\treturn zero, diag.FromDiagnostic(v.Value)\n")
	b.WriteString("\tdefault:\n")
	b.WriteString("\t\tvar zero " + retType + "\n")
	fmt.Fprintf(b, "\t\treturn zero, diag.Newf(diag.KindUnexpectedResponse, %q)\n", "unexpected response variant for "+m.Name)
	b.WriteString("\t}\n}\n\n")
}

// fieldAssignList renders "Field0: arg0, Field1: arg1" for a method's
// parameters, in the struct-literal form the request record expects.
func fieldAssignList(m MethodDesc, argNames []string) string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = fmt.Sprintf("%s: %s", exportedName(p.Name), argNames[i])
	}
	return strings.Join(parts, ", ")
}

// generateDispatcher emits the service's Handler interface — the
// interface its business logic implements, one method per service
// method, with the peer-scoped context as the first argument
// (spec.md §4.6 "calls the user-supplied handler with
// (context, parameters...)") — and the Dispatcher that holds a Handler
// and routes each decoded Tmessage variant to the matching method.
func generateDispatcher(b *strings.Builder, svc ServiceDesc) {
	b.WriteString("// Handler is implemented by the service's business logic: one method\n")
	b.WriteString("// per RPC, taking the caller's peer context first.\n")
	b.WriteString("type Handler interface {\n")
	for _, m := range svc.Methods {
		name := exportedName(m.Name)
		paramTypes := []string{"context.Context"}
		for _, p := range m.Params {
			paramTypes = append(paramTypes, opsFor(p.Type).GoType)
		}
		retType := "wire.Unit"
		if m.ReturnType != nil {
			retType = opsFor(*m.ReturnType).GoType
		}
		fmt.Fprintf(b, "\t%s(%s) (%s, error)\n", name, strings.Join(paramTypes, ", "), retType)
	}
	b.WriteString("}\n\n")

	b.WriteString("// Dispatcher wraps a Handler to satisfy session/dispatch.Handler:\n")
	b.WriteString("// it decodes the Tmessage variant selected by msgType, calls the\n")
	b.WriteString("// matching Handler method, and wraps the result (or error) into the\n")
	b.WriteString("// matching Rmessage variant, preserving the caller's tag implicitly\n")
	b.WriteString("// (session/dispatch writes the response under the request's tag).\n")
	b.WriteString("type Dispatcher struct{ Handler Handler }\n\n")
	b.WriteString("func NewDispatcher(h Handler) *Dispatcher { return &Dispatcher{Handler: h} }\n\n")

	b.WriteString("func (d *Dispatcher) Dispatch(ctx context.Context, msgType uint8, payload []byte) (frame.Framer, error) {\n")
	b.WriteString("\treq, err := frame.DecodePayload(payload, func(r io.Reader) (Tmessage, error) { return DecodeTmessage(msgType, r) })\n")
	b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	b.WriteString("\tswitch v := req.(type) {\n")
	for _, m := range svc.Methods {
		name := exportedName(m.Name)
		wrapper := "Tmessage" + name
		respWrapper := "Rmessage" + name
		fmt.Fprintf(b, "\tcase %s:\n", wrapper)
		callArgs := []string{"ctx"}
		for _, p := range m.Params {
			callArgs = append(callArgs, "v.Value."+exportedName(p.Name))
		}
		if m.ReturnType != nil {
			fmt.Fprintf(b, "\t\tresult, err := d.Handler.%s(%s)\n", name, strings.Join(callArgs, ", "))
			b.WriteString("\t\tif err != nil {\n")
			b.WriteString("\t\t\treturn errorVariant(err), nil\n")
			b.WriteString("\t\t}\n")
			fmt.Fprintf(b, "\t\treturn %s{Value: %s{Value: result}}, nil\n", respWrapper, m.ResponseRecordName())
		} else {
			fmt.Fprintf(b, "\t\t_, err := d.Handler.%s(%s)\n", name, strings.Join(callArgs, ", "))
			b.WriteString("\t\tif err != nil {\n")
			b.WriteString("\t\t\treturn errorVariant(err), nil\n")
			b.WriteString("\t\t}\n")
			fmt.Fprintf(b, "\t\treturn %s{Value: %s{}}, nil\n", respWrapper, m.ResponseRecordName())
		}
	}
	b.WriteString("\tdefault:\n")
	b.WriteString("\t\treturn nil, diag.Newf(diag.KindDecode, \"unexpected Tmessage variant\")\n")
	b.WriteString("\t}\n}\n\n")

	b.WriteString("// errorVariant wraps a Handler-returned error into the Rmessage error\n")
	b.WriteString("// variant (spec.md §4.6 \"on handler failure, wraps the error into the\n")
	b.WriteString("// error variant\"). A *diag.Error carrying a Diagnostic is unwrapped\n")
	b.WriteString("// as-is; any other error becomes a plain application diagnostic.\n")
	b.WriteString("func errorVariant(err error) RmessageError {\n")
	b.WriteString("\tvar de *diag.Error\n")
	b.WriteString("\tif errors.As(err, &de) && de.Diagnostic != nil {\n")
	b.WriteString("\t\treturn RmessageError{Value: *de.Diagnostic}\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn RmessageError{Value: diag.NewDiagnostic(err.Error()).WithSeverity(diag.SeverityError)}\n")
	b.WriteString("}\n")
}
