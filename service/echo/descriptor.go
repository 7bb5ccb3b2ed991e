package echo

import "github.com/jetstream-proto/jetstream/internal/codegen"

// Descriptor is the ServiceDesc service.gen.go was generated from:
//
//	jetstreamgen -service echo -out service/echo/service.gen.go -pkg echo
//
// Kept alongside the generated output so the two never drift silently;
// re-run jetstreamgen and diff if this changes.
var Descriptor = codegen.ServiceDesc{
	Name:    "echo",
	Version: "1.0.0",
	Methods: []codegen.MethodDesc{
		{
			Name: "ping",
		},
		{
			Name:       "echo",
			Params:     []codegen.ParamDesc{{Name: "message", Type: codegen.TypeRef{Kind: codegen.KindString}}},
			ReturnType: &codegen.TypeRef{Kind: codegen.KindString},
		},
	},
}
