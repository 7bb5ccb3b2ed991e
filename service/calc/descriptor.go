package calc

import "github.com/jetstream-proto/jetstream/internal/codegen"

// Descriptor is the ServiceDesc service.gen.go was generated from:
//
//	jetstreamgen -service calc -out service/calc/service.gen.go -pkg calc
//
// Kept alongside the generated output so the two never drift silently;
// re-run jetstreamgen and diff if this changes.
var Descriptor = codegen.ServiceDesc{
	Name:    "calc",
	Version: "1.0.0",
	Methods: []codegen.MethodDesc{
		{
			Name: "divide",
			Params: []codegen.ParamDesc{
				{Name: "a", Type: codegen.TypeRef{Kind: codegen.KindI32}},
				{Name: "b", Type: codegen.TypeRef{Kind: codegen.KindI32}},
			},
			ReturnType: &codegen.TypeRef{Kind: codegen.KindI32},
		},
		{
			Name: "slow",
			Params: []codegen.ParamDesc{
				{Name: "ms", Type: codegen.TypeRef{Kind: codegen.KindU32}},
			},
			ReturnType: &codegen.TypeRef{Kind: codegen.KindU32},
		},
		{
			Name:       "fast",
			ReturnType: &codegen.TypeRef{Kind: codegen.KindU32},
		},
		{
			Name: "sleep",
			Params: []codegen.ParamDesc{
				{Name: "ms", Type: codegen.TypeRef{Kind: codegen.KindU32}},
			},
		},
	},
}
