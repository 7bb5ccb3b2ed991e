package main

import "github.com/jetstream-proto/jetstream/internal/codegen"

// descriptions registers every service this module ships a generated
// package for. Each entry here is the single source of truth; the
// committed service/*/service.gen.go files are jetstreamgen's output
// over the matching entry, re-run whenever the description changes.
var descriptions = map[string]codegen.ServiceDesc{
	"echo": {
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
	},
	"calc": {
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
	},
}
