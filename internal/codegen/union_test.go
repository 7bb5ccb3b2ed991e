package codegen

import (
	"strings"
	"testing"
)

// TestGenerateUnionDeclarationOrder exercises the declaration-order
// discriminant scheme (spec.md §3, §9): a union whose variants carry no
// explicit Discriminant gets 0, 1, 2... assigned from their position in
// Variants. This is the scheme every generic (non-service) union uses;
// Tmessage/Rmessage are the only callers that supply an explicit
// Discriminant (service.go), since their values must land in the wire
// message-type space.
func TestGenerateUnionDeclarationOrder(t *testing.T) {
	u := UnionDesc{
		Name: "Shape",
		Variants: []VariantDesc{
			{Name: "Circle", Payload: &TypeRef{Kind: KindU32}},
			{Name: "Square", Payload: &TypeRef{Kind: KindU32}},
			{Name: "Triangle"},
		},
	}

	out := generateUnion(u)

	wantConsts := []string{
		"const ShapeCircleType uint8 = 0",
		"const ShapeSquareType uint8 = 1",
		"const ShapeTriangleType uint8 = 2",
	}
	for _, want := range wantConsts {
		if !strings.Contains(out, want) {
			t.Fatalf("generateUnion output missing %q; got:\n%s", want, out)
		}
	}
}

// TestGenerateUnionExplicitDiscriminant exercises the explicit
// per-variant discriminant scheme: a variant with a non-nil
// Discriminant uses that value regardless of its position.
func TestGenerateUnionExplicitDiscriminant(t *testing.T) {
	five := uint8(5)
	u := UnionDesc{
		Name: "Rmessage",
		Variants: []VariantDesc{
			{Name: "Ping", Discriminant: explicitDiscriminant(102), Payload: &TypeRef{Kind: KindU32}},
			{Name: "Error", Discriminant: &five, Payload: &TypeRef{Kind: KindU32}},
		},
	}

	out := generateUnion(u)

	wantConsts := []string{
		"const RmessagePingType uint8 = 102",
		"const RmessageErrorType uint8 = 5",
	}
	for _, want := range wantConsts {
		if !strings.Contains(out, want) {
			t.Fatalf("generateUnion output missing %q; got:\n%s", want, out)
		}
	}
}

// TestDiscriminantMixedExplicitAndImplicit: a union that mixes explicit
// and absent discriminants resolves the absent ones from their own
// declaration index, not a running counter over only-absent variants.
func TestDiscriminantMixedExplicitAndImplicit(t *testing.T) {
	u := UnionDesc{
		Name: "Mixed",
		Variants: []VariantDesc{
			{Name: "A"}, // index 0 -> 0
			{Name: "B", Discriminant: explicitDiscriminant(9)}, // explicit -> 9
			{Name: "C"}, // index 2 -> 2
		},
	}

	out := generateUnion(u)
	wantConsts := []string{
		"const MixedAType uint8 = 0",
		"const MixedBType uint8 = 9",
		"const MixedCType uint8 = 2",
	}
	for _, want := range wantConsts {
		if !strings.Contains(out, want) {
			t.Fatalf("generateUnion output missing %q; got:\n%s", want, out)
		}
	}
}

