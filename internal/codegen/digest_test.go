package codegen

import "testing"

// echoLikeService builds a small two-method ServiceDesc, the baseline
// every test below mutates one field of at a time.
func echoLikeService() ServiceDesc {
	return ServiceDesc{
		Name:    "echo",
		Version: "1.0.0",
		Methods: []MethodDesc{
			{Name: "ping"},
			{
				Name:       "echo",
				Params:     []ParamDesc{{Name: "message", Type: TypeRef{Kind: KindString}}},
				ReturnType: &TypeRef{Kind: KindString},
			},
		},
	}
}

// TestDigestStableForIdenticalShape exercises spec.md §8: two
// syntactically identical service descriptions produce identical
// digest prefixes.
func TestDigestStableForIdenticalShape(t *testing.T) {
	a := echoLikeService()
	b := echoLikeService()
	if a.Digest() != b.Digest() {
		t.Fatalf("identical services produced different digests: %q vs %q", a.Digest(), b.Digest())
	}
	if a.CanonicalString() != b.CanonicalString() {
		t.Fatalf("identical services produced different canonical strings")
	}
}

// TestDigestChangesOnReorder exercises spec.md §8: reordering a
// service's methods changes its digest prefix.
func TestDigestChangesOnReorder(t *testing.T) {
	base := echoLikeService()
	reordered := base
	reordered.Methods = []MethodDesc{base.Methods[1], base.Methods[0]}

	if base.Digest() == reordered.Digest() {
		t.Fatalf("reordering methods did not change the digest")
	}
}

// TestDigestChangesOnRename exercises spec.md §8: renaming a method
// changes the digest prefix.
func TestDigestChangesOnRename(t *testing.T) {
	base := echoLikeService()
	renamed := base
	renamed.Methods = append([]MethodDesc(nil), base.Methods...)
	renamed.Methods[1].Name = "shout"

	if base.Digest() == renamed.Digest() {
		t.Fatalf("renaming a method did not change the digest")
	}
}

// TestDigestChangesOnParamTypeChange exercises spec.md §8: changing a
// parameter's type changes the digest prefix.
func TestDigestChangesOnParamTypeChange(t *testing.T) {
	base := echoLikeService()
	changed := base
	changed.Methods = append([]MethodDesc(nil), base.Methods...)
	changed.Methods[1].Params = []ParamDesc{{Name: "message", Type: TypeRef{Kind: KindData}}}

	if base.Digest() == changed.Digest() {
		t.Fatalf("changing a parameter type did not change the digest")
	}
}

// TestDigestChangesOnReturnTypeChange exercises spec.md §8: changing a
// method's return type changes the digest prefix.
func TestDigestChangesOnReturnTypeChange(t *testing.T) {
	base := echoLikeService()
	changed := base
	changed.Methods = append([]MethodDesc(nil), base.Methods...)
	changed.Methods[1].ReturnType = &TypeRef{Kind: KindU32}

	if base.Digest() == changed.Digest() {
		t.Fatalf("changing a return type did not change the digest")
	}
}

// TestDigestIsEightHexChars pins the digest's shape: the first 8 lower-
// case hex characters of the SHA-256 of the canonical string (spec.md
// §3, §6: "hex{8}").
func TestDigestIsEightHexChars(t *testing.T) {
	d := echoLikeService().Digest()
	if len(d) != 8 {
		t.Fatalf("Digest() length = %d, want 8 (%q)", len(d), d)
	}
	for _, c := range d {
		isLowerHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isLowerHex {
			t.Fatalf("Digest() = %q contains non-lowercase-hex character %q", d, c)
		}
	}
}
