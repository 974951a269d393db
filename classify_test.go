// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"reflect"
	"testing"
)

func TestClassifyBooleanSchemas(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node Schema
		want Classification
	}{
		{name: "true", node: BooleanSchema(true), want: Classification{TerminalBoolean: true, Valid: true}},
		{name: "false", node: BooleanSchema(false), want: Classification{TerminalBoolean: true}},
		{name: "nil", node: nil, want: Classification{TerminalBoolean: true, Valid: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tc.node)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Classify = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClassifyInfersStructuralType(t *testing.T) {
	t.Parallel()

	object := Classify(&KeywordSchema{Properties: []Property{{Name: "a", Schema: BooleanSchema(true)}}})
	if object.Type != TypeObject || !object.Inferred || !object.Structural {
		t.Fatalf("object inference = %+v", object)
	}

	array := Classify(&KeywordSchema{Items: &KeywordSchema{Types: []string{TypeString}}})
	if array.Type != TypeArray || !array.Inferred || !array.Structural {
		t.Fatalf("array inference = %+v", array)
	}

	tuple := Classify(&KeywordSchema{PrefixItems: []Schema{BooleanSchema(true)}})
	if tuple.Type != TypeArray || !tuple.Inferred {
		t.Fatalf("tuple inference = %+v", tuple)
	}

	declared := Classify(&KeywordSchema{Types: []string{TypeObject}})
	if declared.Inferred || !declared.Structural || !declared.KnownType {
		t.Fatalf("declared object = %+v", declared)
	}
}

func TestClassifyAxesAreIndependent(t *testing.T) {
	t.Parallel()

	node := &KeywordSchema{
		Types: []string{TypeString},
		OneOf: []Schema{},
		If:    BooleanSchema(true),
	}

	got := Classify(node)
	if got.Type != TypeString || got.Structural {
		t.Fatalf("type axis = %+v", got)
	}

	if !got.Composition {
		t.Fatal("present but empty oneOf should mark composition")
	}

	if !got.Conditional {
		t.Fatal("if should mark conditional")
	}
}

func TestClassifyTypeUnion(t *testing.T) {
	t.Parallel()

	got := Classify(&KeywordSchema{Types: []string{TypeNull, TypeInteger}})
	if got.Type != TypeInteger {
		t.Fatalf("type = %q, want %q", got.Type, TypeInteger)
	}

	if !reflect.DeepEqual(got.DeclaredTypes, []string{TypeNull, TypeInteger}) {
		t.Fatalf("declared types = %v", got.DeclaredTypes)
	}

	nullOnly := Classify(&KeywordSchema{Types: []string{TypeNull}})
	if nullOnly.Type != TypeNull || !nullOnly.KnownType {
		t.Fatalf("null only = %+v", nullOnly)
	}
}

func TestClassifyUnknownType(t *testing.T) {
	t.Parallel()

	got := Classify(&KeywordSchema{Types: []string{"x-duration"}})
	if got.Type != "x-duration" || got.KnownType || got.Structural {
		t.Fatalf("custom type = %+v", got)
	}

	empty := Classify(&KeywordSchema{})
	if empty.Type != "" || empty.KnownType || empty.TerminalBoolean {
		t.Fatalf("empty keyword schema = %+v", empty)
	}
}

func TestClassifyOpaqueReference(t *testing.T) {
	t.Parallel()

	got := Classify(&KeywordSchema{Ref: "https://example.com/remote.json", Opaque: true, Types: []string{TypeObject}})
	if !got.Opaque || got.Type != TypeObject {
		t.Fatalf("opaque = %+v", got)
	}
}
