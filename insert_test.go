// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
)

func TestEditorInsertProperty(t *testing.T) {
	t.Parallel()

	doc := mustParseSchema(t, `{"type": "object", "properties": {"a": {"type": "string"}}}`)
	editor := NewEditor(doc.Root, DefaultConfig())

	result, err := editor.InsertString("/properties/a")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	want := map[string]any{"a": ""}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("document = %#v, want %#v", result.Document, want)
	}

	if got := result.Insertion.Location(); got != "$.a" {
		t.Fatalf("location = %q", got)
	}
}

func TestEditorInsertArrayItems(t *testing.T) {
	t.Parallel()

	doc := mustParseSchema(t, `{
  "type": "object",
  "properties": {
    "arr": {
      "type": "array",
      "items": { "type": "object", "properties": { "x": { "type": "integer" } } }
    }
  }
}`)
	editor := NewEditor(doc.Root, DefaultConfig())

	result, err := editor.InsertString("/properties/arr/items")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	want := map[string]any{"arr": []any{map[string]any{"x": 1}}}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("document = %#v, want %#v", result.Document, want)
	}

	if !reflect.DeepEqual(result.Insertion.Path, DocumentPath{PropertyStep("arr")}) {
		t.Fatalf("insertion path = %#v", result.Insertion.Path)
	}
}

func TestPlanRootArrayItems(t *testing.T) {
	t.Parallel()

	doc := mustParseSchema(t, `{"type": "array", "items": {"type": "string"}}`)
	cfg := DefaultConfig()
	cfg.ArrayItemCount = 2

	insertion, err := PlanString(doc.Root, "/items", cfg)
	if err != nil {
		t.Fatalf("PlanString: %v", err)
	}

	if len(insertion.Path) != 0 {
		t.Fatalf("path = %#v, want root", insertion.Path)
	}

	if !reflect.DeepEqual(insertion.Value, []any{"", ""}) {
		t.Fatalf("value = %#v", insertion.Value)
	}

	got := insertion.Apply(nil, MergeOptions{})
	if !reflect.DeepEqual(got, []any{"", ""}) {
		t.Fatalf("Apply = %#v", got)
	}
}

func TestEditorInsertNestedArrayElements(t *testing.T) {
	t.Parallel()

	doc := loadFixture(t)
	editor := NewEditor(doc.Root, DefaultConfig())

	if _, err := editor.InsertString("/properties/servers/items/properties/host"); err != nil {
		t.Fatalf("insert host: %v", err)
	}

	result, err := editor.InsertString("/properties/servers/items/properties/port")
	if err != nil {
		t.Fatalf("insert port: %v", err)
	}

	want := map[string]any{"servers": []any{map[string]any{"host": "", "port": 1}}}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("document = %#v, want %#v", result.Document, want)
	}

	if got := result.Insertion.String(); got != "/properties/servers/items/properties/port -> $.servers[0].port" {
		t.Fatalf("insertion string = %q", got)
	}
}

func TestEditorInsertTuplePositionKeepsOtherElements(t *testing.T) {
	t.Parallel()

	doc := loadFixture(t)
	editor := NewEditor(doc.Root, DefaultConfig())
	editor.SetDocument(map[string]any{"point": []any{5.5, "user"}})

	result, err := editor.InsertString("/properties/point/prefixItems/1")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	if got := result.Insertion.Location(); got != "$.point[1]" {
		t.Fatalf("location = %q", got)
	}

	want := map[string]any{"point": []any{5.5, float64(0)}}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("document = %#v, want %#v", result.Document, want)
	}

	empty := NewEditor(doc.Root, DefaultConfig())
	result, err = empty.InsertString("/properties/point/prefixItems/1")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	wantEmpty := map[string]any{"point": []any{nil, float64(0)}}
	if !reflect.DeepEqual(result.Document, wantEmpty) {
		t.Fatalf("document = %#v, want %#v", result.Document, wantEmpty)
	}
}

func TestEditorInsertThroughComposition(t *testing.T) {
	t.Parallel()

	doc := loadFixture(t)
	editor := NewEditor(doc.Root, DefaultConfig())

	result, err := editor.InsertString("/properties/auth/oneOf/1/properties/user")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	want := map[string]any{"auth": map[string]any{"user": ""}}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("document = %#v, want %#v", result.Document, want)
	}
}

func TestEditorInsertErrorsLeaveDocumentUnchanged(t *testing.T) {
	t.Parallel()

	doc := loadFixture(t)
	editor := NewEditor(doc.Root, DefaultConfig())
	editor.SetDocument(map[string]any{"name": "svc"})

	cases := []struct {
		pointer string
		want    error
	}{
		{pointer: "/properties/tags/contains", want: ErrNotInsertable},
		{pointer: "/properties/labels/propertyNames", want: ErrNotInsertable},
		{pointer: "/properties/missing", want: ErrPointerNotFound},
		{pointer: "properties/name", want: ErrInvalidPointer},
	}

	for _, tc := range cases {
		_, err := editor.InsertString(tc.pointer)
		if !errors.Is(err, tc.want) {
			t.Fatalf("InsertString(%q) error = %v, want %v", tc.pointer, err, tc.want)
		}
	}

	if !reflect.DeepEqual(editor.Document(), map[string]any{"name": "svc"}) {
		t.Fatalf("document changed: %#v", editor.Document())
	}
}

func TestEditorMarkManualEditResetsBase(t *testing.T) {
	t.Parallel()

	doc := loadFixture(t)
	editor := NewEditor(doc.Root, DefaultConfig())
	if err := editor.SetText(`{"stale": 1, "name": "svc"}`); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	editor.MarkManualEdit()
	result, err := editor.InsertString("/properties/legacy")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	if !reflect.DeepEqual(result.Document, map[string]any{"legacy": false}) {
		t.Fatalf("document after reset = %#v", result.Document)
	}

	result, err = editor.InsertString("/properties/name")
	if err != nil {
		t.Fatalf("InsertString: %v", err)
	}

	want := map[string]any{"legacy": false, "name": ""}
	if !reflect.DeepEqual(result.Document, want) {
		t.Fatalf("reset should apply once, got %#v", result.Document)
	}
}

func TestEditorSetTextFallsBackToEmptyObject(t *testing.T) {
	t.Parallel()

	editor := NewEditor(BooleanSchema(true), DefaultConfig())
	editor.SetDocument(map[string]any{"a": 1})

	err := editor.SetText(`{"a": `)
	if !errors.Is(err, ErrDecodeDocument) {
		t.Fatalf("SetText error = %v, want ErrDecodeDocument", err)
	}

	if !reflect.DeepEqual(editor.Document(), map[string]any{}) {
		t.Fatalf("document = %#v, want empty object", editor.Document())
	}

	if err := editor.SetText("   "); err != nil {
		t.Fatalf("SetText blank: %v", err)
	}
}

func TestEditorSetTextKeepsNumberLiterals(t *testing.T) {
	t.Parallel()

	editor := NewEditor(BooleanSchema(true), DefaultConfig())
	if err := editor.SetText(`{"port": 8080, "ratio": 0.5}`); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	want := map[string]any{"port": gojson.Number("8080"), "ratio": gojson.Number("0.5")}
	if !reflect.DeepEqual(editor.Document(), want) {
		t.Fatalf("document = %#v, want %#v", editor.Document(), want)
	}

	text, err := editor.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}

	if !strings.Contains(text, `"port": 8080`) || strings.HasSuffix(text, "\n") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestEditorDocumentIsCopy(t *testing.T) {
	t.Parallel()

	editor := NewEditor(BooleanSchema(true), DefaultConfig())
	editor.SetDocument(map[string]any{"a": map[string]any{"b": 1}})

	document := editor.Document().(map[string]any)
	document["a"].(map[string]any)["b"] = 2

	if !reflect.DeepEqual(editor.Document(), map[string]any{"a": map[string]any{"b": 1}}) {
		t.Fatalf("editor document mutated through copy: %#v", editor.Document())
	}
}

func TestPlanFalseSchema(t *testing.T) {
	t.Parallel()

	doc := mustParseSchema(t, `{"properties": {"never": false}}`)
	_, err := PlanString(doc.Root, "/properties/never", DefaultConfig())
	if !errors.Is(err, ErrNoValidSkeleton) {
		t.Fatalf("error = %v, want ErrNoValidSkeleton", err)
	}
}
