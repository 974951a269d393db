// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
)

const testDraft = "https://json-schema.org/draft/2020-12/schema"

func TestRunSchemaToMarkdownWritesMarkdownToStdout(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "# schema reference") {
		t.Fatalf("stdout does not contain default title: %s", stdout.String())
	}

	if !strings.Contains(stdout.String(), "## Service.servers.items[]") {
		t.Fatalf("stdout does not contain items section: %s", stdout.String())
	}

	if stderr.Len() != 0 {
		t.Fatalf("unexpected warnings: %s", stderr.String())
	}
}

func TestRunSchemaToMarkdownTemplateTable(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--template", "table", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "| Child | Type | Required | Group |") {
		t.Fatalf("table output expected, got: %s", stdout.String())
	}
}

func TestRunSchemaToMarkdownFromStdin(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "urn:test",
  "type": "object",
  "properties": {
    "name": { "type": "string" }
  }
}`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"schema2md"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "## Schema.name") {
		t.Fatalf("expected name section in output: %s", stdout.String())
	}

	if !strings.Contains(stdout.String(), "Source: `(stdin)`") {
		t.Fatalf("stdin source marker expected: %s", stdout.String())
	}
}

func TestRunSchemaToMarkdownFromYAMLStdin(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader("$schema: " + testDraft + "\ntitle: Yaml\nproperties:\n  port:\n    type: integer\n")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"schema2md", "--format", "yaml"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "## Yaml.port") {
		t.Fatalf("expected port section in output: %s", stdout.String())
	}
}

func TestRunSchemaToMarkdownWritesMarkdownToOutputFile(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	outPath := filepath.Join(t.TempDir(), "config.md")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--title", "Custom Doc", schemaPath, outPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty when output path is provided, got: %s", stdout.String())
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read out file: %v", err)
	}

	if !strings.Contains(string(content), "# Custom Doc") {
		t.Fatalf("output file does not contain custom title: %s", string(content))
	}
}

func TestRunSchemaToMarkdownWithTemplateFile(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	customTemplatePath := filepath.Join(t.TempDir(), "custom.gotmpl")
	if err := os.WriteFile(customTemplatePath, []byte("# custom\n{{ range .Nodes }}- {{ .Pointer }}\n{{ end }}\n"), 0o600); err != nil {
		t.Fatalf("write custom template: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--template-file", customTemplatePath, schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "- #/properties/servers/items/properties/port") {
		t.Fatalf("expected custom template output, got: %s", stdout.String())
	}
}

func TestRunSchemaToMarkdownWarnsAboutDraft(t *testing.T) {
	t.Parallel()

	cases := []struct {
		draft string
		want  string
	}{
		{draft: "", want: "warning: schema has no $schema value"},
		{draft: "https://json-schema.org/draft/2023-12/schema", want: "warning: unsupported $schema value"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()

			schemaPath := writeSchemaFixture(t, tc.draft)
			var stdout bytes.Buffer
			var stderr bytes.Buffer
			code := run([]string{"schema2md", schemaPath}, &stdout, &stderr)
			if code != 0 {
				t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
			}

			if !strings.Contains(stderr.String(), tc.want) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tc.want)
			}
		})
	}
}

func TestRunEdgesRoot(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"edges", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	var rows []edgeOutput
	if err := gojson.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("decode edges: %v\n%s", err, stdout.String())
	}

	want := []edgeOutput{
		{Label: "name", Pointer: "/properties/name", Path: "name", Type: "string", Group: "structural", Depth: 1, Required: true},
		{Label: "servers", Pointer: "/properties/servers", Path: "servers", Type: "array", Group: "structural", Depth: 1},
		{Label: "tags", Pointer: "/properties/tags", Path: "tags", Type: "array", Group: "structural", Depth: 1},
	}

	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("edges mismatch\ngot:  %+v\nwant: %+v", rows, want)
	}
}

func TestRunEdgesAllFromPointer(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"edges", "-p", "/properties/servers", "--all", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	var rows []edgeOutput
	if err := gojson.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("decode edges: %v\n%s", err, stdout.String())
	}

	pointers := make([]string, 0, len(rows))
	for _, row := range rows {
		pointers = append(pointers, row.Pointer+" "+row.Path)
	}

	want := []string{
		"/properties/servers/items servers[]",
		"/properties/servers/items/properties/host servers[].host",
		"/properties/servers/items/properties/port servers[].port",
	}

	if !reflect.DeepEqual(pointers, want) {
		t.Fatalf("pointers = %v, want %v", pointers, want)
	}
}

func TestRunEdgesContainsHasNoPath(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"edges", "-p", "/properties/tags", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), `"pointer": "/properties/tags/contains"`) {
		t.Fatalf("contains edge expected: %s", stdout.String())
	}

	if strings.Contains(stdout.String(), `"path": "tags"`) {
		t.Fatalf("contains edge should have no path: %s", stdout.String())
	}
}

func TestRunEdgesUnknownPointer(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"edges", "-p", "/properties/missing", schemaPath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr.String(), "pointer not found") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunSkeletonJSON(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"skeleton", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	got := decodeDocument(t, stdout.Bytes())
	want := map[string]any{
		"name":    "",
		"servers": []any{map[string]any{"host": "", "port": float64(1)}},
		"tags":    []any{""},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("skeleton mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestRunSkeletonRequiredOnlyYAML(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"skeleton", "--required-only", "-o", "yaml", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	want := "# Service name.\nname: \"\"\n"
	if stdout.String() != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRunSkeletonItemCount(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"skeleton", "-n", "2", "-p", "/properties/servers", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	got := decodeDocument(t, stdout.Bytes())
	items, ok := got.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("skeleton = %#v, want two items", got)
	}
}

func TestRunSkeletonTerminalItemsRepeatsItem(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"skeleton", "-n", "2", "-p", "/properties/servers/items", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	item := map[string]any{"host": "", "port": float64(1)}
	want := []any{item, item}
	if got := decodeDocument(t, stdout.Bytes()); !reflect.DeepEqual(got, want) {
		t.Fatalf("skeleton = %#v, want %#v", got, want)
	}
}

func TestRunInsertMergesIntoDocument(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	documentPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(documentPath, []byte(`{"name": "svc", "servers": [{"host": "a"}]}`), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{
		"insert",
		"-p", "/properties/servers/items/properties/port",
		"-d", documentPath,
		schemaPath, documentPath,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	content, err := os.ReadFile(documentPath)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}

	got := decodeDocument(t, content)
	want := map[string]any{
		"name":    "svc",
		"servers": []any{map[string]any{"host": "a", "port": float64(1)}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("document mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestRunInsertReset(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	documentPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(documentPath, []byte(`{"stale": true}`), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"insert", "--reset", "-p", "/properties/servers/items", "-d", documentPath, schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	got := decodeDocument(t, stdout.Bytes())
	want := map[string]any{"servers": []any{map[string]any{"host": "", "port": float64(1)}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("document mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestRunInsertMissingDocumentStartsEmpty(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"insert", "-p", "/properties/name", "-d", filepath.Join(t.TempDir(), "none.json"), schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if got := decodeDocument(t, stdout.Bytes()); !reflect.DeepEqual(got, map[string]any{"name": ""}) {
		t.Fatalf("document = %#v", got)
	}
}

func TestRunInsertErrors(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, testDraft)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no pointer", args: []string{"insert", schemaPath}, want: "insert requires --pointer"},
		{name: "not insertable", args: []string{"insert", "-p", "/properties/tags/contains", schemaPath}, want: "pointer is not insertable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var stdout bytes.Buffer
			var stderr bytes.Buffer
			code := run(tc.args, &stdout, &stderr)
			if code != 1 {
				t.Fatalf("run exit code = %d, want 1", code)
			}

			if !strings.Contains(stderr.String(), tc.want) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tc.want)
			}
		})
	}
}

func TestRunTemplateCommand(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"template", "-t", "table"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "| Attribute | Value |") {
		t.Fatalf("table template expected, got: %s", stdout.String())
	}
}

func TestRunVersionWritesToStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "version:  "+Version) {
		t.Fatalf("version output = %q", stdout.String())
	}
}

func TestRunStrictRejectsInvalidSchema(t *testing.T) {
	t.Parallel()

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(schemaPath, []byte(`{"type": 5}`), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"skeleton", "--strict", schemaPath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr.String(), "compile schema") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want int
	}{
		{name: "missing input file", args: []string{"schema2md", filepath.Join(t.TempDir(), "missing.json")}, want: 1},
		{name: "empty stdin", args: []string{"skeleton"}, want: 1},
		{name: "unknown command", args: []string{"unknown"}, want: 2},
		{name: "no command", args: nil, want: 2},
		{name: "bad choice", args: []string{"skeleton", "-o", "toml"}, want: 2},
		{name: "help", args: []string{"--help"}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var stdout bytes.Buffer
			var stderr bytes.Buffer
			code := runWithIO(tc.args, strings.NewReader(""), &stdout, &stderr)
			if code != tc.want {
				t.Fatalf("run exit code = %d, want %d (stderr: %s)", code, tc.want, stderr.String())
			}
		})
	}
}

// writeSchemaFixture writes small schema with optional $schema value.
func writeSchemaFixture(t *testing.T, draft string) string {
	t.Helper()

	dialect := ""
	if draft != "" {
		dialect = fmt.Sprintf("%q: %q,\n", "$schema", draft)
	}

	content := "{\n" + dialect + `"$id": "urn:test",
"title": "Service",
"type": "object",
"required": ["name"],
"properties": {
  "name": { "type": "string", "description": "Service name." },
  "servers": {
    "type": "array",
    "items": {
      "type": "object",
      "properties": {
        "host": { "type": "string" },
        "port": { "type": "integer" }
      }
    }
  },
  "tags": {
    "type": "array",
    "items": { "type": "string" },
    "contains": { "const": "core" }
  }
}
}`

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(schemaPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write schema fixture: %v", err)
	}

	return schemaPath
}

// decodeDocument parses JSON command output.
func decodeDocument(t *testing.T, data []byte) any {
	t.Helper()

	var out any
	if err := gojson.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode output: %v\n%s", err, data)
	}

	return out
}
