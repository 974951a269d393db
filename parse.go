// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	// FormatAuto detects schema format from content.
	FormatAuto SchemaFormat = ""
	// FormatJSON forces JSON schema input.
	FormatJSON SchemaFormat = "json"
	// FormatYAML forces YAML schema input.
	FormatYAML SchemaFormat = "yaml"
)

// SchemaFormat selects schema input encoding.
type SchemaFormat string

// LoadOptions configures schema loading.
type LoadOptions struct {
	// Format forces input format; empty value detects it from content.
	Format SchemaFormat
	// Strict compiles schema against its meta-schema before building the tree.
	Strict bool
	// MaxDepth bounds nesting of schema nodes; zero selects the default.
	MaxDepth int
}

// Document is a loaded schema with its top-level metadata.
type Document struct {
	// Root is the resolved schema tree.
	Root Schema
	// ID is the "$id" value.
	ID string
	// SchemaURI is the "$schema" value.
	SchemaURI string
	Draft     DraftInfo
	Title     string
	// Definitions are "$defs" (or "definitions") entries in declaration order.
	Definitions []Property
}

// keywords of the raw form consumed while building nodes.
const (
	keywordRef           = "$ref"
	keywordRecursiveRef  = "$recursiveRef"
	keywordDefs          = "$defs"
	keywordDefinitions   = "definitions"
	keywordAnchor        = "$anchor"
	keywordSchemaDialect = "$schema"
	keywordID            = "$id"
)

// ParseFile reads and parses schema file; ".yaml" and ".yml" force YAML.
func ParseFile(path string, opt LoadOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadSchemaFile, path, err)
	}

	if opt.Format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			opt.Format = FormatYAML
		case ".json":
			opt.Format = FormatJSON
		}
	}

	return Parse(data, opt)
}

// Parse decodes schema bytes and builds the resolved schema tree.
func Parse(data []byte, opt LoadOptions) (*Document, error) {
	raw, err := decodeSchema(data, opt.Format)
	if err != nil {
		return nil, err
	}

	switch raw.(type) {
	case rawObject, bool:
	default:
		return nil, fmt.Errorf("%w: got %s", ErrSchemaRootType, rawKind(raw))
	}

	if opt.Strict {
		if err := compileSchema(raw); err != nil {
			return nil, err
		}
	}

	builder := newTreeBuilder(raw, opt.MaxDepth)
	root, err := builder.build(raw, Pointer{}, 0)
	if err != nil {
		return nil, err
	}

	doc := &Document{Root: root}
	object, ok := raw.(rawObject)
	if !ok {
		return doc, nil
	}

	doc.ID = rawString(object, keywordID)
	doc.SchemaURI = rawString(object, keywordSchemaDialect)
	doc.Draft = DetectDraft(doc.SchemaURI)
	doc.Title = rawString(object, "title")

	defsKeyword := keywordDefs
	defs, exists := object.get(keywordDefs)
	if !exists {
		defsKeyword = keywordDefinitions
		defs, exists = object.get(keywordDefinitions)
	}

	if members, isObject := defs.(rawObject); exists && isObject {
		for _, member := range members {
			node, err := builder.build(member.Value, Pointer{Keyword(defsKeyword), PropertySegment(member.Key)}, 1)
			if err != nil {
				return nil, err
			}

			doc.Definitions = append(doc.Definitions, Property{Name: member.Key, Schema: node})
		}
	}

	return doc, nil
}

// decodeSchema decodes input into ordered raw form.
func decodeSchema(data []byte, format SchemaFormat) (any, error) {
	if format == FormatAuto {
		format = detectSchemaFormat(data)
	}

	var (
		raw any
		err error
	)

	switch format {
	case FormatJSON:
		raw, err = decodeOrderedJSON(data)
	case FormatYAML:
		raw, err = decodeOrderedYAML(data)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSchemaFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return raw, nil
}

// detectSchemaFormat picks JSON when content starts like a JSON schema value.
func detectSchemaFormat(data []byte) SchemaFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatJSON
	}

	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	}

	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		return FormatJSON
	}

	return FormatYAML
}

// compileSchema validates raw schema with jsonschema compiler.
func compileSchema(raw any) error {
	data, err := gojson.Marshal(plainValue(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", value); err != nil {
		return fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	if _, err := compiler.Compile("schema.json"); err != nil {
		return fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	return nil
}

// treeBuilder converts raw values into Schema nodes, expanding local refs.
type treeBuilder struct {
	root       any
	anchors    map[string]any
	activeRefs map[string]int
	maxDepth   int
}

// newTreeBuilder prepares builder with anchor index of raw root.
func newTreeBuilder(root any, maxDepth int) *treeBuilder {
	builder := &treeBuilder{
		root:       root,
		anchors:    make(map[string]any),
		activeRefs: make(map[string]int),
		maxDepth:   normalizeMaxDepth(maxDepth),
	}

	collectAnchors(root, builder.anchors)
	return builder
}

// collectAnchors indexes "$anchor" declarations by name.
func collectAnchors(value any, out map[string]any) {
	switch typed := value.(type) {
	case rawObject:
		if name, ok := typed.get(keywordAnchor); ok {
			if text, isString := name.(string); isString && text != "" {
				if _, exists := out[text]; !exists {
					out[text] = typed
				}
			}
		}

		for _, member := range typed {
			collectAnchors(member.Value, out)
		}
	case []any:
		for _, item := range typed {
			collectAnchors(item, out)
		}
	}
}

// build converts one raw schema value.
func (builder *treeBuilder) build(raw any, pointer Pointer, depth int) (Schema, error) {
	if depth > builder.maxDepth {
		return nil, pointerError(pointer, ErrMaxDepthExceeded)
	}

	switch typed := raw.(type) {
	case bool:
		return BooleanSchema(typed), nil
	case rawObject:
		return builder.buildObject(typed, pointer, depth)
	default:
		return nil, fmt.Errorf("%w: expected schema at %q, got %s", ErrDecodeSchema, pointer.String(), rawKind(raw))
	}
}

// buildObject expands reference (if any) and decodes keywords.
func (builder *treeBuilder) buildObject(object rawObject, pointer Pointer, depth int) (Schema, error) {
	ref := referenceOf(object)
	if ref == "" {
		return builder.decodeKeywords(object, pointer, depth)
	}

	siblings := object.without(keywordRef, keywordRecursiveRef)
	target, ok := builder.resolveReference(ref)
	if !ok {
		return builder.opaqueReference(ref, siblings, pointer, depth)
	}

	release, ok := builder.enterReference(ref)
	if !ok {
		return builder.opaqueReference(ref, siblings, pointer, depth)
	}
	defer release()

	switch typed := target.(type) {
	case bool:
		if !typed || len(siblings) == 0 {
			return BooleanSchema(typed), nil
		}

		node, err := builder.decodeKeywords(siblings, pointer, depth)
		if err != nil {
			return nil, err
		}

		node.(*KeywordSchema).Ref = ref
		return node, nil
	case rawObject:
		merged := typed.without(keywordAnchor, keywordID).overlay(siblings)
		if nested := referenceOf(merged); nested != "" {
			return builder.buildObject(merged, pointer, depth+1)
		}

		node, err := builder.decodeKeywords(merged, pointer, depth)
		if err != nil {
			return nil, err
		}

		node.(*KeywordSchema).Ref = ref
		return node, nil
	default:
		return builder.opaqueReference(ref, siblings, pointer, depth)
	}
}

// opaqueReference builds childless node for unexpanded reference. Sibling
// annotations such as title and type are kept.
func (builder *treeBuilder) opaqueReference(ref string, siblings rawObject, pointer Pointer, depth int) (Schema, error) {
	node, err := builder.decodeKeywords(siblings, pointer, depth)
	if err != nil {
		return nil, err
	}

	keyword := node.(*KeywordSchema)
	*keyword = KeywordSchema{
		Types:       keyword.Types,
		Title:       keyword.Title,
		Description: keyword.Description,
		Deprecated:  keyword.Deprecated,
		ReadOnly:    keyword.ReadOnly,
		WriteOnly:   keyword.WriteOnly,
		Ref:         ref,
		Opaque:      true,
	}

	return keyword, nil
}

// referenceOf returns "$ref" or "$recursiveRef" text.
func referenceOf(object rawObject) string {
	if ref := rawString(object, keywordRef); ref != "" {
		return ref
	}

	return rawString(object, keywordRecursiveRef)
}

// resolveReference resolves local pointer or anchor reference in raw root.
func (builder *treeBuilder) resolveReference(ref string) (any, bool) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "#":
		return builder.root, true
	case strings.HasPrefix(ref, "#/"):
		return resolveRawPointer(builder.root, strings.TrimPrefix(ref, "#"))
	case strings.HasPrefix(ref, "#"):
		target, ok := builder.anchors[strings.TrimPrefix(ref, "#")]
		return target, ok
	default:
		return nil, false
	}
}

// resolveRawPointer walks JSON pointer tokens through raw values.
func resolveRawPointer(root any, pointer string) (any, bool) {
	current := root
	for token := range strings.SplitSeq(strings.TrimPrefix(pointer, "/"), "/") {
		token = decodePointerToken(token)

		switch typed := current.(type) {
		case rawObject:
			next, exists := typed.get(token)
			if !exists {
				return nil, false
			}

			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(typed) {
				return nil, false
			}

			current = typed[index]
		default:
			return nil, false
		}
	}

	return current, true
}

// enterReference registers active ref and returns release callback.
func (builder *treeBuilder) enterReference(ref string) (func(), bool) {
	if builder.activeRefs[ref] > 0 {
		return nil, false
	}

	builder.activeRefs[ref]++
	return func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}, true
}

// decodeKeywords builds KeywordSchema from raw object without "$ref".
func (builder *treeBuilder) decodeKeywords(object rawObject, pointer Pointer, depth int) (Schema, error) {
	node := &KeywordSchema{}
	for _, member := range object {
		if err := builder.decodeKeyword(node, member, pointer, depth); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// decodeKeyword stores one keyword into node.
func (builder *treeBuilder) decodeKeyword(node *KeywordSchema, member rawMember, pointer Pointer, depth int) error {
	var err error
	here := pointer.Append(Keyword(member.Key))

	switch member.Key {
	case "type":
		node.Types = rawStrings(member.Value)
	case KeywordProperties:
		node.Properties, err = builder.buildProperties(member.Value, here, depth)
	case KeywordPatternProperties:
		node.PatternProperties, err = builder.buildProperties(member.Value, here, depth)
	case KeywordDependentSchemas:
		node.DependentSchemas, err = builder.buildProperties(member.Value, here, depth)
	case KeywordPropertyNames:
		node.PropertyNames, err = builder.build(member.Value, here, depth+1)
	case KeywordAdditionalProperties:
		node.AdditionalProperties, err = builder.build(member.Value, here, depth+1)
	case KeywordUnevaluatedProperties:
		node.UnevaluatedProperties, err = builder.build(member.Value, here, depth+1)
	case "required":
		node.Required = rawStrings(member.Value)
	case KeywordItems:
		if items, ok := member.Value.([]any); ok {
			node.ItemsTuple, err = builder.buildList(items, here, depth)
			break
		}

		node.Items, err = builder.build(member.Value, here, depth+1)
	case KeywordPrefixItems:
		node.PrefixItems, err = builder.buildListValue(member.Value, here, depth)
	case KeywordAdditionalItems:
		node.AdditionalItems, err = builder.build(member.Value, here, depth+1)
	case KeywordUnevaluatedItems:
		node.UnevaluatedItems, err = builder.build(member.Value, here, depth+1)
	case KeywordContains:
		node.Contains, err = builder.build(member.Value, here, depth+1)
	case "minItems":
		node.MinItems = rawInt(member.Value)
	case "minContains":
		node.MinContains = rawInt(member.Value)
	case KeywordOneOf:
		node.OneOf, err = builder.buildListValue(member.Value, here, depth)
	case KeywordAnyOf:
		node.AnyOf, err = builder.buildListValue(member.Value, here, depth)
	case KeywordAllOf:
		node.AllOf, err = builder.buildListValue(member.Value, here, depth)
	case KeywordNot:
		node.Not, err = builder.build(member.Value, here, depth+1)
	case KeywordIf:
		node.If, err = builder.build(member.Value, here, depth+1)
	case KeywordThen:
		node.Then, err = builder.build(member.Value, here, depth+1)
	case KeywordElse:
		node.Else, err = builder.build(member.Value, here, depth+1)
	case "dependentRequired":
		node.DependentRequired = buildDependentRequired(member.Value)
	case KeywordDependencies:
		node.Dependencies, err = builder.buildDependencies(member.Value, here, depth)
	case "title":
		node.Title, _ = member.Value.(string)
	case "description":
		node.Description, _ = member.Value.(string)
	case "format":
		node.Format, _ = member.Value.(string)
	case "pattern":
		node.Pattern, _ = member.Value.(string)
	case "deprecated":
		node.Deprecated, _ = member.Value.(bool)
	case "readOnly":
		node.ReadOnly, _ = member.Value.(bool)
	case "writeOnly":
		node.WriteOnly, _ = member.Value.(bool)
	case "const":
		node.Const, node.HasConst = plainValue(member.Value), true
	case "enum":
		if values, ok := plainValue(member.Value).([]any); ok {
			node.Enum = values
		}
	case "default":
		node.Default, node.HasDefault = plainValue(member.Value), true
	case keywordDefs, keywordDefinitions, keywordSchemaDialect, keywordID, keywordAnchor:
	default:
		node.Extra = append(node.Extra, Extra{Keyword: member.Key, Value: plainValue(member.Value)})
	}

	return err
}

// buildProperties builds ordered named subschemas of a map keyword.
func (builder *treeBuilder) buildProperties(raw any, pointer Pointer, depth int) ([]Property, error) {
	object, ok := raw.(rawObject)
	if !ok {
		return nil, fmt.Errorf("%w: expected object at %q, got %s", ErrDecodeSchema, pointer.String(), rawKind(raw))
	}

	out := make([]Property, 0, len(object))
	for _, member := range object {
		child, err := builder.build(member.Value, pointer.Append(PropertySegment(member.Key)), depth+1)
		if err != nil {
			return nil, err
		}

		out = append(out, Property{Name: member.Key, Schema: child})
	}

	return out, nil
}

// buildListValue builds subschema list; present-but-empty lists stay non-nil.
func (builder *treeBuilder) buildListValue(raw any, pointer Pointer, depth int) ([]Schema, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array at %q, got %s", ErrDecodeSchema, pointer.String(), rawKind(raw))
	}

	return builder.buildList(items, pointer, depth)
}

// buildList builds indexed subschemas.
func (builder *treeBuilder) buildList(items []any, pointer Pointer, depth int) ([]Schema, error) {
	out := make([]Schema, 0, len(items))
	for index, item := range items {
		child, err := builder.build(item, pointer.Append(IndexSegment(index)), depth+1)
		if err != nil {
			return nil, err
		}

		out = append(out, child)
	}

	return out, nil
}

// buildDependencies splits "dependencies" into property lists and schemas.
func (builder *treeBuilder) buildDependencies(raw any, pointer Pointer, depth int) ([]Dependency, error) {
	object, ok := raw.(rawObject)
	if !ok {
		return nil, fmt.Errorf("%w: expected object at %q, got %s", ErrDecodeSchema, pointer.String(), rawKind(raw))
	}

	out := make([]Dependency, 0, len(object))
	for _, member := range object {
		if _, isList := member.Value.([]any); isList {
			out = append(out, Dependency{Name: member.Key, Required: rawStrings(member.Value)})
			continue
		}

		child, err := builder.build(member.Value, pointer.Append(PropertySegment(member.Key)), depth+1)
		if err != nil {
			return nil, err
		}

		out = append(out, Dependency{Name: member.Key, Schema: child})
	}

	return out, nil
}

// buildDependentRequired decodes "dependentRequired" in declaration order.
func buildDependentRequired(raw any) []DependentRequirement {
	object, ok := raw.(rawObject)
	if !ok {
		return nil
	}

	out := make([]DependentRequirement, 0, len(object))
	for _, member := range object {
		out = append(out, DependentRequirement{Name: member.Key, Required: rawStrings(member.Value)})
	}

	return out
}

// rawString returns string member or empty string.
func rawString(object rawObject, key string) string {
	value, _ := object.get(key)
	text, _ := value.(string)
	return strings.TrimSpace(text)
}

// rawStrings accepts a string or list of strings.
func rawStrings(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok {
				out = append(out, text)
			}
		}

		return out
	default:
		return nil
	}
}

// rawInt decodes non-negative integer keyword value.
func rawInt(value any) *int {
	number, ok := value.(gojson.Number)
	if !ok {
		return nil
	}

	parsed, err := strconv.ParseFloat(string(number), 64)
	if err != nil || parsed < 0 {
		return nil
	}

	out := int(parsed)
	return &out
}
