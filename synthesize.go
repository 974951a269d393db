// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"fmt"
	"math"
)

// defaultArrayItemCount is the number of generated array elements.
const defaultArrayItemCount = 1

// Generator produces the default value for one primitive type.
// The node is the schema being synthesized.
type Generator func(node *KeywordSchema) any

// Config controls skeleton synthesis. It is a plain value: build one per call
// with DefaultConfig and adjust fields.
type Config struct {
	// Generators override per-type default values, keyed by type name.
	Generators map[string]Generator
	// Warn receives recoverable problems such as ErrUnrecognizedType.
	Warn func(error)
	// ArrayItemCount is the number of elements generated for "items"; values
	// below one select the default.
	ArrayItemCount int
	// MaxDepth bounds recursion; zero selects the default.
	MaxDepth int
	// RequiredOnly restricts objects to properties listed in "required".
	// By default every declared property is expanded.
	RequiredOnly bool
	// UseSchemaValues prefers "const", "default" and the first "enum" value
	// over type defaults.
	UseSchemaValues bool
}

// DefaultConfig returns synthesis configuration with built-in defaults.
func DefaultConfig() Config {
	return Config{
		ArrayItemCount: defaultArrayItemCount,
		MaxDepth:       defaultMaxDepth,
	}
}

// builtinScalarDefaults are skeleton values for primitive types.
var builtinScalarDefaults = map[string]func() any{
	TypeString:  func() any { return "" },
	TypeInteger: func() any { return 1 },
	TypeNumber:  func() any { return float64(0) },
	TypeBoolean: func() any { return false },
	TypeNull:    func() any { return nil },
}

// Synthesize builds a skeleton for the whole node, recursing into declared
// properties and items. Composition and conditional keywords do not
// contribute to the value.
func Synthesize(node Schema, cfg Config) (any, error) {
	builder := newSkeletonBuilder(cfg)
	return builder.build(node, Pointer{}, 0)
}

// SynthesizeAt builds a skeleton for the node addressed by pointer.
//
// A pointer ending exactly at an array item keyword ("items") stands for the
// enclosing array: the item skeleton is repeated Config.ArrayItemCount times.
func SynthesizeAt(root Schema, pointer Pointer, cfg Config) (any, error) {
	node, err := Lookup(root, pointer)
	if err != nil {
		return nil, err
	}

	builder := newSkeletonBuilder(cfg)
	value, err := builder.build(node, pointer, 0)
	if err != nil {
		return nil, err
	}

	if endsAtArrayItems(pointer) {
		return repeatValue(value, builder.cfg.ArrayItemCount), nil
	}

	return value, nil
}

// endsAtArrayItems reports whether pointer stops at an items keyword itself,
// so the skeleton stands for the enclosing array.
func endsAtArrayItems(pointer Pointer) bool {
	last, ok := pointer.Last()
	if !ok || last.Kind != SegmentKeyword {
		return false
	}

	switch last.Name {
	case KeywordItems, KeywordAdditionalItems, KeywordUnevaluatedItems:
		return true
	default:
		return false
	}
}

// skeletonBuilder carries recursion state for one synthesis call.
type skeletonBuilder struct {
	cfg    Config
	active map[*KeywordSchema]struct{}
}

// newSkeletonBuilder normalizes config and prepares builder state.
func newSkeletonBuilder(cfg Config) *skeletonBuilder {
	cfg.ArrayItemCount = normalizeArrayItemCount(cfg.ArrayItemCount)
	cfg.MaxDepth = normalizeMaxDepth(cfg.MaxDepth)
	return &skeletonBuilder{
		cfg:    cfg,
		active: make(map[*KeywordSchema]struct{}),
	}
}

// build recursively synthesizes one node.
func (builder *skeletonBuilder) build(node Schema, pointer Pointer, depth int) (any, error) {
	if depth > builder.cfg.MaxDepth {
		return nil, pointerError(pointer, ErrMaxDepthExceeded)
	}

	switch typed := node.(type) {
	case BooleanSchema:
		if !typed {
			return nil, pointerError(pointer, ErrNoValidSkeleton)
		}

		return map[string]any{}, nil
	case *KeywordSchema:
		if typed == nil {
			return map[string]any{}, nil
		}

		if _, exists := builder.active[typed]; exists {
			return nil, pointerError(pointer, ErrMaxDepthExceeded)
		}

		builder.active[typed] = struct{}{}
		defer delete(builder.active, typed)

		return builder.buildKeyword(typed, pointer, depth)
	default:
		return map[string]any{}, nil
	}
}

// buildKeyword synthesizes keyword schema by its structural or primitive type.
func (builder *skeletonBuilder) buildKeyword(node *KeywordSchema, pointer Pointer, depth int) (any, error) {
	if builder.cfg.UseSchemaValues {
		if value, ok := annotatedValue(node); ok {
			return cloneJSONValue(value), nil
		}
	}

	class := classifyKeyword(node)
	if generator, ok := builder.cfg.Generators[class.Type]; ok && generator != nil && class.Type != "" {
		return normalizeSentinel(class.Type, generator(node)), nil
	}

	switch class.Type {
	case TypeObject:
		if node.Opaque {
			return map[string]any{}, nil
		}

		return builder.buildObject(node, pointer, depth)
	case TypeArray:
		if node.Opaque {
			return []any{}, nil
		}

		return builder.buildArray(node, pointer, depth)
	case "":
		return nil, nil
	}

	if value, ok := builtinScalarDefaults[class.Type]; ok {
		return value(), nil
	}

	builder.warn(fmt.Errorf("%w %q at %q", ErrUnrecognizedType, class.Type, pointer.String()))
	return nil, nil
}

// buildObject synthesizes declared properties in declaration order.
func (builder *skeletonBuilder) buildObject(node *KeywordSchema, pointer Pointer, depth int) (map[string]any, error) {
	out := make(map[string]any, len(node.Properties))
	for _, prop := range node.Properties {
		if builder.cfg.RequiredOnly && !node.IsRequired(prop.Name) {
			continue
		}

		if valid, ok := prop.Schema.(BooleanSchema); ok && !bool(valid) {
			continue
		}

		child := pointer.Append(Keyword(KeywordProperties), PropertySegment(prop.Name))
		value, err := builder.build(prop.Schema, child, depth+1)
		if err != nil {
			return nil, err
		}

		out[prop.Name] = value
	}

	return out, nil
}

// buildArray synthesizes tuple positions or repeated items.
func (builder *skeletonBuilder) buildArray(node *KeywordSchema, pointer Pointer, depth int) ([]any, error) {
	tuple, keyword := node.PrefixItems, KeywordPrefixItems
	if len(tuple) == 0 {
		tuple, keyword = node.ItemsTuple, KeywordItems
	}

	if len(tuple) > 0 {
		out := make([]any, 0, len(tuple))
		for index, item := range tuple {
			child := pointer.Append(Keyword(keyword), IndexSegment(index))
			value, err := builder.build(item, child, depth+1)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil
	}

	if node.Items == nil {
		return []any{}, nil
	}

	if valid, ok := node.Items.(BooleanSchema); ok && !bool(valid) {
		return []any{}, nil
	}

	value, err := builder.build(node.Items, pointer.Append(Keyword(KeywordItems)), depth+1)
	if err != nil {
		return nil, err
	}

	return repeatValue(value, builder.cfg.ArrayItemCount), nil
}

// warn forwards recoverable problem to configured hook.
func (builder *skeletonBuilder) warn(err error) {
	if builder.cfg.Warn != nil {
		builder.cfg.Warn(err)
	}
}

// repeatValue returns count independent copies of value.
func repeatValue(value any, count int) []any {
	out := make([]any, 0, count)
	for range count {
		out = append(out, cloneJSONValue(value))
	}

	return out
}

// annotatedValue returns const, default or first enum value when available.
func annotatedValue(node *KeywordSchema) (any, bool) {
	switch {
	case node.HasConst:
		return node.Const, true
	case node.HasDefault:
		return node.Default, true
	case len(node.Enum) > 0:
		return node.Enum[0], true
	default:
		return nil, false
	}
}

// normalizeSentinel rewrites generator "unbounded" sentinels to the type zero value.
func normalizeSentinel(schemaType string, value any) any {
	var number float64
	switch typed := value.(type) {
	case float64:
		number = typed
	case float32:
		number = float64(typed)
	case int:
		if typed == math.MaxInt || typed == math.MinInt {
			return zeroForType(schemaType)
		}

		return typed
	case int64:
		if typed == math.MaxInt64 || typed == math.MinInt64 {
			return zeroForType(schemaType)
		}

		return typed
	default:
		return value
	}

	if math.IsNaN(number) || math.IsInf(number, 0) || math.Abs(number) == math.MaxFloat64 ||
		math.Abs(number) == float64(math.MaxInt64) {
		return zeroForType(schemaType)
	}

	return value
}

// zeroForType returns natural zero value for primitive type.
func zeroForType(schemaType string) any {
	switch schemaType {
	case TypeInteger:
		return 0
	case TypeNumber:
		return float64(0)
	case TypeString:
		return ""
	case TypeBoolean:
		return false
	case TypeObject:
		return map[string]any{}
	case TypeArray:
		return []any{}
	default:
		return nil
	}
}

// normalizeArrayItemCount validates item count and falls back to default.
func normalizeArrayItemCount(value int) int {
	if value <= 0 {
		return defaultArrayItemCount
	}

	return value
}

// cloneJSONValue deep-copies maps and slices of JSON-like values.
func cloneJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneJSONValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneJSONValue(item))
		}

		return out
	default:
		return typed
	}
}
