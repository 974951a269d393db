// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"errors"
	"strconv"
)

// defaultMaxDepth bounds schema recursion when caller does not set a limit.
const defaultMaxDepth = 64

// EdgeGroup tells which keyword family produced an edge.
type EdgeGroup uint8

const (
	// GroupStructural covers object and array keywords.
	GroupStructural EdgeGroup = iota
	// GroupComposition covers oneOf/anyOf/allOf/not.
	GroupComposition
	// GroupConditional covers if/then/else, dependentSchemas and dependencies.
	GroupConditional
)

// String returns group name.
func (group EdgeGroup) String() string {
	switch group {
	case GroupStructural:
		return "structural"
	case GroupComposition:
		return "composition"
	case GroupConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// MarshalText encodes group name for JSON output.
func (group EdgeGroup) MarshalText() ([]byte, error) {
	return []byte(group.String()), nil
}

// Edge is one labeled child of a schema node.
type Edge struct {
	// Label is the human readable child name, e.g. property name or "items[0]".
	Label string
	// Segments address the child relative to its parent.
	Segments Pointer
	// Node is the child schema.
	Node     Schema
	Required bool
	Group    EdgeGroup
}

// Edges returns ordered child edges of node: structural keywords in canonical
// order, then composition branches, then conditional branches. Boolean and
// opaque nodes have no edges.
func Edges(node Schema) []Edge {
	keyword, ok := node.(*KeywordSchema)
	if !ok || keyword == nil || keyword.Opaque {
		return nil
	}

	out := make([]Edge, 0, len(keyword.Properties)+4)
	class := classifyKeyword(keyword)
	out = appendObjectEdges(out, keyword)
	out = appendArrayEdges(out, keyword, class)
	out = appendCompositionEdges(out, keyword)
	out = appendConditionalEdges(out, keyword)
	return out
}

// appendObjectEdges appends properties, patternProperties, propertyNames,
// additionalProperties and unevaluatedProperties edges.
func appendObjectEdges(out []Edge, node *KeywordSchema) []Edge {
	for _, prop := range node.Properties {
		out = append(out, Edge{
			Label:    prop.Name,
			Segments: Pointer{Keyword(KeywordProperties), PropertySegment(prop.Name)},
			Node:     prop.Schema,
			Required: node.IsRequired(prop.Name),
		})
	}

	for _, prop := range node.PatternProperties {
		out = append(out, Edge{
			Label:    prop.Name,
			Segments: Pointer{Keyword(KeywordPatternProperties), PropertySegment(prop.Name)},
			Node:     prop.Schema,
		})
	}

	if node.PropertyNames != nil {
		out = append(out, Edge{
			Label:    propertyNamesLabel(node.PropertyNames),
			Segments: Pointer{Keyword(KeywordPropertyNames)},
			Node:     node.PropertyNames,
		})
	}

	out = appendSingleEdge(out, node.AdditionalProperties, KeywordAdditionalProperties, "[additionalProperties]", GroupStructural)
	out = appendSingleEdge(out, node.UnevaluatedProperties, KeywordUnevaluatedProperties, "[unevaluatedProperties]", GroupStructural)
	return out
}

// appendArrayEdges appends prefixItems, items, additionalItems, unevaluatedItems and contains edges.
func appendArrayEdges(out []Edge, node *KeywordSchema, class Classification) []Edge {
	for index, item := range node.PrefixItems {
		out = append(out, Edge{
			Label:    "items[" + strconv.Itoa(index) + "]",
			Segments: Pointer{Keyword(KeywordPrefixItems), IndexSegment(index)},
			Node:     item,
			Required: node.MinItems != nil && *node.MinItems > index,
		})
	}

	for index, item := range node.ItemsTuple {
		out = append(out, Edge{
			Label:    "items[" + strconv.Itoa(index) + "]",
			Segments: Pointer{Keyword(KeywordItems), IndexSegment(index)},
			Node:     item,
			Required: node.MinItems != nil && *node.MinItems > index,
		})
	}

	if node.Items != nil {
		label := "items"
		if class.Type == TypeArray {
			label = "items[]"
		}

		out = appendSingleEdge(out, node.Items, KeywordItems, label, GroupStructural)
	}

	out = appendSingleEdge(out, node.AdditionalItems, KeywordAdditionalItems, "[additionalItems]", GroupStructural)
	out = appendSingleEdge(out, node.UnevaluatedItems, KeywordUnevaluatedItems, "[unevaluatedItems]", GroupStructural)

	if node.Contains != nil {
		out = append(out, Edge{
			Label:    "items[..., x, ...]",
			Segments: Pointer{Keyword(KeywordContains)},
			Node:     node.Contains,
			Required: node.MinContains != nil && *node.MinContains > 0,
		})
	}

	return out
}

// appendCompositionEdges appends oneOf, anyOf, allOf and not branches.
func appendCompositionEdges(out []Edge, node *KeywordSchema) []Edge {
	out = appendListEdges(out, node.OneOf, KeywordOneOf)
	out = appendListEdges(out, node.AnyOf, KeywordAnyOf)
	out = appendListEdges(out, node.AllOf, KeywordAllOf)
	return appendSingleEdge(out, node.Not, KeywordNot, KeywordNot, GroupComposition)
}

// appendConditionalEdges appends if/then/else, dependentSchemas and schema-valued dependencies.
func appendConditionalEdges(out []Edge, node *KeywordSchema) []Edge {
	out = appendSingleEdge(out, node.If, KeywordIf, KeywordIf, GroupConditional)
	out = appendSingleEdge(out, node.Then, KeywordThen, KeywordThen, GroupConditional)
	out = appendSingleEdge(out, node.Else, KeywordElse, KeywordElse, GroupConditional)

	for _, prop := range node.DependentSchemas {
		out = append(out, Edge{
			Label:    prop.Name,
			Segments: Pointer{Keyword(KeywordDependentSchemas), PropertySegment(prop.Name)},
			Node:     prop.Schema,
			Group:    GroupConditional,
		})
	}

	for _, dependency := range node.Dependencies {
		if dependency.Schema == nil {
			continue
		}

		out = append(out, Edge{
			Label:    dependency.Name,
			Segments: Pointer{Keyword(KeywordDependencies), PropertySegment(dependency.Name)},
			Node:     dependency.Schema,
			Group:    GroupConditional,
		})
	}

	return out
}

// appendListEdges appends indexed composition branches.
func appendListEdges(out []Edge, items []Schema, keyword string) []Edge {
	for index, item := range items {
		out = append(out, Edge{
			Label:    keyword + "[" + strconv.Itoa(index) + "]",
			Segments: Pointer{Keyword(keyword), IndexSegment(index)},
			Node:     item,
			Group:    GroupComposition,
		})
	}

	return out
}

// appendSingleEdge appends one keyword edge when child is present.
func appendSingleEdge(out []Edge, child Schema, keyword, label string, group EdgeGroup) []Edge {
	if child == nil {
		return out
	}

	return append(out, Edge{
		Label:    label,
		Segments: Pointer{Keyword(keyword)},
		Node:     child,
		Group:    group,
	})
}

// propertyNamesLabel prefers propertyNames pattern as label.
func propertyNamesLabel(node Schema) string {
	if keyword, ok := node.(*KeywordSchema); ok && keyword != nil && keyword.Pattern != "" {
		return keyword.Pattern
	}

	return "[propertyNames]"
}

// WalkFunc is called for every node reached by Walk. Depth is zero for root.
// Returning SkipChildren prunes descent below the current node.
type WalkFunc func(pointer Pointer, edge Edge, depth int) error

// SkipChildren is returned by WalkFunc to skip descendants of current node.
var SkipChildren = errors.New("skip children")

// WalkOptions configures recursion bounds.
type WalkOptions struct {
	// MaxDepth aborts walking below this depth; zero selects default.
	MaxDepth int
}

// Walk visits root and every descendant depth-first in edge order. Root is
// reported with an empty Edge whose Node is root. A node reached again while
// it is still on the current path, or a path deeper than MaxDepth, aborts the
// walk with ErrMaxDepthExceeded.
func Walk(root Schema, opt WalkOptions, fn WalkFunc) error {
	walker := schemaWalker{
		maxDepth: normalizeMaxDepth(opt.MaxDepth),
		active:   make(map[*KeywordSchema]struct{}),
		fn:       fn,
	}

	return walker.visit(Pointer{}, Edge{Label: schemaTitleOr(root, "Schema"), Node: root}, 0)
}

// schemaWalker carries recursion state for one Walk call.
type schemaWalker struct {
	active   map[*KeywordSchema]struct{}
	fn       WalkFunc
	maxDepth int
}

// visit reports node and recurses into its edges.
func (walker *schemaWalker) visit(pointer Pointer, edge Edge, depth int) error {
	if depth > walker.maxDepth {
		return pointerError(pointer, ErrMaxDepthExceeded)
	}

	release, ok := walker.enter(edge.Node)
	if !ok {
		return pointerError(pointer, ErrMaxDepthExceeded)
	}
	defer release()

	if err := walker.fn(pointer, edge, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}

		return err
	}

	for _, child := range Edges(edge.Node) {
		if err := walker.visit(pointer.Append(child.Segments...), child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// enter registers keyword node on current path and returns release callback.
func (walker *schemaWalker) enter(node Schema) (func(), bool) {
	keyword, ok := node.(*KeywordSchema)
	if !ok || keyword == nil {
		return func() {}, true
	}

	if _, exists := walker.active[keyword]; exists {
		return nil, false
	}

	walker.active[keyword] = struct{}{}
	return func() { delete(walker.active, keyword) }, true
}

// Lookup returns node addressed by pointer, failing with ErrPointerNotFound.
func Lookup(root Schema, pointer Pointer) (Schema, error) {
	current := root
	for position := 0; position < len(pointer); {
		next, consumed, ok := childBySegments(current, pointer[position:])
		if !ok {
			return nil, pointerError(pointer[:position+1], ErrPointerNotFound)
		}

		current = next
		position += consumed
	}

	return current, nil
}

// LookupString parses pointer text and resolves it against root.
func LookupString(root Schema, text string) (Schema, Pointer, error) {
	pointer, err := ParsePointer(text)
	if err != nil {
		return nil, nil, err
	}

	node, err := Lookup(root, pointer)
	if err != nil {
		return nil, pointer, err
	}

	return node, pointer, nil
}

// childBySegments matches leading segments against node edges.
func childBySegments(node Schema, segments Pointer) (Schema, int, bool) {
	for _, edge := range Edges(node) {
		if len(edge.Segments) > len(segments) {
			continue
		}

		if edge.Segments.Equal(segments[:len(edge.Segments)]) {
			return edge.Node, len(edge.Segments), true
		}
	}

	return nil, 0, false
}

// normalizeMaxDepth validates depth bound and falls back to default.
func normalizeMaxDepth(value int) int {
	if value <= 0 {
		return defaultMaxDepth
	}

	return value
}

// schemaTitleOr returns node title or fallback.
func schemaTitleOr(node Schema, fallback string) string {
	if title := schemaTitle(node); title != "" {
		return title
	}

	return fallback
}
