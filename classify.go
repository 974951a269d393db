// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

// Classification holds independent category axes of one schema node.
type Classification struct {
	// TerminalBoolean is set for boolean schemas; all other axes are then zero.
	TerminalBoolean bool
	// Valid is the boolean schema value when TerminalBoolean is set.
	Valid bool
	// Type is the declared or inferred primitive type, empty when unknown.
	Type string
	// Inferred reports that Type came from structural keywords, not "type".
	Inferred      bool
	Structural    bool
	Composition   bool
	Conditional   bool
	Opaque        bool
	KnownType     bool
	DeclaredTypes []string
}

// knownTypes lists primitive type names defined by JSON Schema.
var knownTypes = map[string]struct{}{
	TypeObject:  {},
	TypeArray:   {},
	TypeString:  {},
	TypeNumber:  {},
	TypeInteger: {},
	TypeBoolean: {},
	TypeNull:    {},
}

// Classify returns category axes for node. Nil nodes classify as the
// always-valid boolean schema.
func Classify(node Schema) Classification {
	switch typed := node.(type) {
	case BooleanSchema:
		return Classification{TerminalBoolean: true, Valid: bool(typed)}
	case *KeywordSchema:
		if typed == nil {
			return Classification{TerminalBoolean: true, Valid: true}
		}

		return classifyKeyword(typed)
	default:
		return Classification{TerminalBoolean: true, Valid: true}
	}
}

// classifyKeyword computes axes of keyword schema.
func classifyKeyword(node *KeywordSchema) Classification {
	out := Classification{
		Type:          node.Type(),
		DeclaredTypes: node.Types,
		Composition:   hasComposition(node),
		Conditional:   hasConditional(node),
		Opaque:        node.Opaque,
	}

	if out.Type == "" {
		switch {
		case hasObjectShape(node):
			out.Type = TypeObject
			out.Inferred = true
		case hasArrayShape(node):
			out.Type = TypeArray
			out.Inferred = true
		}
	}

	_, out.KnownType = knownTypes[out.Type]
	out.Structural = out.Type == TypeObject || out.Type == TypeArray
	return out
}

// hasObjectShape reports whether object structure keywords imply "object".
func hasObjectShape(node *KeywordSchema) bool {
	return len(node.Properties) > 0 || len(node.PatternProperties) > 0
}

// hasArrayShape reports whether array structure keywords imply "array".
func hasArrayShape(node *KeywordSchema) bool {
	return node.Items != nil || len(node.ItemsTuple) > 0 || len(node.PrefixItems) > 0
}

// hasComposition reports presence of oneOf/anyOf/allOf/not.
func hasComposition(node *KeywordSchema) bool {
	return node.OneOf != nil || node.AnyOf != nil || node.AllOf != nil || node.Not != nil
}

// hasConditional reports presence of if, dependentRequired, dependentSchemas or dependencies.
func hasConditional(node *KeywordSchema) bool {
	return node.If != nil ||
		node.DependentRequired != nil ||
		node.DependentSchemas != nil ||
		node.Dependencies != nil
}
