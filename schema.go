// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import "slices"

// Schema is one node of a resolved JSON Schema tree.
//
// The variant is closed: a node is either a BooleanSchema or a *KeywordSchema.
// Consumers switch on the concrete type instead of probing fields.
type Schema interface {
	isSchema()
}

// BooleanSchema is the always-valid (true) or always-invalid (false) schema.
type BooleanSchema bool

func (BooleanSchema) isSchema() {}

// Named primitive types of the "type" keyword.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// Property is one named subschema in declaration order.
type Property struct {
	Name   string
	Schema Schema
}

// DependentRequirement lists properties required when Name is present.
type DependentRequirement struct {
	Name     string
	Required []string
}

// Dependency is one entry of the deprecated "dependencies" keyword.
// Either Required or Schema is set.
type Dependency struct {
	Name     string
	Required []string
	Schema   Schema
}

// KeywordSchema is a schema object with keywords.
type KeywordSchema struct {
	// Types holds the "type" keyword; a single string decodes to one element.
	Types []string

	Properties            []Property
	PatternProperties     []Property
	PropertyNames         Schema
	AdditionalProperties  Schema
	UnevaluatedProperties Schema
	Required              []string

	Items            Schema
	ItemsTuple       []Schema
	PrefixItems      []Schema
	AdditionalItems  Schema
	UnevaluatedItems Schema
	Contains         Schema
	MinItems         *int
	MinContains      *int

	OneOf []Schema
	AnyOf []Schema
	AllOf []Schema
	Not   Schema

	If                Schema
	Then              Schema
	Else              Schema
	DependentRequired []DependentRequirement
	DependentSchemas  []Property
	Dependencies      []Dependency

	Title       string
	Description string
	Format      string
	Pattern     string
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Const       any
	HasConst    bool
	Enum        []any
	Default     any
	HasDefault  bool

	// Ref keeps the original reference text. Opaque marks a reference that
	// was left unexpanded (circular or remote); such nodes have no children.
	Ref    string
	Opaque bool

	// Extra keeps keywords not modeled above, for rendering.
	Extra []Extra
}

func (*KeywordSchema) isSchema() {}

// Extra is an unmodeled keyword with its raw JSON value.
type Extra struct {
	Keyword string
	Value   any
}

// Property returns declared property schema by name.
func (s *KeywordSchema) Property(name string) (Schema, bool) {
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}

	return nil, false
}

// IsRequired reports whether property name is listed in "required".
func (s *KeywordSchema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Type returns first non-null type name, "null" for null-only schemas and
// empty string when type is absent.
func (s *KeywordSchema) Type() string {
	for _, name := range s.Types {
		if name != "" && name != TypeNull {
			return name
		}
	}

	if slices.Contains(s.Types, TypeNull) {
		return TypeNull
	}

	return ""
}

// Nullable reports whether "null" is one of several declared types.
func (s *KeywordSchema) Nullable() bool {
	return len(s.Types) > 1 && slices.Contains(s.Types, TypeNull)
}

// IsConstant reports whether node admits exactly one value.
func (s *KeywordSchema) IsConstant() bool {
	return s.HasConst || len(s.Enum) == 1
}

// schemaTitle returns node title or empty string for boolean schemas.
func schemaTitle(node Schema) string {
	if keyword, ok := node.(*KeywordSchema); ok && keyword != nil {
		return keyword.Title
	}

	return ""
}

// schemaDescription returns node description or empty string for boolean schemas.
func schemaDescription(node Schema) string {
	if keyword, ok := node.(*KeywordSchema); ok && keyword != nil {
		return keyword.Description
	}

	return ""
}
