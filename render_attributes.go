// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Badge names shown next to node headings.
const (
	BadgeRequired   = "required"
	BadgeDeprecated = "deprecated"
	BadgeReadOnly   = "read only"
	BadgeWriteOnly  = "write only"
	BadgeConstant   = "constant"
	BadgeNullable   = "nullable"
)

// constraintKeywords are rendered as constraints in this order.
var constraintKeywords = []string{
	"minimum",
	"maximum",
	"exclusiveMinimum",
	"exclusiveMaximum",
	"multipleOf",
	"minLength",
	"maxLength",
	"maxItems",
	"uniqueItems",
	"maxContains",
	"minProperties",
	"maxProperties",
}

// NodeBadges returns display badges of a walked edge. Required is dropped
// for deprecated nodes; a node is constant when it has "const" or a
// single-value "enum".
func NodeBadges(edge Edge) []string {
	return nodeBadges(edge, false)
}

// nodeBadges computes badges; root node is never marked required.
func nodeBadges(edge Edge, isRoot bool) []string {
	out := make([]string, 0, 4)
	keyword, ok := edge.Node.(*KeywordSchema)
	if !ok || keyword == nil {
		if edge.Required && !isRoot {
			out = append(out, BadgeRequired)
		}

		return out
	}

	if edge.Required && !isRoot && !keyword.Deprecated {
		out = append(out, BadgeRequired)
	}

	if keyword.Deprecated {
		out = append(out, BadgeDeprecated)
	}

	if keyword.ReadOnly {
		out = append(out, BadgeReadOnly)
	}

	if keyword.WriteOnly {
		out = append(out, BadgeWriteOnly)
	}

	if keyword.IsConstant() {
		out = append(out, BadgeConstant)
	}

	if keyword.Nullable() {
		out = append(out, BadgeNullable)
	}

	return out
}

// isDeprecated reports deprecated keyword schema.
func isDeprecated(node Schema) bool {
	keyword, ok := node.(*KeywordSchema)
	return ok && keyword != nil && keyword.Deprecated
}

// schemaAttributes renders flat attribute list for one schema node.
func schemaAttributes(node Schema) []attributeView {
	keyword, ok := node.(*KeywordSchema)
	if !ok || keyword == nil {
		return nil
	}

	out := make([]attributeView, 0, 8)
	if keyword.Ref != "" {
		value := fmt.Sprintf("`%s`", escapeInline(keyword.Ref))
		if keyword.Opaque {
			value += " (not expanded)"
		}

		out = append(out, attributeView{Name: "Reference", Value: value})
	}

	if keyword.Title != "" {
		out = append(out, attributeView{Name: "Title", Value: fmt.Sprintf("`%s`", escapeInline(keyword.Title))})
	}

	if keyword.HasDefault {
		out = append(out, attributeView{Name: "Default", Value: fmt.Sprintf("`%s`", escapeInline(mustJSONInline(keyword.Default)))})
	}

	if keyword.HasConst {
		out = append(out, attributeView{Name: "Const", Value: fmt.Sprintf("`%s`", escapeInline(mustJSONInline(keyword.Const)))})
	}

	if len(keyword.Enum) > 0 {
		out = append(out, attributeView{Name: "Enum", Value: jsonList(keyword.Enum)})
	}

	if keyword.Format != "" {
		out = append(out, attributeView{Name: "Format", Value: fmt.Sprintf("`%s`", escapeInline(keyword.Format))})
	}

	if len(keyword.Required) > 0 {
		out = append(out, attributeView{Name: "Required properties", Value: codeList(keyword.Required)})
	}

	if composition := compositionSummary(keyword); composition != "" {
		out = append(out, attributeView{Name: "Composition", Value: composition})
	}

	if conditional := conditionalSummary(keyword); conditional != "" {
		out = append(out, attributeView{Name: "Conditional", Value: conditional})
	}

	if constraints := constraintList(keyword); len(constraints) > 0 {
		out = append(out, attributeView{Name: "Constraints", Value: strings.Join(constraints, "; ")})
	}

	if other := otherKeywordList(keyword); len(other) > 0 {
		out = append(out, attributeView{Name: "Other keywords", Value: strings.Join(other, "; ")})
	}

	return out
}

// compositionSummary renders one-line summary for oneOf/anyOf/allOf/not.
func compositionSummary(node *KeywordSchema) string {
	items := make([]string, 0, 4)
	if node.OneOf != nil {
		items = append(items, "oneOf="+strconv.Itoa(len(node.OneOf)))
	}

	if node.AnyOf != nil {
		items = append(items, "anyOf="+strconv.Itoa(len(node.AnyOf)))
	}

	if node.AllOf != nil {
		items = append(items, "allOf="+strconv.Itoa(len(node.AllOf)))
	}

	if node.Not != nil {
		items = append(items, "not")
	}

	return strings.Join(items, "; ")
}

// conditionalSummary renders one-line summary for conditional keywords.
func conditionalSummary(node *KeywordSchema) string {
	items := make([]string, 0, 4)
	for _, branch := range []struct {
		name   string
		schema Schema
	}{
		{KeywordIf, node.If},
		{KeywordThen, node.Then},
		{KeywordElse, node.Else},
	} {
		if branch.schema != nil {
			items = append(items, branch.name)
		}
	}

	for _, dependency := range node.DependentRequired {
		items = append(items, fmt.Sprintf("`%s` requires %s", escapeInline(dependency.Name), codeList(dependency.Required)))
	}

	for _, dependency := range node.Dependencies {
		if dependency.Schema == nil {
			items = append(items, fmt.Sprintf("`%s` requires %s", escapeInline(dependency.Name), codeList(dependency.Required)))
		}
	}

	if len(node.DependentSchemas) > 0 {
		items = append(items, "dependentSchemas="+strconv.Itoa(len(node.DependentSchemas)))
	}

	return strings.Join(items, "; ")
}

// constraintList renders validation constraints as key=value pairs.
func constraintList(node *KeywordSchema) []string {
	out := make([]string, 0, 4)
	if node.Pattern != "" {
		out = append(out, "pattern="+mustJSONInline(node.Pattern))
	}

	if node.MinItems != nil {
		out = append(out, "minItems="+strconv.Itoa(*node.MinItems))
	}

	if node.MinContains != nil {
		out = append(out, "minContains="+strconv.Itoa(*node.MinContains))
	}

	for _, keyword := range constraintKeywords {
		index := slices.IndexFunc(node.Extra, func(extra Extra) bool { return extra.Keyword == keyword })
		if index < 0 {
			continue
		}

		out = append(out, keyword+"="+mustJSONInline(node.Extra[index].Value))
	}

	return out
}

// otherKeywordList lists keywords that have no dedicated attribute.
func otherKeywordList(node *KeywordSchema) []string {
	out := make([]string, 0, len(node.Extra))
	for _, extra := range node.Extra {
		if slices.Contains(constraintKeywords, extra.Keyword) {
			continue
		}

		out = append(out, escapeInline(extra.Keyword+"="+mustJSONInline(extra.Value)))
	}

	return out
}

// yesNo renders bool as "yes" or "no".
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

// jsonList renders JSON values list into comma-separated inline code tokens.
func jsonList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, fmt.Sprintf("`%s`", escapeInline(mustJSONInline(item))))
	}

	return strings.Join(parts, ", ")
}

// codeList renders names as comma-separated inline code tokens.
func codeList(values []string) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, fmt.Sprintf("`%s`", escapeInline(item)))
	}

	return strings.Join(parts, ", ")
}
