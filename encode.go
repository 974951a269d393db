// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// DocumentJSON encodes documents as pretty JSON.
	DocumentJSON DocumentFormat = "json"
	// DocumentYAML encodes documents as YAML with schema comments.
	DocumentYAML DocumentFormat = "yaml"
)

// DocumentFormat selects document output encoding.
type DocumentFormat string

// EncodeDocument encodes value in selected format. Node is the schema
// governing value; it only contributes YAML comments and key order.
func EncodeDocument(node Schema, value any, format DocumentFormat) ([]byte, error) {
	switch DocumentFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case DocumentJSON, "":
		return EncodeJSON(value)
	case DocumentYAML:
		return EncodeYAML(node, value)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDocumentFormat, format)
	}
}

// EncodeJSON serializes value as pretty JSON with trailing newline.
func EncodeJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := gojson.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDocument, err)
	}

	return out.Bytes(), nil
}

// DecodeDocument parses one JSON document; numbers keep their literal text.
func DecodeDocument(data []byte) (any, error) {
	decoder := gojson.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrDecodeDocument)
	}

	return value, nil
}

// EncodeYAML serializes value as YAML. Mapping keys follow property
// declaration order of node and carry title/description head comments.
func EncodeYAML(node Schema, value any) ([]byte, error) {
	root, err := yamlNodeForValue(value, node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDocument, err)
	}

	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{root},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDocument, err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeDocument, err)
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds deterministic yaml.Node tree from JSON-like value.
func yamlNodeForValue(value any, node Schema) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil
	case string:
		return yamlScalarNode("!!str", typed), nil
	case gojson.Number:
		if int64Value, err := typed.Int64(); err == nil {
			return yamlScalarNode("!!int", strconv.FormatInt(int64Value, 10)), nil
		}

		float64Value, err := typed.Float64()
		if err != nil {
			return nil, err
		}

		return yamlScalarNode("!!float", formatYAMLFloat(float64Value)), nil
	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil
	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(typed, 10)), nil
	case float64:
		return yamlScalarNode("!!float", formatYAMLFloat(typed)), nil
	case map[string]any:
		return yamlMappingNode(typed, node)
	case []any:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for index, item := range typed {
			itemNode, err := yamlNodeForValue(item, sequenceItemSchema(node, index))
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, itemNode)
		}

		return out, nil
	default:
		data, err := gojson.Marshal(typed)
		if err != nil {
			return nil, err
		}

		normalized, err := DecodeDocument(data)
		if err != nil {
			return nil, err
		}

		return yamlNodeForValue(normalized, node)
	}
}

// yamlMappingNode encodes object keys in schema order and annotates them.
func yamlMappingNode(value map[string]any, node Schema) (*yaml.Node, error) {
	keyword, _ := node.(*KeywordSchema)
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, key := range orderedKeys(value, keyword) {
		var property Schema
		if keyword != nil {
			property, _ = keyword.Property(key)
		}

		valueNode, err := yamlNodeForValue(value[key], property)
		if err != nil {
			return nil, err
		}

		keyNode := yamlScalarNode("!!str", key)
		keyNode.HeadComment = schemaKeyComment(property)
		out.Content = append(out.Content, keyNode, valueNode)
	}

	return out, nil
}

// orderedKeys lists declared properties first, then remaining keys sorted.
func orderedKeys(value map[string]any, node *KeywordSchema) []string {
	out := make([]string, 0, len(value))
	if node != nil {
		for _, prop := range node.Properties {
			if _, ok := value[prop.Name]; ok {
				out = append(out, prop.Name)
			}
		}
	}

	rest := make([]string, 0, len(value)-len(out))
	for key := range value {
		if !slices.Contains(out, key) {
			rest = append(rest, key)
		}
	}

	slices.Sort(rest)
	return append(out, rest...)
}

// sequenceItemSchema selects schema governing array element at index.
func sequenceItemSchema(node Schema, index int) Schema {
	keyword, ok := node.(*KeywordSchema)
	if !ok || keyword == nil {
		return nil
	}

	switch {
	case index < len(keyword.PrefixItems):
		return keyword.PrefixItems[index]
	case index < len(keyword.ItemsTuple):
		return keyword.ItemsTuple[index]
	default:
		return keyword.Items
	}
}

// schemaKeyComment builds YAML key comment from schema title and description.
func schemaKeyComment(node Schema) string {
	title := strings.TrimSpace(schemaTitle(node))
	description := strings.TrimSpace(schemaDescription(node))

	switch {
	case title == "" && description == "":
		return ""
	case title == "":
		return normalizeYAMLComment(description)
	case description == "", title == description:
		return normalizeYAMLComment(title)
	default:
		return normalizeYAMLComment(title + "\n" + description)
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(comment, "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, strings.TrimRight(line, " \t\r"))
	}

	return strings.Join(normalized, "\n")
}

// formatYAMLFloat keeps a fraction so integral floats resolve as floats.
func formatYAMLFloat(value float64) string {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if strings.ContainsAny(text, ".eEIN") {
		return text
	}

	return text + ".0"
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
