// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// maxRawNesting bounds nesting of decoded raw schema values.
const maxRawNesting = 10000

// rawMember is one key/value pair of a decoded JSON object.
type rawMember struct {
	Key   string
	Value any
}

// rawObject is a decoded JSON object that keeps key order.
type rawObject []rawMember

// get returns member value by key.
func (object rawObject) get(key string) (any, bool) {
	for _, member := range object {
		if member.Key == key {
			return member.Value, true
		}
	}

	return nil, false
}

// without returns shallow copy of object with keys removed.
func (object rawObject) without(keys ...string) rawObject {
	out := make(rawObject, 0, len(object))
	for _, member := range object {
		skip := false
		for _, key := range keys {
			if member.Key == key {
				skip = true
				break
			}
		}

		if !skip {
			out = append(out, member)
		}
	}

	return out
}

// overlay returns base with overlay members replacing or appending keys.
func (object rawObject) overlay(overlay rawObject) rawObject {
	out := make(rawObject, 0, len(object)+len(overlay))
	out = append(out, object...)
	for _, member := range overlay {
		replaced := false
		for index := range out {
			if out[index].Key == member.Key {
				out[index].Value = member.Value
				replaced = true
				break
			}
		}

		if !replaced {
			out = append(out, member)
		}
	}

	return out
}

// decodeOrderedJSON decodes one JSON value keeping object key order.
// Numbers are kept as gojson.Number.
func decodeOrderedJSON(data []byte) (any, error) {
	decoder := gojson.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := readOrderedValue(decoder, 0)
	if err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// readOrderedValue reads one value from token stream.
func readOrderedValue(decoder *gojson.Decoder, depth int) (any, error) {
	if depth > maxRawNesting {
		return nil, errors.New("nesting too deep")
	}

	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	delim, ok := token.(gojson.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		object := rawObject{}
		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be string, got %T", keyToken)
			}

			value, err := readOrderedValue(decoder, depth+1)
			if err != nil {
				return nil, err
			}

			object = append(object, rawMember{Key: key, Value: value})
		}

		if _, err := decoder.Token(); err != nil {
			return nil, err
		}

		return object, nil
	case '[':
		items := []any{}
		for decoder.More() {
			value, err := readOrderedValue(decoder, depth+1)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		if _, err := decoder.Token(); err != nil {
			return nil, err
		}

		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
	}
}

// decodeOrderedYAML decodes one YAML document into the ordered raw form.
func decodeOrderedYAML(data []byte) (any, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	if document.Kind == 0 {
		return nil, errors.New("empty document")
	}

	return orderedFromYAML(&document, 0)
}

// orderedFromYAML converts yaml.Node tree into raw values.
func orderedFromYAML(node *yaml.Node, depth int) (any, error) {
	if depth > maxRawNesting {
		return nil, errors.New("nesting too deep")
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, errors.New("empty document")
		}

		return orderedFromYAML(node.Content[0], depth)
	case yaml.AliasNode:
		return orderedFromYAML(node.Alias, depth+1)
	case yaml.MappingNode:
		object := make(rawObject, 0, len(node.Content)/2)
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be scalar", keyNode.Line)
			}

			value, err := orderedFromYAML(node.Content[index+1], depth+1)
			if err != nil {
				return nil, err
			}

			object = append(object, rawMember{Key: keyNode.Value, Value: value})
		}

		return object, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := orderedFromYAML(item, depth+1)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, nil
	case yaml.ScalarNode:
		return yamlScalarValue(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

// yamlScalarValue resolves scalar by its tag; numbers become gojson.Number.
func yamlScalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return value, nil
	case "!!int":
		var value int64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return gojson.Number(strconv.FormatInt(value, 10)), nil
	case "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return gojson.Number(strconv.FormatFloat(value, 'g', -1, 64)), nil
	default:
		return node.Value, nil
	}
}

// plainValue converts raw ordered values into plain JSON-like values.
func plainValue(value any) any {
	switch typed := value.(type) {
	case rawObject:
		out := make(map[string]any, len(typed))
		for _, member := range typed {
			out[member.Key] = plainValue(member.Value)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, plainValue(item))
		}

		return out
	default:
		return typed
	}
}

// rawKind names raw value kind for error messages.
func rawKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case rawObject:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case gojson.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
