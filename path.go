// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"strconv"
	"strings"
)

// PathStep is one step of a document path: either a property name or an
// array wrapper around the preceding element.
type PathStep struct {
	Property  string
	ArrayWrap bool
	// Index is the prefixItems position that governs the wrapped element,
	// or -1 when "items" governs it.
	Index int
}

// PropertyStep returns property path step.
func PropertyStep(name string) PathStep {
	return PathStep{Property: name, Index: -1}
}

// ArrayStep returns array wrapper step governed by "items".
func ArrayStep() PathStep {
	return PathStep{ArrayWrap: true, Index: -1}
}

// TupleStep returns array wrapper step governed by prefixItems[index].
func TupleStep(index int) PathStep {
	return PathStep{ArrayWrap: true, Index: index}
}

// DocumentPath addresses an insertion location inside a JSON document.
type DocumentPath []PathStep

// String renders path in dot notation with "[]" for items wrappers and
// "[N]" for tuple positions.
func (path DocumentPath) String() string {
	var out strings.Builder
	for _, step := range path {
		if step.ArrayWrap {
			if step.Index >= 0 {
				out.WriteString("[" + strconv.Itoa(step.Index) + "]")
				continue
			}

			out.WriteString("[]")
			continue
		}

		if out.Len() > 0 {
			out.WriteByte('.')
		}

		out.WriteString(step.Property)
	}

	return out.String()
}

// Translation is the document path derived from a schema pointer.
type Translation struct {
	Path DocumentPath
	// TerminalArray is set when pointer ends exactly at an array item keyword;
	// Path then addresses the array itself instead of one element.
	TerminalArray bool
}

// ToDocumentPath converts a schema pointer to a document insertion path.
//
// "properties" segments are dropped and the following name becomes a
// property step; "items" and "prefixItems" (and additional/unevaluated items)
// wrap the preceding element into an array. Composition and conditional
// branches describe the same document location and are dropped. Pointers
// through "contains", "propertyNames", "not", "patternProperties",
// "additionalProperties" or "unevaluatedProperties" have no concrete document
// location and fail with ErrNotInsertable.
func ToDocumentPath(pointer Pointer) (Translation, error) {
	var out Translation
	path := make(DocumentPath, 0, len(pointer))

	for position := 0; position < len(pointer); position++ {
		segment := pointer[position]
		if segment.Kind != SegmentKeyword {
			return Translation{}, pointerError(pointer[:position+1], ErrInvalidPointer)
		}

		switch segment.Name {
		case KeywordProperties:
			name, ok := followingProperty(pointer, position)
			if !ok {
				return Translation{}, pointerError(pointer[:position+1], ErrInvalidPointer)
			}

			path = append(path, PropertyStep(name))
			position++

		case KeywordItems, KeywordAdditionalItems, KeywordUnevaluatedItems:
			if index, ok := followingIndex(pointer, position); ok {
				path = append(path, TupleStep(index))
				position++
				continue
			}

			if position == len(pointer)-1 {
				out.TerminalArray = true
				continue
			}

			path = append(path, ArrayStep())

		case KeywordPrefixItems:
			index, ok := followingIndex(pointer, position)
			if !ok {
				return Translation{}, pointerError(pointer[:position+1], ErrInvalidPointer)
			}

			path = append(path, TupleStep(index))
			position++

		case KeywordOneOf, KeywordAnyOf, KeywordAllOf:
			if _, ok := followingIndex(pointer, position); ok {
				position++
			}

		case KeywordDependentSchemas, KeywordDependencies:
			if _, ok := followingProperty(pointer, position); ok {
				position++
			}

		case KeywordIf, KeywordThen, KeywordElse:

		case KeywordContains, KeywordPropertyNames, KeywordNot,
			KeywordPatternProperties, KeywordAdditionalProperties, KeywordUnevaluatedProperties:
			return Translation{}, pointerError(pointer[:position+1], ErrNotInsertable)

		default:
			return Translation{}, pointerError(pointer[:position+1], ErrPointerNotFound)
		}
	}

	out.Path = path
	return out, nil
}

// followingProperty returns property segment right after position.
func followingProperty(pointer Pointer, position int) (string, bool) {
	if position+1 >= len(pointer) || pointer[position+1].Kind != SegmentProperty {
		return "", false
	}

	return pointer[position+1].Name, true
}

// followingIndex returns index segment right after position.
func followingIndex(pointer Pointer, position int) (int, bool) {
	if position+1 >= len(pointer) || pointer[position+1].Kind != SegmentIndex {
		return 0, false
	}

	return pointer[position+1].Index, true
}

// Locate re-derives the schema node governing the final element of path.
// Property steps descend through "properties"; array steps descend through
// prefixItems[Index] (or tuple items) when Index is set, otherwise "items".
func Locate(root Schema, path DocumentPath) (Schema, error) {
	current := root
	walked := make(Pointer, 0, len(path)*2)

	for _, step := range path {
		keyword, ok := current.(*KeywordSchema)
		if !ok || keyword == nil || keyword.Opaque {
			return nil, pointerError(walked, ErrPointerNotFound)
		}

		if !step.ArrayWrap {
			walked = walked.Append(Keyword(KeywordProperties), PropertySegment(step.Property))
			next, found := keyword.Property(step.Property)
			if !found {
				return nil, pointerError(walked, ErrPointerNotFound)
			}

			current = next
			continue
		}

		next, segments, found := arrayElementSchema(keyword, step.Index)
		walked = walked.Append(segments...)
		if !found {
			return nil, pointerError(walked, ErrPointerNotFound)
		}

		current = next
	}

	return current, nil
}

// arrayElementSchema selects subschema for one array wrapper step.
func arrayElementSchema(node *KeywordSchema, index int) (Schema, Pointer, bool) {
	if index < 0 {
		segments := Pointer{Keyword(KeywordItems)}
		return node.Items, segments, node.Items != nil
	}

	if index < len(node.PrefixItems) {
		return node.PrefixItems[index], Pointer{Keyword(KeywordPrefixItems), IndexSegment(index)}, true
	}

	if index < len(node.ItemsTuple) {
		return node.ItemsTuple[index], Pointer{Keyword(KeywordItems), IndexSegment(index)}, true
	}

	return nil, Pointer{Keyword(KeywordPrefixItems), IndexSegment(index)}, false
}

// jsonPath renders document path as "$.a[0].b" for diagnostics.
func (path DocumentPath) jsonPath() string {
	var out strings.Builder
	out.WriteByte('$')
	for _, step := range path {
		if step.ArrayWrap {
			out.WriteString("[" + strconv.Itoa(max(step.Index, 0)) + "]")
			continue
		}

		out.WriteByte('.')
		out.WriteString(step.Property)
	}

	return out.String()
}
