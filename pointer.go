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

// SegmentKind tags one pointer segment.
type SegmentKind uint8

const (
	// SegmentKeyword is a schema keyword such as "properties" or "items".
	SegmentKeyword SegmentKind = iota
	// SegmentProperty is a map key under properties-like keywords.
	SegmentProperty
	// SegmentIndex is a position under list keywords.
	SegmentIndex
)

// String returns segment kind name.
func (kind SegmentKind) String() string {
	switch kind {
	case SegmentKeyword:
		return "keyword"
	case SegmentProperty:
		return "property"
	case SegmentIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Schema keywords used as pointer segments.
const (
	KeywordProperties            = "properties"
	KeywordPatternProperties     = "patternProperties"
	KeywordPropertyNames         = "propertyNames"
	KeywordAdditionalProperties  = "additionalProperties"
	KeywordUnevaluatedProperties = "unevaluatedProperties"
	KeywordItems                 = "items"
	KeywordPrefixItems           = "prefixItems"
	KeywordAdditionalItems       = "additionalItems"
	KeywordUnevaluatedItems      = "unevaluatedItems"
	KeywordContains              = "contains"
	KeywordOneOf                 = "oneOf"
	KeywordAnyOf                 = "anyOf"
	KeywordAllOf                 = "allOf"
	KeywordNot                   = "not"
	KeywordIf                    = "if"
	KeywordThen                  = "then"
	KeywordElse                  = "else"
	KeywordDependentSchemas      = "dependentSchemas"
	KeywordDependencies          = "dependencies"
)

// mapKeywords are followed by a property segment.
var mapKeywords = map[string]struct{}{
	KeywordProperties:        {},
	KeywordPatternProperties: {},
	KeywordDependentSchemas:  {},
	KeywordDependencies:      {},
}

// listKeywords are followed by an index segment.
var listKeywords = map[string]struct{}{
	KeywordPrefixItems: {},
	KeywordOneOf:       {},
	KeywordAnyOf:       {},
	KeywordAllOf:       {},
}

// Segment is one step of a schema pointer.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

// Keyword returns keyword segment.
func Keyword(name string) Segment {
	return Segment{Kind: SegmentKeyword, Name: name}
}

// PropertySegment returns property name segment.
func PropertySegment(name string) Segment {
	return Segment{Kind: SegmentProperty, Name: name}
}

// IndexSegment returns list position segment.
func IndexSegment(index int) Segment {
	return Segment{Kind: SegmentIndex, Index: index, Name: strconv.Itoa(index)}
}

// token returns raw reference token text.
func (segment Segment) token() string {
	if segment.Kind == SegmentIndex {
		return strconv.Itoa(segment.Index)
	}

	return segment.Name
}

// Pointer addresses one node inside a schema tree.
type Pointer []Segment

// RootPointer addresses the schema root.
var RootPointer = Pointer{}

// ParsePointer decodes JSON pointer text ("/properties/a/items") into typed segments.
// Segment kinds follow the keyword grammar: the token after a map keyword is a
// property, the token after a list keyword (or tuple "items") is an index.
func ParsePointer(text string) (Pointer, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "#")
	if text == "" || text == "/" {
		return Pointer{}, nil
	}

	if !strings.HasPrefix(text, "/") {
		return nil, fmt.Errorf("%w %q: must start with \"/\"", ErrInvalidPointer, text)
	}

	tokens := strings.Split(strings.TrimPrefix(text, "/"), "/")
	out := make(Pointer, 0, len(tokens))
	for position := 0; position < len(tokens); position++ {
		token := decodePointerToken(tokens[position])
		out = append(out, Keyword(token))

		_, isMap := mapKeywords[token]
		_, isList := listKeywords[token]
		isTuple := token == KeywordItems && position+1 < len(tokens) && isIndexToken(tokens[position+1])
		if !isMap && !isList && !isTuple {
			continue
		}

		if position+1 >= len(tokens) {
			if isList {
				return nil, fmt.Errorf("%w %q: %q requires an index", ErrInvalidPointer, text, token)
			}

			return nil, fmt.Errorf("%w %q: %q requires a name", ErrInvalidPointer, text, token)
		}

		position++
		next := decodePointerToken(tokens[position])
		if isMap {
			out = append(out, PropertySegment(next))
			continue
		}

		index, err := strconv.Atoi(next)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%w %q: bad index %q", ErrInvalidPointer, text, next)
		}

		out = append(out, IndexSegment(index))
	}

	return out, nil
}

// MustParsePointer is ParsePointer that panics on error.
func MustParsePointer(text string) Pointer {
	pointer, err := ParsePointer(text)
	if err != nil {
		panic(err)
	}

	return pointer
}

// String encodes pointer as JSON pointer text; root encodes as empty string.
func (pointer Pointer) String() string {
	if len(pointer) == 0 {
		return ""
	}

	var out strings.Builder
	for _, segment := range pointer {
		out.WriteByte('/')
		out.WriteString(encodePointerToken(segment.token()))
	}

	return out.String()
}

// Append returns new pointer with extra segments; receiver is not modified.
func (pointer Pointer) Append(segments ...Segment) Pointer {
	out := make(Pointer, 0, len(pointer)+len(segments))
	out = append(out, pointer...)
	return append(out, segments...)
}

// Clone returns independent copy of pointer.
func (pointer Pointer) Clone() Pointer {
	return slices.Clone(pointer)
}

// Equal reports whether two pointers have identical segments.
func (pointer Pointer) Equal(other Pointer) bool {
	return slices.Equal(pointer, other)
}

// Last returns final segment and false for root pointer.
func (pointer Pointer) Last() (Segment, bool) {
	if len(pointer) == 0 {
		return Segment{}, false
	}

	return pointer[len(pointer)-1], true
}

// isIndexToken reports whether token is a non-negative decimal index.
func isIndexToken(token string) bool {
	if token == "" {
		return false
	}

	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// decodePointerToken unescapes one JSON pointer token.
func decodePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// encodePointerToken escapes one JSON pointer token.
func encodePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}
