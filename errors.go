// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"errors"
	"fmt"
)

var (
	// ErrPointerNotFound is returned when a pointer does not address a reachable schema node.
	ErrPointerNotFound = errors.New("pointer not found")
	// ErrMaxDepthExceeded is returned when walking or synthesis exceeds the recursion bound.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrNoValidSkeleton is returned when synthesis targets an always-invalid schema.
	ErrNoValidSkeleton = errors.New("no valid skeleton")
	// ErrNotInsertable is returned when a pointer addresses a schema-only view with no document location.
	ErrNotInsertable = errors.New("pointer is not insertable")
	// ErrUnrecognizedType is reported when a schema uses a vendor or custom type name.
	ErrUnrecognizedType = errors.New("unrecognized schema type")
	// ErrInvalidPointer is returned when pointer text is not a valid JSON pointer.
	ErrInvalidPointer = errors.New("invalid pointer")

	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not object or boolean.
	ErrSchemaRootType = errors.New("schema root must be object or boolean")
	// ErrCompileSchema is returned when strict loading rejects the schema.
	ErrCompileSchema = errors.New("compile schema")
	// ErrUnknownSchemaFormat is returned when requested input format is not supported.
	ErrUnknownSchemaFormat = errors.New("unknown schema format")

	// ErrDecodeDocument is returned when document JSON decoding fails.
	ErrDecodeDocument = errors.New("decode document")
	// ErrEncodeDocument is returned when document encoding fails.
	ErrEncodeDocument = errors.New("encode document")
	// ErrUnknownDocumentFormat is returned when document output format is not supported.
	ErrUnknownDocumentFormat = errors.New("unknown document format")

	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseTemplate is returned when template parsing fails.
	ErrParseTemplate = errors.New("parse template")
)

// PointerError ties a navigation failure to the pointer that caused it.
type PointerError struct {
	Pointer Pointer
	Err     error
}

// Error implements the error interface.
func (e *PointerError) Error() string {
	return fmt.Sprintf("%v at %q", e.Err, e.Pointer.String())
}

// Unwrap returns the underlying sentinel error.
func (e *PointerError) Unwrap() error {
	return e.Err
}

// pointerError wraps sentinel with pointer context.
func pointerError(pointer Pointer, err error) error {
	return &PointerError{Pointer: pointer.Clone(), Err: err}
}
