// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"bytes"
	"fmt"
	"strings"
)

// Insertion is the message a host delivers to its document store: the
// skeleton Value to merge at Path, derived from the selected Pointer.
type Insertion struct {
	Pointer Pointer
	Path    DocumentPath
	Value   any
}

// Location renders insertion path as "$.a[0].b".
func (insertion Insertion) Location() string {
	return insertion.Path.jsonPath()
}

// Plan resolves pointer against root, translates it to a document path and
// synthesizes the skeleton for the selected node.
//
// A pointer ending exactly at an array item keyword ("items") inserts the
// enclosing array: the value is the item skeleton repeated
// Config.ArrayItemCount times, addressed at the array's own path.
func Plan(root Schema, pointer Pointer, cfg Config) (Insertion, error) {
	value, err := SynthesizeAt(root, pointer, cfg)
	if err != nil {
		return Insertion{}, err
	}

	translation, err := ToDocumentPath(pointer)
	if err != nil {
		return Insertion{}, err
	}

	return Insertion{
		Pointer: pointer.Clone(),
		Path:    translation.Path,
		Value:   value,
	}, nil
}

// PlanString parses pointer text and plans insertion.
func PlanString(root Schema, pointerText string, cfg Config) (Insertion, error) {
	pointer, err := ParsePointer(pointerText)
	if err != nil {
		return Insertion{}, err
	}

	return Plan(root, pointer, cfg)
}

// Apply merges insertion into document.
func (insertion Insertion) Apply(document any, opt MergeOptions) any {
	return Merge(document, insertion.Path, insertion.Value, opt)
}

// InsertResult is returned by Editor.Insert.
type InsertResult struct {
	Insertion Insertion
	Document  any
}

// Editor holds the evolving document of one host buffer. Each Insert is an
// atomic compute-and-replace. Editor is not safe for concurrent use; hosts
// deliver insert events one at a time.
type Editor struct {
	root       Schema
	document   any
	cfg        Config
	manualEdit bool
}

// NewEditor creates editor for root schema with empty object document.
func NewEditor(root Schema, cfg Config) *Editor {
	return &Editor{
		root:     root,
		cfg:      cfg,
		document: map[string]any{},
	}
}

// Insert plans insertion for pointer and merges it into current document.
// On error the document is left unchanged.
func (editor *Editor) Insert(pointer Pointer) (InsertResult, error) {
	insertion, err := Plan(editor.root, pointer, editor.cfg)
	if err != nil {
		return InsertResult{}, err
	}

	next := insertion.Apply(editor.document, MergeOptions{ResetBase: editor.manualEdit})
	editor.document = next
	editor.manualEdit = false

	return InsertResult{Insertion: insertion, Document: cloneJSONValue(next)}, nil
}

// InsertString parses pointer text and inserts.
func (editor *Editor) InsertString(pointerText string) (InsertResult, error) {
	pointer, err := ParsePointer(pointerText)
	if err != nil {
		return InsertResult{}, err
	}

	return editor.Insert(pointer)
}

// MarkManualEdit records that the user rewrote the document by hand, so the
// next Insert replaces instead of merging.
func (editor *Editor) MarkManualEdit() {
	editor.manualEdit = true
}

// Document returns a copy of current document.
func (editor *Editor) Document() any {
	return cloneJSONValue(editor.document)
}

// SetDocument replaces current document with a copy of value.
func (editor *Editor) SetDocument(value any) {
	editor.document = cloneJSONValue(value)
}

// SetText replaces current document with parsed editor text. Empty or
// unparsable text yields an empty object; the parse error is still returned
// so the host can report it.
func (editor *Editor) SetText(text string) error {
	if strings.TrimSpace(text) == "" {
		editor.document = map[string]any{}
		return nil
	}

	value, err := DecodeDocument([]byte(text))
	if err != nil {
		editor.document = map[string]any{}
		return err
	}

	editor.document = value
	return nil
}

// Text returns current document as indented JSON.
func (editor *Editor) Text() (string, error) {
	data, err := EncodeJSON(editor.document)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimRight(data, "\n")), nil
}

// String describes insertion for logs.
func (insertion Insertion) String() string {
	return fmt.Sprintf("%s -> %s", insertion.Pointer.String(), insertion.Location())
}
