// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

// Options configures markdown rendering.
type Options struct {
	// Title is the document heading; empty selects the default.
	Title string
	// SourcePath is shown as schema source; empty renders "(memory)".
	SourcePath string
	// TemplateName selects built-in template ("list" or "table").
	TemplateName string
	// TemplateText overrides built-in template when not empty.
	TemplateText string
	// ListMarker is the unordered list marker for descriptions ("*" or "-").
	ListMarker string
	// WrapWidth wraps plain description paragraphs; zero selects the default.
	WrapWidth int
	// MaxDepth bounds walked schema depth; zero selects the default.
	MaxDepth int
	// Load configures schema loading in RenderFile.
	Load LoadOptions
}
