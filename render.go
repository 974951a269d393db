// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// defaultTitle is used when caller does not provide custom title.
	defaultTitle = "schema reference"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = "list"
	// defaultWrapWidth wraps plain description paragraphs at this width.
	defaultWrapWidth = 80
	// defaultListMarker is used when caller does not provide list marker style.
	defaultListMarker = "*"
)

const (
	templateListName  = "list"
	templateTableName = "table"
)

// renderView is the root view model passed to markdown templates.
type renderView struct {
	Title              string
	SourceSchema       string
	SchemaID           string
	SchemaDraft        string
	SchemaDraftSupport string
	ListMarker         string
	Nodes              []nodeView
}

// nodeView is one walked schema node.
type nodeView struct {
	Heading     string
	Anchor      string
	Label       string
	Pointer     string
	Path        string
	Type        string
	Group       string
	Depth       int
	Badges      []string
	Description string
	Attributes  []attributeView
	Children    []childView
}

// childView is one row of a node's child listing.
type childView struct {
	Label    string
	Anchor   string
	Type     string
	Required bool
	Group    string
}

// attributeView is a single rendered name/value metadata item.
type attributeView struct {
	Name  string
	Value string
}

// RenderFile parses schema file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	doc, err := ParseFile(path, opt.Load)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Render(doc, opt)
}

// Render converts loaded schema into deterministic CommonMark document.
func Render(doc *Document, opt Options) (string, error) {
	view, err := buildRenderView(doc, opt)
	if err != nil {
		return "", err
	}

	markdownTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := markdownTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
