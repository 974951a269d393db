// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"errors"
	"strconv"
	"strings"
)

// buildRenderView walks schema tree and prepares data for markdown templates.
func buildRenderView(doc *Document, opt Options) (renderView, error) {
	if doc == nil || doc.Root == nil {
		return renderView{}, errors.New("schema document is empty")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultTitle
	}

	wrapWidth := normalizeWrapWidth(opt.WrapWidth)
	listMarker := normalizeListMarker(opt.ListMarker)

	sourcePath := strings.TrimSpace(opt.SourcePath)
	if sourcePath == "" {
		sourcePath = "(memory)"
	}

	view := renderView{
		Title:              sanitizeText(title),
		SourceSchema:       escapeInline(sourcePath),
		SchemaID:           escapeInline(orNone(doc.ID)),
		SchemaDraft:        escapeInline(orNone(doc.SchemaURI)),
		SchemaDraftSupport: draftSupportText(doc.Draft),
		ListMarker:         listMarker,
	}

	anchors := newAnchorSet()
	anchorByPointer := make(map[string]string)
	childPointers := make([][]string, 0, 16)
	headings := make([]string, 0, 8)

	err := Walk(doc.Root, WalkOptions{MaxDepth: opt.MaxDepth}, func(pointer Pointer, edge Edge, depth int) error {
		headings = append(headings[:depth], edge.Label)
		heading := strings.Join(headings, ".")
		anchor := anchors.add(heading)
		anchorByPointer[pointer.String()] = anchor

		node := nodeView{
			Heading:     escapeInline(heading),
			Anchor:      anchor,
			Label:       escapeInline(edge.Label),
			Pointer:     escapeInline(pointerText(pointer)),
			Path:        escapeInline(documentPathText(pointer)),
			Type:        escapeInline(schemaTypeText(edge.Node)),
			Depth:       depth,
			Badges:      nodeBadges(edge, depth == 0),
			Description: formatDescriptionMarkdown(schemaDescription(edge.Node), wrapWidth, listMarker),
			Attributes:  schemaAttributes(edge.Node),
		}

		if depth > 0 {
			node.Group = edge.Group.String()
		}

		edges := Edges(edge.Node)
		pointers := make([]string, 0, len(edges))
		for _, child := range edges {
			node.Children = append(node.Children, childView{
				Label:    escapeInline(child.Label),
				Type:     escapeInline(schemaTypeText(child.Node)),
				Required: child.Required && !isDeprecated(child.Node),
				Group:    child.Group.String(),
			})
			pointers = append(pointers, pointer.Append(child.Segments...).String())
		}

		view.Nodes = append(view.Nodes, node)
		childPointers = append(childPointers, pointers)
		return nil
	})
	if err != nil {
		return renderView{}, err
	}

	for index := range view.Nodes {
		for childIndex, pointer := range childPointers[index] {
			view.Nodes[index].Children[childIndex].Anchor = anchorByPointer[pointer]
		}
	}

	return view, nil
}

// anchorSet assigns unique heading anchors the way markdown renderers do.
type anchorSet struct {
	seen map[string]int
}

// newAnchorSet creates empty anchor registry.
func newAnchorSet() *anchorSet {
	return &anchorSet{seen: make(map[string]int)}
}

// add returns unique anchor for heading, suffixing repeats with "-N".
func (set *anchorSet) add(heading string) string {
	base := markdownHeadingAnchor(heading)
	count := set.seen[base]
	set.seen[base] = count + 1
	if count == 0 {
		return base
	}

	return base + "-" + strconv.Itoa(count)
}

// pointerText renders pointer with "#" prefix for display.
func pointerText(pointer Pointer) string {
	return "#" + pointer.String()
}

// documentPathText renders insertion path of pointer or empty string when
// node has no document location.
func documentPathText(pointer Pointer) string {
	translation, err := ToDocumentPath(pointer)
	if err != nil {
		return ""
	}

	text := translation.Path.String()
	if translation.TerminalArray {
		text += "[]"
	}

	if text == "" {
		return "(root)"
	}

	return text
}

// schemaTypeText renders declared or inferred type of node.
func schemaTypeText(node Schema) string {
	class := Classify(node)
	switch {
	case class.TerminalBoolean:
		return "boolean schema (" + strconv.FormatBool(class.Valid) + ")"
	case len(class.DeclaredTypes) > 0:
		return strings.Join(class.DeclaredTypes, " | ")
	case class.Type != "":
		return class.Type
	case class.Composition:
		return "composition"
	default:
		return "any"
	}
}

// draftSupportText formats draft support marker for markdown metadata block.
func draftSupportText(info DraftInfo) string {
	if !info.Supported {
		if strings.TrimSpace(info.Canonical) != "" {
			return "unknown (" + escapeInline(info.Canonical) + ")"
		}

		return "unknown"
	}

	return "supported (" + escapeInline(info.Canonical) + ")"
}
