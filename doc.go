// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

/*
Package schemaedit turns a JSON Schema into an editable document.

A loaded schema is a tree of Schema nodes (BooleanSchema or *KeywordSchema).
Classify reports category axes of a node, Edges and Walk enumerate its
children in a stable order, ToDocumentPath maps a schema Pointer to the
document location it governs, Synthesize builds a placeholder value for a
node, and Merge places that value into an existing document without
clobbering what the user already wrote.

Load a schema and walk it:

	doc, err := schemaedit.ParseFile("schema.json", schemaedit.LoadOptions{})
	if err != nil {
		return err
	}

	err = schemaedit.Walk(doc.Root, schemaedit.WalkOptions{}, func(p schemaedit.Pointer, e schemaedit.Edge, depth int) error {
		fmt.Printf("%*s%s %s\n", depth*2, "", e.Label, p)
		return nil
	})

Insert a skeleton for the selected node into an editor buffer:

	editor := schemaedit.NewEditor(doc.Root, schemaedit.DefaultConfig())
	result, err := editor.InsertString("/properties/servers/items")
	if err != nil {
		return err
	}

	text, err := editor.Text()

Navigation failures are returned as *PointerError wrapping ErrPointerNotFound,
ErrNotInsertable, ErrNoValidSkeleton or ErrMaxDepthExceeded; use errors.Is.

Render markdown documentation of the walked tree:

	md, err := schemaedit.Render(doc, schemaedit.Options{TemplateName: "table"})
*/
package schemaedit
