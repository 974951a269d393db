// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

// schemaedit walks JSON Schema, synthesizes skeletons and merges them into documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/schemaedit"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemaedit"
	_buildTime string
)

// cliOptions describes schemaedit CLI flags and subcommands.
type cliOptions struct {
	Version          versionCommand          `command:"version" description:"Print version information"`
	Template         templateCommand         `command:"template" description:"Print built-in markdown template"`
	SchemaToMarkdown schemaToMarkdownCommand `command:"schema2md" description:"Convert JSON Schema to markdown"`
	Edges            edgesCommand            `command:"edges" description:"List child edges of a schema node"`
	Skeleton         skeletonCommand         `command:"skeleton" description:"Synthesize placeholder document for a schema node"`
	Insert           insertCommand           `command:"insert" description:"Merge skeleton of a schema node into a document"`
}

// schemaLoadFlags groups schema loading flags.
type schemaLoadFlags struct {
	Format   string `long:"format" description:"Schema input format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	Strict   bool   `long:"strict" description:"Compile schema against its meta-schema before use"`
	MaxDepth int    `long:"max-depth" description:"Maximum schema nesting depth" default:"64"`
}

// markdownRenderFlags groups markdown rendering flags.
type markdownRenderFlags struct {
	TemplatePath string `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	Title        string `short:"T" long:"title" description:"Markdown document title" default:"schema reference"`
	ListMarker   string `short:"l" long:"list-marker" description:"Unordered list marker for normalized descriptions" choice:"-" choice:"*" default:"*"`
	WrapWidth    int    `short:"w" long:"wrap" description:"Wrap width for plain text descriptions" default:"80"`
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" description:"Built-in template style" choice:"list" choice:"table" default:"list"`
}

// synthesisFlags groups skeleton synthesis flags.
type synthesisFlags struct {
	Pointer      string `short:"p" long:"pointer" description:"JSON pointer of schema node (for example: /properties/servers/items)"`
	ItemCount    int    `short:"n" long:"items" description:"Number of generated array elements" default:"1"`
	RequiredOnly bool   `long:"required-only" description:"Expand only required object properties"`
	SchemaValues bool   `long:"schema-values" description:"Prefer const, default and first enum value over type defaults"`
}

// schemaToMarkdownCommand converts schema to markdown.
type schemaToMarkdownCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output markdown file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	LoadFlags     schemaLoadFlags     `group:"Schema Load"`
	TemplateFlags templateSelectFlags `group:"Template Select"`
	RenderFlags   markdownRenderFlags `group:"Markdown Render"`
}

// Execute runs schema2md subcommand.
func (command *schemaToMarkdownCommand) Execute(_ []string) error {
	return command.runner.runSchemaToMarkdown(command)
}

// edgesCommand prints child edges of one node or the whole walked tree.
type edgesCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
	} `positional-args:"yes"`

	Pointer   string          `short:"p" long:"pointer" description:"JSON pointer of schema node (root when omitted)"`
	All       bool            `short:"a" long:"all" description:"Walk every descendant instead of direct children"`
	LoadFlags schemaLoadFlags `group:"Schema Load"`
}

// Execute runs edges subcommand.
func (command *edgesCommand) Execute(_ []string) error {
	return command.runner.runEdges(command)
}

// skeletonCommand synthesizes placeholder document.
type skeletonCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output document file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	OutputFormat   string          `short:"o" long:"output-format" description:"Document output format" choice:"json" choice:"yaml" default:"json"`
	SynthesisFlags synthesisFlags  `group:"Synthesis"`
	LoadFlags      schemaLoadFlags `group:"Schema Load"`
}

// Execute runs skeleton subcommand.
func (command *skeletonCommand) Execute(_ []string) error {
	return command.runner.runSkeleton(command)
}

// insertCommand merges one skeleton into a document file.
type insertCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output document file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Document       string          `short:"d" long:"document" description:"Existing JSON document to merge into (empty object when omitted or missing)"`
	Reset          bool            `long:"reset" description:"Treat existing document as empty object (document was edited by hand)"`
	OutputFormat   string          `short:"o" long:"output-format" description:"Document output format" choice:"json" choice:"yaml" default:"json"`
	SynthesisFlags synthesisFlags  `group:"Synthesis"`
	LoadFlags      schemaLoadFlags `group:"Schema Load"`
}

// Execute runs insert subcommand.
func (command *insertCommand) Execute(_ []string) error {
	return command.runner.runInsert(command)
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	return command.runner.printVersionInfo()
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

// edgeOutput is one JSON line of edges command output.
type edgeOutput struct {
	Label    string `json:"label"`
	Pointer  string `json:"pointer"`
	Path     string `json:"path,omitempty"`
	Type     string `json:"type,omitempty"`
	Group    string `json:"group"`
	Depth    int    `json:"depth"`
	Required bool   `json:"required"`
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemaedit"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runSchemaToMarkdown renders markdown and writes result to stdout or file.
func (runner *cliRunner) runSchemaToMarkdown(command *schemaToMarkdownCommand) error {
	doc, sourcePath, err := runner.loadSchema(command.Args.Input, command.LoadFlags)
	if err != nil {
		return err
	}

	if doc.SchemaURI == "" {
		runner.warnf("schema has no $schema value; draft support is unknown")
	} else if !doc.Draft.Supported {
		runner.warnf("unsupported $schema value %q", doc.SchemaURI)
	}

	renderOptions := schemaedit.Options{
		Title:        command.RenderFlags.Title,
		SourcePath:   sourcePath,
		TemplateName: command.TemplateFlags.TemplateName,
		WrapWidth:    command.RenderFlags.WrapWidth,
		ListMarker:   command.RenderFlags.ListMarker,
		MaxDepth:     command.LoadFlags.MaxDepth,
	}

	if command.RenderFlags.TemplatePath != "" {
		customTemplate, err := os.ReadFile(command.RenderFlags.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", command.RenderFlags.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := schemaedit.Render(doc, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	return runner.writeOutput(command.Args.Output, "markdown", []byte(rendered))
}

// runEdges prints edges of selected node as JSON array.
func (runner *cliRunner) runEdges(command *edgesCommand) error {
	doc, _, err := runner.loadSchema(command.Args.Input, command.LoadFlags)
	if err != nil {
		return err
	}

	node, pointer, err := schemaedit.LookupString(doc.Root, command.Pointer)
	if err != nil {
		return fmt.Errorf("resolve pointer: %w", err)
	}

	out := make([]edgeOutput, 0, 8)
	if !command.All {
		for _, edge := range schemaedit.Edges(node) {
			out = append(out, newEdgeOutput(pointer.Append(edge.Segments...), edge, 1))
		}
	} else {
		err = schemaedit.Walk(node, schemaedit.WalkOptions{MaxDepth: command.LoadFlags.MaxDepth}, func(child schemaedit.Pointer, edge schemaedit.Edge, depth int) error {
			if depth > 0 {
				out = append(out, newEdgeOutput(pointer.Append(child...), edge, depth))
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("walk schema: %w", err)
		}
	}

	data, err := schemaedit.EncodeJSON(out)
	if err != nil {
		return err
	}

	return runner.writeOutput("", "edges", data)
}

// newEdgeOutput converts walked edge to output row.
func newEdgeOutput(pointer schemaedit.Pointer, edge schemaedit.Edge, depth int) edgeOutput {
	row := edgeOutput{
		Label:    edge.Label,
		Pointer:  pointer.String(),
		Group:    edge.Group.String(),
		Depth:    depth,
		Required: edge.Required,
		Type:     schemaedit.Classify(edge.Node).Type,
	}

	if translation, err := schemaedit.ToDocumentPath(pointer); err == nil {
		row.Path = translation.Path.String()
		if translation.TerminalArray {
			row.Path += "[]"
		}
	}

	return row
}

// runSkeleton synthesizes document for selected node.
func (runner *cliRunner) runSkeleton(command *skeletonCommand) error {
	doc, _, err := runner.loadSchema(command.Args.Input, command.LoadFlags)
	if err != nil {
		return err
	}

	node, pointer, err := schemaedit.LookupString(doc.Root, command.SynthesisFlags.Pointer)
	if err != nil {
		return fmt.Errorf("resolve pointer: %w", err)
	}

	value, err := schemaedit.SynthesizeAt(doc.Root, pointer, runner.synthesisConfig(command.SynthesisFlags, command.LoadFlags))
	if err != nil {
		return fmt.Errorf("synthesize skeleton: %w", err)
	}

	// Terminal items pointers synthesize the enclosing array.
	if translation, err := schemaedit.ToDocumentPath(pointer); err == nil && translation.TerminalArray {
		node, _ = schemaedit.Lookup(doc.Root, pointer[:len(pointer)-1])
	}

	data, err := schemaedit.EncodeDocument(node, value, schemaedit.DocumentFormat(command.OutputFormat))
	if err != nil {
		return err
	}

	return runner.writeOutput(command.Args.Output, "document", data)
}

// runInsert merges skeleton of selected node into existing document.
func (runner *cliRunner) runInsert(command *insertCommand) error {
	if strings.TrimSpace(command.SynthesisFlags.Pointer) == "" {
		return errors.New("insert requires --pointer")
	}

	doc, _, err := runner.loadSchema(command.Args.Input, command.LoadFlags)
	if err != nil {
		return err
	}

	editor := schemaedit.NewEditor(doc.Root, runner.synthesisConfig(command.SynthesisFlags, command.LoadFlags))
	if err := loadDocument(editor, command.Document); err != nil {
		return err
	}

	if command.Reset {
		editor.MarkManualEdit()
	}

	result, err := editor.InsertString(command.SynthesisFlags.Pointer)
	if err != nil {
		return fmt.Errorf("insert skeleton: %w", err)
	}

	data, err := schemaedit.EncodeDocument(doc.Root, result.Document, schemaedit.DocumentFormat(command.OutputFormat))
	if err != nil {
		return err
	}

	return runner.writeOutput(command.Args.Output, "document", data)
}

// loadDocument fills editor with existing document file when present.
func loadDocument(editor *schemaedit.Editor, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read document file %q: %w", path, err)
	}

	if err := editor.SetText(string(data)); err != nil {
		return fmt.Errorf("document file %q: %w", path, err)
	}

	return nil
}

// synthesisConfig builds per-invocation synthesis config with stderr warnings.
func (runner *cliRunner) synthesisConfig(synthesis synthesisFlags, load schemaLoadFlags) schemaedit.Config {
	cfg := schemaedit.DefaultConfig()
	cfg.ArrayItemCount = synthesis.ItemCount
	cfg.RequiredOnly = synthesis.RequiredOnly
	cfg.UseSchemaValues = synthesis.SchemaValues
	cfg.MaxDepth = load.MaxDepth
	cfg.Warn = func(err error) {
		runner.warnf("%v", err)
	}

	return cfg
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := schemaedit.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, "template", []byte(tpl))
}

// loadSchema parses schema from file path or stdin and returns source marker.
func (runner *cliRunner) loadSchema(path string, load schemaLoadFlags) (*schemaedit.Document, string, error) {
	opt := schemaedit.LoadOptions{
		Strict:   load.Strict,
		MaxDepth: load.MaxDepth,
	}

	if load.Format != "auto" {
		opt.Format = schemaedit.SchemaFormat(load.Format)
	}

	path = strings.TrimSpace(path)
	if path != "" {
		doc, err := schemaedit.ParseFile(path, opt)
		if err != nil {
			return nil, "", fmt.Errorf("load schema: %w", err)
		}

		return doc, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	doc, err := schemaedit.Parse(data, opt)
	if err != nil {
		return nil, "", fmt.Errorf("load schema: %w", err)
	}

	return doc, "(stdin)", nil
}

// writeOutput writes data to stdout or file.
func (runner *cliRunner) writeOutput(outputPath, kind string, data []byte) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", kind, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", kind, outputPath, err)
	}

	return nil
}

// warnf writes one warning line to stderr.
func (runner *cliRunner) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(runner.stderr, "warning: "+format+"\n", args...)
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Template.runner = runner
	options.SchemaToMarkdown.runner = runner
	options.Edges.runner = runner
	options.Skeleton.runner = runner
	options.Insert.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text (`+"`list` or `table`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > list.gotmpl
> $ %s template -t table templates/table.gotmpl
`, programName, programName)),
		"schema2md": strings.TrimSpace(fmt.Sprintf(`
Convert JSON or YAML Schema to markdown.
Reads schema from file argument or stdin; writes markdown to file argument or stdout.

Examples:
> $ %s schema2md schema.json > schema.md
> $ cat schema.json | %s schema2md -t table > schema.table.md
`, programName, programName)),
		"edges": strings.TrimSpace(fmt.Sprintf(`
List labeled child edges of one schema node as JSON.
Each row carries the child pointer, the document path it inserts at and the required flag.

Examples:
> $ %s edges schema.json
> $ %s edges -p /properties/servers --all schema.json
`, programName, programName)),
		"skeleton": strings.TrimSpace(fmt.Sprintf(`
Synthesize a placeholder document for the whole schema or one node.

Examples:
> $ %s skeleton schema.json > config.json
> $ %s skeleton -p /properties/servers/items -n 2 -o yaml schema.json
`, programName, programName)),
		"insert": strings.TrimSpace(fmt.Sprintf(`
Synthesize a skeleton for one schema node and merge it into a document.
Existing values are kept; nested keys missing from the document stay missing.
Use --reset after editing the document by hand to replace instead of merge.

Examples:
> $ %s insert -p /properties/name -d config.json schema.json config.json
> $ %s insert -p /properties/servers/items --reset -d config.json schema.json
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata.
func (runner *cliRunner) printVersionInfo() error {
	_, err := fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
	return err
}
