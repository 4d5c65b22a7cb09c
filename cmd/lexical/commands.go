package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"portfolio-content-be/internal/service"
	"portfolio-content-be/pkg/lexical"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lexical",
		Short:         "Render, outline and convert Lexical documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCommand(), newTocCommand(), newMarkdownCommand(), newSlugCommand())
	return root
}

func newRenderCommand() *cobra.Command {
	var sanitize bool
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the HTML for a Lexical JSON document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := lexical.Render(doc)
			if sanitize {
				out = service.NewSanitizePolicy().Sanitize(out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "run the output through the HTML sanitizer")
	return cmd
}

func newTocCommand() *cobra.Command {
	var markup, asJSON bool
	cmd := &cobra.Command{
		Use:   "toc FILE",
		Short: "Print the table of contents of a document or rendered HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var entries []lexical.TocEntry
			if markup {
				entries, err = lexical.ExtractFromMarkupString(string(raw))
				if err != nil {
					return err
				}
			} else {
				doc, err := lexical.Decode(raw)
				if err != nil {
					return err
				}
				entries = lexical.ExtractFromAST(doc)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printToc(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&markup, "markup", false, "treat FILE as rendered HTML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}

func newMarkdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "markdown FILE",
		Short: "Convert a Lexical JSON document to Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), lexical.NewParser().Markdown(doc))
			return nil
		},
	}
}

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slug TEXT...",
		Short: "Print the slug for a heading or title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), lexical.Slugify(strings.Join(args, " ")))
			return nil
		},
	}
}

func printToc(w io.Writer, entries []lexical.TocEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, color.YellowString("no headings"))
		return
	}
	for _, e := range entries {
		indent := strings.Repeat("  ", e.Depth-1)
		fmt.Fprintf(w, "%s%s %s\n", indent, e.Title, color.CyanString(e.URL))
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func readDocument(cmd *cobra.Command, path string) (*lexical.Document, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return lexical.Decode(raw)
}
