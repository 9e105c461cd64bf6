package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/phyten/taglight/internal/output"
	"github.com/phyten/taglight/internal/render/ansi"
	"github.com/phyten/taglight/internal/render/html"
	"github.com/phyten/taglight/internal/termcolor"
)

func newRenderCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file...]",
		Short: "Print files with terminal colours",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runOutput(cmd, args, "ansi")
		},
	}
}

func newHTMLCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html [file...]",
		Short: "Write files as a standalone HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runHTML(cmd, args)
		},
	}
	cmd.Flags().StringP("out", "o", "", "write the page to this file instead of stdout")
	cmd.Flags().Bool("open", false, "open the page in a browser")
	cmd.Flags().String("title", "", "page title")
	return cmd
}

func newDecorationsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decorations [file...]",
		Short: "Dump applied decorations as ndjson, csv or markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			format, _ := cmd.Flags().GetString("format")
			return a.runOutput(cmd, args, format)
		},
	}
	cmd.Flags().String("format", "ndjson", "output format (ndjson|csv|markdown)")
	cmd.Flags().String("fields", "", "comma separated fields for csv/markdown")
	return cmd
}

// runOutput highlights args and writes them in format.
func (a *app) runOutput(cmd *cobra.Command, args []string, format string) error {
	if format == "md" {
		format = "markdown"
	}
	var fields []output.Field
	switch format {
	case "ansi", "html", "ndjson":
	case "csv", "markdown":
		raw := ""
		if f := cmd.Flags().Lookup("fields"); f != nil {
			raw = f.Value.String()
		}
		var err error
		if fields, err = output.ResolveFields(raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	sources, err := a.loadSources(cmd.Context(), args)
	if err != nil {
		return err
	}
	docs, err := a.highlightSources(sources)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch format {
	case "ansi":
		return a.writeANSI(w, docs)
	case "html":
		return a.writePage(w, docs, "")
	}
	var records []output.Record
	for _, d := range docs {
		records = append(records, output.Records(d.Name, d.Surface, a.dark)...)
	}
	return output.Write(w, format, records, fields)
}

func (a *app) writeANSI(w io.Writer, docs []highlighted) error {
	opts := ansi.Options{
		Dark:    a.dark,
		Colors:  a.colors,
		Profile: a.profile,
		Gutter:  a.ui.Gutter,
	}
	for i, d := range docs {
		if len(docs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			header := termcolor.Apply(termcolor.Style{Bold: true}, "==> "+d.Name+" <==", a.profile, a.colors)
			fmt.Fprintln(w, header)
		}
		if err := ansi.RenderSurface(w, d.Surface, opts); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writePage(w io.Writer, docs []highlighted, title string) error {
	pages := make([]html.Document, len(docs))
	for i, d := range docs {
		pages[i] = html.Document{Lines: d.Surface.Layout(a.dark)}
		if len(docs) > 1 {
			pages[i].Name = d.Name
		}
	}
	if title == "" && len(docs) == 1 {
		title = docs[0].Name
	}
	return html.RenderDocuments(w, pages, html.Options{Dark: a.dark, Gutter: a.ui.Gutter, Title: title})
}

func (a *app) runHTML(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	open, _ := cmd.Flags().GetBool("open")
	title, _ := cmd.Flags().GetString("title")

	sources, err := a.loadSources(cmd.Context(), args)
	if err != nil {
		return err
	}
	docs, err := a.highlightSources(sources)
	if err != nil {
		return err
	}
	if outPath == "" && !open {
		return a.writePage(cmd.OutOrStdout(), docs, title)
	}

	var f *os.File
	if outPath == "" {
		f, err = os.CreateTemp("", "taglight-*.html")
	} else {
		f, err = os.Create(outPath)
	}
	if err != nil {
		return err
	}
	if err := a.writePage(f, docs, title); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), f.Name())
	if open {
		if err := browser.OpenFile(f.Name()); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}
