package output

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdownTable renders records as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, records []Record, fields []Field) error {
	headers := Headers(fields)
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, r := range records {
		row := RowValues(r, fields)
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

// Write dispatches on an output format: ndjson, csv or markdown.
func Write(w io.Writer, format string, records []Record, fields []Field) error {
	switch format {
	case "ndjson":
		return WriteNDJSON(w, records)
	case "csv":
		return WriteCSV(w, records, fields)
	case "markdown":
		return WriteMarkdownTable(w, records, fields)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
