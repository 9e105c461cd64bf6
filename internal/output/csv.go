package output

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders records as RFC 4180 CSV with CRLF line endings.
func WriteCSV(w io.Writer, records []Record, fields []Field) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(fields)); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write(RowValues(r, fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
