package output

import (
	"encoding/json"
	"io"
)

// WriteNDJSON streams records as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
