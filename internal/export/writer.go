package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/pipeline"
)

// Write renders b to w in the given format.
func Write(w io.Writer, format ingest.Format, b pipeline.Batch) error {
	switch format {
	case ingest.FormatNDJSON:
		return WriteNDJSON(w, b)
	default:
		return WriteCSV(w, b)
	}
}

// WriteCSV writes the header row and one row per result.
func WriteCSV(w io.Writer, b pipeline.Batch) error {
	l := NewLayout(b)
	cw := csv.NewWriter(w)
	if err := cw.Write(l.Header); err != nil {
		return err
	}
	for _, r := range b.Results {
		if err := cw.Write(l.Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteNDJSON writes one JSON object per result, keys in header order.
// Derived columns keep their JSON types (numbers and booleans).
func WriteNDJSON(w io.Writer, b pipeline.Batch) error {
	l := NewLayout(b)
	bw := bufio.NewWriter(w)
	var buf bytes.Buffer
	for _, r := range b.Results {
		buf.Reset()
		buf.WriteByte('{')
		for i, v := range l.Values(r) {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(l.Header[i])
			if err != nil {
				return err
			}
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", r.Record.Index, l.Header[i], err)
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteString("}\n")
		if _, err := bw.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
