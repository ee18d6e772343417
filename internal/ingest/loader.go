// Package ingest loads a job-posting table into memory.
//
// The loader is lenient on purpose: rows are not type-checked and ragged
// rows are kept as-is. The only normalization is that job_title,
// job_description and requirements are never missing: absent cells and CSV
// null spellings such as "NA" or "N/A" read as "".
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"postcheck-engine/internal/domain"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatNDJSON Format = "ndjson"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want csv or ndjson)", s)
}

// DetectFormat picks a reader from the file extension; anything that is not
// .ndjson/.jsonl is read as CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	default:
		return FormatCSV
	}
}

// LoadFile reads the table at path.
func LoadFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, &DataAccessError{Source: path, Err: err}
	}
	defer f.Close()

	t, err := Read(f, path, DetectFormat(path))
	if err != nil {
		return t, err
	}
	log.Printf("[ingest] loaded rows=%d cols=%d path=%s", len(t.Records), len(t.Columns), path)
	return t, nil
}

// Read parses r in the given format. source only labels errors and the
// resulting Table.
func Read(r io.Reader, source string, format Format) (domain.Table, error) {
	switch format {
	case FormatNDJSON:
		return ReadNDJSON(r, source)
	default:
		return ReadCSV(r, source)
	}
}

// ReadCSV parses a header row followed by one record per row.
func ReadCSV(r io.Reader, source string) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, &DataAccessError{Source: source, Err: errors.New("empty input: no header row")}
	}
	if err != nil {
		return domain.Table{}, &DataAccessError{Source: source, Err: err}
	}

	t := domain.Table{Source: source, Columns: cleanHeader(header)}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, &DataAccessError{Source: source, Err: err}
		}
		blankNullCells(t, row)
		t.Records = append(t.Records, newRecord(t, len(t.Records), row))
	}
	return t, nil
}

// nullTokens are the cell spellings spreadsheet and dataframe exports use
// for a missing value.
var nullTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsNullToken reports whether a CSV cell spells a missing value.
func IsNullToken(s string) bool { return nullTokens[s] }

// blankNullCells rewrites null tokens in the text columns the core reads to
// "", in place, so they are empty both for feature extraction and on export.
func blankNullCells(t domain.Table, row []string) {
	for _, col := range []string{domain.ColTitle, domain.ColDescription, domain.ColRequirements} {
		if i := t.ColumnIndex(col); i >= 0 && i < len(row) && IsNullToken(row[i]) {
			row[i] = ""
		}
	}
}

// ReadNDJSON parses one JSON object per line. Columns are the union of keys
// in first-seen order; null and missing values read as "".
func ReadNDJSON(r io.Reader, source string) (domain.Table, error) {
	t := domain.Table{Source: source}
	colIdx := map[string]int{}
	var rows []map[string]string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 32*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		keys, vals, err := decodeObject(raw)
		if err != nil {
			return domain.Table{}, &DataAccessError{Source: source, Err: fmt.Errorf("line %d: %w", line, err)}
		}
		row := make(map[string]string, len(keys))
		for i, k := range keys {
			if _, ok := colIdx[k]; !ok {
				colIdx[k] = len(t.Columns)
				t.Columns = append(t.Columns, k)
			}
			row[k] = vals[i]
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return domain.Table{}, &DataAccessError{Source: source, Err: err}
	}
	if line == 0 {
		return domain.Table{}, &DataAccessError{Source: source, Err: errors.New("empty input")}
	}

	for _, row := range rows {
		vals := make([]string, len(t.Columns))
		for k, v := range row {
			vals[colIdx[k]] = v
		}
		t.Records = append(t.Records, newRecord(t, len(t.Records), vals))
	}
	return t, nil
}

// decodeObject walks one JSON object keeping key order.
func decodeObject(raw []byte) (keys, vals []string, err error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := kt.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		keys = append(keys, strings.TrimSpace(key))
		vals = append(vals, cellFromJSON(v))
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, vals, nil
}

func cellFromJSON(v json.RawMessage) string {
	s := string(bytes.TrimSpace(v))
	if s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var out string
		if err := json.Unmarshal(v, &out); err == nil {
			return out
		}
	}
	return s
}

func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func newRecord(t domain.Table, idx int, row []string) domain.Record {
	rec := domain.Record{Index: idx, Values: row}
	rec.Title = t.Cell(rec, domain.ColTitle)
	rec.Description = t.Cell(rec, domain.ColDescription)
	rec.Requirements = t.Cell(rec, domain.ColRequirements)
	return rec
}

// Require returns a *SchemaError naming every column of cols absent from t.
func Require(t domain.Table, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: t.Source, Missing: missing}
	}
	return nil
}
