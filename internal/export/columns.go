// Package export writes a labeled batch back out as a table.
package export

import (
	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/pipeline"
)

// Layout is the output header plus, for each derived column, its position.
// A derived column whose name already exists in the input overwrites that
// column in place instead of being appended twice.
type Layout struct {
	Header   []string
	inputLen int
	features []slot
	flags    []slot
	label    int
}

type slot struct {
	name string
	pos  int
}

func NewLayout(b pipeline.Batch) Layout {
	l := Layout{Header: append([]string{}, b.Table.Columns...), inputLen: len(b.Table.Columns)}
	pos := map[string]int{}
	for i, c := range l.Header {
		if _, dup := pos[c]; !dup {
			pos[c] = i
		}
	}
	place := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		pos[name] = len(l.Header)
		l.Header = append(l.Header, name)
		return pos[name]
	}
	for _, f := range b.Rules.FeatureColumns() {
		l.features = append(l.features, slot{f, place(f)})
	}
	for _, f := range b.Rules.FlagColumns() {
		l.flags = append(l.flags, slot{f, place(f)})
	}
	l.label = place(domain.ColLabel)
	return l
}

// Row renders r as cells aligned with Header. Input rows shorter than the
// header are padded with ""; cells past the input header are dropped.
func (l Layout) Row(r domain.Result) []string {
	row := make([]string, len(l.Header))
	n := min(len(r.Record.Values), l.inputLen)
	copy(row, r.Record.Values[:n])
	for _, s := range l.features {
		v, _ := r.Features.Value(s.name)
		row[s.pos] = domain.FormatValue(v)
	}
	for _, s := range l.flags {
		v, _ := r.Flags.Get(s.name)
		row[s.pos] = domain.FormatBool(v)
	}
	row[l.label] = domain.FormatValue(r.Label)
	return row
}

// Values is Row with typed values for the derived columns.
func (l Layout) Values(r domain.Result) []any {
	row := make([]any, len(l.Header))
	for i := 0; i < l.inputLen; i++ {
		if i < len(r.Record.Values) {
			row[i] = r.Record.Values[i]
		} else {
			row[i] = ""
		}
	}
	for _, s := range l.features {
		row[s.pos], _ = r.Features.Value(s.name)
	}
	for _, s := range l.flags {
		row[s.pos], _ = r.Flags.Get(s.name)
	}
	row[l.label] = int(r.Label)
	return row
}
