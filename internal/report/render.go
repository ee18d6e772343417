package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteText renders s as aligned plain-text tables.
func (s Summary) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "source:  %s\nvariant: %s\n", s.Source, s.Variant)
	fmt.Fprintf(w, "rows:    %d  (0: real %d, 1: potentially fake %d, %.1f%%)\n\n", s.Total, s.Real, s.Fake, 100*s.FakeRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "flag\tcount\t")
	for _, f := range s.Flags {
		fmt.Fprintf(tw, "%s\t%d\t\n", f.Name, f.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "feature\tlabel\tn\tmin\tq1\tmedian\tq3\tmax\tmean\t")
	for _, f := range s.Features {
		for _, row := range []struct {
			label string
			st    Stats
		}{{"0", f.Real}, {"1", f.Fake}} {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n", f.Name, row.label, row.st.N,
				num(row.st.Min), num(row.st.Q1), num(row.st.Median), num(row.st.Q3), num(row.st.Max), num(row.st.Mean))
		}
	}
	return tw.Flush()
}

// WriteJSON renders s as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
