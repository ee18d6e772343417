package domain

// Columns the core reads from every input table.
const (
	ColTitle        = "job_title"
	ColDescription  = "job_description"
	ColRequirements = "requirements"
	ColLabel        = "potentially_fake"
)

// Record is one job-posting row. Values keeps every input cell in the
// order of the owning Table's Columns so unknown columns survive export.
type Record struct {
	Index        int
	Title        string
	Description  string
	Requirements string
	Values       []string
}

// Table is a whole input batch.
type Table struct {
	Source  string
	Columns []string
	Records []Record
}

// ColumnIndex returns the position of name in the header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Cell returns the raw value of column name for r, or "" when the row is
// shorter than the header.
func (t Table) Cell(r Record, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}
