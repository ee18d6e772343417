package domain

// Label is the final potentially_fake value.
type Label int

const (
	LabelReal            Label = 0
	LabelPotentiallyFake Label = 1
)

// Flag is one thresholded rule outcome.
type Flag struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

type Flags []Flag

// Any reports whether at least one flag is set.
func (fs Flags) Any() bool {
	for _, f := range fs {
		if f.Value {
			return true
		}
	}
	return false
}

// Raised returns the names of the flags that fired, in rule order.
func (fs Flags) Raised() []string {
	var out []string
	for _, f := range fs {
		if f.Value {
			out = append(out, f.Name)
		}
	}
	return out
}

func (fs Flags) Get(name string) (bool, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return false, false
}

// Result is a labeled Record.
type Result struct {
	Record   Record
	Features FeatureSet
	Flags    Flags
	Label    Label
}

func (r Result) IsFake() bool { return r.Label == LabelPotentiallyFake }
