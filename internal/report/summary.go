// Package report summarizes a labeled batch for the analyst: label counts,
// how often each flag fired, and box-plot statistics of the continuous
// features split by label. It renders text or JSON, never charts.
package report

import (
	"math"
	"sort"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/pipeline"
)

type Summary struct {
	Source   string         `json:"source"`
	Variant  string         `json:"variant"`
	Total    int            `json:"total"`
	Real     int            `json:"real"`
	Fake     int            `json:"fake"`
	FakeRate float64        `json:"fake_rate"`
	Flags    []FlagCount    `json:"flags"`
	Features []FeatureStats `json:"features"`
}

type FlagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FeatureStats is one box per label for a continuous feature.
type FeatureStats struct {
	Name string `json:"name"`
	Real Stats  `json:"real"`
	Fake Stats  `json:"fake"`
}

// Stats is a five-number summary plus mean. Quartiles use linear
// interpolation between closest ranks. All zero when N == 0.
type Stats struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

func Summarize(b pipeline.Batch) Summary {
	s := Summary{
		Source:  b.Table.Source,
		Variant: string(b.Rules.Variant),
		Total:   len(b.Results),
	}
	s.Fake = b.Fake()
	s.Real = s.Total - s.Fake
	if s.Total > 0 {
		s.FakeRate = float64(s.Fake) / float64(s.Total)
	}

	for _, name := range b.Rules.FlagColumns() {
		fc := FlagCount{Name: name}
		for _, r := range b.Results {
			if v, _ := r.Flags.Get(name); v {
				fc.Count++
			}
		}
		s.Flags = append(s.Flags, fc)
	}

	for _, name := range b.Rules.ContinuousFeatures() {
		var reals, fakes []float64
		for _, r := range b.Results {
			v, ok := r.Features.Float(name)
			if !ok {
				continue
			}
			if r.Label == domain.LabelPotentiallyFake {
				fakes = append(fakes, v)
			} else {
				reals = append(reals, v)
			}
		}
		s.Features = append(s.Features, FeatureStats{Name: name, Real: Describe(reals), Fake: Describe(fakes)})
	}
	return s
}

// Describe computes Stats for xs. xs is not modified.
func Describe(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sorted := append([]float64{}, xs...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, x := range sorted {
		sum += x
	}
	return Stats{
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
