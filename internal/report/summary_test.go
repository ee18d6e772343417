package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/rules"
)

func TestDescribe(t *testing.T) {
	st := Describe([]float64{4, 1, 3, 2})
	assert.Equal(t, 4, st.N)
	assert.Equal(t, 1.0, st.Min)
	assert.InDelta(t, 1.75, st.Q1, 1e-9)
	assert.InDelta(t, 2.5, st.Median, 1e-9)
	assert.InDelta(t, 3.25, st.Q3, 1e-9)
	assert.Equal(t, 4.0, st.Max)
	assert.InDelta(t, 2.5, st.Mean, 1e-9)

	assert.Equal(t, Stats{}, Describe(nil))
	one := Describe([]float64{7})
	assert.Equal(t, 7.0, one.Q1)
	assert.Equal(t, 7.0, one.Q3)
}

func labeled(t *testing.T) pipeline.Batch {
	t.Helper()
	tbl := domain.Table{Source: "mem", Columns: []string{domain.ColTitle, domain.ColDescription}}
	for i, d := range []string{
		"",
		"Great opportunity!!!! Earn cash now",
		"We are a well-established engineering firm seeking a senior backend developer with five or more years of experience in distributed systems.",
	} {
		tbl.Records = append(tbl.Records, domain.Record{Index: i, Description: d, Values: []string{"", d}})
	}
	rs, err := rules.Default(rules.Basic)
	require.NoError(t, err)
	b, err := pipeline.Label(context.Background(), tbl, rules.NewEngine(rs, false), pipeline.Options{})
	require.NoError(t, err)
	return b
}

func TestSummarize(t *testing.T) {
	s := Summarize(labeled(t))

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Fake)
	assert.Equal(t, 1, s.Real)
	assert.InDelta(t, 2.0/3.0, s.FakeRate, 1e-9)

	assert.Equal(t, []FlagCount{
		{rules.FlagShortDescription, 2},
		{rules.FlagExcessiveExclaims, 1},
		{rules.FlagUnusualFormat, 0},
		{rules.FlagGenericTerms, 1},
	}, s.Flags)

	require.Len(t, s.Features, 3)
	dl := s.Features[0]
	assert.Equal(t, domain.FeatDescriptionLength, dl.Name)
	assert.Equal(t, 1, dl.Real.N)
	assert.Equal(t, 139.0, dl.Real.Median)
	assert.Equal(t, 2, dl.Fake.N)
	assert.Equal(t, 0.0, dl.Fake.Min)
	assert.Equal(t, 35.0, dl.Fake.Max)
}

func TestSummaryRendering(t *testing.T) {
	s := Summarize(labeled(t))

	var txt bytes.Buffer
	require.NoError(t, s.WriteText(&txt))
	assert.Contains(t, txt.String(), "potentially fake 2")
	assert.Contains(t, txt.String(), "is_short_description")
	assert.Contains(t, txt.String(), "description_length")

	var js bytes.Buffer
	require.NoError(t, s.WriteJSON(&js))
	var back Summary
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, s.Total, back.Total)
	assert.Equal(t, "basic", back.Variant)
}
