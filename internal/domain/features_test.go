package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{0.0, "0.0"},
		{1.0, "1.0"},
		{5.666666666666667, "5.666666666666667"},
		{0.75, "0.75"},
		{1e21, "1000000000000000000000.0"},
		{math.NaN(), "NaN"},
		{139, "139"},
		{true, "True"},
		{false, "False"},
		{LabelPotentiallyFake, "1"},
		{"x", "x"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatValue(tc.in), "%#v", tc.in)
	}
}

func TestFeatureSetValueKeepsFloatColumnsFloat(t *testing.T) {
	fs := FeatureSet{TitleDescriptionSimilarity: 1, AvgWordLength: 0, KeywordDensity: 0}
	for _, name := range []string{FeatSimilarity, FeatAvgWordLength, FeatKeywordDensity} {
		v, ok := fs.Value(name)
		assert.True(t, ok)
		assert.Contains(t, FormatValue(v), ".", name)
	}
}
