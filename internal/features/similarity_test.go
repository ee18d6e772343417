package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"title empty", "", "Backend developer", 0.0},
		{"description empty", "Backend developer", "", 0.0},
		{"identical", "Backend Engineer", "Backend Engineer", 1.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"shifted", "abcd", "bcde", 0.75},
		{"prefix", "hello", "help", 2.0 / 3.0},
		{"title in description", "Backend Engineer", "Backend Engineer wanted", 32.0 / 39.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"Driver", "Drivers needed urgently, apply today"},
		{"ÀÉÎ", "àéî"},
		{"x", "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"},
	}
	for _, p := range pairs {
		r := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
