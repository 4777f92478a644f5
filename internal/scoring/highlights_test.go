package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func table(pairs ...interface{}) []FeatureScore {
	fs := make([]FeatureScore, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		fs = append(fs, FeatureScore{Name: pairs[i].(string), Value: pairs[i+1].(float64)})
	}
	return fs
}

func TestSelectHighlights(t *testing.T) {
	tests := []struct {
		name             string
		table            []FeatureScore
		wantStrengths    []string
		wantImprovements []string
	}{
		{
			name:             "clear split between top and bottom",
			table:            table("a", 90.0, "b", 85.0, "c", 80.0, "d", 50.0, "e", 40.0, "f", 30.0),
			wantStrengths:    []string{"a", "b", "c"},
			wantImprovements: []string{"d", "e", "f"},
		},
		{
			name:             "top three filtered by the 70 threshold",
			table:            table("a", 95.0, "b", 65.0, "c", 64.0, "d", 59.0, "e", 58.0, "f", 57.0),
			wantStrengths:    []string{"a"},
			wantImprovements: []string{"d", "e", "f"},
		},
		{
			name:             "bottom three filtered by the 60 threshold",
			table:            table("a", 75.0, "b", 72.0, "c", 71.0, "d", 55.0),
			wantStrengths:    []string{"a", "b", "c"},
			wantImprovements: []string{"d"},
		},
		{
			name:             "no qualifying feature falls back to generic text",
			table:            table("a", 55.0, "b", 54.0, "c", 53.0),
			wantStrengths:    []string{genericStrength},
			wantImprovements: []string{"a", "b", "c"},
		},
		{
			name:             "middling table falls back on both sides",
			table:            table("a", 65.0, "b", 64.0, "c", 63.0, "d", 62.0),
			wantStrengths:    []string{genericStrength},
			wantImprovements: []string{genericImprovement},
		},
		{
			name:             "empty table falls back on both sides",
			table:            nil,
			wantStrengths:    []string{genericStrength},
			wantImprovements: []string{genericImprovement},
		},
		{
			// Known overlap for small tables: with three entries the top-3
			// and bottom-3 windows are the same slice, so a feature can be
			// reported both as a strength and as an improvement candidate.
			name:             "small table overlap is preserved",
			table:            table("a", 75.0, "b", 50.0, "c", 40.0),
			wantStrengths:    []string{"a"},
			wantImprovements: []string{"b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strengths, improvements := SelectHighlights(tt.table)
			assert.Equal(t, tt.wantStrengths, strengths)
			assert.Equal(t, tt.wantImprovements, improvements)
		})
	}
}

func TestSelectHighlightsStableTieBreak(t *testing.T) {
	// Equal values keep the table's insertion order.
	tied := table("eye_contact", 80.0, "posture", 80.0, "expression", 80.0, "confidence", 80.0)

	strengths, _ := SelectHighlights(tied)
	assert.Equal(t, []string{"eye_contact", "posture", "expression"}, strengths)
}

func TestSelectHighlightsDeterministic(t *testing.T) {
	in := table("a", 90.0, "b", 85.0, "c", 85.0, "d", 50.0, "e", 50.0, "f", 30.0)

	s1, i1 := SelectHighlights(in)
	s2, i2 := SelectHighlights(in)
	assert.Equal(t, s1, s2)
	assert.Equal(t, i1, i2)
}

func TestSelectHighlightsDoesNotMutateInput(t *testing.T) {
	in := table("a", 10.0, "b", 90.0, "c", 50.0)
	SelectHighlights(in)
	assert.Equal(t, table("a", 10.0, "b", 90.0, "c", 50.0), in)
}
