package scoring

import "sort"

// Thresholds on the [0,100] feature scale: a top-ranked feature counts as a
// strength at 70 or above, a bottom-ranked one as an improvement below 60.
const (
	strengthThreshold    = 70.0
	improvementThreshold = 60.0
)

// Fallbacks used when no feature clears the respective threshold.
const (
	genericStrength    = "stable, professional performance"
	genericImprovement = "could improve answer structure"
)

// SelectHighlights ranks the feature score table and picks strengths from
// the top three and improvements from the bottom three. The sort is stable,
// so ties keep the table's insertion order (modality then metric) and the
// output is deterministic. For tables of six or fewer entries the top and
// bottom windows may overlap; that overlap is kept as-is.
func SelectHighlights(table []FeatureScore) (strengths, improvements []string) {
	strengths = []string{}
	improvements = []string{}

	if len(table) > 0 {
		sorted := make([]FeatureScore, len(table))
		copy(sorted, table)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Value > sorted[j].Value
		})

		top := 3
		if top > len(sorted) {
			top = len(sorted)
		}
		for _, f := range sorted[:top] {
			if f.Value >= strengthThreshold {
				strengths = append(strengths, f.Name)
			}
		}

		bottom := len(sorted) - 3
		if bottom < 0 {
			bottom = 0
		}
		for _, f := range sorted[bottom:] {
			if f.Value < improvementThreshold {
				improvements = append(improvements, f.Name)
			}
		}
	}

	if len(strengths) == 0 {
		strengths = append(strengths, genericStrength)
	}
	if len(improvements) == 0 {
		improvements = append(improvements, genericImprovement)
	}

	return strengths, improvements
}
