package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentScoreFullMarks(t *testing.T) {
	s := MustNewScorer()

	tests := []struct {
		name    string
		visual  FeatureSet
		audio   FeatureSet
		content FeatureSet
		check   func(t *testing.T, r Result)
	}{
		{
			name: "perfect visual metrics score exactly 100",
			visual: FeatureSet{
				KeyEyeContact:          1.0,
				KeyPosture:             1.0,
				KeyExpressionVariation: 1.0,
			},
			check: func(t *testing.T, r Result) {
				assert.InDelta(t, 100.0, r.ComponentScores.Visual, 1e-9)
			},
		},
		{
			name: "perfect audio metrics score exactly 100",
			audio: FeatureSet{
				KeySpeakingRate:    1.0,
				KeyPitchVariation:  1.0,
				KeyVolumeVariation: 1.0,
				KeyClarity:         1.0,
			},
			check: func(t *testing.T, r Result) {
				assert.InDelta(t, 100.0, r.ComponentScores.Audio, 1e-9)
			},
		},
		{
			name: "perfect content metrics score exactly 100",
			content: FeatureSet{
				KeyKeywordRelevance: 1.0,
				KeyConfidence:       1.0,
				KeyClarity:          1.0,
			},
			check: func(t *testing.T, r Result) {
				assert.InDelta(t, 100.0, r.ComponentScores.Content, 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, s.Score(tt.visual, tt.audio, tt.content))
		})
	}
}

func TestWeightedAverageIdentity(t *testing.T) {
	s := MustNewScorer()

	// Every metric at 0.5 puts all three component scores at 50; the
	// overall must equal the shared component value.
	visual := FeatureSet{KeyEyeContact: 0.5, KeyPosture: 0.5, KeyExpressionVariation: 0.5}
	audio := FeatureSet{KeySpeakingRate: 0.5, KeyPitchVariation: 0.5, KeyVolumeVariation: 0.5, KeyClarity: 0.5}
	content := FeatureSet{KeyKeywordRelevance: 0.5, KeyConfidence: 0.5, KeyClarity: 0.5}

	r := s.Score(visual, audio, content)

	assert.InDelta(t, 50.0, r.ComponentScores.Visual, 1e-9)
	assert.InDelta(t, 50.0, r.ComponentScores.Audio, 1e-9)
	assert.InDelta(t, 50.0, r.ComponentScores.Content, 1e-9)
	assert.InDelta(t, 50.0, r.OverallScore, 1e-9)
}

func TestOverallScoreWeights(t *testing.T) {
	s := MustNewScorer()

	// Only the visual modality has data: overall = 0.3 * visual.
	visual := FeatureSet{KeyEyeContact: 1.0, KeyPosture: 1.0, KeyExpressionVariation: 1.0}
	r := s.Score(visual, nil, nil)

	assert.InDelta(t, 100.0, r.ComponentScores.Visual, 1e-9)
	assert.InDelta(t, 0.0, r.ComponentScores.Audio, 1e-9)
	assert.InDelta(t, 0.0, r.ComponentScores.Content, 1e-9)
	assert.InDelta(t, 30.0, r.OverallScore, 1e-9)
}

func TestEmptyFeatureSetsDegradeGracefully(t *testing.T) {
	s := MustNewScorer()

	r := s.Score(nil, FeatureSet{}, nil)

	assert.Zero(t, r.OverallScore)
	assert.Zero(t, r.ComponentScores.Visual)
	assert.Zero(t, r.ComponentScores.Audio)
	assert.Zero(t, r.ComponentScores.Content)
	assert.Empty(t, r.FeatureScores)
	assert.Equal(t, []string{genericStrength}, r.Strengths)
	assert.Equal(t, []string{genericImprovement}, r.Improvements)

	// Ratings still exist and respect the floor.
	assert.GreaterOrEqual(t, r.Ratings.Overall, 1)
	for _, rating := range r.Ratings.Audio.Ratings {
		assert.GreaterOrEqual(t, rating, 1)
	}
}

func TestMissingMetricsContributeZero(t *testing.T) {
	s := MustNewScorer()

	// Only eye contact present: 0.4 weight * 100.
	r := s.Score(FeatureSet{KeyEyeContact: 1.0}, nil, nil)
	assert.InDelta(t, 40.0, r.ComponentScores.Visual, 1e-9)
}

func TestFeatureTableRenamesAndOrder(t *testing.T) {
	s := MustNewScorer()

	visual := FeatureSet{KeyEyeContact: 0.9, KeyPosture: 0.8, KeyExpressionVariation: 0.2}
	audio := FeatureSet{KeySpeakingRate: 0.5, KeyPitchVariation: 0.4, KeyVolumeVariation: 0.3, KeyClarity: 0.6}
	content := FeatureSet{KeyKeywordRelevance: 0.7, KeyConfidence: 0.65, KeyClarity: 1.0}

	table := s.featureTable(visual, audio, content)

	names := make([]string, len(table))
	for i, f := range table {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"eye_contact", "posture", "expression",
		"speaking_rate", "tone_variation", "volume_control", "voice_clarity",
		"job_relevance", "confidence", "speech_clarity",
	}, names)

	r := s.Score(visual, audio, content)
	assert.InDelta(t, 90.0, r.FeatureScores["eye_contact"], 1e-9)
	assert.InDelta(t, 40.0, r.FeatureScores["tone_variation"], 1e-9)
	assert.InDelta(t, 100.0, r.FeatureScores["speech_clarity"], 1e-9)
}

func TestFeatureTableSkipsEmptyModalities(t *testing.T) {
	s := MustNewScorer()

	table := s.featureTable(nil, FeatureSet{KeyClarity: 0.5}, nil)

	require.Len(t, table, 4)
	assert.Equal(t, "speaking_rate", table[0].Name)
	assert.Equal(t, "voice_clarity", table[3].Name)
	assert.InDelta(t, 50.0, table[3].Value, 1e-9)
}

func TestScoreResultBounds(t *testing.T) {
	s := MustNewScorer()

	cases := []struct {
		name    string
		visual  FeatureSet
		audio   FeatureSet
		content FeatureSet
	}{
		{name: "all empty"},
		{
			name:    "all maxed",
			visual:  FeatureSet{KeyEyeContact: 1, KeyPosture: 1, KeyExpressionVariation: 1},
			audio:   FeatureSet{KeySpeakingRate: 1, KeyPitchVariation: 1, KeyVolumeVariation: 1, KeyClarity: 1},
			content: FeatureSet{KeyKeywordRelevance: 1, KeyConfidence: 1, KeyClarity: 1},
		},
		{
			name:   "partial data",
			visual: FeatureSet{KeyEyeContact: 0.33},
			audio:  FeatureSet{KeyClarity: 0.71},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Score(tt.visual, tt.audio, tt.content)

			assert.GreaterOrEqual(t, r.OverallScore, 0.0)
			assert.LessOrEqual(t, r.OverallScore, 100.0)
			assert.GreaterOrEqual(t, r.Ratings.Overall, 1)
			assert.LessOrEqual(t, r.Ratings.Overall, 5)
			assert.NotEmpty(t, r.Strengths)
			assert.NotEmpty(t, r.Improvements)
		})
	}
}

func TestNewScorerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModalityWeights[ModalityContent] = 0.5 // sums to 1.1

	s, err := NewScorer(cfg)
	require.Error(t, err)
	assert.Nil(t, s)
}
