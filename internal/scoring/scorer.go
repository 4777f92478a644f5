package scoring

// Display names for the feature score table. Internal metric names are
// renamed to recruiter-facing ones before ranking.
var (
	visualDisplay = map[string]string{
		KeyEyeContact:          "eye_contact",
		KeyPosture:             "posture",
		KeyExpressionVariation: "expression",
	}
	audioDisplay = map[string]string{
		KeySpeakingRate:    "speaking_rate",
		KeyPitchVariation:  "tone_variation",
		KeyVolumeVariation: "volume_control",
		KeyClarity:         "voice_clarity",
	}
	contentDisplay = map[string]string{
		KeyKeywordRelevance: "job_relevance",
		KeyConfidence:       "confidence",
		KeyClarity:          "speech_clarity",
	}
)

// Scorer fuses the three modality FeatureSets into one Result. It holds an
// immutable, validated weight configuration and no other state, so a single
// Scorer is safe to share across goroutines.
type Scorer struct {
	cfg Config
}

// NewScorer validates cfg and returns a ready Scorer. An invalid weight
// configuration is a programmer error and is rejected here, never at score
// time.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// MustNewScorer is NewScorer for the default configuration, which is known
// valid.
func MustNewScorer() *Scorer {
	s, err := NewScorer(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// componentScore applies one modality's weight table. Missing metrics
// contribute zero; an empty FeatureSet scores zero.
func (s *Scorer) componentScore(weights map[string]float64, order []string, fs FeatureSet) float64 {
	if len(fs) == 0 {
		return 0
	}
	score := 0.0
	for _, key := range order {
		score += weights[key] * (fs.Get(key) * 100)
	}
	return score
}

// ExtraContext carries scoring inputs that are not plain metrics: the
// matched keyword list feeds the content commentary.
type ExtraContext struct {
	MatchedKeywords []string
}

// Score computes the full evaluation from the three modality FeatureSets.
// It is total: any combination of empty, partial or complete sets yields a
// valid Result.
func (s *Scorer) Score(visual, audio, content FeatureSet) Result {
	return s.ScoreWithContext(visual, audio, content, ExtraContext{})
}

// ScoreWithContext is Score plus non-metric context for commentary.
func (s *Scorer) ScoreWithContext(visual, audio, content FeatureSet, extra ExtraContext) Result {
	components := ComponentScores{
		Visual:  s.componentScore(s.cfg.VisualWeights, visualOrder, visual),
		Audio:   s.componentScore(s.cfg.AudioWeights, audioOrder, audio),
		Content: s.componentScore(s.cfg.ContentWeights, contentOrder, content),
	}

	overall := s.cfg.ModalityWeights[ModalityVisual]*components.Visual +
		s.cfg.ModalityWeights[ModalityAudio]*components.Audio +
		s.cfg.ModalityWeights[ModalityContent]*components.Content

	table := s.featureTable(visual, audio, content)

	strengths, improvements := SelectHighlights(table)

	featureScores := make(map[string]float64, len(table))
	for _, f := range table {
		featureScores[f.Name] = f.Value
	}

	ratings := s.generateRatings(visual, audio, content, extra)

	return Result{
		OverallScore:    overall,
		ComponentScores: components,
		FeatureScores:   featureScores,
		Strengths:       strengths,
		Improvements:    improvements,
		Ratings:         ratings,
	}
}

// featureTable builds the ordered feature score table used for highlight
// ranking. Values are the unweighted metric values on the [0,100] scale; a
// modality whose FeatureSet is empty contributes no rows.
func (s *Scorer) featureTable(visual, audio, content FeatureSet) []FeatureScore {
	table := make([]FeatureScore, 0, len(visualOrder)+len(audioOrder)+len(contentOrder))

	appendRows := func(order []string, display map[string]string, fs FeatureSet) {
		if len(fs) == 0 {
			return
		}
		for _, key := range order {
			table = append(table, FeatureScore{
				Name:  display[key],
				Value: fs.Get(key) * 100,
			})
		}
	}

	appendRows(visualOrder, visualDisplay, visual)
	appendRows(audioOrder, audioDisplay, audio)
	appendRows(contentOrder, contentDisplay, content)

	return table
}
