package scoring

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-9

// Config holds the modality and per-feature weight tables. A Config is
// validated once by NewScorer and treated as immutable afterwards.
type Config struct {
	ModalityWeights map[Modality]float64
	VisualWeights   map[string]float64
	AudioWeights    map[string]float64
	ContentWeights  map[string]float64
}

// featureOrder fixes the iteration order of each weight table. Map iteration
// in Go is randomized; scoring and the feature score table must not be.
var (
	visualOrder  = []string{KeyEyeContact, KeyPosture, KeyExpressionVariation}
	audioOrder   = []string{KeySpeakingRate, KeyPitchVariation, KeyVolumeVariation, KeyClarity}
	contentOrder = []string{KeyKeywordRelevance, KeyConfidence, KeyClarity}
)

// DefaultConfig returns the canonical weight tables.
func DefaultConfig() Config {
	return Config{
		ModalityWeights: map[Modality]float64{
			ModalityVisual:  0.3,
			ModalityAudio:   0.3,
			ModalityContent: 0.4,
		},
		VisualWeights: map[string]float64{
			KeyEyeContact:          0.4,
			KeyPosture:             0.3,
			KeyExpressionVariation: 0.3,
		},
		AudioWeights: map[string]float64{
			KeySpeakingRate:    0.25,
			KeyPitchVariation:  0.25,
			KeyVolumeVariation: 0.2,
			KeyClarity:         0.3,
		},
		ContentWeights: map[string]float64{
			KeyKeywordRelevance: 0.4,
			KeyConfidence:       0.3,
			KeyClarity:          0.3,
		},
	}
}

// Validate checks that every weight group sums to 1.0 and contains no
// negative weights. A Config that fails validation must be rejected at
// construction time; it is never usable for scoring.
func (c Config) Validate() error {
	modalitySum := 0.0
	for m, w := range c.ModalityWeights {
		if w < 0 {
			return fmt.Errorf("modality weight %q is negative: %v", m, w)
		}
		modalitySum += w
	}
	if math.Abs(modalitySum-1.0) > weightSumTolerance {
		return fmt.Errorf("modality weights sum to %v, want 1.0", modalitySum)
	}

	groups := []struct {
		name    Modality
		weights map[string]float64
		order   []string
	}{
		{ModalityVisual, c.VisualWeights, visualOrder},
		{ModalityAudio, c.AudioWeights, audioOrder},
		{ModalityContent, c.ContentWeights, contentOrder},
	}

	for _, g := range groups {
		sum := 0.0
		for _, key := range g.order {
			w, ok := g.weights[key]
			if !ok {
				return fmt.Errorf("%s weights missing metric %q", g.name, key)
			}
			if w < 0 {
				return fmt.Errorf("%s weight %q is negative: %v", g.name, key, w)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > weightSumTolerance {
			return fmt.Errorf("%s weights sum to %v, want 1.0", g.name, sum)
		}
	}

	return nil
}
