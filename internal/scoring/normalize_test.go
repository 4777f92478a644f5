package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"negative clamps to zero", -0.5, 0},
		{"huge negative clamps to zero", -1e12, 0},
		{"in range passes through", 0.42, 0.42},
		{"above one clamps to one", 1.5, 1},
		{"huge positive clamps to one", 1e12, 1},
		{"NaN maps to zero", math.NaN(), 0},
		{"zero stays zero", 0, 0},
		{"one stays one", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp01(tt.input))
		})
	}
}

func TestProsodyNormalization(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64) float64
		input    float64
		expected float64
	}{
		{"tempo at half the cap", NormalizeTempo, 120, 0.5},
		{"tempo above the cap saturates", NormalizeTempo, 600, 1.0},
		{"tempo of silent audio", NormalizeTempo, 0, 0},
		{"pitch std at half the cap", NormalizePitchVariation, 50, 0.5},
		{"pitch std above the cap saturates", NormalizePitchVariation, 250, 1.0},
		{"volume std scaled by 20", NormalizeVolumeVariation, 0.01, 0.2},
		{"volume std saturates", NormalizeVolumeVariation, 0.5, 1.0},
		{"mfcc variance at half the cap", NormalizeSpectralVariance, 10, 0.5},
		{"mfcc variance saturates", NormalizeSpectralVariance, 100, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.fn(tt.input), 1e-9)
		})
	}
}

func TestSpeechRatio(t *testing.T) {
	assert.InDelta(t, 0.75, SpeechRatio(7.5, 10), 1e-9)
	assert.Equal(t, 0.0, SpeechRatio(5, 0), "zero duration never divides")
	assert.Equal(t, 1.0, SpeechRatio(12, 10), "ratio above one clamps")
}

func TestKeywordRelevance(t *testing.T) {
	assert.InDelta(t, 0.5, KeywordRelevance(3, 6), 1e-9)
	assert.Equal(t, 0.0, KeywordRelevance(0, 0), "no keywords configured")
	assert.Equal(t, 1.0, KeywordRelevance(6, 6))
}

func TestSentimentConfidence(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		raw      float64
		expected float64
	}{
		{"confident positive", "POSITIVE", 0.9, 0.9},
		{"confident negative reflects", "NEGATIVE", 0.9, 0.1},
		{"weak negative stays near half", "negative", 0.55, 0.45},
		{"lowercase positive", "positive", 0.7, 0.7},
		{"unknown label is neutral", "MIXED", 0.8, 0.5},
		{"empty label is neutral", "", 0.8, 0.5},
		{"raw above one clamps", "POSITIVE", 1.3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SentimentConfidence(tt.label, tt.raw), 1e-9)
		})
	}
}
