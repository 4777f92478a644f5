package scoring

import (
	"math"
	"strings"
)

// Normalization caps for raw prosody metrics. 240 BPM is the assumed maximum
// sensible speaking tempo; the others were tuned against the same corpus.
const (
	maxTempoBPM     = 240.0
	pitchStdCap     = 100.0
	volumeStdScale  = 20.0
	mfccVarianceCap = 20.0
)

// Clamp01 clamps x to [0,1]. NaN maps to 0 so a degenerate upstream metric
// never poisons a score.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// NormalizeTempo maps a raw tempo in BPM onto [0,1].
func NormalizeTempo(bpm float64) float64 {
	return Clamp01(bpm / maxTempoBPM)
}

// NormalizePitchVariation maps a pitch standard deviation in Hz onto [0,1].
func NormalizePitchVariation(stdHz float64) float64 {
	return Clamp01(stdHz / pitchStdCap)
}

// NormalizeVolumeVariation maps an RMS-energy standard deviation onto [0,1].
func NormalizeVolumeVariation(rmsStd float64) float64 {
	return Clamp01(rmsStd * volumeStdScale)
}

// NormalizeSpectralVariance maps a mean MFCC variance onto [0,1].
func NormalizeSpectralVariance(v float64) float64 {
	return Clamp01(v / mfccVarianceCap)
}

// SpeechRatio is the non-silent share of the track; already a ratio, just
// guarded against zero duration.
func SpeechRatio(speechSeconds, totalSeconds float64) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	return Clamp01(speechSeconds / totalSeconds)
}

// KeywordRelevance is the share of job keywords matched in the transcript.
func KeywordRelevance(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Clamp01(float64(matched) / float64(total))
}

// SentimentConfidence remaps a sentiment model output onto a confidence in
// [0,1]. A positive label keeps the raw probability, a negative label
// reflects it around 0.5 (1-raw), and anything else is treated as neutral.
func SentimentConfidence(label string, raw float64) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return Clamp01(raw)
	case "negative":
		return Clamp01(1 - raw)
	default:
		return 0.5
	}
}
