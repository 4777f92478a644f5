package providers

import (
	"github.com/candidlens/interview-screener/internal/scoring"
	"github.com/candidlens/interview-screener/internal/types"
)

// Clarity is a composite of spectral, pitch and volume variation.
const (
	clarityMFCCWeight   = 0.4
	clarityPitchWeight  = 0.3
	clarityVolumeWeight = 0.3
)

// AudioProvider normalizes raw prosody measurements onto the common [0,1]
// scale. Pause count is carried for reporting but excluded from scoring.
type AudioProvider struct{}

func NewAudioProvider() *AudioProvider {
	return &AudioProvider{}
}

// Features maps the raw measurements through the normalization table. A nil
// measurement block degrades to an all-zero FeatureSet.
func (p *AudioProvider) Features(m *types.AudioMeasurements) scoring.FeatureSet {
	fs := scoring.FeatureSet{
		scoring.KeySpeakingRate:    0,
		scoring.KeyPitchVariation:  0,
		scoring.KeyVolumeVariation: 0,
		scoring.KeyClarity:         0,
		scoring.KeySpeechRatio:     0,
		scoring.KeyRhythmicScore:   0,
		scoring.KeyTonalScore:      0,
	}
	if m == nil {
		return fs
	}

	tempo := scoring.NormalizeTempo(m.TempoBPM)
	pitch := scoring.NormalizePitchVariation(m.PitchStdHz)
	volume := scoring.NormalizeVolumeVariation(m.VolumeRMSStd)
	spectral := scoring.NormalizeSpectralVariance(m.MFCCVariance)

	fs[scoring.KeySpeakingRate] = tempo
	fs[scoring.KeyPitchVariation] = pitch
	fs[scoring.KeyVolumeVariation] = volume
	fs[scoring.KeyClarity] = scoring.Clamp01(
		spectral*clarityMFCCWeight + pitch*clarityPitchWeight + volume*clarityVolumeWeight)
	fs[scoring.KeySpeechRatio] = scoring.SpeechRatio(m.SpeechSeconds, m.TotalSeconds)
	fs[scoring.KeyRhythmicScore] = scoring.Clamp01(0.5 + (tempo-0.4)*1.5)
	fs[scoring.KeyTonalScore] = scoring.Clamp01(pitch * 2.0)

	return fs
}
