package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "modality weights off by a tenth",
			mutate:  func(c *Config) { c.ModalityWeights[ModalityVisual] = 0.4 },
			wantErr: "modality weights sum",
		},
		{
			name:    "negative modality weight",
			mutate:  func(c *Config) { c.ModalityWeights[ModalityAudio] = -0.3 },
			wantErr: "negative",
		},
		{
			name:    "visual weights do not sum to one",
			mutate:  func(c *Config) { c.VisualWeights[KeyPosture] = 0.6 },
			wantErr: "visual weights sum",
		},
		{
			name:    "audio weight missing",
			mutate:  func(c *Config) { delete(c.AudioWeights, KeyClarity) },
			wantErr: "missing metric",
		},
		{
			name:    "negative content weight",
			mutate:  func(c *Config) { c.ContentWeights[KeyConfidence] = -0.3 },
			wantErr: "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWeightTablesSumToOne(t *testing.T) {
	cfg := DefaultConfig()

	sum := func(m map[string]float64) float64 {
		s := 0.0
		for _, v := range m {
			s += v
		}
		return s
	}

	assert.InDelta(t, 1.0, sum(cfg.VisualWeights), 1e-10)
	assert.InDelta(t, 1.0, sum(cfg.AudioWeights), 1e-10)
	assert.InDelta(t, 1.0, sum(cfg.ContentWeights), 1e-10)

	modalitySum := 0.0
	for _, w := range cfg.ModalityWeights {
		modalitySum += w
	}
	assert.InDelta(t, 1.0, modalitySum, 1e-10)
}
