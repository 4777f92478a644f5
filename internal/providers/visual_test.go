package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/candidlens/interview-screener/internal/scoring"
	"github.com/candidlens/interview-screener/internal/types"
)

func TestVisualProviderZeroFrames(t *testing.T) {
	p := NewVisualProvider()

	fs := p.Features(nil)

	assert.Equal(t, 0.0, fs.Get(scoring.KeyEyeContact))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyPosture))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyExpressionVariation))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyFaceDetectionRate))
}

func TestVisualProviderAggregation(t *testing.T) {
	p := NewVisualProvider()

	frames := []types.FrameObservation{
		{EyeContact: 0.8, Posture: 0.6, Expression: 0.2, FaceDetected: true, PoseDetected: true},
		{EyeContact: 0.6, Posture: 0.8, Expression: 0.6, FaceDetected: true, PoseDetected: true},
		{FaceDetected: false, PoseDetected: false},
		{FaceDetected: false, PoseDetected: false},
	}

	fs := p.Features(frames)

	// Means over detected frames only, not over all frames.
	assert.InDelta(t, 0.7, fs.Get(scoring.KeyEyeContact), 1e-9)
	assert.InDelta(t, 0.7, fs.Get(scoring.KeyPosture), 1e-9)
	// stddev of {0.2, 0.6} is 0.2.
	assert.InDelta(t, 0.2, fs.Get(scoring.KeyExpressionVariation), 1e-9)
	assert.InDelta(t, 0.5, fs.Get(scoring.KeyFaceDetectionRate), 1e-9)
}

func TestVisualProviderNoDetections(t *testing.T) {
	p := NewVisualProvider()

	frames := []types.FrameObservation{
		{EyeContact: 0.9, Posture: 0.9, Expression: 0.9},
		{EyeContact: 0.9, Posture: 0.9, Expression: 0.9},
	}

	fs := p.Features(frames)

	// Scores on undetected frames are ignored.
	assert.Equal(t, 0.0, fs.Get(scoring.KeyEyeContact))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyPosture))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyExpressionVariation))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyFaceDetectionRate))
}

func TestVisualProviderConstantExpression(t *testing.T) {
	p := NewVisualProvider()

	frames := []types.FrameObservation{
		{EyeContact: 1, Posture: 1, Expression: 0.5, FaceDetected: true, PoseDetected: true},
		{EyeContact: 1, Posture: 1, Expression: 0.5, FaceDetected: true, PoseDetected: true},
		{EyeContact: 1, Posture: 1, Expression: 0.5, FaceDetected: true, PoseDetected: true},
	}

	fs := p.Features(frames)

	assert.Equal(t, 1.0, fs.Get(scoring.KeyEyeContact))
	assert.Equal(t, 0.0, fs.Get(scoring.KeyExpressionVariation))
	assert.Equal(t, 1.0, fs.Get(scoring.KeyFaceDetectionRate))
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 0},
		{"constant", []float64{2, 2, 2}, 0},
		{"pair", []float64{0, 1}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, stdDev(tt.xs), 1e-9)
		})
	}
}
