// Package providers turns raw perception-model outputs into the per-modality
// FeatureSets the scorer consumes. Providers are total: degenerate input
// (zero frames, empty transcript, missing audio) yields a well-formed
// zero-valued FeatureSet instead of an error.
package providers

import (
	"math"

	"github.com/candidlens/interview-screener/internal/scoring"
	"github.com/candidlens/interview-screener/internal/types"
)

// VisualProvider aggregates per-frame landmark observations into the visual
// FeatureSet. The landmark extraction itself happens upstream; this only
// fuses already-scored frames.
type VisualProvider struct{}

func NewVisualProvider() *VisualProvider {
	return &VisualProvider{}
}

// Features computes mean eye contact and posture over the frames where a
// face or pose was detected, the standard deviation of expression as the
// expression-variation signal, and the face detection rate.
func (p *VisualProvider) Features(frames []types.FrameObservation) scoring.FeatureSet {
	fs := scoring.FeatureSet{
		scoring.KeyEyeContact:          0,
		scoring.KeyPosture:             0,
		scoring.KeyExpressionVariation: 0,
		scoring.KeyFaceDetectionRate:   0,
	}
	if len(frames) == 0 {
		return fs
	}

	var eyeSum, postureSum float64
	var expressions []float64
	faceFrames, poseFrames := 0, 0

	for _, f := range frames {
		if f.FaceDetected {
			eyeSum += f.EyeContact
			expressions = append(expressions, f.Expression)
			faceFrames++
		}
		if f.PoseDetected {
			postureSum += f.Posture
			poseFrames++
		}
	}

	if faceFrames > 0 {
		fs[scoring.KeyEyeContact] = scoring.Clamp01(eyeSum / float64(faceFrames))
	}
	if poseFrames > 0 {
		fs[scoring.KeyPosture] = scoring.Clamp01(postureSum / float64(poseFrames))
	}
	fs[scoring.KeyExpressionVariation] = scoring.Clamp01(stdDev(expressions))
	fs[scoring.KeyFaceDetectionRate] = scoring.Clamp01(float64(faceFrames) / float64(len(frames)))

	return fs
}

func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))

	return math.Sqrt(variance)
}
