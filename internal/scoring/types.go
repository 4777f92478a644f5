package scoring

// Modality identifies one of the three independent analysis channels.
type Modality string

const (
	ModalityVisual  Modality = "visual"
	ModalityAudio   Modality = "audio"
	ModalityContent Modality = "content"
)

// Visual metric keys.
const (
	KeyEyeContact          = "eye_contact"
	KeyPosture             = "posture"
	KeyExpressionVariation = "expression_variation"
	KeyFaceDetectionRate   = "face_detection_rate"
)

// Audio metric keys.
const (
	KeySpeakingRate    = "speaking_rate"
	KeyPitchVariation  = "pitch_variation"
	KeyVolumeVariation = "volume_variation"
	KeyClarity         = "clarity"
	KeySpeechRatio     = "speech_ratio"
	KeyRhythmicScore   = "rhythmic_score"
	KeyTonalScore      = "tonal_score"
)

// Content metric keys. Clarity is shared by name with the audio modality but
// the two live in separate FeatureSets and never collide.
const (
	KeyKeywordRelevance   = "keyword_relevance"
	KeyConfidence         = "confidence"
	KeySentenceComplexity = "sentence_complexity"
	KeyVocabularyRichness = "vocabulary_richness"
	KeyTopicRelevance     = "topic_relevance"
)

// FeatureSet maps metric names to values. Values are expected in [0,1];
// missing keys read as zero so a partial or empty set is always usable.
type FeatureSet map[string]float64

// Get returns the metric value, or 0 when the key is absent.
func (fs FeatureSet) Get(key string) float64 {
	if fs == nil {
		return 0
	}
	return fs[key]
}

// ComponentScores holds the per-modality scores on the [0,100] scale.
type ComponentScores struct {
	Visual  float64 `json:"visual"`
	Audio   float64 `json:"audio"`
	Content float64 `json:"content"`
}

// FeatureScore is one named entry of the feature score table. The table is
// ordered (modality order, then metric declaration order) so that highlight
// selection is deterministic under ties.
type FeatureScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is the complete output of one scoring run. All fields are freshly
// allocated; nothing is shared with the input FeatureSets.
type Result struct {
	OverallScore    float64            `json:"overall_score"`
	ComponentScores ComponentScores    `json:"component_scores"`
	FeatureScores   map[string]float64 `json:"feature_scores"`
	Strengths       []string           `json:"strengths"`
	Improvements    []string           `json:"improvements"`
	Ratings         RatingReport       `json:"ratings"`
}

// ModalityRatings carries the 1-5 ordinal ratings and commentary for one
// modality.
type ModalityRatings struct {
	Ratings  map[string]int    `json:"ratings"`
	Overall  int               `json:"overall"`
	Comments map[string]string `json:"comments"`
}

// RatingReport aggregates per-modality ratings plus the cross-modality
// overall rating.
type RatingReport struct {
	Visual  ModalityRatings `json:"visual"`
	Audio   ModalityRatings `json:"audio"`
	Content ModalityRatings `json:"content"`
	Overall int             `json:"overall"`
}
