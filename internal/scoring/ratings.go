package scoring

import (
	"fmt"
	"math"
	"strings"
)

// band is one segment of a piecewise rating function: values below Upper get
// this Rating and Comment. Bands are evaluated low to high; the last band
// catches everything above the previous bounds.
type band struct {
	Upper   float64
	Rating  int
	Comment string
}

// rate returns the rating and comment of the first band whose upper bound
// exceeds value; values above every bound fall into the final band.
func rate(value float64, bands []band) (int, string) {
	for _, b := range bands {
		if value < b.Upper {
			return b.Rating, b.Comment
		}
	}
	last := bands[len(bands)-1]
	return last.Rating, last.Comment
}

// clampRating enforces the [1,5] ordinal range. A rating is never below 1,
// no matter how low the underlying metric.
func clampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}

// roundRating converts a [0,1] metric to a 1-5 star rating. Exact halves
// round to the even neighbor, so a metric of 0.5 maps to 2 rather than 3.
func roundRating(metric float64) int {
	return clampRating(int(math.RoundToEven(metric * 5)))
}

// Tempo is rated on a U-shaped scale: both very slow and very fast speech
// land on 2. The non-monotonic tail is intentional.
var tempoBands = []band{
	{0.3, 2, "speaking pace is slow and may lose the listener's attention"},
	{0.45, 3, "speaking pace is moderate with a natural rhythm"},
	{0.6, 4, "speaking pace is fluent and natural, with a good feel for rhythm"},
	{0.75, 5, "speaking pace is energetic with a strong sense of rhythm"},
	{math.Inf(1), 2, "speaking pace is too fast and may hurt clarity and comprehension"},
}

var pitchBands = []band{
	{0.1, 1, "tone varies very little and the voice sounds monotonous"},
	{0.3, 3, "tone variation is moderate with average expressiveness"},
	{math.Inf(1), 5, "tone variation is rich and expressive, conveying emotion well"},
}

var volumeBands = []band{
	{0.1, 2, "volume varies little, which limits expressiveness"},
	{0.3, 3, "volume variation is moderate and the delivery sounds reasonable"},
	{math.Inf(1), 5, "volume variation is well placed, emphasizing key points expressively"},
}

var voiceClarityBands = []band{
	{0.3, 2, "pronunciation clarity is limited; some passages may be hard to follow"},
	{0.6, 3, "pronunciation is reasonably clear and easy to follow overall"},
	{math.Inf(1), 5, "pronunciation is very clear and easy to understand"},
}

var speechRatioBands = []band{
	{0.4, 0, "the share of active speech is low, with frequent pauses or silence"},
	{0.7, 0, "the share of active speech is moderate with a natural flow"},
	{math.Inf(1), 0, "the share of active speech is high with a coherent flow"},
}

// audioRatings rates the audio modality. The overall rating is the equally
// weighted mean of the four sub-ratings, rounded (ties to even) and clamped
// to [1,5].
func audioRatings(fs FeatureSet) ModalityRatings {
	tempoRating, tempoComment := rate(fs.Get(KeySpeakingRate), tempoBands)
	pitchRating, pitchComment := rate(fs.Get(KeyPitchVariation), pitchBands)
	volumeRating, volumeComment := rate(fs.Get(KeyVolumeVariation), volumeBands)
	clarityRating, clarityComment := rate(fs.Get(KeyClarity), voiceClarityBands)

	mean := float64(tempoRating+pitchRating+volumeRating+clarityRating) / 4
	overall := clampRating(int(math.RoundToEven(mean)))

	var overallComment string
	switch {
	case overall <= 2:
		overallComment = "delivery needs work; focus on tone variation and clarity"
	case overall == 3:
		overallComment = "solid delivery with reasonable expressiveness and clarity"
	default:
		overallComment = "excellent delivery: expressive, clear, and effective at conveying the message"
	}

	_, speechRatioComment := rate(fs.Get(KeySpeechRatio), speechRatioBands)

	return ModalityRatings{
		Ratings: map[string]int{
			"tempo":   tempoRating,
			"pitch":   pitchRating,
			"volume":  volumeRating,
			"clarity": clarityRating,
		},
		Overall: overall,
		Comments: map[string]string{
			"tempo":        tempoComment,
			"pitch":        pitchComment,
			"volume":       volumeComment,
			"clarity":      clarityComment,
			"speech_ratio": speechRatioComment,
			"overall":      overallComment,
		},
	}
}

// contentRatings rates the content modality. Star ratings round the [0,1]
// metrics onto 1-5 with a floor of 1; the overall rating uses the content
// quality composite (clarity 0.4, confidence 0.3, keywords 0.2, topic 0.1).
func contentRatings(fs FeatureSet, matchedKeywords []string) ModalityRatings {
	keywordRelevance := fs.Get(KeyKeywordRelevance)
	confidence := fs.Get(KeyConfidence)
	clarity := fs.Get(KeyClarity)
	topicRelevance := fs.Get(KeyTopicRelevance)

	quality := clarity*0.4 + confidence*0.3 + keywordRelevance*0.2 + topicRelevance*0.1

	var keywordComment string
	switch {
	case keywordRelevance < 0.2:
		keywordComment = "the answer contains almost none of the role keywords; relevance to the position is low"
	case keywordRelevance < 0.5:
		keywordComment = fmt.Sprintf("the answer covers some role keywords (%s) but the relevance is not strong",
			strings.Join(headKeywords(matchedKeywords, 3), ", "))
	default:
		keywordComment = fmt.Sprintf("the answer covers the role keywords well (%s), showing a solid understanding of the position",
			strings.Join(headKeywords(matchedKeywords, 5), ", "))
	}

	var confidenceComment string
	switch {
	case confidence < 0.4:
		confidenceComment = "the tone lacks confidence and may leave a hesitant impression"
	case confidence < 0.7:
		confidenceComment = "the tone is measured and shows a reasonable level of confidence"
	default:
		confidenceComment = "the tone is confident and assertive, leaving a positive impression"
	}

	var clarityComment string
	switch {
	case clarity < 0.4:
		clarityComment = "expression is not clear enough; sentences may be too simple or too convoluted"
	case clarity < 0.7:
		clarityComment = "expression is fairly clear with moderately structured sentences"
	default:
		clarityComment = "expression is very clear, with sentence structure suited to effective communication"
	}

	var overallComment string
	switch {
	case quality < 0.4:
		overallComment = "content quality needs work; add role-relevant keywords and improve clarity"
	case quality < 0.7:
		overallComment = "content quality is good and broadly meets the bar, with room to improve"
	default:
		overallComment = "content quality is excellent, showing role understanding and strong delivery"
	}

	return ModalityRatings{
		Ratings: map[string]int{
			"keyword":    roundRating(keywordRelevance),
			"confidence": roundRating(confidence),
			"clarity":    roundRating(clarity),
		},
		Overall: roundRating(quality),
		Comments: map[string]string{
			"keyword":    keywordComment,
			"confidence": confidenceComment,
			"clarity":    clarityComment,
			"overall":    overallComment,
		},
	}
}

// visualRatings rates the visual modality. Expression variation is rated on
// a doubled scale because its std-dev rarely exceeds 0.5. The explanation is
// concatenated in a fixed order so the output is deterministic.
func visualRatings(fs FeatureSet) ModalityRatings {
	eyeContact := fs.Get(KeyEyeContact)
	expression := fs.Get(KeyExpressionVariation)
	posture := fs.Get(KeyPosture)
	detectionRate := fs.Get(KeyFaceDetectionRate)

	eyeRating := clampRating(int(eyeContact*5) + 1)
	expressionRating := clampRating(int(expression*10) + 1)
	postureRating := clampRating(int(posture*5) + 1)

	composite := eyeContact*0.4 + expression*0.3 + posture*0.3
	overall := clampRating(int(composite*5) + 1)

	explanations := make([]string, 0, 4)

	switch {
	case eyeContact < 0.3:
		explanations = append(explanations, "The candidate rarely maintained eye contact with the camera, which can come across as a lack of confidence or focus.")
	case eyeContact < 0.7:
		explanations = append(explanations, "The candidate maintained moderate eye contact with the camera.")
	default:
		explanations = append(explanations, "The candidate maintained excellent eye contact with the camera, showing strong focus and confidence.")
	}

	switch {
	case expression < 0.1:
		explanations = append(explanations, "Facial expression varied very little, which reads as low emotional engagement.")
	case expression < 0.3:
		explanations = append(explanations, "Facial expression showed some variation, indicating moderate emotional engagement.")
	default:
		explanations = append(explanations, "Facial expression was rich and varied, demonstrating strong engagement and communication.")
	}

	switch {
	case posture < 0.4:
		explanations = append(explanations, "Posture was fairly casual and could be improved.")
	case posture < 0.7:
		explanations = append(explanations, "Posture was appropriate and reasonably professional.")
	default:
		explanations = append(explanations, "Posture was professional, conveying confidence.")
	}

	if detectionRate < 0.5 {
		explanations = append(explanations, "Note: the face detection rate was low, so visual results may be less accurate.")
	}

	return ModalityRatings{
		Ratings: map[string]int{
			"eye_contact": eyeRating,
			"expression":  expressionRating,
			"posture":     postureRating,
		},
		Overall: overall,
		Comments: map[string]string{
			"explanation": strings.Join(explanations, " "),
		},
	}
}

// generateRatings builds the full rating report. The evaluation-level
// overall rating is the modality-weighted average of the three per-modality
// overall ratings, rounded (ties to even) and clamped to [1,5].
func (s *Scorer) generateRatings(visual, audio, content FeatureSet, extra ExtraContext) RatingReport {
	v := visualRatings(visual)
	a := audioRatings(audio)
	c := contentRatings(content, extra.MatchedKeywords)

	weighted := s.cfg.ModalityWeights[ModalityVisual]*float64(v.Overall) +
		s.cfg.ModalityWeights[ModalityAudio]*float64(a.Overall) +
		s.cfg.ModalityWeights[ModalityContent]*float64(c.Overall)

	return RatingReport{
		Visual:  v,
		Audio:   a,
		Content: c,
		Overall: clampRating(int(math.RoundToEven(weighted))),
	}
}

func headKeywords(keywords []string, n int) []string {
	if len(keywords) > n {
		return keywords[:n]
	}
	return keywords
}
