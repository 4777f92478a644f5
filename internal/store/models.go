package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/candidlens/interview-screener/internal/scoring"
)

// Evaluation is one stored scoring run for a candidate clip.
type Evaluation struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	VideoPath     string    `json:"video_path,omitempty"`
	OverallScore  float64   `json:"overall_score"`
	VisualScore   float64   `json:"visual_score"`
	AudioScore    float64   `json:"audio_score"`
	ContentScore  float64   `json:"content_score"`
	OverallRating int       `json:"overall_rating"`
	Result        string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEvaluation builds a stored record from a scoring result. The full
// result is kept as JSON so the breakdown survives schema changes.
func NewEvaluation(candidateName, videoPath string, result *scoring.Result) (*Evaluation, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		ID:            uuid.New().String(),
		CandidateName: candidateName,
		VideoPath:     videoPath,
		OverallScore:  result.OverallScore,
		VisualScore:   result.ComponentScores.Visual,
		AudioScore:    result.ComponentScores.Audio,
		ContentScore:  result.ComponentScores.Content,
		OverallRating: result.Ratings.Overall,
		Result:        string(payload),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// ResultPayload decodes the stored result JSON for API responses.
func (e *Evaluation) ResultPayload() (json.RawMessage, error) {
	if e.Result == "" {
		return nil, nil
	}
	raw := json.RawMessage(e.Result)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("stored result for %s is not valid JSON", e.ID)
	}
	return raw, nil
}

// Ranking is one row of the candidate leaderboard: a candidate's best run
// plus how many times they were evaluated.
type Ranking struct {
	Rank          int       `json:"rank"`
	CandidateName string    `json:"candidate_name"`
	BestScore     float64   `json:"best_score"`
	BestRating    int       `json:"best_rating"`
	Evaluations   int       `json:"evaluations"`
	LastEvaluated time.Time `json:"last_evaluated"`
}
