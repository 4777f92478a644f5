package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Repository runs the evaluation queries.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a completed evaluation.
func (r *Repository) Save(ctx context.Context, e *Evaluation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO evaluations
		 (id, candidate_name, video_path, overall_score, visual_score, audio_score, content_score, overall_rating, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CandidateName, e.VideoPath,
		e.OverallScore, e.VisualScore, e.AudioScore, e.ContentScore,
		e.OverallRating, e.Result, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

// GetByID fetches one evaluation. A missing id returns sql.ErrNoRows.
func (r *Repository) GetByID(ctx context.Context, id string) (*Evaluation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, candidate_name, video_path, overall_score, visual_score, audio_score, content_score, overall_rating, result, created_at
		 FROM evaluations WHERE id = ?`, id)
	return scanEvaluation(row)
}

// ListRecent returns the newest evaluations, most recent first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, candidate_name, video_path, overall_score, visual_score, audio_score, content_score, overall_rating, result, created_at
		 FROM evaluations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []*Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// Rankings returns candidates ordered by their best overall score.
func (r *Repository) Rankings(ctx context.Context, limit int) ([]*Ranking, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT candidate_name, MAX(overall_score) AS best_score, MAX(overall_rating) AS best_rating,
		        COUNT(*) AS evaluations, MAX(created_at) AS last_evaluated
		 FROM evaluations
		 GROUP BY candidate_name
		 ORDER BY best_score DESC, candidate_name ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	var rankings []*Ranking
	rank := 0
	for rows.Next() {
		rank++
		rk := &Ranking{Rank: rank}
		var lastEvaluated string
		if err := rows.Scan(&rk.CandidateName, &rk.BestScore, &rk.BestRating, &rk.Evaluations, &lastEvaluated); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		ts, err := parseTimestamp(lastEvaluated)
		if err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		rk.LastEvaluated = ts
		rankings = append(rankings, rk)
	}
	return rankings, rows.Err()
}

// parseTimestamp decodes a datetime produced by an aggregate expression.
// MAX(created_at) loses the column's declared type, so the driver returns
// the value as text rather than converting it to time.Time.
func parseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSuffix(value, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// DeleteOlderThan removes evaluations created before cutoff and returns how
// many rows were dropped. Used by the retention cleanup.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old evaluations: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row scanner) (*Evaluation, error) {
	e := &Evaluation{}
	var videoPath sql.NullString
	err := row.Scan(
		&e.ID, &e.CandidateName, &videoPath,
		&e.OverallScore, &e.VisualScore, &e.AudioScore, &e.ContentScore,
		&e.OverallRating, &e.Result, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.VideoPath = videoPath.String
	return e, nil
}
