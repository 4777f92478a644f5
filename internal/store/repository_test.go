package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candidlens/interview-screener/internal/scoring"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func testEvaluation(t *testing.T, candidate string, score float64) *Evaluation {
	t.Helper()

	result := &scoring.Result{
		OverallScore: score,
		ComponentScores: scoring.ComponentScores{
			Visual:  score,
			Audio:   score,
			Content: score,
		},
		Ratings: scoring.RatingReport{Overall: 4},
	}

	e, err := NewEvaluation(candidate, "/videos/clip.mp4", result)
	require.NoError(t, err)
	return e
}

func TestSaveAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := testEvaluation(t, "Sam", 72.5)
	require.NoError(t, repo.Save(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.CandidateName)
	assert.Equal(t, "/videos/clip.mp4", got.VideoPath)
	assert.InDelta(t, 72.5, got.OverallScore, 1e-9)
	assert.Equal(t, 4, got.OverallRating)

	payload, err := got.ResultPayload()
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := testEvaluation(t, "Sam", 60)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, older))

	newer := testEvaluation(t, "Alex", 80)
	require.NoError(t, repo.Save(ctx, newer))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alex", list[0].CandidateName)
	assert.Equal(t, "Sam", list[1].CandidateName)
}

func TestListRecentLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, testEvaluation(t, "Sam", float64(50+i))))
	}

	list, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRankingsUseBestScorePerCandidate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testEvaluation(t, "Sam", 55)
	first.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, first))

	latest := testEvaluation(t, "Sam", 85)
	require.NoError(t, repo.Save(ctx, latest))
	require.NoError(t, repo.Save(ctx, testEvaluation(t, "Alex", 70)))

	rankings, err := repo.Rankings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rankings, 2)

	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "Sam", rankings[0].CandidateName)
	assert.InDelta(t, 85, rankings[0].BestScore, 1e-9)
	assert.Equal(t, 2, rankings[0].Evaluations)

	// MAX(created_at) comes back as text; the repository must parse it into
	// the newest evaluation time rather than failing the scan.
	assert.WithinDuration(t, latest.CreatedAt, rankings[0].LastEvaluated, time.Second)

	assert.Equal(t, 2, rankings[1].Rank)
	assert.Equal(t, "Alex", rankings[1].CandidateName)
	assert.False(t, rankings[1].LastEvaluated.IsZero())
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("2026-08-26 10:30:00.123456789+00:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2026, 8, 26, 10, 30, 0, 123456789, time.UTC)))

	ts, err = parseTimestamp("2026-08-26 10:30:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)))

	_, err = parseTimestamp("not-a-timestamp")
	assert.Error(t, err)
}

func TestDeleteOlderThan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	old := testEvaluation(t, "Sam", 60)
	old.CreatedAt = time.Now().UTC().AddDate(0, 0, -40)
	require.NoError(t, repo.Save(ctx, old))
	require.NoError(t, repo.Save(ctx, testEvaluation(t, "Alex", 70)))

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alex", list[0].CandidateName)
}
