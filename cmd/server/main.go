package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/candidlens/interview-screener/internal/cache"
	"github.com/candidlens/interview-screener/internal/config"
	apperrors "github.com/candidlens/interview-screener/internal/errors"
	"github.com/candidlens/interview-screener/internal/monitoring"
	"github.com/candidlens/interview-screener/internal/providers"
	"github.com/candidlens/interview-screener/internal/ratelimit"
	"github.com/candidlens/interview-screener/internal/scoring"
	"github.com/candidlens/interview-screener/internal/security"
	"github.com/candidlens/interview-screener/internal/sentiment"
	"github.com/candidlens/interview-screener/internal/store"
	"github.com/candidlens/interview-screener/internal/types"
)

// application bundles the wired dependencies the handlers need.
type application struct {
	cfg     *config.Config
	logger  *monitoring.Logger
	metrics *monitoring.Metrics

	scorer  *scoring.Scorer
	visual  *providers.VisualProvider
	audio   *providers.AudioProvider
	content *providers.ContentProvider

	repo      *store.Repository
	respCache *cache.Cache
	limiter   *ratelimit.Limiter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := monitoring.NewLogger(parseLogLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	db, err := store.NewDB(cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer apperrors.SafeClose(db, "database")

	repo := store.NewRepository(db)

	cleaner := store.NewRetentionCleaner(repo, cfg.RetentionDays)
	cleaner.Start()
	defer apperrors.SafeClose(cleaner, "retention cleaner")

	respCache := cache.New(cfg.CacheTTL)
	defer apperrors.SafeClose(respCache, "response cache")

	limiter := ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer apperrors.SafeClose(limiter, "rate limiter")

	// Invalid scoring weights are a deployment mistake; refuse to start.
	scorer, err := scoring.NewScorer(scoring.DefaultConfig())
	if err != nil {
		slog.Error("invalid scoring configuration", "error", err)
		os.Exit(1)
	}

	sentimentClient := sentiment.NewClient(cfg.SentimentEndpoint, cfg.SentimentTimeout)

	app := &application{
		cfg:       cfg,
		logger:    logger,
		metrics:   monitoring.NewMetrics(),
		scorer:    scorer,
		visual:    providers.NewVisualProvider(),
		audio:     providers.NewAudioProvider(),
		content:   providers.NewContentProvider(sentimentClient),
		repo:      repo,
		respCache: respCache,
		limiter:   limiter,
	}

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: setupRouter(app),
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shut down", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupRouter(app *application) *gin.Engine {
	r := gin.New()

	sec := security.NewMiddleware(security.DefaultConfig())

	r.Use(apperrors.RecoveryHandler())
	r.Use(sec.Headers, sec.ValidateContentType, sec.LimitBodySize, sec.RequestTimeout)
	r.Use(corsMiddleware(app.cfg.CORSOrigins))
	r.Use(monitoring.Middleware(app.metrics, app.logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(app.limiter.Middleware(app.metrics))
	r.Use(app.respCache.Middleware("/evaluate", app.metrics))

	r.POST("/evaluate", app.handleEvaluate)
	r.GET("/evaluations", app.handleListEvaluations)
	r.GET("/evaluations/:id", app.handleGetEvaluation)
	r.GET("/rankings", app.handleRankings)

	r.GET("/health", app.handleHealth)
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.metrics.GetStats())
	})
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.respCache.Stats())
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cors.New(corsConfig)
}

// handleEvaluate scores one candidate clip from the uploaded perception
// outputs. Missing modalities degrade to zero scores; only a malformed
// payload fails the request.
func (app *application) handleEvaluate(c *gin.Context) {
	start := time.Now()

	var req types.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid evaluation payload", err))
		return
	}
	req.CandidateName = strings.TrimSpace(req.CandidateName)
	if req.CandidateName == "" {
		c.Error(apperrors.NewValidationError("candidate_name must not be empty", nil))
		return
	}

	transcript := req.Transcript
	if transcript == "" && len(req.TranscriptChunks) > 0 {
		parts := make([]string, 0, len(req.TranscriptChunks))
		for _, chunk := range req.TranscriptChunks {
			parts = append(parts, chunk.Text)
		}
		transcript = strings.Join(parts, " ")
	}

	visualFS := app.visual.Features(req.Frames)
	audioFS := app.audio.Features(req.Audio)
	contentFS, details := app.content.Features(c.Request.Context(), transcript, req.JobKeywords, req.JobDescription)

	if transcript != "" {
		app.metrics.RecordSentimentCall(!details.Degraded)
	}

	result := app.scorer.ScoreWithContext(visualFS, audioFS, contentFS, scoring.ExtraContext{
		MatchedKeywords: details.MatchedKeywords,
	})

	evaluation, err := store.NewEvaluation(req.CandidateName, req.VideoPath, &result)
	if err != nil {
		c.Error(apperrors.NewInternalError("failed to encode evaluation", err))
		return
	}

	// A storage failure must not lose the computed result; log and serve it.
	persisted := true
	if err := app.repo.Save(c.Request.Context(), evaluation); err != nil {
		apperrors.LogError(c, apperrors.NewStorageError("failed to persist evaluation", err))
		persisted = false
	}

	app.metrics.IncrementEvaluation()
	app.logger.EvaluationLogger(evaluation.ID, req.CandidateName,
		result.OverallScore, result.Ratings.Overall, time.Since(start), false)

	c.JSON(http.StatusOK, gin.H{
		"evaluation_id":   evaluation.ID,
		"candidate_name":  req.CandidateName,
		"result":          result,
		"content_details": details,
		"persisted":       persisted,
		"created_at":      evaluation.CreatedAt,
	})
}

func (app *application) handleGetEvaluation(c *gin.Context) {
	id := c.Param("id")

	evaluation, err := app.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(apperrors.NewNotFoundError("evaluation", id))
		} else {
			c.Error(apperrors.NewStorageError("failed to load evaluation", err))
		}
		return
	}

	payload, err := evaluation.ResultPayload()
	if err != nil {
		c.Error(apperrors.NewInternalError("failed to decode stored result", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluation": evaluation,
		"result":     payload,
	})
}

func (app *application) handleListEvaluations(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20, 100)

	evaluations, err := app.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.Error(apperrors.NewStorageError("failed to list evaluations", err))
		return
	}
	if evaluations == nil {
		evaluations = []*store.Evaluation{}
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluations": evaluations,
		"count":       len(evaluations),
	})
}

func (app *application) handleRankings(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 10, 100)

	rankings, err := app.repo.Rankings(c.Request.Context(), limit)
	if err != nil {
		c.Error(apperrors.NewStorageError("failed to compute rankings", err))
		return
	}
	if rankings == nil {
		rankings = []*store.Ranking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"rankings": rankings,
		"count":    len(rankings),
	})
}

func (app *application) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func parseLimit(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
