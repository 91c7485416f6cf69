package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/econolearn/econolearn/internal/auth"
	"github.com/econolearn/econolearn/internal/config"
	"github.com/econolearn/econolearn/internal/quiz"
	"github.com/econolearn/econolearn/internal/term"
)

// NewHTTPServer wires all routes (health, metrics, auth, dictionary, quiz)
// behind the CORS middleware for the web frontend.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	authHandlers *auth.HTTPHandlers,
	authSvc *auth.Service,
	quizHandlers *quiz.HTTPHandlers,
	termHandlers *term.HTTPHandlers,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, `{"status":"degraded"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Auth + profile
	mux.HandleFunc("/api/auth/register", authHandlers.Register)
	mux.HandleFunc("/api/auth/login", authHandlers.Login)
	mux.Handle("/api/users/me", auth.Middleware(authSvc, logger)(http.HandlerFunc(authHandlers.GetMe)))

	// Dictionary
	mux.HandleFunc("/api/dictionary/terms", termHandlers.ListTerms)

	// Quiz
	mux.HandleFunc("/api/quiz/collections", quizHandlers.Collections)
	mux.HandleFunc("/api/quiz/generate/", quizHandlers.Generate)
	mux.HandleFunc("/api/quiz/submit", quizHandlers.Submit)
	mux.HandleFunc("/api/quiz/review/submit", quizHandlers.ReviewSubmit)
	mux.HandleFunc("/api/quiz/review/", quizHandlers.Review)
	mux.HandleFunc("/api/quiz/stats/", quizHandlers.Stats)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware(cfg.CORS, mux),
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
