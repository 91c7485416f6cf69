package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// seedQuestion mirrors one entry of the question seed file.
type seedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
	Difficulty  int      `json:"difficulty"`
	Category    string   `json:"category"`
}

// seedTerm mirrors one entry of the economic-term seed file.
type seedTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func main() {
	var (
		questionsFile = flag.String("questions", "", "JSON file of quiz questions to load")
		termsFile     = flag.String("terms", "", "JSON file of economic terms to load")
		truncate      = flag.Bool("truncate", false, "Delete existing rows before loading")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *questionsFile == "" && *termsFile == "" {
		log.Fatal().Msg("nothing to do: pass -questions and/or -terms")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		requireEnv("PG_USER"),
		requireEnv("PG_PASSWORD"),
		requireEnv("PG_DATABASE"),
		getEnv("PG_SSL_MODE", "disable"))

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if *questionsFile != "" {
		n, err := seedQuestions(ctx, pool, *questionsFile, *truncate)
		if err != nil {
			log.Fatal().Err(err).Str("file", *questionsFile).Msg("failed to seed questions")
		}
		log.Info().Int64("rows", n).Msg("questions loaded")
	}

	if *termsFile != "" {
		n, err := seedTerms(ctx, pool, *termsFile, *truncate)
		if err != nil {
			log.Fatal().Err(err).Str("file", *termsFile).Msg("failed to seed terms")
		}
		log.Info().Int64("rows", n).Msg("economic terms loaded")
	}
}

func seedQuestions(ctx context.Context, pool *pgxpool.Pool, path string, truncate bool) (int64, error) {
	var questions []seedQuestion
	if err := readSeedFile(path, &questions); err != nil {
		return 0, err
	}
	for i, q := range questions {
		if len(q.Options) == 0 || q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return 0, fmt.Errorf("entry %d: answer index %d out of range for %d options", i, q.AnswerIndex, len(q.Options))
		}
	}

	if truncate {
		if _, err := pool.Exec(ctx, `DELETE FROM questions`); err != nil {
			return 0, fmt.Errorf("truncate questions: %w", err)
		}
	}

	rows := make([][]interface{}, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []interface{}{q.Question, q.Options, q.AnswerIndex, q.Explanation, q.Difficulty, q.Category})
	}

	return pool.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"question", "options", "answer_index", "explanation", "difficulty", "category"},
		pgx.CopyFromRows(rows),
	)
}

func seedTerms(ctx context.Context, pool *pgxpool.Pool, path string, truncate bool) (int64, error) {
	var terms []seedTerm
	if err := readSeedFile(path, &terms); err != nil {
		return 0, err
	}

	if truncate {
		if _, err := pool.Exec(ctx, `DELETE FROM economic_terms`); err != nil {
			return 0, fmt.Errorf("truncate economic_terms: %w", err)
		}
	}

	rows := make([][]interface{}, 0, len(terms))
	for _, t := range terms {
		rows = append(rows, []interface{}{t.Term, t.Definition, t.Category, t.Difficulty})
	}

	return pool.CopyFrom(ctx,
		pgx.Identifier{"economic_terms"},
		[]string{"term", "definition", "category", "difficulty"},
		pgx.CopyFromRows(rows),
	)
}

func readSeedFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Str("var", key).Msg("environment variable is required")
	}
	return value
}
