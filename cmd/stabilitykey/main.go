package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"artgallery/internal/infra"
	"artgallery/internal/infra/credentials"
)

func main() {
	var (
		keyFlag    string
		engineFlag string
	)
	flag.StringVar(&keyFlag, "key", "", "Stability AI API key (falls back to STABILITY_API_KEY)")
	flag.StringVar(&engineFlag, "engine", "", "engine the key is meant for (informational)")
	flag.Parse()

	_ = godotenv.Load()

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("STABILITY_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Stability API key is required via -key or STABILITY_API_KEY")
		os.Exit(1)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "stabilitykey").Logger()
	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))

	ctxExec, cancelExec := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelExec()
	if err := store.SetStabilityAPIKey(ctxExec, key, engineFlag); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist stability api key: %v\n", err)
		os.Exit(1)
	}

	cfg := infra.Config{StabilityAPIKey: key}
	fmt.Printf("Stability API key %s stored successfully\n", cfg.MaskedAPIKey())
}
