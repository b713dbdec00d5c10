package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"artgallery/internal/infra"
	"artgallery/internal/sqlinline"
)

func main() {
	var (
		dbURLFlag   string
		timeoutFlag time.Duration
		dryRunFlag  bool
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "postgres connection string (defaults to DATABASE_URL)")
	flag.DurationVar(&timeoutFlag, "timeout", 30*time.Second, "overall migration timeout")
	flag.BoolVar(&dryRunFlag, "dry-run", false, "print the statements without applying them")
	flag.Parse()

	_ = godotenv.Load()
	logger := infra.NewLogger("cli").With().Str("cmd", "migrate").Logger()

	if dryRunFlag {
		for _, stmt := range sqlinline.Schema {
			fmt.Println(strings.TrimSpace(stmt))
			fmt.Println()
		}
		return
	}

	dbURL := strings.TrimSpace(dbURLFlag)
	if dbURL == "" {
		dbURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL or -database-url is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	if err := apply(ctx, db, sqlinline.Schema, logger); err != nil {
		exitWithError(err)
	}
	logger.Info().Int("statements", len(sqlinline.Schema)).Msg("schema applied")
}

// apply runs every statement in one transaction.
func apply(ctx context.Context, db *sql.DB, stmts []string, logger infra.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		marker, _, err := infra.ExtractMarker(stmt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				return fmt.Errorf("statement %s: %s (sqlstate %s)", marker, pqErr.Message, pqErr.Code)
			}
			return fmt.Errorf("statement %s: %w", marker, err)
		}
		logger.Debug().Str("sql_marker", marker).Msg("statement applied")
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
