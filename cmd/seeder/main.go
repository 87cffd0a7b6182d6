// Command seeder populates the lookup tables (field choices and languages)
// from CSV files. It is intended to be run offline, not as part of the main
// server, and is safe to re-run: rows that already exist are skipped.
//
// Flags:
//
//	--choices    path to a field-choices CSV (field,english_name,machine_value)
//	--languages  path to a languages CSV (name,description)
//	--dry-run    parse files without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/fieldchoice"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/language"
	"github.com/finsl/signbank-backend/internal/app"
	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

func main() {
	choicesFlag := flag.String("choices", "", "path to field-choices CSV (field,english_name,machine_value)")
	languagesFlag := flag.String("languages", "", "path to languages CSV (name,description)")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	flag.Parse()

	if *choicesFlag == "" && *languagesFlag == "" {
		log.Fatal("nothing to do: pass --choices and/or --languages")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if *choicesFlag != "" {
		if err := seedChoices(ctx, logger, fieldchoice.New(pool), *choicesFlag, *dryRunFlag); err != nil {
			logger.Error("seed field choices", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *languagesFlag != "" {
		if err := seedLanguages(ctx, logger, language.New(pool), *languagesFlag, *dryRunFlag); err != nil {
			logger.Error("seed languages", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("seeding completed")
}

func seedChoices(ctx context.Context, logger *slog.Logger, repo *fieldchoice.Repo, path string, dryRun bool) error {
	rows, err := readCSV(path, 3)
	if err != nil {
		return err
	}

	var inserted, skipped int
	for i, row := range rows {
		mv, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("%s line %d: machine_value %q is not an integer", path, i+1, row[2])
		}

		fc := domain.FieldChoice{Field: row[0], EnglishName: row[1], MachineValue: mv}
		if dryRun {
			continue
		}

		if _, err := repo.Insert(ctx, fc); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			return fmt.Errorf("insert choice %s/%d: %w", fc.Field, fc.MachineValue, err)
		}
		inserted++
	}

	logger.Info("field choices seeded",
		slog.Int("parsed", len(rows)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", skipped),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

func seedLanguages(ctx context.Context, logger *slog.Logger, repo *language.Repo, path string, dryRun bool) error {
	rows, err := readCSV(path, 2)
	if err != nil {
		return err
	}

	var inserted, skipped int
	for _, row := range rows {
		l := domain.Language{Name: row[0], Description: row[1]}
		if dryRun {
			continue
		}

		if _, err := repo.CreateLanguage(ctx, l); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			return fmt.Errorf("insert language %s: %w", l.Name, err)
		}
		inserted++
	}

	logger.Info("languages seeded",
		slog.Int("parsed", len(rows)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", skipped),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// readCSV reads all records, skipping blank lines and a header row when the
// first line does not fit the expected shape.
func readCSV(path string, wantFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantFields
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, rec)
	}

	// Drop a header like "field,english_name,machine_value".
	if len(rows) > 0 && wantFields == 3 {
		if _, err := strconv.Atoi(rows[0][2]); err != nil {
			rows = rows[1:]
		}
	}

	return rows, nil
}
